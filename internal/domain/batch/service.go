package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"storesync/internal/domain/conflict"
	"storesync/internal/domain/syncconfig"
	"storesync/internal/domain/synclog"
)

// ConfigResolver — срез сервиса конфигураций, нужный движку пакетов
type ConfigResolver interface {
	GetConfiguration(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error)
	ResolveDirection(ctx context.Context, configID int64, entity syncconfig.EntityType) (syncconfig.Direction, error)
	ResolvePolicy(ctx context.Context, configID int64, entity syncconfig.EntityType) (syncconfig.ConflictPolicy, error)
	MarkSyncSuccess(ctx context.Context, configID int64, t time.Time) error
}

// ConflictRecorder сохраняет конфликты, обнаруженные при обработке записей,
// и применяет авторазрешение по политике правила
type ConflictRecorder interface {
	Record(ctx context.Context, c *conflict.SyncConflict) (int64, error)
	Resolve(ctx context.Context, id int64, winner conflict.Winner, notes, resolvedBy string) error
}

// OperationLogger пишет запись в журнал операций
type OperationLogger interface {
	Append(ctx context.Context, e *synclog.SyncLog) error
}

// Servicer — интерфейс движка пакетов синхронизации
type Servicer interface {
	// StartUpload выполняет выгрузку изменений магазина в ЦО
	StartUpload(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) (*SyncBatch, error)

	// StartDownload выполняет загрузку изменений ЦО в магазин
	StartDownload(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) (*SyncBatch, error)

	// RunSync запускает синхронизацию в направлении, заданном правилом.
	// Двунаправленное правило порождает два независимых пакета.
	RunSync(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) ([]*SyncBatch, error)

	// CancelBatch отменяет пакет. Отменить можно только pending-пакет;
	// для любого другого статуса возвращается false без изменения состояния.
	CancelBatch(ctx context.Context, batchID int64) (bool, error)

	// GetBatch возвращает пакет по идентификатору
	GetBatch(ctx context.Context, batchID int64) (*SyncBatch, error)

	// ListRecords возвращает записи пакета
	ListRecords(ctx context.Context, batchID int64) ([]SyncRecord, error)

	// CleanupOldBatches помечает завершенные и отмененные пакеты старше
	// окна хранения как неактивные; возвращает число затронутых пакетов
	CleanupOldBatches(ctx context.Context, retentionDays int) (int64, error)
}

type flightKey struct {
	storeID   int64
	entity    syncconfig.EntityType
	direction syncconfig.Direction
}

// Service — движок пакетов: единственный владелец статусов пакетов
// и времени последней успешной синхронизации
type Service struct {
	repo      Repository
	configs   ConfigResolver
	conflicts ConflictRecorder
	logs      OperationLogger
	transport Transport
	log       *slog.Logger

	mu       sync.Mutex
	inFlight map[flightKey]struct{}
}

// NewService создает движок пакетов
func NewService(repo Repository, configs ConfigResolver, conflicts ConflictRecorder, logs OperationLogger, transport Transport, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		configs:   configs,
		conflicts: conflicts,
		logs:      logs,
		transport: transport,
		log:       log.With("component", "batch_engine"),
		inFlight:  make(map[flightKey]struct{}),
	}
}

// StartUpload выполняет выгрузку изменений магазина в ЦО
func (s *Service) StartUpload(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) (*SyncBatch, error) {
	return s.start(ctx, storeID, entity, syncconfig.DirectionUpload, force)
}

// StartDownload выполняет загрузку изменений ЦО в магазин
func (s *Service) StartDownload(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) (*SyncBatch, error) {
	return s.start(ctx, storeID, entity, syncconfig.DirectionDownload, force)
}

// RunSync запускает синхронизацию в направлении, заданном правилом
func (s *Service) RunSync(ctx context.Context, storeID int64, entity syncconfig.EntityType, force bool) ([]*SyncBatch, error) {
	cfg, err := s.configs.GetConfiguration(ctx, storeID)
	if err != nil {
		return nil, err
	}

	direction, err := s.configs.ResolveDirection(ctx, cfg.ID, entity)
	if err != nil {
		return nil, err
	}

	switch direction {
	case syncconfig.DirectionUpload:
		b, err := s.StartUpload(ctx, storeID, entity, force)
		if err != nil {
			return nil, err
		}
		return []*SyncBatch{b}, nil
	case syncconfig.DirectionDownload:
		b, err := s.StartDownload(ctx, storeID, entity, force)
		if err != nil {
			return nil, err
		}
		return []*SyncBatch{b}, nil
	case syncconfig.DirectionBidirectional:
		// Два независимых пакета: сбой одного направления не блокирует другое
		var batches []*SyncBatch
		var firstErr error

		up, err := s.StartUpload(ctx, storeID, entity, force)
		if err != nil {
			firstErr = err
			s.log.Error("upload direction failed", "store_id", storeID, "entity_type", entity, "error", err)
		} else {
			batches = append(batches, up)
		}

		down, err := s.StartDownload(ctx, storeID, entity, force)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.log.Error("download direction failed", "store_id", storeID, "entity_type", entity, "error", err)
		} else {
			batches = append(batches, down)
		}

		if len(batches) == 0 {
			return nil, firstErr
		}
		return batches, nil
	}

	return nil, fmt.Errorf("unexpected direction %q", direction)
}

// start создает пакет и проводит его через весь жизненный цикл
func (s *Service) start(ctx context.Context, storeID int64, entity syncconfig.EntityType, direction syncconfig.Direction, force bool) (*SyncBatch, error) {
	if !entity.Valid() {
		return nil, ErrUnknownEntityType
	}

	cfg, err := s.configs.GetConfiguration(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !cfg.IsEnabled && !force {
		return nil, ErrSyncDisabled
	}

	ruleDirection, err := s.configs.ResolveDirection(ctx, cfg.ID, entity)
	if err != nil {
		return nil, err
	}
	if !ruleDirection.Allows(direction) {
		return nil, ErrDirectionNotAllowed
	}

	key := flightKey{storeID: storeID, entity: entity, direction: direction}
	if !s.acquire(key) {
		return nil, ErrBatchInFlight
	}
	defer s.release(key)

	var since time.Time
	if cfg.LastSuccessfulSync != nil {
		since = *cfg.LastSuccessfulSync
	}

	b := &SyncBatch{
		StoreID:    storeID,
		EntityType: entity,
		Direction:  direction,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
		IsActive:   true,
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	b.ID = id

	ok, err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("start batch: %w", err)
	}
	if !ok {
		// Пакет успели отменить между созданием и запуском
		return s.repo.GetByID(ctx, id)
	}
	startedAt := time.Now()
	b.StartedAt = &startedAt
	b.Status = StatusInProgress

	policy, err := s.configs.ResolvePolicy(ctx, cfg.ID, entity)
	if err != nil {
		policy = syncconfig.DefaultPolicy
	}

	records, terr := s.moveRecords(ctx, storeID, entity, direction, since, cfg.MaxBatchSize)
	duration := time.Since(startedAt)

	if terr != nil {
		return s.finishFailed(ctx, b, direction, terr, duration)
	}

	for i := range records {
		s.processRecord(ctx, b, &records[i], since, policy)
	}

	return s.finishCompleted(ctx, b, cfg.ID, direction, duration)
}

// moveRecords вызывает транспорт в нужном направлении
func (s *Service) moveRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, direction syncconfig.Direction, since time.Time, limit int) ([]RecordResult, error) {
	switch direction {
	case syncconfig.DirectionUpload:
		return s.transport.UploadRecords(ctx, storeID, entity, since, limit)
	case syncconfig.DirectionDownload:
		return s.transport.DownloadRecords(ctx, storeID, entity, since, limit)
	}
	return nil, fmt.Errorf("unexpected batch direction %q", direction)
}

// processRecord записывает результат обработки одной сущности.
// Ошибка отдельной записи не проваливает пакет.
func (s *Service) processRecord(ctx context.Context, b *SyncBatch, r *RecordResult, since time.Time, policy syncconfig.ConflictPolicy) {
	rec := &SyncRecord{
		BatchID:         b.ID,
		EntityID:        r.EntityID,
		Payload:         r.Payload,
		RecordTimestamp: r.LocalModifiedAt,
		IsSuccess:       r.Err == "",
		ErrorText:       r.Err,
		CreatedAt:       time.Now(),
	}

	if rec.IsSuccess && s.isConflict(r, since) {
		resolved := s.recordConflict(ctx, b, r, policy)
		if !resolved {
			rec.IsSuccess = false
			rec.ErrorText = "unresolved conflict: awaiting manual resolution"
		}
	}

	if _, err := s.repo.AddRecord(ctx, rec); err != nil {
		s.log.Error("failed to persist sync record",
			"batch_id", b.ID, "entity_id", r.EntityID, "error", err)
		rec.IsSuccess = false
	}

	b.TotalRecords++
	if rec.IsSuccess {
		b.SuccessRecords++
	} else {
		b.FailedRecords++
	}
}

// isConflict определяет конфликт: обе стороны изменили сущность после
// опорной метки пакета. До первой успешной синхронизации опорной метки
// нет и конфликты не детектируются.
func (s *Service) isConflict(r *RecordResult, since time.Time) bool {
	if since.IsZero() {
		return false
	}
	return r.LocalModifiedAt.After(since) && r.RemoteModifiedAt.After(since)
}

// recordConflict сохраняет конфликт и применяет политику правила.
// Возвращает true, если конфликт разрешен автоматически.
func (s *Service) recordConflict(ctx context.Context, b *SyncBatch, r *RecordResult, policy syncconfig.ConflictPolicy) bool {
	c := &conflict.SyncConflict{
		BatchID:        b.ID,
		EntityType:     b.EntityType,
		EntityID:       r.EntityID,
		HQTimestamp:    r.RemoteModifiedAt,
		StoreTimestamp: r.LocalModifiedAt,
		CreatedAt:      time.Now(),
	}
	if b.Direction == syncconfig.DirectionDownload {
		c.HQTimestamp, c.StoreTimestamp = r.LocalModifiedAt, r.RemoteModifiedAt
	}

	id, err := s.conflicts.Record(ctx, c)
	if err != nil {
		s.log.Error("failed to record conflict",
			"batch_id", b.ID, "entity_id", r.EntityID, "error", err)
		return false
	}

	switch policy {
	case syncconfig.PolicyHQWins:
		err = s.conflicts.Resolve(ctx, id, conflict.WinnerHQ, "auto-resolved by entity rule policy", "policy:hq_wins")
	case syncconfig.PolicyStoreWins:
		err = s.conflicts.Resolve(ctx, id, conflict.WinnerStore, "auto-resolved by entity rule policy", "policy:store_wins")
	case syncconfig.PolicyManual:
		return false
	}

	if err != nil {
		s.log.Error("failed to auto-resolve conflict", "conflict_id", id, "error", err)
		return false
	}
	return true
}

// finishCompleted закрывает пакет как завершенный. Частичные сбои записей
// не меняют статус: failed зарезервирован за ошибками транспорта.
func (s *Service) finishCompleted(ctx context.Context, b *SyncBatch, configID int64, direction syncconfig.Direction, duration time.Duration) (*SyncBatch, error) {
	completedAt := time.Now()
	b.CompletedAt = &completedAt
	b.Status = StatusCompleted

	if err := s.repo.Finish(ctx, b); err != nil {
		return nil, fmt.Errorf("finish batch: %w", err)
	}

	if err := s.configs.MarkSyncSuccess(ctx, configID, completedAt); err != nil {
		s.log.Error("failed to update last successful sync",
			"config_id", configID, "error", err)
	}

	s.appendLog(ctx, b, string(direction), true, "", duration)

	s.log.Info("batch completed",
		"batch_id", b.ID, "store_id", b.StoreID, "entity_type", b.EntityType,
		"direction", direction, "total", b.TotalRecords,
		"success", b.SuccessRecords, "failed", b.FailedRecords)

	return b, nil
}

// finishFailed закрывает пакет как проваленный после ошибки транспорта.
// Повторный запуск — ответственность планировщика через needsSync.
func (s *Service) finishFailed(ctx context.Context, b *SyncBatch, direction syncconfig.Direction, terr error, duration time.Duration) (*SyncBatch, error) {
	completedAt := time.Now()
	b.CompletedAt = &completedAt
	b.Status = StatusFailed
	b.ErrorMessage = terr.Error()

	if err := s.repo.Finish(ctx, b); err != nil {
		return nil, fmt.Errorf("finish failed batch: %w", err)
	}

	s.appendLog(ctx, b, string(direction), false, terr.Error(), duration)

	s.log.Error("batch failed",
		"batch_id", b.ID, "store_id", b.StoreID, "entity_type", b.EntityType,
		"direction", direction, "error", terr)

	return b, nil
}

func (s *Service) appendLog(ctx context.Context, b *SyncBatch, operation string, success bool, errMsg string, duration time.Duration) {
	entry := &synclog.SyncLog{
		StoreID:      b.StoreID,
		BatchID:      &b.ID,
		Operation:    operation,
		IsSuccess:    success,
		ErrorMessage: errMsg,
		DurationMs:   duration.Milliseconds(),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		s.log.Error("failed to append sync log", "batch_id", b.ID, "error", err)
	}
}

// CancelBatch отменяет pending-пакет. Для in_progress и конечных статусов
// возвращается false без ошибки: повторный вызов безопасен.
func (s *Service) CancelBatch(ctx context.Context, batchID int64) (bool, error) {
	if _, err := s.repo.GetByID(ctx, batchID); err != nil {
		return false, err
	}

	ok, err := s.repo.UpdateStatus(ctx, batchID, StatusPending, StatusCancelled)
	if err != nil {
		return false, fmt.Errorf("cancel batch: %w", err)
	}
	if ok {
		s.log.Info("batch cancelled", "batch_id", batchID)
	}
	return ok, nil
}

// GetBatch возвращает пакет по идентификатору
func (s *Service) GetBatch(ctx context.Context, batchID int64) (*SyncBatch, error) {
	return s.repo.GetByID(ctx, batchID)
}

// ListRecords возвращает записи пакета
func (s *Service) ListRecords(ctx context.Context, batchID int64) ([]SyncRecord, error) {
	return s.repo.ListRecords(ctx, batchID)
}

// CleanupOldBatches помечает старые завершенные и отмененные пакеты неактивными
func (s *Service) CleanupOldBatches(ctx context.Context, retentionDays int) (int64, error) {
	before := time.Now().AddDate(0, 0, -retentionDays)
	count, err := s.repo.DeactivateOld(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("cleanup old batches: %w", err)
	}

	s.log.Info("old batches deactivated", "count", count, "retention_days", retentionDays)
	return count, nil
}

func (s *Service) acquire(key flightKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.inFlight[key]; taken {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Service) release(key flightKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
