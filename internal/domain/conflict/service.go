package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer — интерфейс менеджера конфликтов. Менеджер фиксирует решения;
// применение выигравшей версии остается за движком пакетов и транспортом.
type Servicer interface {
	// Record сохраняет обнаруженный конфликт в неразрешенном состоянии
	Record(ctx context.Context, c *SyncConflict) (int64, error)

	// Resolve разрешает конфликт ровно один раз
	Resolve(ctx context.Context, id int64, winner Winner, notes, resolvedBy string) error

	// BulkResolve разрешает все неразрешенные конфликты из набора.
	// Каждый идентификатор обрабатывается независимо; уже разрешенные
	// и отсутствующие пропускаются. Возвращает число разрешенных.
	BulkResolve(ctx context.Context, ids []int64, winner Winner, notes, resolvedBy string) (int, error)

	// Get возвращает конфликт по идентификатору
	Get(ctx context.Context, id int64) (*SyncConflict, error)

	// Unresolved возвращает все неразрешенные конфликты
	Unresolved(ctx context.Context) ([]SyncConflict, error)

	// UnresolvedForBatch возвращает неразрешенные конфликты пакета
	UnresolvedForBatch(ctx context.Context, batchID int64) ([]SyncConflict, error)
}

// Service — реализация менеджера конфликтов
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает менеджер конфликтов
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "conflict_manager"),
	}
}

// Record сохраняет обнаруженный конфликт
func (s *Service) Record(ctx context.Context, c *SyncConflict) (int64, error) {
	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("record conflict: %w", err)
	}

	s.log.Info("conflict recorded",
		"conflict_id", id, "batch_id", c.BatchID,
		"entity_type", c.EntityType, "entity_id", c.EntityID)

	return id, nil
}

// Resolve разрешает конфликт. Повторное разрешение отклоняется:
// разрешенные конфликты неизменяемы.
func (s *Service) Resolve(ctx context.Context, id int64, winner Winner, notes, resolvedBy string) error {
	if !winner.Valid() {
		return ErrInvalidWinner
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	ok, err := s.repo.MarkResolved(ctx, id, winner, notes, resolvedBy, time.Now())
	if err != nil {
		return fmt.Errorf("resolve conflict: %w", err)
	}
	if !ok {
		return ErrAlreadyResolved
	}

	s.log.Info("conflict resolved",
		"conflict_id", id, "winner", winner, "resolved_by", resolvedBy)

	return nil
}

// BulkResolve разрешает неразрешенное подмножество набора идентификаторов
func (s *Service) BulkResolve(ctx context.Context, ids []int64, winner Winner, notes, resolvedBy string) (int, error) {
	if !winner.Valid() {
		return 0, ErrInvalidWinner
	}

	resolved := 0
	for _, id := range ids {
		err := s.Resolve(ctx, id, winner, notes, resolvedBy)
		switch {
		case err == nil:
			resolved++
		case errors.Is(err, ErrAlreadyResolved), errors.Is(err, ErrConflictNotFound):
			// Каждый идентификатор независим: пропускаем и продолжаем
			continue
		default:
			s.log.Error("bulk resolve skipped conflict", "conflict_id", id, "error", err)
		}
	}

	s.log.Info("bulk resolution applied",
		"requested", len(ids), "resolved", resolved, "winner", winner)

	return resolved, nil
}

// Get возвращает конфликт по идентификатору
func (s *Service) Get(ctx context.Context, id int64) (*SyncConflict, error) {
	return s.repo.GetByID(ctx, id)
}

// Unresolved возвращает все неразрешенные конфликты
func (s *Service) Unresolved(ctx context.Context) ([]SyncConflict, error) {
	return s.repo.ListUnresolved(ctx)
}

// UnresolvedForBatch возвращает неразрешенные конфликты пакета
func (s *Service) UnresolvedForBatch(ctx context.Context, batchID int64) ([]SyncConflict, error) {
	return s.repo.ListUnresolvedByBatch(ctx, batchID)
}
