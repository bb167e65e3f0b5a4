package synclog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer — интерфейс журнала операций синхронизации
type Servicer interface {
	// Append добавляет запись журнала
	Append(ctx context.Context, e *SyncLog) error

	// Query возвращает записи журнала по фильтру; выборка ничего не меняет
	Query(ctx context.Context, f Filter) ([]SyncLog, error)

	// ErrorLogs возвращает записи об ошибках для магазина
	ErrorLogs(ctx context.Context, storeID int64) ([]SyncLog, error)

	// DeactivateOld помечает записи старше окна хранения неактивными
	DeactivateOld(ctx context.Context, retentionDays int) (int64, error)
}

// Service — реализация журнала операций
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает сервис журнала операций
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sync_log"),
	}
}

// Append добавляет запись журнала
func (s *Service) Append(ctx context.Context, e *SyncLog) error {
	if e.Operation == "" {
		return ErrEmptyOperation
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.IsActive = true

	id, err := s.repo.Append(ctx, e)
	if err != nil {
		return fmt.Errorf("append sync log: %w", err)
	}
	e.ID = id

	return nil
}

// Query возвращает записи журнала по фильтру
func (s *Service) Query(ctx context.Context, f Filter) ([]SyncLog, error) {
	return s.repo.Query(ctx, f)
}

// ErrorLogs возвращает записи об ошибках для магазина
func (s *Service) ErrorLogs(ctx context.Context, storeID int64) ([]SyncLog, error) {
	failed := false
	return s.repo.Query(ctx, Filter{StoreID: &storeID, IsSuccess: &failed})
}

// DeactivateOld помечает устаревшие записи неактивными
func (s *Service) DeactivateOld(ctx context.Context, retentionDays int) (int64, error) {
	before := time.Now().AddDate(0, 0, -retentionDays)
	count, err := s.repo.DeactivateOld(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("deactivate old logs: %w", err)
	}

	s.log.Info("old sync logs deactivated", "count", count, "retention_days", retentionDays)
	return count, nil
}
