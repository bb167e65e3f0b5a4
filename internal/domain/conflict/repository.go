package conflict

import (
	"context"
	"time"
)

// Repository — интерфейс хранилища конфликтов синхронизации
type Repository interface {
	Create(ctx context.Context, c *SyncConflict) (int64, error)
	GetByID(ctx context.Context, id int64) (*SyncConflict, error)

	// MarkResolved применяет разрешение только к неразрешенному конфликту.
	// Возвращает false, если конфликт уже разрешен.
	MarkResolved(ctx context.Context, id int64, winner Winner, notes, resolvedBy string, at time.Time) (bool, error)

	ListUnresolved(ctx context.Context) ([]SyncConflict, error)
	ListUnresolvedByBatch(ctx context.Context, batchID int64) ([]SyncConflict, error)
	CountUnresolvedByStore(ctx context.Context, storeID int64) (int64, error)
}
