package batch

import (
	"context"
	"time"
)

// Repository — интерфейс хранилища пакетов и записей синхронизации
type Repository interface {
	Create(ctx context.Context, b *SyncBatch) (int64, error)
	GetByID(ctx context.Context, id int64) (*SyncBatch, error)

	// UpdateStatus применяет переход статуса атомарно: статус меняется
	// только если текущее значение равно from. Возвращает false, если
	// пакет уже находится в другом статусе.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)

	// Finish записывает конечный статус, счетчики и время завершения.
	// Применяется только к пакету in_progress.
	Finish(ctx context.Context, b *SyncBatch) error

	AddRecord(ctx context.Context, r *SyncRecord) (int64, error)
	ListRecords(ctx context.Context, batchID int64) ([]SyncRecord, error)

	// DeactivateOld помечает завершенные и отмененные пакеты старше before
	// как неактивные; возвращает число затронутых пакетов.
	DeactivateOld(ctx context.Context, before time.Time) (int64, error)
}
