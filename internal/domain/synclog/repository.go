package synclog

import (
	"context"
	"time"
)

// Repository — интерфейс хранилища журнала операций
type Repository interface {
	Append(ctx context.Context, e *SyncLog) (int64, error)
	Query(ctx context.Context, f Filter) ([]SyncLog, error)

	// AvgDurationMs возвращает среднюю длительность операций магазина;
	// 0, если записей нет
	AvgDurationMs(ctx context.Context, storeID int64) (float64, error)

	// DeactivateOld помечает записи старше before неактивными;
	// возвращает число затронутых записей
	DeactivateOld(ctx context.Context, before time.Time) (int64, error)
}
