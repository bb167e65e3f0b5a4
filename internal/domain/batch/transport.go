package batch

import (
	"context"
	"encoding/json"
	"time"

	"storesync/internal/domain/syncconfig"
)

// RecordResult — одна запись, перемещенная транспортом.
// LocalModifiedAt — время изменения на стороне-источнике пакета,
// RemoteModifiedAt — время изменения на противоположной стороне.
type RecordResult struct {
	EntityID         int64           `json:"entity_id"`
	Payload          json.RawMessage `json:"payload"`
	LocalModifiedAt  time.Time       `json:"local_modified_at"`
	RemoteModifiedAt time.Time       `json:"remote_modified_at"`
	// Err — ошибка перемещения конкретной записи; пустая строка при успехе.
	// Ошибка отдельной записи не считается ошибкой транспорта.
	Err string `json:"err,omitempty"`
}

// Transport — канал обмена данными между ЦО и магазином. Реализация
// предоставляется вызывающей стороной; движок пакетов только инициирует
// перемещение записей, измененных после sinceTimestamp.
// Пустой список записей не является ошибкой: ошибка возвращается только
// при невосстановимом сбое канала.
type Transport interface {
	UploadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]RecordResult, error)
	DownloadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]RecordResult, error)
}
