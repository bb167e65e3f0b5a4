package batch

import (
	"encoding/json"
	"time"

	"storesync/internal/domain/syncconfig"
)

// Status — статус пакета синхронизации.
// Допустимые переходы: pending → in_progress → {completed | failed},
// pending → cancelled. Других переходов нет.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal сообщает, является ли статус конечным
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	case StatusPending, StatusInProgress:
		return false
	}
	return false
}

// SyncBatch — одна попытка синхронизации для тройки (магазин, тип сущности,
// направление). Статус меняет только движок пакетов.
type SyncBatch struct {
	ID             int64                 `json:"id"`
	StoreID        int64                 `json:"store_id"`
	EntityType     syncconfig.EntityType `json:"entity_type"`
	Direction      syncconfig.Direction  `json:"direction"`
	Status         Status                `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	StartedAt      *time.Time            `json:"started_at,omitempty"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
	TotalRecords   int                   `json:"total_records"`
	SuccessRecords int                   `json:"success_records"`
	FailedRecords  int                   `json:"failed_records"`
	ErrorMessage   string                `json:"error_message,omitempty"`
	IsActive       bool                  `json:"is_active"`
}

// SyncRecord — результат обработки одной сущности внутри пакета.
// Создается только пока пакет in_progress и после записи не меняется.
type SyncRecord struct {
	ID              int64           `json:"id"`
	BatchID         int64           `json:"batch_id"`
	EntityID        int64           `json:"entity_id"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	RecordTimestamp time.Time       `json:"record_timestamp"`
	IsSuccess       bool            `json:"is_success"`
	ErrorText       string          `json:"error_text,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
