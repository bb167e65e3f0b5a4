package synclog

import (
	"time"
)

// SyncLog — запись журнала операций синхронизации. Журнал только
// дополняется; записи не редактируются и не удаляются, устаревшие
// помечаются неактивными при очистке.
type SyncLog struct {
	ID           int64     `json:"id"`
	StoreID      int64     `json:"store_id"`
	BatchID      *int64    `json:"batch_id,omitempty"`
	Operation    string    `json:"operation"`
	IsSuccess    bool      `json:"is_success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Filter — критерии выборки журнала; nil-поле означает "без ограничения"
type Filter struct {
	StoreID   *int64
	IsSuccess *bool
	From      *time.Time
	To        *time.Time
}
