package conflict

import (
	"time"

	"storesync/internal/domain/syncconfig"
)

// Winner — сторона, чья версия сущности признана итоговой
type Winner string

const (
	WinnerHQ    Winner = "hq"
	WinnerStore Winner = "store"
)

// Valid проверяет корректность победителя
func (w Winner) Valid() bool {
	switch w {
	case WinnerHQ, WinnerStore:
		return true
	}
	return false
}

// SyncConflict — независимые правки одной сущности в ЦО и в магазине
// после последней успешной синхронизации. Создается неразрешенным,
// разрешается ровно один раз и больше не меняется.
type SyncConflict struct {
	ID              int64                 `json:"id"`
	BatchID         int64                 `json:"batch_id"`
	EntityType      syncconfig.EntityType `json:"entity_type"`
	EntityID        int64                 `json:"entity_id"`
	HQTimestamp     time.Time             `json:"hq_timestamp"`
	StoreTimestamp  time.Time             `json:"store_timestamp"`
	IsResolved      bool                  `json:"is_resolved"`
	Winner          Winner                `json:"winner,omitempty"`
	ResolutionNotes string                `json:"resolution_notes,omitempty"`
	ResolvedBy      string                `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time            `json:"resolved_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}
