package status

import (
	"time"

	"storesync/internal/domain/batch"
)

// StoreStatistics — агрегированная статистика синхронизации одного магазина
type StoreStatistics struct {
	StoreID             int64                `json:"store_id"`
	StoreName           string               `json:"store_name"`
	IsOnline            bool                 `json:"is_online"`
	LastSuccessfulSync  *time.Time           `json:"last_successful_sync,omitempty"`
	TotalBatches        int                  `json:"total_batches"`
	BatchesByStatus     map[batch.Status]int `json:"batches_by_status"`
	SuccessRate         float64              `json:"success_rate"`
	TotalRecordsSynced  int64                `json:"total_records_synced"`
	AvgDurationMs       float64              `json:"avg_duration_ms"`
	UnresolvedConflicts int64                `json:"unresolved_conflicts"`
}

// ChainStatistics — статистика по всей сети с разбивкой по магазинам
type ChainStatistics struct {
	TotalStores         int               `json:"total_stores"`
	TotalBatches        int               `json:"total_batches"`
	SuccessRate         float64           `json:"success_rate"`
	TotalRecordsSynced  int64             `json:"total_records_synced"`
	UnresolvedConflicts int64             `json:"unresolved_conflicts"`
	Stores              []StoreStatistics `json:"stores"`
}

// ChainDashboard — сводка для панели мониторинга сети.
// Каждый магазин ровно в одном из состояний: online или offline,
// поэтому OnlineStores + OfflineStores всегда равно TotalStores.
type ChainDashboard struct {
	TotalStores         int       `json:"total_stores"`
	OnlineStores        int       `json:"online_stores"`
	OfflineStores       int       `json:"offline_stores"`
	StoresNeedingSync   int       `json:"stores_needing_sync"`
	TotalBatches        int       `json:"total_batches"`
	UnresolvedConflicts int64     `json:"unresolved_conflicts"`
	GeneratedAt         time.Time `json:"generated_at"`
}
