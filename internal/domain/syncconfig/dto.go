package syncconfig

// CreateParams — параметры создания конфигурации синхронизации
type CreateParams struct {
	StoreID             int64 `json:"store_id"`
	SyncIntervalSeconds int   `json:"sync_interval_seconds"`
	MaxBatchSize        int   `json:"max_batch_size"`
	IsEnabled           bool  `json:"is_enabled"`
}

// AddRuleParams — параметры добавления правила для типа сущности
type AddRuleParams struct {
	ConfigID       int64          `json:"config_id"`
	EntityType     EntityType     `json:"entity_type"`
	Direction      Direction      `json:"direction"`
	ConflictPolicy ConflictPolicy `json:"conflict_policy"`
	Priority       int            `json:"priority"`
}
