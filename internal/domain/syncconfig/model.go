package syncconfig

import (
	"time"
)

// EntityType — тип бизнес-сущности, участвующей в синхронизации.
// Закрытый набор: добавление нового типа требует правки всех switch по нему.
type EntityType string

const (
	EntityProduct   EntityType = "product"
	EntityOrder     EntityType = "order"
	EntityInventory EntityType = "inventory"
	EntityCustomer  EntityType = "customer"
	EntityPrice     EntityType = "price"
)

// Valid проверяет, что тип сущности входит в известный набор
func (e EntityType) Valid() bool {
	switch e {
	case EntityProduct, EntityOrder, EntityInventory, EntityCustomer, EntityPrice:
		return true
	}
	return false
}

// Direction — направление перемещения данных между магазином и ЦО
type Direction string

const (
	DirectionUpload        Direction = "upload"
	DirectionDownload      Direction = "download"
	DirectionBidirectional Direction = "bidirectional"
)

// DefaultDirection — направление, используемое при отсутствии включенного
// правила для типа сущности. Значение задано явно, а не выводится из
// отсутствия правила.
const DefaultDirection = DirectionBidirectional

// Valid проверяет корректность направления
func (d Direction) Valid() bool {
	switch d {
	case DirectionUpload, DirectionDownload, DirectionBidirectional:
		return true
	}
	return false
}

// Allows сообщает, покрывает ли направление правила запрошенное направление
// запуска. Двунаправленное правило разрешает оба направления.
func (d Direction) Allows(requested Direction) bool {
	if d == DirectionBidirectional {
		return true
	}
	return d == requested
}

// ConflictPolicy — политика разрешения конфликтов для типа сущности
type ConflictPolicy string

const (
	PolicyHQWins    ConflictPolicy = "hq_wins"
	PolicyStoreWins ConflictPolicy = "store_wins"
	PolicyManual    ConflictPolicy = "manual"
)

// DefaultPolicy — политика при отсутствии включенного правила
const DefaultPolicy = PolicyManual

// Valid проверяет корректность политики
func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyHQWins, PolicyStoreWins, PolicyManual:
		return true
	}
	return false
}

// SyncConfiguration — настройки синхронизации одного магазина.
// На магазин существует не более одной конфигурации; конфигурации
// никогда не удаляются физически, только деактивируются.
type SyncConfiguration struct {
	ID                  int64      `json:"id"`
	StoreID             int64      `json:"store_id"`
	SyncIntervalSeconds int        `json:"sync_interval_seconds"`
	IsEnabled           bool       `json:"is_enabled"`
	MaxBatchSize        int        `json:"max_batch_size"`
	LastSuccessfulSync  *time.Time `json:"last_successful_sync,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SyncEntityRule — правило синхронизации для пары (конфигурация, тип сущности).
// Для пары может быть включено не более одного правила.
type SyncEntityRule struct {
	ID             int64          `json:"id"`
	ConfigID       int64          `json:"config_id"`
	EntityType     EntityType     `json:"entity_type"`
	Direction      Direction      `json:"direction"`
	ConflictPolicy ConflictPolicy `json:"conflict_policy"`
	Priority       int            `json:"priority"`
	IsEnabled      bool           `json:"is_enabled"`
	CreatedAt      time.Time      `json:"created_at"`
}
