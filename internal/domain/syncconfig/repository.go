package syncconfig

import (
	"context"
	"time"
)

// Repository — интерфейс хранилища конфигураций и правил синхронизации
type Repository interface {
	Create(ctx context.Context, cfg *SyncConfiguration) (int64, error)
	GetByStore(ctx context.Context, storeID int64) (*SyncConfiguration, error)
	GetByID(ctx context.Context, id int64) (*SyncConfiguration, error)
	ListEnabled(ctx context.Context) ([]SyncConfiguration, error)
	SetEnabled(ctx context.Context, storeID int64, enabled bool) error
	SetLastSuccessfulSync(ctx context.Context, configID int64, t time.Time) error

	AddRule(ctx context.Context, rule *SyncEntityRule) (int64, error)
	GetEnabledRule(ctx context.Context, configID int64, entity EntityType) (*SyncEntityRule, error)
	ListRules(ctx context.Context, configID int64) ([]SyncEntityRule, error)
	SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error
}
