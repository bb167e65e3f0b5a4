package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/syncconfig"
)

// ConfigRepository — хранилище конфигураций и правил синхронизации
type ConfigRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewConfigRepository создает репозиторий конфигураций
func NewConfigRepository(pool *pgxpool.Pool, log *slog.Logger) *ConfigRepository {
	return &ConfigRepository{
		pool: pool,
		log:  log.With("component", "config_repository"),
	}
}

func (r *ConfigRepository) Create(ctx context.Context, cfg *syncconfig.SyncConfiguration) (int64, error) {
	const query = `
		INSERT INTO sync_configurations
			(store_id, sync_interval_seconds, is_enabled, max_batch_size, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		cfg.StoreID, cfg.SyncIntervalSeconds, cfg.IsEnabled,
		cfg.MaxBatchSize, cfg.IsActive, cfg.CreatedAt, cfg.UpdatedAt,
	).Scan(&cfg.ID)

	if err != nil {
		r.log.Error("failed to create configuration", "store_id", cfg.StoreID, "error", err)
		return 0, fmt.Errorf("create configuration: %w", err)
	}

	return cfg.ID, nil
}

func (r *ConfigRepository) GetByStore(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error) {
	const query = `
		SELECT id, store_id, sync_interval_seconds, is_enabled, max_batch_size,
		       last_successful_sync, is_active, created_at, updated_at
		FROM sync_configurations
		WHERE store_id = $1 AND is_active`

	return r.scanConfig(r.pool.QueryRow(ctx, query, storeID))
}

func (r *ConfigRepository) GetByID(ctx context.Context, id int64) (*syncconfig.SyncConfiguration, error) {
	const query = `
		SELECT id, store_id, sync_interval_seconds, is_enabled, max_batch_size,
		       last_successful_sync, is_active, created_at, updated_at
		FROM sync_configurations
		WHERE id = $1`

	return r.scanConfig(r.pool.QueryRow(ctx, query, id))
}

func (r *ConfigRepository) ListEnabled(ctx context.Context) ([]syncconfig.SyncConfiguration, error) {
	const query = `
		SELECT id, store_id, sync_interval_seconds, is_enabled, max_batch_size,
		       last_successful_sync, is_active, created_at, updated_at
		FROM sync_configurations
		WHERE is_enabled AND is_active
		ORDER BY store_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list enabled configurations", "error", err)
		return nil, fmt.Errorf("list enabled configurations: %w", err)
	}
	defer rows.Close()

	var configs []syncconfig.SyncConfiguration
	for rows.Next() {
		cfg, err := r.scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}

	return configs, rows.Err()
}

func (r *ConfigRepository) SetEnabled(ctx context.Context, storeID int64, enabled bool) error {
	const query = `
		UPDATE sync_configurations
		SET is_enabled = $2, updated_at = $3
		WHERE store_id = $1 AND is_active`

	tag, err := r.pool.Exec(ctx, query, storeID, enabled, time.Now())
	if err != nil {
		r.log.Error("failed to toggle configuration", "store_id", storeID, "error", err)
		return fmt.Errorf("toggle configuration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return syncconfig.ErrConfigNotFound
	}

	return nil
}

func (r *ConfigRepository) SetLastSuccessfulSync(ctx context.Context, configID int64, t time.Time) error {
	const query = `
		UPDATE sync_configurations
		SET last_successful_sync = $2, updated_at = $2
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, configID, t)
	if err != nil {
		r.log.Error("failed to update last successful sync", "config_id", configID, "error", err)
		return fmt.Errorf("update last successful sync: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return syncconfig.ErrConfigNotFound
	}

	return nil
}

func (r *ConfigRepository) AddRule(ctx context.Context, rule *syncconfig.SyncEntityRule) (int64, error) {
	const query = `
		INSERT INTO sync_entity_rules
			(config_id, entity_type, direction, conflict_policy, priority, is_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		rule.ConfigID, rule.EntityType, rule.Direction,
		rule.ConflictPolicy, rule.Priority, rule.IsEnabled, rule.CreatedAt,
	).Scan(&rule.ID)

	if err != nil {
		r.log.Error("failed to add entity rule",
			"config_id", rule.ConfigID, "entity_type", rule.EntityType, "error", err)
		return 0, fmt.Errorf("add entity rule: %w", err)
	}

	return rule.ID, nil
}

func (r *ConfigRepository) GetEnabledRule(ctx context.Context, configID int64, entity syncconfig.EntityType) (*syncconfig.SyncEntityRule, error) {
	const query = `
		SELECT id, config_id, entity_type, direction, conflict_policy, priority, is_enabled, created_at
		FROM sync_entity_rules
		WHERE config_id = $1 AND entity_type = $2 AND is_enabled`

	return r.scanRule(r.pool.QueryRow(ctx, query, configID, entity))
}

func (r *ConfigRepository) ListRules(ctx context.Context, configID int64) ([]syncconfig.SyncEntityRule, error) {
	const query = `
		SELECT id, config_id, entity_type, direction, conflict_policy, priority, is_enabled, created_at
		FROM sync_entity_rules
		WHERE config_id = $1
		ORDER BY priority, entity_type`

	rows, err := r.pool.Query(ctx, query, configID)
	if err != nil {
		r.log.Error("failed to list entity rules", "config_id", configID, "error", err)
		return nil, fmt.Errorf("list entity rules: %w", err)
	}
	defer rows.Close()

	var rules []syncconfig.SyncEntityRule
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

func (r *ConfigRepository) SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error {
	const query = `UPDATE sync_entity_rules SET is_enabled = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, ruleID, enabled)
	if err != nil {
		return fmt.Errorf("toggle entity rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return syncconfig.ErrRuleNotFound
	}

	return nil
}

func (r *ConfigRepository) scanConfig(row pgx.Row) (*syncconfig.SyncConfiguration, error) {
	var cfg syncconfig.SyncConfiguration

	err := row.Scan(
		&cfg.ID, &cfg.StoreID, &cfg.SyncIntervalSeconds, &cfg.IsEnabled,
		&cfg.MaxBatchSize, &cfg.LastSuccessfulSync, &cfg.IsActive,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, syncconfig.ErrConfigNotFound
		}
		return nil, fmt.Errorf("scan configuration: %w", err)
	}

	return &cfg, nil
}

func (r *ConfigRepository) scanRule(row pgx.Row) (*syncconfig.SyncEntityRule, error) {
	var rule syncconfig.SyncEntityRule

	err := row.Scan(
		&rule.ID, &rule.ConfigID, &rule.EntityType, &rule.Direction,
		&rule.ConflictPolicy, &rule.Priority, &rule.IsEnabled, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, syncconfig.ErrRuleNotFound
		}
		return nil, fmt.Errorf("scan entity rule: %w", err)
	}

	return &rule, nil
}
