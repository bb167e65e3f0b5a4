package syncconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// Servicer — интерфейс сервиса конфигураций синхронизации
type Servicer interface {
	// GetConfiguration возвращает конфигурацию магазина
	GetConfiguration(ctx context.Context, storeID int64) (*SyncConfiguration, error)

	// CreateConfiguration создает конфигурацию для магазина.
	// Повторное создание для того же магазина отклоняется.
	CreateConfiguration(ctx context.Context, params CreateParams) (*SyncConfiguration, error)

	// SetEnabled включает или выключает синхронизацию магазина
	SetEnabled(ctx context.Context, storeID int64, enabled bool) error

	// AddEntityRule добавляет правило для типа сущности
	AddEntityRule(ctx context.Context, params AddRuleParams) (*SyncEntityRule, error)

	// ListEntityRules возвращает правила конфигурации в порядке приоритета
	ListEntityRules(ctx context.Context, configID int64) ([]SyncEntityRule, error)

	// SetRuleEnabled включает или выключает правило синхронизации
	SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error

	// ResolveDirection возвращает направление синхронизации для типа сущности
	ResolveDirection(ctx context.Context, configID int64, entity EntityType) (Direction, error)

	// ResolvePolicy возвращает политику разрешения конфликтов для типа сущности
	ResolvePolicy(ctx context.Context, configID int64, entity EntityType) (ConflictPolicy, error)

	// MarkSyncSuccess фиксирует время последней успешной синхронизации.
	// Вызывается только движком пакетов при завершении пакета.
	MarkSyncSuccess(ctx context.Context, configID int64, t time.Time) error
}

// Service — реализация сервиса конфигураций
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает сервис конфигураций синхронизации
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "syncconfig_service"),
	}
}

// GetConfiguration возвращает конфигурацию магазина
func (s *Service) GetConfiguration(ctx context.Context, storeID int64) (*SyncConfiguration, error) {
	return s.repo.GetByStore(ctx, storeID)
}

// CreateConfiguration создает конфигурацию для магазина
func (s *Service) CreateConfiguration(ctx context.Context, params CreateParams) (*SyncConfiguration, error) {
	if params.SyncIntervalSeconds <= 0 || params.MaxBatchSize <= 0 {
		return nil, ErrInvalidParams
	}

	existing, err := s.repo.GetByStore(ctx, params.StoreID)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("check existing configuration: %w", err)
	}
	if existing != nil {
		return nil, ErrConfigExists
	}

	now := time.Now()
	cfg := &SyncConfiguration{
		StoreID:             params.StoreID,
		SyncIntervalSeconds: params.SyncIntervalSeconds,
		IsEnabled:           params.IsEnabled,
		MaxBatchSize:        params.MaxBatchSize,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	id, err := s.repo.Create(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create configuration: %w", err)
	}
	cfg.ID = id

	s.log.Info("sync configuration created",
		"store_id", params.StoreID, "config_id", id)

	return cfg, nil
}

// SetEnabled включает или выключает синхронизацию магазина
func (s *Service) SetEnabled(ctx context.Context, storeID int64, enabled bool) error {
	if err := s.repo.SetEnabled(ctx, storeID, enabled); err != nil {
		return err
	}

	s.log.Info("sync configuration toggled", "store_id", storeID, "enabled", enabled)
	return nil
}

// AddEntityRule добавляет правило для типа сущности.
// Второе включенное правило для той же пары (конфигурация, тип) отклоняется.
func (s *Service) AddEntityRule(ctx context.Context, params AddRuleParams) (*SyncEntityRule, error) {
	if !params.EntityType.Valid() || !params.Direction.Valid() || !params.ConflictPolicy.Valid() {
		return nil, ErrInvalidParams
	}

	existing, err := s.repo.GetEnabledRule(ctx, params.ConfigID, params.EntityType)
	if err != nil && !errors.Is(err, ErrRuleNotFound) {
		return nil, fmt.Errorf("check existing rule: %w", err)
	}
	if existing != nil {
		return nil, ErrRuleExists
	}

	rule := &SyncEntityRule{
		ConfigID:       params.ConfigID,
		EntityType:     params.EntityType,
		Direction:      params.Direction,
		ConflictPolicy: params.ConflictPolicy,
		Priority:       params.Priority,
		IsEnabled:      true,
		CreatedAt:      time.Now(),
	}

	id, err := s.repo.AddRule(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("add entity rule: %w", err)
	}
	rule.ID = id

	s.log.Info("entity rule added",
		"config_id", params.ConfigID, "entity_type", params.EntityType,
		"direction", params.Direction, "policy", params.ConflictPolicy)

	return rule, nil
}

// ListEntityRules возвращает правила конфигурации в порядке приоритета
func (s *Service) ListEntityRules(ctx context.Context, configID int64) ([]SyncEntityRule, error) {
	return s.repo.ListRules(ctx, configID)
}

// SetRuleEnabled включает или выключает правило синхронизации
func (s *Service) SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error {
	if err := s.repo.SetRuleEnabled(ctx, ruleID, enabled); err != nil {
		return err
	}

	s.log.Info("entity rule toggled", "rule_id", ruleID, "enabled", enabled)
	return nil
}

// ResolveDirection возвращает направление для типа сущности.
// При отсутствии включенного правила возвращается DefaultDirection.
func (s *Service) ResolveDirection(ctx context.Context, configID int64, entity EntityType) (Direction, error) {
	rule, err := s.repo.GetEnabledRule(ctx, configID, entity)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return DefaultDirection, nil
		}
		return "", fmt.Errorf("resolve direction: %w", err)
	}
	return rule.Direction, nil
}

// ResolvePolicy возвращает политику конфликтов для типа сущности.
// При отсутствии включенного правила возвращается DefaultPolicy.
func (s *Service) ResolvePolicy(ctx context.Context, configID int64, entity EntityType) (ConflictPolicy, error) {
	rule, err := s.repo.GetEnabledRule(ctx, configID, entity)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			return DefaultPolicy, nil
		}
		return "", fmt.Errorf("resolve policy: %w", err)
	}
	return rule.ConflictPolicy, nil
}

// MarkSyncSuccess фиксирует время последней успешной синхронизации
func (s *Service) MarkSyncSuccess(ctx context.Context, configID int64, t time.Time) error {
	return s.repo.SetLastSuccessfulSync(ctx, configID, t)
}
