package status

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/slog"

	"storesync/internal/domain/batch"
	"storesync/internal/domain/store"
	"storesync/internal/domain/syncconfig"
)

// OnlineWindow — максимальный возраст последней успешной синхронизации,
// при котором магазин считается online. Окно свежести панели синхронизации;
// намеренно не совпадает с окнами других отчетных подсистем.
const OnlineWindow = 5 * time.Minute

// ConfigReader — доступ к конфигурациям синхронизации только на чтение
type ConfigReader interface {
	GetByStore(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error)
	ListEnabled(ctx context.Context) ([]syncconfig.SyncConfiguration, error)
}

// BatchReader — агрегатные выборки по пакетам
type BatchReader interface {
	CountByStatus(ctx context.Context, storeID int64) (map[batch.Status]int, error)
	SumSuccessRecords(ctx context.Context, storeID int64) (int64, error)
}

// LogReader — агрегатные выборки по журналу операций
type LogReader interface {
	AvgDurationMs(ctx context.Context, storeID int64) (float64, error)
}

// ConflictReader — агрегатные выборки по конфликтам
type ConflictReader interface {
	CountUnresolvedByStore(ctx context.Context, storeID int64) (int64, error)
}

// Servicer — интерфейс агрегатора состояния и статистики. Все операции
// только читают данные других подсистем.
type Servicer interface {
	// IsOnline сообщает, был ли магазин успешно синхронизирован в окне
	// свежести. Магазин без единой успешной синхронизации — offline.
	IsOnline(ctx context.Context, storeID int64) (bool, error)

	// NeedsSync сообщает, пора ли синхронизировать магазин. Единственная
	// точка, по которой внешний планировщик принимает решение о запуске.
	NeedsSync(ctx context.Context, storeID int64) (bool, error)

	// StoresNeedingSync возвращает магазины, которым пора синхронизироваться
	StoresNeedingSync(ctx context.Context) ([]int64, error)

	// StoreStatistics возвращает статистику магазина
	StoreStatistics(ctx context.Context, storeID int64) (*StoreStatistics, error)

	// ChainStatistics возвращает статистику сети с разбивкой по магазинам
	ChainStatistics(ctx context.Context) (*ChainStatistics, error)

	// ChainDashboard возвращает сводку для панели мониторинга
	ChainDashboard(ctx context.Context) (*ChainDashboard, error)
}

// Service — реализация агрегатора
type Service struct {
	configs   ConfigReader
	batches   BatchReader
	logs      LogReader
	conflicts ConflictReader
	stores    store.Repository
	log       *slog.Logger
}

// NewService создает агрегатор состояния и статистики
func NewService(configs ConfigReader, batches BatchReader, logs LogReader, conflicts ConflictReader, stores store.Repository, log *slog.Logger) *Service {
	return &Service{
		configs:   configs,
		batches:   batches,
		logs:      logs,
		conflicts: conflicts,
		stores:    stores,
		log:       log.With("component", "status_aggregator"),
	}
}

// IsOnline сообщает, попадает ли последняя успешная синхронизация в окно свежести
func (s *Service) IsOnline(ctx context.Context, storeID int64) (bool, error) {
	cfg, err := s.configs.GetByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, syncconfig.ErrConfigNotFound) {
			// Ненастроенный магазин — offline, не "неизвестно"
			return false, nil
		}
		return false, fmt.Errorf("get configuration: %w", err)
	}

	return configOnline(cfg, time.Now()), nil
}

// NeedsSync сообщает, пора ли синхронизировать магазин
func (s *Service) NeedsSync(ctx context.Context, storeID int64) (bool, error) {
	cfg, err := s.configs.GetByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, syncconfig.ErrConfigNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get configuration: %w", err)
	}

	return configNeedsSync(cfg, time.Now()), nil
}

// StoresNeedingSync возвращает идентификаторы магазинов, которым пора
// синхронизироваться
func (s *Service) StoresNeedingSync(ctx context.Context) ([]int64, error) {
	configs, err := s.configs.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enabled configurations: %w", err)
	}

	now := time.Now()
	var storeIDs []int64
	for i := range configs {
		if configNeedsSync(&configs[i], now) {
			storeIDs = append(storeIDs, configs[i].StoreID)
		}
	}

	return storeIDs, nil
}

// StoreStatistics возвращает статистику магазина
func (s *Service) StoreStatistics(ctx context.Context, storeID int64) (*StoreStatistics, error) {
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	stats := &StoreStatistics{
		StoreID:   storeID,
		StoreName: st.Name,
	}

	cfg, err := s.configs.GetByStore(ctx, storeID)
	if err != nil && !errors.Is(err, syncconfig.ErrConfigNotFound) {
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	if cfg != nil {
		stats.IsOnline = configOnline(cfg, time.Now())
		stats.LastSuccessfulSync = cfg.LastSuccessfulSync
	}

	byStatus, err := s.batches.CountByStatus(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("count batches: %w", err)
	}
	stats.BatchesByStatus = byStatus
	for _, n := range byStatus {
		stats.TotalBatches += n
	}
	stats.SuccessRate = successRate(byStatus[batch.StatusCompleted], stats.TotalBatches)

	stats.TotalRecordsSynced, err = s.batches.SumSuccessRecords(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("sum synced records: %w", err)
	}

	stats.AvgDurationMs, err = s.logs.AvgDurationMs(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("average log duration: %w", err)
	}

	stats.UnresolvedConflicts, err = s.conflicts.CountUnresolvedByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("count unresolved conflicts: %w", err)
	}

	return stats, nil
}

// ChainStatistics возвращает статистику сети с разбивкой по магазинам
func (s *Service) ChainStatistics(ctx context.Context) (*ChainStatistics, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	chain := &ChainStatistics{
		TotalStores: len(stores),
		Stores:      make([]StoreStatistics, 0, len(stores)),
	}

	completed := 0
	for _, st := range stores {
		stats, err := s.StoreStatistics(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("store %d statistics: %w", st.ID, err)
		}

		chain.TotalBatches += stats.TotalBatches
		chain.TotalRecordsSynced += stats.TotalRecordsSynced
		chain.UnresolvedConflicts += stats.UnresolvedConflicts
		completed += stats.BatchesByStatus[batch.StatusCompleted]
		chain.Stores = append(chain.Stores, *stats)
	}

	chain.SuccessRate = successRate(completed, chain.TotalBatches)

	return chain, nil
}

// ChainDashboard возвращает сводку для панели мониторинга
func (s *Service) ChainDashboard(ctx context.Context) (*ChainDashboard, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	now := time.Now()
	dash := &ChainDashboard{
		TotalStores: len(stores),
		GeneratedAt: now,
	}

	for _, st := range stores {
		cfg, err := s.configs.GetByStore(ctx, st.ID)
		if err != nil {
			if errors.Is(err, syncconfig.ErrConfigNotFound) {
				// Ненастроенный магазин учитывается как offline
				dash.OfflineStores++
				continue
			}
			return nil, fmt.Errorf("store %d configuration: %w", st.ID, err)
		}

		if configOnline(cfg, now) {
			dash.OnlineStores++
		} else {
			dash.OfflineStores++
		}
		if configNeedsSync(cfg, now) {
			dash.StoresNeedingSync++
		}

		byStatus, err := s.batches.CountByStatus(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("store %d batches: %w", st.ID, err)
		}
		for _, n := range byStatus {
			dash.TotalBatches += n
		}

		unresolved, err := s.conflicts.CountUnresolvedByStore(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("store %d conflicts: %w", st.ID, err)
		}
		dash.UnresolvedConflicts += unresolved
	}

	return dash, nil
}

// configOnline проверяет окно свежести; без единой успешной синхронизации
// магазин считается offline
func configOnline(cfg *syncconfig.SyncConfiguration, now time.Time) bool {
	if cfg.LastSuccessfulSync == nil {
		return false
	}
	return now.Sub(*cfg.LastSuccessfulSync) <= OnlineWindow
}

// configNeedsSync: синхронизация включена и либо не выполнялась ни разу,
// либо интервал с последней успешной истек. Свойство монотонно по времени:
// став истинным, остается истинным до следующей успешной синхронизации.
func configNeedsSync(cfg *syncconfig.SyncConfiguration, now time.Time) bool {
	if !cfg.IsEnabled {
		return false
	}
	if cfg.LastSuccessfulSync == nil {
		return true
	}
	interval := time.Duration(cfg.SyncIntervalSeconds) * time.Second
	return now.Sub(*cfg.LastSuccessfulSync) >= interval
}

// successRate — доля завершенных пакетов в процентах; 0 при отсутствии пакетов
func successRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}
