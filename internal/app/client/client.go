package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"storesync/internal/app/client/config"
	"storesync/internal/domain/batch"
	"storesync/internal/domain/conflict"
	"storesync/internal/domain/status"
	"storesync/internal/domain/syncconfig"
	"storesync/internal/domain/synclog"
)

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	cache      *SQLiteCache
}

type ctxKey struct{}

// NewContext кладет приложение в контекст команды
func NewContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext достает приложение из контекста команды
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	cache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		// Без кэша работаем напрямую с сервером
		log.Warn("Не удалось инициализировать локальный кэш", "error", err)
		cache = nil
	}

	return &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		cache:      cache,
	}, nil
}

// Operator возвращает имя оператора для фиксации разрешений конфликтов
func (a *App) Operator() string {
	return a.config.Operator
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.httpClient.HealthCheck(ctx)
}

// RunSync запускает синхронизацию магазина по правилу
func (a *App) RunSync(ctx context.Context, storeID int64, entity string, force bool) ([]*batch.SyncBatch, error) {
	return a.httpClient.RunSync(ctx, storeID, entity, force)
}

// StartDirection запускает синхронизацию в одном направлении (upload или download)
func (a *App) StartDirection(ctx context.Context, direction string, storeID int64, entity string, force bool) (*batch.SyncBatch, error) {
	return a.httpClient.StartDirection(ctx, direction, storeID, entity, force)
}

// GetBatch возвращает пакет синхронизации
func (a *App) GetBatch(ctx context.Context, id int64) (*batch.SyncBatch, error) {
	return a.httpClient.GetBatch(ctx, id)
}

// ListBatchRecords возвращает записи пакета
func (a *App) ListBatchRecords(ctx context.Context, id int64) ([]batch.SyncRecord, error) {
	return a.httpClient.ListBatchRecords(ctx, id)
}

// CancelBatch отменяет ожидающий пакет
func (a *App) CancelBatch(ctx context.Context, id int64) (bool, error) {
	return a.httpClient.CancelBatch(ctx, id)
}

// CleanupBatches помечает старые завершенные пакеты неактивными
func (a *App) CleanupBatches(ctx context.Context, retentionDays int) (int64, error) {
	return a.httpClient.CleanupBatches(ctx, retentionDays)
}

// CreateConfig создает конфигурацию синхронизации магазина
func (a *App) CreateConfig(ctx context.Context, params syncconfig.CreateParams) (*syncconfig.SyncConfiguration, error) {
	return a.httpClient.CreateConfig(ctx, params)
}

// GetConfig возвращает конфигурацию магазина
func (a *App) GetConfig(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error) {
	return a.httpClient.GetConfig(ctx, storeID)
}

// SetEnabled включает или выключает синхронизацию магазина
func (a *App) SetEnabled(ctx context.Context, storeID int64, enabled bool) error {
	return a.httpClient.SetEnabled(ctx, storeID, enabled)
}

// AddRule добавляет правило синхронизации
func (a *App) AddRule(ctx context.Context, configID int64, entity, direction, policy string, priority int) (*syncconfig.SyncEntityRule, error) {
	return a.httpClient.AddRule(ctx, configID, entity, direction, policy, priority)
}

// ListRules возвращает правила конфигурации
func (a *App) ListRules(ctx context.Context, configID int64) ([]syncconfig.SyncEntityRule, error) {
	return a.httpClient.ListRules(ctx, configID)
}

// SetRuleEnabled включает или выключает правило синхронизации
func (a *App) SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error {
	return a.httpClient.SetRuleEnabled(ctx, ruleID, enabled)
}

// ListConflicts возвращает неразрешенные конфликты
func (a *App) ListConflicts(ctx context.Context) ([]conflict.SyncConflict, error) {
	return a.httpClient.ListConflicts(ctx)
}

// ResolveConflict разрешает конфликт
func (a *App) ResolveConflict(ctx context.Context, id int64, winner, notes string) error {
	return a.httpClient.ResolveConflict(ctx, id, winner, notes, a.Operator())
}

// BulkResolveConflicts массово разрешает конфликты
func (a *App) BulkResolveConflicts(ctx context.Context, ids []int64, winner, notes string) (int, error) {
	return a.httpClient.BulkResolveConflicts(ctx, ids, winner, notes, a.Operator())
}

// QueryLogs возвращает журнал операций магазина
func (a *App) QueryLogs(ctx context.Context, storeID int64, onlyErrors bool) ([]synclog.SyncLog, error) {
	return a.httpClient.QueryLogs(ctx, storeID, onlyErrors)
}

// ChainDashboard возвращает сводку панели мониторинга. При успехе
// сводка сохраняется в локальный кэш.
func (a *App) ChainDashboard(ctx context.Context) (*status.ChainDashboard, error) {
	dash, err := a.httpClient.GetChainDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if cerr := a.cache.SaveDashboard(dash); cerr != nil {
			a.log.Warn("Не удалось сохранить сводку в кэш", "error", cerr)
		}
	}

	return dash, nil
}

// CachedDashboard возвращает последнюю сохраненную сводку
func (a *App) CachedDashboard() (*status.ChainDashboard, time.Time, error) {
	if a.cache == nil {
		return nil, time.Time{}, fmt.Errorf("локальный кэш недоступен")
	}
	return a.cache.LoadDashboard()
}

// ChainStatistics возвращает статистику сети с кэшированием
func (a *App) ChainStatistics(ctx context.Context) (*status.ChainStatistics, error) {
	stats, err := a.httpClient.GetChainStatistics(ctx)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if cerr := a.cache.SaveChainStatistics(stats); cerr != nil {
			a.log.Warn("Не удалось сохранить статистику в кэш", "error", cerr)
		}
	}

	return stats, nil
}

// StoreStatistics возвращает статистику магазина
func (a *App) StoreStatistics(ctx context.Context, storeID int64) (*status.StoreStatistics, error) {
	return a.httpClient.GetStoreStatistics(ctx, storeID)
}

// StoresNeedingSync возвращает магазины, которым пора синхронизироваться
func (a *App) StoresNeedingSync(ctx context.Context) ([]int64, error) {
	return a.httpClient.GetStoresNeedingSync(ctx)
}

// Shutdown освобождает ресурсы приложения
func (a *App) Shutdown() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("Ошибка закрытия кэша", "error", err)
		}
	}
}
