//синхронизация данных между центральным офисом и магазинами сети;
//конфигурации и правила синхронизации по типам сущностей;
//пакеты синхронизации с журналом операций и реестром конфликтов;
//панель мониторинга состояния сети.

//POST /api/v1/configs                      # Создать конфигурацию
//GET  /api/v1/configs/{storeID}            # Получить конфигурацию
//POST /api/v1/sync/run                     # Запустить синхронизацию
//GET  /api/v1/conflicts                    # Неразрешенные конфликты
//GET  /api/v1/logs                         # Журнал операций
//GET  /api/v1/dashboard                    # Сводка по сети

package api

import (
	configAPI "storesync/internal/app/server/api/http/config"
	conflictAPI "storesync/internal/app/server/api/http/conflict"
	dashboardAPI "storesync/internal/app/server/api/http/dashboard"
	healthAPI "storesync/internal/app/server/api/http/health"
	logsAPI "storesync/internal/app/server/api/http/logs"
	"storesync/internal/app/server/api/http/middleware"
	"storesync/internal/app/server/api/http/middleware/logger"
	syncAPI "storesync/internal/app/server/api/http/sync"
	"storesync/internal/domain/batch"
	"storesync/internal/domain/conflict"
	"storesync/internal/domain/status"
	"storesync/internal/domain/syncconfig"
	"storesync/internal/domain/synclog"
	"storesync/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health    *healthAPI.Handler
	Config    *configAPI.Handler
	Sync      *syncAPI.Handler
	Conflict  *conflictAPI.Handler
	Logs      *logsAPI.Handler
	Dashboard *dashboardAPI.Handler
}

// New создает *chi.Mux со ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, transport batch.Transport, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("StoreSync API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(storage, transport, log)
	h.Health.SetupRoutes(API)
	h.Config.SetupRoutes(API)
	h.Sync.SetupRoutes(API)
	h.Conflict.SetupRoutes(API)
	h.Logs.SetupRoutes(API)
	h.Dashboard.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, transport batch.Transport, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	configRepo := postgres.NewConfigRepository(pool, log)
	batchRepo := postgres.NewBatchRepository(pool, log)
	conflictRepo := postgres.NewConflictRepository(pool, log)
	logRepo := postgres.NewLogRepository(pool, log)
	storeRepo := postgres.NewStoreRepository(pool, log)

	configService := syncconfig.NewService(configRepo, log)
	conflictService := conflict.NewService(conflictRepo, log)
	logService := synclog.NewService(logRepo, log)
	batchService := batch.NewService(batchRepo, configService, conflictService, logService, transport, log)
	statusService := status.NewService(configRepo, batchRepo, logRepo, conflictRepo, storeRepo, log)

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	configHandler := configAPI.NewHandler(configService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(batchService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	conflictHandler := conflictAPI.NewHandler(conflictService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	logsHandler := logsAPI.NewHandler(logService, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	dashboardHandler := dashboardAPI.NewHandler(statusService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:    healthHandler,
		Config:    configHandler,
		Sync:      syncHandler,
		Conflict:  conflictHandler,
		Logs:      logsHandler,
		Dashboard: dashboardHandler,
	}
}
