package dashboard

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) storeStatusOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-store-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/stores/{storeID}/status",
		Summary:     "Получить состояние магазина",
		Description: "Возвращает флаги online и необходимости синхронизации",
		Tags:        []string{"dashboard"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) needingSyncOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-needing-sync",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/needing-sync",
		Summary:     "Получить магазины, которым пора синхронизироваться",
		Description: "Возвращает идентификаторы магазинов с истекшим интервалом синхронизации",
		Tags:        []string{"dashboard"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) storeStatsOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-store-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/stores/{storeID}/statistics",
		Summary:     "Получить статистику магазина",
		Description: "Возвращает агрегированную статистику синхронизации магазина",
		Tags:        []string{"dashboard"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) chainStatsOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-chain-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard/statistics",
		Summary:     "Получить статистику сети",
		Description: "Возвращает статистику всей сети с разбивкой по магазинам",
		Tags:        []string{"dashboard"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) chainDashboardOp() huma.Operation {
	return huma.Operation{
		OperationID: "dashboard-chain",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Получить сводку панели мониторинга",
		Description: "Возвращает сводку по сети: online, offline и требующие синхронизации магазины",
		Tags:        []string{"dashboard"},
		Middlewares: h.middleware,
	}
}
