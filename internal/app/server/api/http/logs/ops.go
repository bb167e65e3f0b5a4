package logs

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) queryLogsOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-query",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs",
		Summary:     "Получить журнал операций",
		Description: "Возвращает записи журнала синхронизации по фильтру",
		Tags:        []string{"logs"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) errorLogsOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-errors",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/errors/{storeID}",
		Summary:     "Получить журнал ошибок магазина",
		Description: "Возвращает записи о неуспешных операциях для магазина",
		Tags:        []string{"logs"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) cleanupLogsOp() huma.Operation {
	return huma.Operation{
		OperationID: "logs-cleanup",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/cleanup",
		Summary:     "Очистить устаревшие записи журнала",
		Description: "Помечает записи журнала старше окна хранения неактивными",
		Tags:        []string{"logs"},
		Middlewares: h.middleware,
	}
}
