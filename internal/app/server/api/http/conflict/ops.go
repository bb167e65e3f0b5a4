package conflict

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getConflictOp() huma.Operation {
	return huma.Operation{
		OperationID: "conflict-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/conflicts/{id}",
		Summary:     "Получить конфликт синхронизации",
		Description: "Возвращает конфликт по идентификатору",
		Tags:        []string{"conflict"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listUnresolvedOp() huma.Operation {
	return huma.Operation{
		OperationID: "conflict-list-unresolved",
		Method:      http.MethodGet,
		Path:        "/api/v1/conflicts",
		Summary:     "Получить неразрешенные конфликты",
		Description: "Возвращает все неразрешенные конфликты сети",
		Tags:        []string{"conflict"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listByBatchOp() huma.Operation {
	return huma.Operation{
		OperationID: "conflict-list-by-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/conflicts/batch/{batchID}",
		Summary:     "Получить неразрешенные конфликты пакета",
		Description: "Возвращает неразрешенные конфликты указанного пакета",
		Tags:        []string{"conflict"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) resolveConflictOp() huma.Operation {
	return huma.Operation{
		OperationID: "conflict-resolve",
		Method:      http.MethodPost,
		Path:        "/api/v1/conflicts/{id}/resolve",
		Summary:     "Разрешить конфликт",
		Description: "Разрешает конфликт ровно один раз; повторное разрешение отклоняется",
		Tags:        []string{"conflict"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) bulkResolveOp() huma.Operation {
	return huma.Operation{
		OperationID: "conflict-bulk-resolve",
		Method:      http.MethodPost,
		Path:        "/api/v1/conflicts/bulk-resolve",
		Summary:     "Массово разрешить конфликты",
		Description: "Разрешает неразрешенное подмножество набора; каждый идентификатор независим",
		Tags:        []string{"conflict"},
		Middlewares: h.middleware,
	}
}
