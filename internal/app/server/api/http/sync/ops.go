package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) runSyncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-run",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/run",
		Summary:     "Запустить синхронизацию по правилу",
		Description: "Запускает синхронизацию в направлении правила; двунаправленное правило порождает два пакета",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) startUploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-upload",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/upload",
		Summary:     "Выгрузить изменения магазина в ЦО",
		Description: "Создает и выполняет пакет выгрузки для магазина и типа сущности",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) startDownloadOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-download",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/download",
		Summary:     "Загрузить изменения ЦО в магазин",
		Description: "Создает и выполняет пакет загрузки для магазина и типа сущности",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getBatchOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-get-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/batches/{id}",
		Summary:     "Получить пакет синхронизации",
		Description: "Возвращает пакет по идентификатору",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listRecordsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-list-records",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/batches/{id}/records",
		Summary:     "Получить записи пакета",
		Description: "Возвращает результаты обработки сущностей внутри пакета",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) cancelBatchOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-cancel-batch",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/batches/{id}/cancel",
		Summary:     "Отменить пакет синхронизации",
		Description: "Отменяет ожидающий пакет; выполняемые и завершенные пакеты не отменяются",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) cleanupOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-cleanup",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync/cleanup",
		Summary:     "Очистить устаревшие пакеты",
		Description: "Помечает завершенные и отмененные пакеты старше окна хранения неактивными",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}
