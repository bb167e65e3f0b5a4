package sync

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/batch"
	"storesync/internal/domain/syncconfig"
)

type Handler struct {
	service    batch.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service batch.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.runSyncOp(), h.runSync)
	huma.Register(api, h.startUploadOp(), h.startUpload)
	huma.Register(api, h.startDownloadOp(), h.startDownload)
	huma.Register(api, h.getBatchOp(), h.getBatch)
	huma.Register(api, h.listRecordsOp(), h.listRecords)
	huma.Register(api, h.cancelBatchOp(), h.cancelBatch)
	huma.Register(api, h.cleanupOp(), h.cleanup)
}

func (h *Handler) runSync(ctx context.Context, input *runSyncInput) (*runSyncOutput, error) {
	batches, err := h.service.RunSync(ctx, input.Body.StoreID,
		syncconfig.EntityType(input.Body.EntityType), input.Body.Force)
	if err != nil {
		return &runSyncOutput{
			Body: RunSyncResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &runSyncOutput{
		Body: RunSyncResponse{
			Status: "Ok",
			Data:   batches,
		},
	}, nil
}

func (h *Handler) startUpload(ctx context.Context, input *startDirectionInput) (*startDirectionOutput, error) {
	b, err := h.service.StartUpload(ctx, input.Body.StoreID,
		syncconfig.EntityType(input.Body.EntityType), input.Body.Force)
	if err != nil {
		return &startDirectionOutput{
			Body: BatchResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &startDirectionOutput{
		Body: BatchResponse{
			Status: "Ok",
			Data:   b,
		},
	}, nil
}

func (h *Handler) startDownload(ctx context.Context, input *startDirectionInput) (*startDirectionOutput, error) {
	b, err := h.service.StartDownload(ctx, input.Body.StoreID,
		syncconfig.EntityType(input.Body.EntityType), input.Body.Force)
	if err != nil {
		return &startDirectionOutput{
			Body: BatchResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &startDirectionOutput{
		Body: BatchResponse{
			Status: "Ok",
			Data:   b,
		},
	}, nil
}

func (h *Handler) getBatch(ctx context.Context, input *getBatchInput) (*getBatchOutput, error) {
	b, err := h.service.GetBatch(ctx, input.ID)
	if err != nil {
		return &getBatchOutput{
			Body: BatchResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &getBatchOutput{
		Body: BatchResponse{
			Status: "Ok",
			Data:   b,
		},
	}, nil
}

func (h *Handler) listRecords(ctx context.Context, input *listRecordsInput) (*listRecordsOutput, error) {
	records, err := h.service.ListRecords(ctx, input.ID)
	if err != nil {
		return &listRecordsOutput{
			Body: ListRecordsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &listRecordsOutput{
		Body: ListRecordsResponse{
			Status: "Ok",
			Data:   records,
		},
	}, nil
}

func (h *Handler) cancelBatch(ctx context.Context, input *cancelBatchInput) (*cancelBatchOutput, error) {
	cancelled, err := h.service.CancelBatch(ctx, input.ID)
	if err != nil {
		return &cancelBatchOutput{
			Body: CancelBatchResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &cancelBatchOutput{
		Body: CancelBatchResponse{
			Status:    "Ok",
			Cancelled: cancelled,
		},
	}, nil
}

func (h *Handler) cleanup(ctx context.Context, input *cleanupInput) (*cleanupOutput, error) {
	count, err := h.service.CleanupOldBatches(ctx, input.Body.RetentionDays)
	if err != nil {
		return &cleanupOutput{
			Body: CleanupResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &cleanupOutput{
		Body: CleanupResponse{
			Status:      "Ok",
			Deactivated: count,
		},
	}, nil
}
