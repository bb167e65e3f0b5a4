package logs

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/synclog"
)

type Handler struct {
	service    synclog.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service synclog.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.queryLogsOp(), h.queryLogs)
	huma.Register(api, h.errorLogsOp(), h.errorLogs)
	huma.Register(api, h.cleanupLogsOp(), h.cleanupLogs)
}

func (h *Handler) queryLogs(ctx context.Context, input *queryLogsInput) (*queryLogsOutput, error) {
	filter, err := filterFromInput(input)
	if err != nil {
		return &queryLogsOutput{
			Body: LogsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	entries, err := h.service.Query(ctx, filter)
	if err != nil {
		return &queryLogsOutput{
			Body: LogsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &queryLogsOutput{
		Body: LogsResponse{
			Status: "Ok",
			Data:   entries,
		},
	}, nil
}

func (h *Handler) errorLogs(ctx context.Context, input *errorLogsInput) (*errorLogsOutput, error) {
	entries, err := h.service.ErrorLogs(ctx, input.StoreID)
	if err != nil {
		return &errorLogsOutput{
			Body: LogsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &errorLogsOutput{
		Body: LogsResponse{
			Status: "Ok",
			Data:   entries,
		},
	}, nil
}

func (h *Handler) cleanupLogs(ctx context.Context, input *cleanupLogsInput) (*cleanupLogsOutput, error) {
	count, err := h.service.DeactivateOld(ctx, input.Body.RetentionDays)
	if err != nil {
		return &cleanupLogsOutput{
			Body: CleanupLogsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &cleanupLogsOutput{
		Body: CleanupLogsResponse{
			Status:      "Ok",
			Deactivated: count,
		},
	}, nil
}
