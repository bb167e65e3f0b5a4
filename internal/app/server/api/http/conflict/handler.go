package conflict

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/conflict"
)

type Handler struct {
	service    conflict.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service conflict.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listUnresolvedOp(), h.listUnresolved)
	huma.Register(api, h.listByBatchOp(), h.listByBatch)
	huma.Register(api, h.getConflictOp(), h.getConflict)
	huma.Register(api, h.resolveConflictOp(), h.resolveConflict)
	huma.Register(api, h.bulkResolveOp(), h.bulkResolve)
}

func (h *Handler) getConflict(ctx context.Context, input *getConflictInput) (*getConflictOutput, error) {
	c, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return &getConflictOutput{
			Body: ConflictResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &getConflictOutput{
		Body: ConflictResponse{
			Status: "Ok",
			Data:   c,
		},
	}, nil
}

func (h *Handler) listUnresolved(ctx context.Context, _ *listUnresolvedInput) (*listUnresolvedOutput, error) {
	conflicts, err := h.service.Unresolved(ctx)
	if err != nil {
		return &listUnresolvedOutput{
			Body: ListConflictsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &listUnresolvedOutput{
		Body: ListConflictsResponse{
			Status: "Ok",
			Data:   conflicts,
		},
	}, nil
}

func (h *Handler) listByBatch(ctx context.Context, input *listByBatchInput) (*listByBatchOutput, error) {
	conflicts, err := h.service.UnresolvedForBatch(ctx, input.BatchID)
	if err != nil {
		return &listByBatchOutput{
			Body: ListConflictsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &listByBatchOutput{
		Body: ListConflictsResponse{
			Status: "Ok",
			Data:   conflicts,
		},
	}, nil
}

func (h *Handler) resolveConflict(ctx context.Context, input *resolveConflictInput) (*resolveConflictOutput, error) {
	err := h.service.Resolve(ctx, input.ID,
		conflict.Winner(input.Body.Winner), input.Body.Notes, input.Body.ResolvedBy)
	if err != nil {
		return &resolveConflictOutput{
			Body: ResolveResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &resolveConflictOutput{
		Body: ResolveResponse{
			Status:  "Ok",
			Message: "conflict resolved",
		},
	}, nil
}

func (h *Handler) bulkResolve(ctx context.Context, input *bulkResolveInput) (*bulkResolveOutput, error) {
	resolved, err := h.service.BulkResolve(ctx, input.Body.IDs,
		conflict.Winner(input.Body.Winner), input.Body.Notes, input.Body.ResolvedBy)
	if err != nil {
		return &bulkResolveOutput{
			Body: BulkResolveResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &bulkResolveOutput{
		Body: BulkResolveResponse{
			Status:   "Ok",
			Resolved: resolved,
		},
	}, nil
}
