package dashboard

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/status"
)

type Handler struct {
	service    status.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service status.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.storeStatusOp(), h.storeStatus)
	huma.Register(api, h.needingSyncOp(), h.needingSync)
	huma.Register(api, h.storeStatsOp(), h.storeStats)
	huma.Register(api, h.chainStatsOp(), h.chainStats)
	huma.Register(api, h.chainDashboardOp(), h.chainDashboard)
}

func (h *Handler) storeStatus(ctx context.Context, input *storeStatusInput) (*storeStatusOutput, error) {
	online, err := h.service.IsOnline(ctx, input.StoreID)
	if err != nil {
		return &storeStatusOutput{
			Body: StoreStatusResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	needsSync, err := h.service.NeedsSync(ctx, input.StoreID)
	if err != nil {
		return &storeStatusOutput{
			Body: StoreStatusResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &storeStatusOutput{
		Body: StoreStatusResponse{
			Status: "Ok",
			Data: &StoreStatusInfo{
				StoreID:   input.StoreID,
				IsOnline:  online,
				NeedsSync: needsSync,
			},
		},
	}, nil
}

func (h *Handler) needingSync(ctx context.Context, _ *needingSyncInput) (*needingSyncOutput, error) {
	storeIDs, err := h.service.StoresNeedingSync(ctx)
	if err != nil {
		return &needingSyncOutput{
			Body: NeedingSyncResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &needingSyncOutput{
		Body: NeedingSyncResponse{
			Status: "Ok",
			Data:   storeIDs,
		},
	}, nil
}

func (h *Handler) storeStats(ctx context.Context, input *storeStatsInput) (*storeStatsOutput, error) {
	stats, err := h.service.StoreStatistics(ctx, input.StoreID)
	if err != nil {
		return &storeStatsOutput{
			Body: StoreStatsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &storeStatsOutput{
		Body: StoreStatsResponse{
			Status: "Ok",
			Data:   stats,
		},
	}, nil
}

func (h *Handler) chainStats(ctx context.Context, _ *chainStatsInput) (*chainStatsOutput, error) {
	stats, err := h.service.ChainStatistics(ctx)
	if err != nil {
		return &chainStatsOutput{
			Body: ChainStatsResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &chainStatsOutput{
		Body: ChainStatsResponse{
			Status: "Ok",
			Data:   stats,
		},
	}, nil
}

func (h *Handler) chainDashboard(ctx context.Context, _ *chainDashboardInput) (*chainDashboardOutput, error) {
	dash, err := h.service.ChainDashboard(ctx)
	if err != nil {
		return &chainDashboardOutput{
			Body: ChainDashboardResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &chainDashboardOutput{
		Body: ChainDashboardResponse{
			Status: "Ok",
			Data:   dash,
		},
	}, nil
}
