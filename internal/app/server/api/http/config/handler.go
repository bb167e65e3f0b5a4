package config

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"storesync/internal/domain/syncconfig"
)

type Handler struct {
	service    syncconfig.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service syncconfig.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createConfigOp(), h.createConfig)
	huma.Register(api, h.getConfigOp(), h.getConfig)
	huma.Register(api, h.setEnabledOp(), h.setEnabled)
	huma.Register(api, h.addRuleOp(), h.addRule)
	huma.Register(api, h.setRuleEnabledOp(), h.setRuleEnabled)
	huma.Register(api, h.listRulesOp(), h.listRules)
}

func (h *Handler) createConfig(ctx context.Context, input *createConfigInput) (*createConfigOutput, error) {
	cfg, err := h.service.CreateConfiguration(ctx, syncconfig.CreateParams{
		StoreID:             input.Body.StoreID,
		SyncIntervalSeconds: input.Body.SyncIntervalSeconds,
		MaxBatchSize:        input.Body.MaxBatchSize,
		IsEnabled:           input.Body.IsEnabled,
	})
	if err != nil {
		return &createConfigOutput{
			Body: ConfigResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &createConfigOutput{
		Body: ConfigResponse{
			Status: "Ok",
			Data:   cfg,
		},
	}, nil
}

func (h *Handler) getConfig(ctx context.Context, input *getConfigInput) (*getConfigOutput, error) {
	cfg, err := h.service.GetConfiguration(ctx, input.StoreID)
	if err != nil {
		return &getConfigOutput{
			Body: ConfigResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &getConfigOutput{
		Body: ConfigResponse{
			Status: "Ok",
			Data:   cfg,
		},
	}, nil
}

func (h *Handler) setEnabled(ctx context.Context, input *setEnabledInput) (*setEnabledOutput, error) {
	if err := h.service.SetEnabled(ctx, input.StoreID, input.Body.Enabled); err != nil {
		return &setEnabledOutput{
			Body: SetEnabledResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &setEnabledOutput{
		Body: SetEnabledResponse{
			Status:  "Ok",
			Message: "configuration updated",
		},
	}, nil
}

func (h *Handler) addRule(ctx context.Context, input *addRuleInput) (*addRuleOutput, error) {
	rule, err := h.service.AddEntityRule(ctx, syncconfig.AddRuleParams{
		ConfigID:       input.ConfigID,
		EntityType:     syncconfig.EntityType(input.Body.EntityType),
		Direction:      syncconfig.Direction(input.Body.Direction),
		ConflictPolicy: syncconfig.ConflictPolicy(input.Body.ConflictPolicy),
		Priority:       input.Body.Priority,
	})
	if err != nil {
		return &addRuleOutput{
			Body: RuleResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &addRuleOutput{
		Body: RuleResponse{
			Status: "Ok",
			Data:   rule,
		},
	}, nil
}

func (h *Handler) setRuleEnabled(ctx context.Context, input *setRuleEnabledInput) (*setRuleEnabledOutput, error) {
	if err := h.service.SetRuleEnabled(ctx, input.RuleID, input.Body.Enabled); err != nil {
		return &setRuleEnabledOutput{
			Body: SetEnabledResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &setRuleEnabledOutput{
		Body: SetEnabledResponse{
			Status:  "Ok",
			Message: "rule updated",
		},
	}, nil
}

func (h *Handler) listRules(ctx context.Context, input *listRulesInput) (*listRulesOutput, error) {
	rules, err := h.service.ListEntityRules(ctx, input.ConfigID)
	if err != nil {
		return &listRulesOutput{
			Body: ListRulesResponse{
				Status: "Error",
				Error:  err.Error(),
			},
		}, nil
	}

	return &listRulesOutput{
		Body: ListRulesResponse{
			Status: "Ok",
			Data:   rules,
		},
	}, nil
}
