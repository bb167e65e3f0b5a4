package config

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createConfigOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/configs",
		Summary:     "Создать конфигурацию синхронизации",
		Description: "Создает конфигурацию синхронизации для магазина; повторное создание отклоняется",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getConfigOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/configs/{storeID}",
		Summary:     "Получить конфигурацию магазина",
		Description: "Возвращает конфигурацию синхронизации по идентификатору магазина",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setEnabledOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-set-enabled",
		Method:      http.MethodPost,
		Path:        "/api/v1/configs/{storeID}/enabled",
		Summary:     "Включить или выключить синхронизацию магазина",
		Description: "Переключает флаг is_enabled конфигурации магазина",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) addRuleOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-add-rule",
		Method:      http.MethodPost,
		Path:        "/api/v1/configs/{configID}/rules",
		Summary:     "Добавить правило для типа сущности",
		Description: "Добавляет правило синхронизации; второе включенное правило для той же пары отклоняется",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setRuleEnabledOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-set-rule-enabled",
		Method:      http.MethodPost,
		Path:        "/api/v1/configs/rules/{ruleID}/enabled",
		Summary:     "Включить или выключить правило синхронизации",
		Description: "Переключает флаг is_enabled правила для типа сущности",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listRulesOp() huma.Operation {
	return huma.Operation{
		OperationID: "config-list-rules",
		Method:      http.MethodGet,
		Path:        "/api/v1/configs/{configID}/rules",
		Summary:     "Получить правила конфигурации",
		Description: "Возвращает правила синхронизации в порядке приоритета",
		Tags:        []string{"config"},
		Middlewares: h.middleware,
	}
}
