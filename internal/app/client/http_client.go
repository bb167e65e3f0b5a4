package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"storesync/internal/app/client/config"
	"storesync/internal/domain/batch"
	"storesync/internal/domain/conflict"
	"storesync/internal/domain/status"
	"storesync/internal/domain/syncconfig"
	"storesync/internal/domain/synclog"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "StoreSync-Client/1.0",
	}, nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	return nil
}

// RunSync запускает синхронизацию магазина по правилу
func (h *httpClient) RunSync(ctx context.Context, storeID int64, entity string, force bool) ([]*batch.SyncBatch, error) {
	req := struct {
		StoreID    int64  `json:"store_id"`
		EntityType string `json:"entity_type"`
		Force      bool   `json:"force,omitempty"`
	}{StoreID: storeID, EntityType: entity, Force: force}

	resp, err := h.doRequest(ctx, "POST", "/api/v1/sync/run", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string             `json:"status"`
		Error  string             `json:"error,omitempty"`
		Data   []*batch.SyncBatch `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// StartDirection запускает синхронизацию в одном направлении
func (h *httpClient) StartDirection(ctx context.Context, direction string, storeID int64, entity string, force bool) (*batch.SyncBatch, error) {
	req := struct {
		StoreID    int64  `json:"store_id"`
		EntityType string `json:"entity_type"`
		Force      bool   `json:"force,omitempty"`
	}{StoreID: storeID, EntityType: entity, Force: force}

	resp, err := h.doRequest(ctx, "POST", "/api/v1/sync/"+direction, req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string           `json:"status"`
		Error  string           `json:"error,omitempty"`
		Data   *batch.SyncBatch `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetBatch возвращает пакет по идентификатору
func (h *httpClient) GetBatch(ctx context.Context, id int64) (*batch.SyncBatch, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sync/batches/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string           `json:"status"`
		Error  string           `json:"error,omitempty"`
		Data   *batch.SyncBatch `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// ListBatchRecords возвращает записи пакета
func (h *httpClient) ListBatchRecords(ctx context.Context, id int64) ([]batch.SyncRecord, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sync/batches/%d/records", id), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string             `json:"status"`
		Error  string             `json:"error,omitempty"`
		Data   []batch.SyncRecord `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// CancelBatch отменяет ожидающий пакет
func (h *httpClient) CancelBatch(ctx context.Context, id int64) (bool, error) {
	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/sync/batches/%d/cancel", id), nil)
	if err != nil {
		return false, err
	}

	var result struct {
		Status    string `json:"status"`
		Error     string `json:"error,omitempty"`
		Cancelled bool   `json:"cancelled"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return false, err
	}
	if result.Status == "Error" {
		return false, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Cancelled, nil
}

// CleanupBatches помечает старые завершенные пакеты неактивными
func (h *httpClient) CleanupBatches(ctx context.Context, retentionDays int) (int64, error) {
	body := map[string]int{"retention_days": retentionDays}

	resp, err := h.doRequest(ctx, "POST", "/api/v1/sync/cleanup", body)
	if err != nil {
		return 0, err
	}

	var result struct {
		Status      string `json:"status"`
		Error       string `json:"error,omitempty"`
		Deactivated int64  `json:"deactivated"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return 0, err
	}
	if result.Status == "Error" {
		return 0, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Deactivated, nil
}

// CreateConfig создает конфигурацию синхронизации магазина
func (h *httpClient) CreateConfig(ctx context.Context, params syncconfig.CreateParams) (*syncconfig.SyncConfiguration, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/v1/configs", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                        `json:"status"`
		Error  string                        `json:"error,omitempty"`
		Data   *syncconfig.SyncConfiguration `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetConfig возвращает конфигурацию магазина
func (h *httpClient) GetConfig(ctx context.Context, storeID int64) (*syncconfig.SyncConfiguration, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/configs/%d", storeID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                        `json:"status"`
		Error  string                        `json:"error,omitempty"`
		Data   *syncconfig.SyncConfiguration `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// SetEnabled включает или выключает синхронизацию магазина
func (h *httpClient) SetEnabled(ctx context.Context, storeID int64, enabled bool) error {
	req := struct {
		Enabled bool `json:"enabled"`
	}{Enabled: enabled}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/configs/%d/enabled", storeID), req)
	if err != nil {
		return err
	}

	var result struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return err
	}
	if result.Status == "Error" {
		return fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return nil
}

// AddRule добавляет правило синхронизации для типа сущности
func (h *httpClient) AddRule(ctx context.Context, configID int64, entity, direction, policy string, priority int) (*syncconfig.SyncEntityRule, error) {
	req := struct {
		EntityType     string `json:"entity_type"`
		Direction      string `json:"direction"`
		ConflictPolicy string `json:"conflict_policy"`
		Priority       int    `json:"priority"`
	}{EntityType: entity, Direction: direction, ConflictPolicy: policy, Priority: priority}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/configs/%d/rules", configID), req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                     `json:"status"`
		Error  string                     `json:"error,omitempty"`
		Data   *syncconfig.SyncEntityRule `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// SetRuleEnabled включает или выключает правило синхронизации
func (h *httpClient) SetRuleEnabled(ctx context.Context, ruleID int64, enabled bool) error {
	req := struct {
		Enabled bool `json:"enabled"`
	}{Enabled: enabled}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/configs/rules/%d/enabled", ruleID), req)
	if err != nil {
		return err
	}

	var result struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return err
	}
	if result.Status == "Error" {
		return fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return nil
}

// ListRules возвращает правила конфигурации
func (h *httpClient) ListRules(ctx context.Context, configID int64) ([]syncconfig.SyncEntityRule, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/configs/%d/rules", configID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                      `json:"status"`
		Error  string                      `json:"error,omitempty"`
		Data   []syncconfig.SyncEntityRule `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// ListConflicts возвращает неразрешенные конфликты
func (h *httpClient) ListConflicts(ctx context.Context) ([]conflict.SyncConflict, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/conflicts", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                  `json:"status"`
		Error  string                  `json:"error,omitempty"`
		Data   []conflict.SyncConflict `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// ResolveConflict разрешает конфликт на сервере
func (h *httpClient) ResolveConflict(ctx context.Context, id int64, winner, notes, resolvedBy string) error {
	req := struct {
		Winner     string `json:"winner"`
		Notes      string `json:"notes,omitempty"`
		ResolvedBy string `json:"resolved_by"`
	}{Winner: winner, Notes: notes, ResolvedBy: resolvedBy}

	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/conflicts/%d/resolve", id), req)
	if err != nil {
		return err
	}

	var result struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return err
	}
	if result.Status == "Error" {
		return fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return nil
}

// BulkResolveConflicts массово разрешает конфликты
func (h *httpClient) BulkResolveConflicts(ctx context.Context, ids []int64, winner, notes, resolvedBy string) (int, error) {
	req := struct {
		IDs        []int64 `json:"ids"`
		Winner     string  `json:"winner"`
		Notes      string  `json:"notes,omitempty"`
		ResolvedBy string  `json:"resolved_by"`
	}{IDs: ids, Winner: winner, Notes: notes, ResolvedBy: resolvedBy}

	resp, err := h.doRequest(ctx, "POST", "/api/v1/conflicts/bulk-resolve", req)
	if err != nil {
		return 0, err
	}

	var result struct {
		Status   string `json:"status"`
		Error    string `json:"error,omitempty"`
		Resolved int    `json:"resolved"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return 0, err
	}
	if result.Status == "Error" {
		return 0, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Resolved, nil
}

// QueryLogs возвращает журнал операций магазина
func (h *httpClient) QueryLogs(ctx context.Context, storeID int64, onlyErrors bool) ([]synclog.SyncLog, error) {
	path := fmt.Sprintf("/api/v1/logs?store_id=%d", storeID)
	if onlyErrors {
		path = fmt.Sprintf("/api/v1/logs/errors/%d", storeID)
	}

	resp, err := h.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string            `json:"status"`
		Error  string            `json:"error,omitempty"`
		Data   []synclog.SyncLog `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetChainDashboard возвращает сводку панели мониторинга
func (h *httpClient) GetChainDashboard(ctx context.Context) (*status.ChainDashboard, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/dashboard", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                 `json:"status"`
		Error  string                 `json:"error,omitempty"`
		Data   *status.ChainDashboard `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetChainStatistics возвращает статистику сети
func (h *httpClient) GetChainStatistics(ctx context.Context) (*status.ChainStatistics, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/dashboard/statistics", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                  `json:"status"`
		Error  string                  `json:"error,omitempty"`
		Data   *status.ChainStatistics `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetStoreStatistics возвращает статистику магазина
func (h *httpClient) GetStoreStatistics(ctx context.Context, storeID int64) (*status.StoreStatistics, error) {
	resp, err := h.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/dashboard/stores/%d/statistics", storeID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string                  `json:"status"`
		Error  string                  `json:"error,omitempty"`
		Data   *status.StoreStatistics `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

// GetStoresNeedingSync возвращает магазины, которым пора синхронизироваться
func (h *httpClient) GetStoresNeedingSync(ctx context.Context) ([]int64, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/dashboard/needing-sync", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status string  `json:"status"`
		Error  string  `json:"error,omitempty"`
		Data   []int64 `json:"data,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}
	if result.Status == "Error" {
		return nil, fmt.Errorf("ошибка сервера: %s", result.Error)
	}

	return result.Data, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("ошибка сервера: %s", errResp.Error)
		}
		return fmt.Errorf("ошибка сервера: статус %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}
