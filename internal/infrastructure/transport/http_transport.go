package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"storesync/internal/domain/batch"
	"storesync/internal/domain/syncconfig"
)

// HTTPTransport перемещает записи через HTTP шлюз магазина
type HTTPTransport struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPTransport(baseURL string, log *slog.Logger) *HTTPTransport {
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

	return &HTTPTransport{
		client:    client,
		log:       log.With("component", "transport"),
		baseURL:   baseURL,
		userAgent: "StoreSync-HQ/1.0",
	}
}

type moveRequest struct {
	StoreID    int64     `json:"store_id"`
	EntityType string    `json:"entity_type"`
	Since      time.Time `json:"since"`
	Limit      int       `json:"limit"`
}

type moveResponse struct {
	Status  string               `json:"status"`
	Error   string               `json:"error,omitempty"`
	Records []batch.RecordResult `json:"records,omitempty"`
}

// UploadRecords запрашивает у шлюза выгрузку записей магазина в ЦО
func (t *HTTPTransport) UploadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]batch.RecordResult, error) {
	return t.moveRecords(ctx, "/api/v1/transfer/upload", storeID, entity, since, limit)
}

// DownloadRecords запрашивает у шлюза загрузку записей ЦО в магазин
func (t *HTTPTransport) DownloadRecords(ctx context.Context, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]batch.RecordResult, error) {
	return t.moveRecords(ctx, "/api/v1/transfer/download", storeID, entity, since, limit)
}

func (t *HTTPTransport) moveRecords(ctx context.Context, path string, storeID int64, entity syncconfig.EntityType, since time.Time, limit int) ([]batch.RecordResult, error) {
	req := moveRequest{
		StoreID:    storeID,
		EntityType: string(entity),
		Since:      since,
		Limit:      limit,
	}

	resp, err := t.doRequest(ctx, "POST", path, req)
	if err != nil {
		return nil, err
	}

	var moveResp moveResponse
	if err := t.parseResponse(resp, &moveResp); err != nil {
		return nil, err
	}

	if moveResp.Status == "Error" {
		return nil, fmt.Errorf("ошибка шлюза: %s", moveResp.Error)
	}

	// Пустой список означает отсутствие изменений, не сбой
	return moveResp.Records, nil
}

func (t *HTTPTransport) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	t.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (t *HTTPTransport) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	t.log.Debug("Получен ответ",
		"status", resp.StatusCode,
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("ошибка шлюза: %s", errResp.Error)
		}
		return fmt.Errorf("шлюз вернул статус: %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}
