package logs

import (
	"time"

	"storesync/internal/domain/synclog"
)

// Request/Response структуры для QueryLogs
type queryLogsInput struct {
	StoreID   int64  `query:"store_id" required:"false"`
	IsSuccess *bool  `query:"is_success" required:"false"`
	From      string `query:"from" required:"false" format:"date-time"`
	To        string `query:"to" required:"false" format:"date-time"`
}

type queryLogsOutput struct {
	Body LogsResponse
}

type LogsResponse struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Data   []synclog.SyncLog `json:"data,omitempty"`
}

// Request/Response для ErrorLogs
type errorLogsInput struct {
	StoreID int64 `path:"storeID"`
}

type errorLogsOutput struct {
	Body LogsResponse
}

// Request/Response для CleanupLogs
type cleanupLogsInput struct {
	Body CleanupLogsRequest
}

type cleanupLogsOutput struct {
	Body CleanupLogsResponse
}

type CleanupLogsRequest struct {
	RetentionDays int `json:"retention_days" minimum:"1" default:"30"`
}

type CleanupLogsResponse struct {
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Deactivated int64  `json:"deactivated"`
}

// filterFromInput преобразует параметры запроса в фильтр журнала
func filterFromInput(input *queryLogsInput) (synclog.Filter, error) {
	var f synclog.Filter

	if input.StoreID > 0 {
		storeID := input.StoreID
		f.StoreID = &storeID
	}
	f.IsSuccess = input.IsSuccess

	if input.From != "" {
		from, err := time.Parse(time.RFC3339, input.From)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if input.To != "" {
		to, err := time.Parse(time.RFC3339, input.To)
		if err != nil {
			return f, err
		}
		f.To = &to
	}

	return f, nil
}
