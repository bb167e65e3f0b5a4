package sync

import (
	"storesync/internal/domain/batch"
)

// Request/Response структуры для RunSync
type runSyncInput struct {
	Body RunSyncRequest
}

type runSyncOutput struct {
	Body RunSyncResponse
}

type RunSyncRequest struct {
	StoreID    int64  `json:"store_id" minimum:"1"`
	EntityType string `json:"entity_type" enum:"product,order,inventory,customer,price"`
	Force      bool   `json:"force,omitempty" doc:"Запуск несмотря на выключенную синхронизацию"`
}

type RunSyncResponse struct {
	Status string             `json:"status"`
	Error  string             `json:"error,omitempty"`
	Data   []*batch.SyncBatch `json:"data,omitempty"`
}

// Request/Response для StartUpload и StartDownload
type startDirectionInput struct {
	Body RunSyncRequest
}

type startDirectionOutput struct {
	Body BatchResponse
}

type BatchResponse struct {
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
	Data   *batch.SyncBatch `json:"data,omitempty"`
}

// Request/Response для GetBatch
type getBatchInput struct {
	ID int64 `path:"id"`
}

type getBatchOutput struct {
	Body BatchResponse
}

// Request/Response для ListRecords
type listRecordsInput struct {
	ID int64 `path:"id"`
}

type listRecordsOutput struct {
	Body ListRecordsResponse
}

type ListRecordsResponse struct {
	Status string             `json:"status"`
	Error  string             `json:"error,omitempty"`
	Data   []batch.SyncRecord `json:"data,omitempty"`
}

// Request/Response для CancelBatch
type cancelBatchInput struct {
	ID int64 `path:"id"`
}

type cancelBatchOutput struct {
	Body CancelBatchResponse
}

type CancelBatchResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Cancelled bool   `json:"cancelled"`
}

// Request/Response для CleanupOldBatches
type cleanupInput struct {
	Body CleanupRequest
}

type cleanupOutput struct {
	Body CleanupResponse
}

type CleanupRequest struct {
	RetentionDays int `json:"retention_days" minimum:"1" default:"30"`
}

type CleanupResponse struct {
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Deactivated int64  `json:"deactivated"`
}
