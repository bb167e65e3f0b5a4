package dashboard

import (
	"storesync/internal/domain/status"
)

// Request/Response структуры для StoreStatus
type storeStatusInput struct {
	StoreID int64 `path:"storeID"`
}

type storeStatusOutput struct {
	Body StoreStatusResponse
}

type StoreStatusResponse struct {
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
	Data   *StoreStatusInfo `json:"data,omitempty"`
}

type StoreStatusInfo struct {
	StoreID   int64 `json:"store_id"`
	IsOnline  bool  `json:"is_online"`
	NeedsSync bool  `json:"needs_sync"`
}

// Request/Response для StoresNeedingSync
type needingSyncInput struct {
}

type needingSyncOutput struct {
	Body NeedingSyncResponse
}

type NeedingSyncResponse struct {
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
	Data   []int64 `json:"data,omitempty"`
}

// Request/Response для StoreStatistics
type storeStatsInput struct {
	StoreID int64 `path:"storeID"`
}

type storeStatsOutput struct {
	Body StoreStatsResponse
}

type StoreStatsResponse struct {
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Data   *status.StoreStatistics `json:"data,omitempty"`
}

// Request/Response для ChainStatistics
type chainStatsInput struct {
}

type chainStatsOutput struct {
	Body ChainStatsResponse
}

type ChainStatsResponse struct {
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Data   *status.ChainStatistics `json:"data,omitempty"`
}

// Request/Response для ChainDashboard
type chainDashboardInput struct {
}

type chainDashboardOutput struct {
	Body ChainDashboardResponse
}

type ChainDashboardResponse struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error,omitempty"`
	Data   *status.ChainDashboard `json:"data,omitempty"`
}
