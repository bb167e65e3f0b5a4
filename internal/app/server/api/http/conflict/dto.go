package conflict

import (
	"storesync/internal/domain/conflict"
)

// Request/Response структуры для GetConflict
type getConflictInput struct {
	ID int64 `path:"id"`
}

type getConflictOutput struct {
	Body ConflictResponse
}

type ConflictResponse struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error,omitempty"`
	Data   *conflict.SyncConflict `json:"data,omitempty"`
}

// Request/Response для ListUnresolved
type listUnresolvedInput struct {
}

type listUnresolvedOutput struct {
	Body ListConflictsResponse
}

type ListConflictsResponse struct {
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Data   []conflict.SyncConflict `json:"data,omitempty"`
}

// Request/Response для ListUnresolvedByBatch
type listByBatchInput struct {
	BatchID int64 `path:"batchID"`
}

type listByBatchOutput struct {
	Body ListConflictsResponse
}

// Request/Response для ResolveConflict
type resolveConflictInput struct {
	ID   int64 `path:"id"`
	Body ResolveRequest
}

type resolveConflictOutput struct {
	Body ResolveResponse
}

type ResolveRequest struct {
	Winner     string `json:"winner" enum:"hq,store"`
	Notes      string `json:"notes,omitempty"`
	ResolvedBy string `json:"resolved_by" minLength:"1"`
}

type ResolveResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Request/Response для BulkResolve
type bulkResolveInput struct {
	Body BulkResolveRequest
}

type bulkResolveOutput struct {
	Body BulkResolveResponse
}

type BulkResolveRequest struct {
	IDs        []int64 `json:"ids" minItems:"1"`
	Winner     string  `json:"winner" enum:"hq,store"`
	Notes      string  `json:"notes,omitempty"`
	ResolvedBy string  `json:"resolved_by" minLength:"1"`
}

type BulkResolveResponse struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Resolved int    `json:"resolved"`
}
