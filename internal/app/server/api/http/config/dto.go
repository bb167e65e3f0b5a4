package config

import (
	"storesync/internal/domain/syncconfig"
)

// Request/Response структуры для CreateConfiguration
type createConfigInput struct {
	Body CreateConfigRequest
}

type createConfigOutput struct {
	Body ConfigResponse
}

type CreateConfigRequest struct {
	StoreID             int64 `json:"store_id" minimum:"1"`
	SyncIntervalSeconds int   `json:"sync_interval_seconds" minimum:"1" default:"300"`
	MaxBatchSize        int   `json:"max_batch_size" minimum:"1" maximum:"10000" default:"500"`
	IsEnabled           bool  `json:"is_enabled" default:"true"`
}

type ConfigResponse struct {
	Status string                        `json:"status"`
	Error  string                        `json:"error,omitempty"`
	Data   *syncconfig.SyncConfiguration `json:"data,omitempty"`
}

// Request/Response для GetConfiguration
type getConfigInput struct {
	StoreID int64 `path:"storeID"`
}

type getConfigOutput struct {
	Body ConfigResponse
}

// Request/Response для SetEnabled
type setEnabledInput struct {
	StoreID int64 `path:"storeID"`
	Body    SetEnabledRequest
}

type setEnabledOutput struct {
	Body SetEnabledResponse
}

type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type SetEnabledResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Request/Response для AddRule
type addRuleInput struct {
	ConfigID int64 `path:"configID"`
	Body     AddRuleRequest
}

type addRuleOutput struct {
	Body RuleResponse
}

type AddRuleRequest struct {
	EntityType     string `json:"entity_type" enum:"product,order,inventory,customer,price"`
	Direction      string `json:"direction" enum:"upload,download,bidirectional"`
	ConflictPolicy string `json:"conflict_policy" enum:"hq_wins,store_wins,manual"`
	Priority       int    `json:"priority" minimum:"0" default:"0"`
}

type RuleResponse struct {
	Status string                     `json:"status"`
	Error  string                     `json:"error,omitempty"`
	Data   *syncconfig.SyncEntityRule `json:"data,omitempty"`
}

// Request/Response для SetRuleEnabled
type setRuleEnabledInput struct {
	RuleID int64 `path:"ruleID"`
	Body   SetEnabledRequest
}

type setRuleEnabledOutput struct {
	Body SetEnabledResponse
}

// Request/Response для ListRules
type listRulesInput struct {
	ConfigID int64 `path:"configID"`
}

type listRulesOutput struct {
	Body ListRulesResponse
}

type ListRulesResponse struct {
	Status string                      `json:"status"`
	Error  string                      `json:"error,omitempty"`
	Data   []syncconfig.SyncEntityRule `json:"data,omitempty"`
}
