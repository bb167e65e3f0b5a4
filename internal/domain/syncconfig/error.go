package syncconfig

import "errors"

var (
	ErrConfigNotFound = errors.New("sync configuration not found")
	ErrConfigExists   = errors.New("sync configuration already exists for store")
	ErrRuleNotFound   = errors.New("entity rule not found")
	ErrRuleExists     = errors.New("enabled entity rule already exists for entity type")
	ErrInvalidParams  = errors.New("invalid configuration parameters")
)
