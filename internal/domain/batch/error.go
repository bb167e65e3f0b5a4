package batch

import "errors"

var (
	ErrBatchNotFound       = errors.New("sync batch not found")
	ErrBatchInFlight       = errors.New("sync batch already in flight for this store, entity type and direction")
	ErrSyncDisabled        = errors.New("sync is disabled for this store")
	ErrDirectionNotAllowed = errors.New("requested direction is not allowed by entity rule")
	ErrUnknownEntityType   = errors.New("unknown entity type")
)
