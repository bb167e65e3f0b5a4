package conflict

import "errors"

var (
	ErrConflictNotFound = errors.New("sync conflict not found")
	ErrAlreadyResolved  = errors.New("sync conflict is already resolved")
	ErrInvalidWinner    = errors.New("invalid conflict winner")
)
