package synclog

import "errors"

var (
	ErrEmptyOperation = errors.New("operation name must not be empty")
)
