package billing

import "errors"

var (
	ErrNegativeAmount  = errors.New("bill amount must not be negative")
	ErrIndexOutOfRange = errors.New("bill index out of range")
)
