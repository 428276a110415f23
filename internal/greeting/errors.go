package greeting

import "errors"

// Greeting errors.
var (
	ErrNilUser         = errors.New("user cannot be null")
	ErrInvalidTemplate = errors.New("type and template cannot be null")
	ErrUnknownCategory = errors.New("unknown greeting category")
)
