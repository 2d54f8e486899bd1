package building

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrMissingInput = errors.New("missing required input")
)
