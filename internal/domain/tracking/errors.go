package tracking

import "errors"

var (
	ErrUnknownMode    = errors.New("unknown tracking mode")
	ErrInvalidCatalog = errors.New("invalid tracking mode catalog")
)
