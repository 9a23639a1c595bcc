package rollover

import "errors"

var (
	ErrInvalidPolicy    = errors.New("invalid rollover policy")
	ErrStoreUnavailable = errors.New("note store unavailable")
)
