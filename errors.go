package dimviz

import "errors"

var (
	// ErrMissingContainer is returned at startup when the layout has no
	// container for one of the four panels.
	ErrMissingContainer = errors.New("panel container not found")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrUnknownShape     = errors.New("unknown shape")
	ErrUnknownColor     = errors.New("unknown color")
)
