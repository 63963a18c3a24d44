package footprint

import "errors"

// ErrInvalidConstants indicates a cost model that cannot produce meaningful figures.
var ErrInvalidConstants = errors.New("footprint: invalid constants")
