package redundancy

import "errors"

var (
	errInvalidHealthBounds = errors.New("redundancy: health score bounds must satisfy 0 < floor < ceiling")
	errInvalidHealthRates  = errors.New("redundancy: health reward and penalty must be positive")
)
