package bottles

import "errors"

var (
	// ErrInvalidConfig is returned when puzzle parameters are out of range.
	ErrInvalidConfig = errors.New("invalid puzzle config")

	// ErrInvalidMove is returned for out-of-range or equal pour indices.
	// Legal pours that move nothing are not errors; see PourResult.
	ErrInvalidMove = errors.New("invalid move")

	// ErrEntropyUnavailable is returned when the random source cannot be read.
	ErrEntropyUnavailable = errors.New("entropy unavailable")
)
