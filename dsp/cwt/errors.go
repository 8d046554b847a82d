package cwt

import "errors"

// Error categories. Concrete errors wrap one of these.
var (
	// ErrConfig reports invalid scale parameters, combination ranges or a
	// missing mean offset.
	ErrConfig = errors.New("cwt: invalid configuration")

	// ErrInput reports a malformed signal or an unsupported source.
	ErrInput = errors.New("cwt: invalid input")

	// ErrDimension reports matrices whose shape does not match the expected
	// band, scale or sample count.
	ErrDimension = errors.New("cwt: dimension mismatch")
)
