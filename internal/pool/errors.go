package pool

import "github.com/pkg/errors"

// Sentinel errors for the pooling package. Callers match them with
// errors.Is; detailed context is attached at the point of failure.
var (
	// ErrConfiguration indicates an invalid pooling configuration:
	// a zero kernel or stride, or a kernel/input combination that
	// yields an output dimension smaller than 1.
	ErrConfiguration = errors.New("pool: invalid configuration")

	// ErrDimensionMismatch indicates that a tensor handed to an
	// operator disagrees in shape with what the operator expects,
	// for example an upstream gradient that does not match the
	// recorded output dimensions.
	ErrDimensionMismatch = errors.New("pool: dimension mismatch")
)
