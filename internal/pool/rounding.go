package pool

import (
	"math"

	"github.com/pkg/errors"
)

// Rounding selects how output dimensions are computed when the input
// size is not evenly divisible by the stride.
type Rounding int

// Supported rounding modes.
const (
	// RoundFloor discards the last partial window:
	// out = floor((in - kernel) / stride) + 1. Every window has the
	// full kernel extent.
	RoundFloor Rounding = iota

	// RoundCeil keeps the last partial window:
	// out = ceil((in - kernel) / stride) + 1. The effective window is
	// reduced by one per axis and clipped at the input boundary, so
	// trailing windows may cover fewer elements than the kernel size.
	RoundCeil
)

// String returns a human-readable mode name.
func (r Rounding) String() string {
	switch r {
	case RoundFloor:
		return "floor"
	case RoundCeil:
		return "ceil"
	default:
		return "unknown"
	}
}

// ParseRounding converts a persisted mode name back to a Rounding.
func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "floor":
		return RoundFloor, nil
	case "ceil":
		return RoundCeil, nil
	default:
		return 0, errors.Wrapf(ErrConfiguration, "unknown rounding mode %q", s)
	}
}

// offset is the fixed reduction applied to the window extent per axis.
// Ceil mode shrinks every window by one; see windowExtent.
func (r Rounding) offset() int {
	if r == RoundCeil {
		return 1
	}
	return 0
}

// OutputSize computes the output size along one spatial axis.
//
// Returns ErrConfiguration if kernel or stride is smaller than 1, or
// if the resulting output size is smaller than 1 (kernel larger than
// the input under floor mode).
func OutputSize(inputSize, kernel, stride int, r Rounding) (int, error) {
	if kernel < 1 {
		return 0, errors.Wrapf(ErrConfiguration, "kernel size %d, must be >= 1", kernel)
	}
	if stride < 1 {
		return 0, errors.Wrapf(ErrConfiguration, "stride %d, must be >= 1", stride)
	}
	if inputSize < 1 {
		return 0, errors.Wrapf(ErrConfiguration, "input size %d, must be >= 1", inputSize)
	}

	var out int
	switch r {
	case RoundFloor:
		out = int(math.Floor(float64(inputSize-kernel)/float64(stride))) + 1
	case RoundCeil:
		out = int(math.Ceil(float64(inputSize-kernel)/float64(stride))) + 1
		// When stride exceeds the kernel, the ceil formula can place
		// the last window anchor past the input entirely; drop such
		// windows so every anchor has at least one element to cover.
		for out > 1 && (out-1)*stride >= inputSize {
			out--
		}
	default:
		return 0, errors.Wrapf(ErrConfiguration, "unknown rounding mode %d", r)
	}

	if out < 1 {
		return 0, errors.Wrapf(ErrConfiguration,
			"kernel %d with stride %d yields output size %d for input size %d",
			kernel, stride, out, inputSize)
	}
	return out, nil
}
