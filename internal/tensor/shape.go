package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape describes the dimensions of a Cube: a stack of Slices
// channel planes, each Rows x Cols.
type Shape struct {
	Rows   int // Height of each channel plane.
	Cols   int // Width of each channel plane.
	Slices int // Number of channel planes.
}

// NumElements returns the total number of elements in a cube of this shape.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols * s.Slices
}

// PlaneSize returns the number of elements in one channel plane.
func (s Shape) PlaneSize() int {
	return s.Rows * s.Cols
}

// Validate checks that all dimensions are at least 1.
func (s Shape) Validate() error {
	if s.Rows < 1 || s.Cols < 1 || s.Slices < 1 {
		return errors.Errorf("invalid shape %v: all dimensions must be >= 1", s)
	}
	return nil
}

// Equal reports whether two shapes match in every dimension.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

// IsZero reports whether the shape is the zero value (no shape declared).
func (s Shape) IsZero() bool {
	return s == Shape{}
}

// Index returns the flat index of element (r, c, slice) in the cube's
// channel-major linear address space: planes are stored back to back,
// each plane row-major.
func (s Shape) Index(r, c, slice int) int {
	return slice*s.Rows*s.Cols + r*s.Cols + c
}

// String returns a human-readable "rows x cols x slices" form like "3x4x2".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Rows, s.Cols, s.Slices)
}
