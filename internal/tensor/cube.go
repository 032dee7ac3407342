// Package tensor provides the core tensor types for the Riven toolkit.
package tensor

import "github.com/pkg/errors"

// Element constrains the numeric types a Cube can hold.
type Element interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// Cube is a dense 3D tensor: a stack of equally-shaped 2D channel
// planes. Storage is channel-major with row-major planes, so the flat
// index of element (r, c, slice) is Shape.Index(r, c, slice).
//
// Cube is the exchange type between layers: inputs, outputs, and
// gradients are all cubes of the same element type.
type Cube[T Element] struct {
	shape Shape
	data  []T
}

// New creates a zero-filled cube with the given shape.
func New[T Element](shape Shape) (*Cube[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Cube[T]{
		shape: shape,
		data:  make([]T, shape.NumElements()),
	}, nil
}

// FromSlice creates a cube by copying data in channel-major order.
// The slice length must match the shape's element count exactly.
func FromSlice[T Element](data []T, shape Shape) (*Cube[T], error) {
	c, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	if len(data) != len(c.data) {
		return nil, errors.Errorf("shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	copy(c.data, data)
	return c, nil
}

// Shape returns the cube's shape.
func (c *Cube[T]) Shape() Shape {
	return c.shape
}

// NumElements returns the total number of elements.
func (c *Cube[T]) NumElements() int {
	return len(c.data)
}

// At returns the element at (r, col, slice).
func (c *Cube[T]) At(r, col, slice int) T {
	return c.data[c.shape.Index(r, col, slice)]
}

// Set stores v at (r, col, slice).
func (c *Cube[T]) Set(r, col, slice int, v T) {
	c.data[c.shape.Index(r, col, slice)] = v
}

// Data returns the flat backing slice in channel-major order.
//
// WARNING: Modifications to the returned slice will modify the cube.
func (c *Cube[T]) Data() []T {
	return c.data
}

// Plane returns a zero-copy view of one channel plane, row-major.
func (c *Cube[T]) Plane(slice int) []T {
	n := c.shape.PlaneSize()
	return c.data[slice*n : (slice+1)*n]
}

// Fill sets every element to v.
func (c *Cube[T]) Fill(v T) {
	for i := range c.data {
		c.data[i] = v
	}
}

// Sum returns the sum of all elements.
func (c *Cube[T]) Sum() T {
	var total T
	for _, v := range c.data {
		total += v
	}
	return total
}

// Clone returns a deep copy of the cube.
func (c *Cube[T]) Clone() *Cube[T] {
	clone := &Cube[T]{
		shape: c.shape,
		data:  make([]T, len(c.data)),
	}
	copy(clone.data, c.data)
	return clone
}

// Equal reports whether two cubes have the same shape and elements.
func (c *Cube[T]) Equal(other *Cube[T]) bool {
	if !c.shape.Equal(other.shape) {
		return false
	}
	for i, v := range c.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// IndexMap records, for every output cell of a pooling pass, the flat
// index of the input element that produced it. It is shaped exactly
// like the pooled output and is transient: rebuilt on every forward
// pass and never persisted.
type IndexMap = Cube[int]
