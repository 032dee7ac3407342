// Copyright 2026 Riven ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor types in the
// Riven toolkit.
//
// The core type is Cube[T]: a dense 3D tensor holding a stack of
// equally-shaped 2D channel planes, the exchange format between
// layers for inputs, outputs, and gradients.
//
// Example:
//
//	in, err := tensor.New[float32](tensor.Shape{Rows: 28, Cols: 28, Slices: 3})
//	in.Set(0, 0, 0, 1.5)
package tensor

import "github.com/riven-ml/riven/internal/tensor"

// Element is a constraint for supported cube element types.
type Element = tensor.Element

// Shape describes the dimensions of a Cube.
type Shape = tensor.Shape

// Cube is a dense 3D tensor: a stack of 2D channel planes.
type Cube[T Element] = tensor.Cube[T]

// IndexMap records the input origin of every pooled output cell.
type IndexMap = tensor.IndexMap

// New creates a zero-filled cube with the given shape.
func New[T Element](shape Shape) (*Cube[T], error) {
	return tensor.New[T](shape)
}

// FromSlice creates a cube by copying data in channel-major order.
func FromSlice[T Element](data []T, shape Shape) (*Cube[T], error) {
	return tensor.FromSlice(data, shape)
}
