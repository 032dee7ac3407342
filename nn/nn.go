// Copyright 2026 Riven ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public layer API of the Riven toolkit:
// the bidirectional Layer contract, the MaxPooling layer, and the
// Sequential container with model persistence.
//
// Example:
//
//	layer, err := nn.NewMaxPooling[float32](2, 2, nn.WithStride(2, 2))
//	out, err := layer.Forward(input)
//	grad, err := layer.Backward(upstream)
package nn

import (
	"github.com/riven-ml/riven/internal/nn"
	"github.com/riven-ml/riven/internal/pool"
	"github.com/riven-ml/riven/internal/tensor"
)

// Layer is the bidirectional layer contract consumed by containers.
type Layer[T tensor.Element] = nn.Layer[T]

// MaxPooling is a spatial max-pooling layer.
type MaxPooling[T tensor.Element] = nn.MaxPooling[T]

// Sequential chains layers into a pipeline.
type Sequential[T tensor.Element] = nn.Sequential[T]

// Option configures a pooling layer at construction time.
type Option = nn.Option

// Rounding selects how output dimensions are computed.
type Rounding = pool.Rounding

// Rounding modes.
const (
	RoundFloor Rounding = pool.RoundFloor
	RoundCeil  Rounding = pool.RoundCeil
)

// Sentinel errors surfaced by layers.
var (
	ErrConfiguration     = pool.ErrConfiguration
	ErrDimensionMismatch = pool.ErrDimensionMismatch
)

// NewMaxPooling creates a max-pooling layer with the given kernel
// size. Stride defaults to 1x1 and rounding to floor mode.
func NewMaxPooling[T tensor.Element](kernelWidth, kernelHeight int, opts ...Option) (*MaxPooling[T], error) {
	return nn.NewMaxPooling[T](kernelWidth, kernelHeight, opts...)
}

// WithStride sets the stride per axis.
func WithStride(width, height int) Option {
	return nn.WithStride(width, height)
}

// WithRounding sets the output-dimension rounding mode.
func WithRounding(r Rounding) Option {
	return nn.WithRounding(r)
}

// NewSequential creates a Sequential container.
func NewSequential[T tensor.Element](layers ...Layer[T]) *Sequential[T] {
	return nn.NewSequential(layers...)
}

// SaveModel persists a model's architecture to a .riven file.
func SaveModel[T tensor.Element](path string, model *Sequential[T]) error {
	return nn.SaveModel(path, model)
}

// LoadModel reconstructs a model from a .riven file.
func LoadModel[T tensor.Element](path string) (*Sequential[T], error) {
	return nn.LoadModel[T](path)
}
