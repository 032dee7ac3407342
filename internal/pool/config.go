// Package pool implements the spatial pooling kernels of the Riven
// toolkit: the pooling rule, the output-dimension calculator, and the
// forward (pool) and backward (unpool) operators.
//
// The operators are stateless: the forward pass returns the index map
// it recorded, and the backward pass takes it back as an explicit
// argument. Layer-level lifetime management of the index map lives in
// the nn package.
package pool

import (
	"github.com/pkg/errors"

	"github.com/riven-ml/riven/internal/tensor"
)

// Config holds the spatial pooling configuration. Width applies to
// columns, height to rows; the two axes are handled independently.
type Config struct {
	KernelWidth  int
	KernelHeight int
	StrideWidth  int
	StrideHeight int
	Rounding     Rounding
}

// Validate checks that kernel and stride sizes are all at least 1.
func (c Config) Validate() error {
	if c.KernelWidth < 1 || c.KernelHeight < 1 {
		return errors.Wrapf(ErrConfiguration, "kernel %dx%d, both sizes must be >= 1",
			c.KernelWidth, c.KernelHeight)
	}
	if c.StrideWidth < 1 || c.StrideHeight < 1 {
		return errors.Wrapf(ErrConfiguration, "stride %dx%d, both sizes must be >= 1",
			c.StrideWidth, c.StrideHeight)
	}
	return nil
}

// OutputShape computes the pooled output shape for the given input
// shape. The slice count carries over unchanged; each spatial axis is
// computed independently via OutputSize.
func (c Config) OutputShape(in tensor.Shape) (tensor.Shape, error) {
	if err := in.Validate(); err != nil {
		return tensor.Shape{}, errors.Wrapf(ErrConfiguration, "input shape: %v", err)
	}
	outRows, err := OutputSize(in.Rows, c.KernelHeight, c.StrideHeight, c.Rounding)
	if err != nil {
		return tensor.Shape{}, errors.WithMessage(err, "height axis")
	}
	outCols, err := OutputSize(in.Cols, c.KernelWidth, c.StrideWidth, c.Rounding)
	if err != nil {
		return tensor.Shape{}, errors.WithMessage(err, "width axis")
	}
	return tensor.Shape{Rows: outRows, Cols: outCols, Slices: in.Slices}, nil
}

// windowExtent returns the effective window size along one axis for a
// window anchored at start. Floor mode always uses the full kernel
// extent (the output-size formula guarantees it fits). Ceil mode
// reduces the extent by a fixed offset of one and clips it at the
// input boundary, never below one element.
func windowExtent(kernel, start, inputSize, offset int) int {
	extent := kernel - offset
	if extent < 1 {
		extent = 1
	}
	if start+extent > inputSize {
		extent = inputSize - start
	}
	return extent
}
