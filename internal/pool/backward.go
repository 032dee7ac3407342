package pool

import (
	"github.com/pkg/errors"

	"github.com/riven-ml/riven/internal/parallel"
	"github.com/riven-ml/riven/internal/tensor"
)

// Unpool scatters the upstream gradient back through a recorded
// pooling pass. Every gradient value is added into the input-shaped
// result at the flat location its index-map entry names. The add
// matters: with overlapping windows (stride < kernel) several output
// cells can select the same input element, and their contributions
// must accumulate. Input elements never selected receive zero.
//
// The index map must come from a forward pass over an input of
// exactly inputShape; entries pointing outside their own channel
// plane violate that contract and corrupt the result.
func Unpool[T tensor.Element](
	gradOut *tensor.Cube[T], indices *tensor.IndexMap, inputShape tensor.Shape,
) (*tensor.Cube[T], error) {
	if err := inputShape.Validate(); err != nil {
		return nil, errors.Wrapf(ErrDimensionMismatch, "input shape: %v", err)
	}
	if !gradOut.Shape().Equal(indices.Shape()) {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"gradient shape %v does not match index map shape %v",
			gradOut.Shape(), indices.Shape())
	}
	if gradOut.Shape().Slices != inputShape.Slices {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"gradient has %d slices, input shape has %d",
			gradOut.Shape().Slices, inputShape.Slices)
	}

	gradIn, err := tensor.New[T](inputShape)
	if err != nil {
		return nil, err
	}

	gradInData := gradIn.Data()
	gradData := gradOut.Data()
	idxData := indices.Data()
	outPlane := gradOut.Shape().PlaneSize()

	// Parallel across slices is race-free: every index-map entry
	// produced by the forward pass addresses its own channel plane.
	parallel.ForSlices(inputShape.Slices, func(s int) {
		start := s * outPlane
		for k := start; k < start+outPlane; k++ {
			gradInData[idxData[k]] += gradData[k]
		}
	}, parallel.DefaultConfig())

	return gradIn, nil
}
