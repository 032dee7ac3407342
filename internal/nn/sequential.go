package nn

import (
	"github.com/pkg/errors"

	"github.com/riven-ml/riven/internal/pool"
	"github.com/riven-ml/riven/internal/tensor"
)

// Sequential chains layers so each layer's output feeds the next.
// Backward runs the chain in reverse, handing each layer the gradient
// its successor produced.
type Sequential[T tensor.Element] struct {
	layers []Layer[T]
}

// NewSequential creates a Sequential container.
func NewSequential[T tensor.Element](layers ...Layer[T]) *Sequential[T] {
	return &Sequential[T]{layers: layers}
}

// Add appends a layer to the chain.
func (s *Sequential[T]) Add(layer Layer[T]) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers.
func (s *Sequential[T]) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
func (s *Sequential[T]) Layer(index int) Layer[T] {
	return s.layers[index]
}

// SetInputShape threads the declared shape through the chain: every
// layer's computed output shape becomes the next layer's input shape.
func (s *Sequential[T]) SetInputShape(shape tensor.Shape) error {
	current := shape
	for i, layer := range s.layers {
		if err := layer.SetInputShape(current); err != nil {
			return errors.WithMessagef(err, "layer %d", i)
		}
		current = layer.OutputShape()
	}
	return nil
}

// OutputShape returns the last layer's output shape, or the zero
// Shape for an empty or undeclared chain.
func (s *Sequential[T]) OutputShape() tensor.Shape {
	if len(s.layers) == 0 {
		return tensor.Shape{}
	}
	return s.layers[len(s.layers)-1].OutputShape()
}

// Forward applies all layers in order.
func (s *Sequential[T]) Forward(input *tensor.Cube[T]) (*tensor.Cube[T], error) {
	output := input
	for i, layer := range s.layers {
		var err error
		output, err = layer.Forward(output)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
	}
	return output, nil
}

// Backward propagates the upstream gradient through the chain in
// reverse order. Every layer must have seen a Forward first.
func (s *Sequential[T]) Backward(grad *tensor.Cube[T]) (*tensor.Cube[T], error) {
	if len(s.layers) == 0 {
		return nil, errors.Wrap(pool.ErrDimensionMismatch, "sequential: no layers")
	}
	current := grad
	for i := len(s.layers) - 1; i >= 0; i-- {
		var err error
		current, err = s.layers[i].Backward(current)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
	}
	return current, nil
}

// Clone returns a deep copy of the container and every layer in it.
func (s *Sequential[T]) Clone() *Sequential[T] {
	clone := &Sequential[T]{layers: make([]Layer[T], len(s.layers))}
	for i, layer := range s.layers {
		clone.layers[i] = layer.Clone()
	}
	return clone
}
