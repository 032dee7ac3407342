// Package nn implements the layer-level API of the Riven toolkit.
//
// Layers wrap the stateless operators from the pool package with the
// lifecycle the surrounding framework expects: declared input shapes,
// cached output dimensions, per-pass index-map state, cloning, and
// persistence hooks.
package nn

import (
	"github.com/riven-ml/riven/internal/serialization"
	"github.com/riven-ml/riven/internal/tensor"
)

// Layer is the bidirectional layer contract consumed by model
// containers. A layer moves through three states:
//
//	unconfigured -> configured (input shape declared, output shape
//	known) -> ready (a forward pass has recorded whatever per-pass
//	state the backward pass needs).
//
// SetInputShape declares or changes the input shape and recomputes
// output dimensions; changing it invalidates any recorded per-pass
// state. Backward may be called repeatedly against the same forward
// pass, but never before one.
type Layer[T tensor.Element] interface {
	// Forward computes the layer output for input. Implementations
	// adopt the input's shape as the declared shape if none was set.
	Forward(input *tensor.Cube[T]) (*tensor.Cube[T], error)

	// Backward maps the upstream gradient (shaped like the last
	// forward output) to the downstream gradient (shaped like the
	// last forward input).
	Backward(grad *tensor.Cube[T]) (*tensor.Cube[T], error)

	// SetInputShape declares the input shape and recomputes output
	// dimensions. Returns an error if the configuration is invalid
	// for the shape.
	SetInputShape(shape tensor.Shape) error

	// OutputShape returns the output dimensions computed for the
	// declared input shape, or the zero Shape if no input shape has
	// been declared.
	OutputShape() tensor.Shape

	// Clone returns an independent deep copy of the layer.
	Clone() Layer[T]

	// Spec returns the layer's persistable description. Transient
	// state is excluded.
	Spec() serialization.LayerSpec
}
