package nn

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/riven-ml/riven/internal/pool"
	"github.com/riven-ml/riven/internal/serialization"
	"github.com/riven-ml/riven/internal/tensor"
)

// LayerTypeMaxPooling is the persisted type name of MaxPooling layers.
const LayerTypeMaxPooling = "MaxPooling"

// Option configures a pooling layer at construction time.
type Option func(*pool.Config)

// WithStride sets the stride per axis (default 1x1).
func WithStride(width, height int) Option {
	return func(c *pool.Config) {
		c.StrideWidth = width
		c.StrideHeight = height
	}
}

// WithRounding sets the output-dimension rounding mode (default floor).
func WithRounding(r pool.Rounding) Option {
	return func(c *pool.Config) {
		c.Rounding = r
	}
}

// MaxPooling is a spatial max-pooling layer over multi-channel 2D
// inputs. It has no learnable parameters; its only state besides the
// configuration is the index map recorded by the last forward pass,
// which the backward pass replays to scatter gradients.
//
// Example:
//
//	layer, err := nn.NewMaxPooling[float32](2, 2, nn.WithStride(2, 2))
//	out, err := layer.Forward(input)   // records the index map
//	grad, err := layer.Backward(gradOut) // replays it
type MaxPooling[T tensor.Element] struct {
	cfg  pool.Config
	rule pool.MaxRule[T]

	inputShape  tensor.Shape // declared input shape; zero if none
	outputShape tensor.Shape // cached output dims; zero if stale

	// Per-pass state from the last Forward. indexInput remembers the
	// shape the map was recorded against so a stale Backward is
	// rejected instead of silently corrupting gradients.
	indices    *tensor.IndexMap
	indexInput tensor.Shape
}

// NewMaxPooling creates a max-pooling layer with the given kernel
// size. Stride defaults to 1x1 and rounding to floor mode.
func NewMaxPooling[T tensor.Element](kernelWidth, kernelHeight int, opts ...Option) (*MaxPooling[T], error) {
	cfg := pool.Config{
		KernelWidth:  kernelWidth,
		KernelHeight: kernelHeight,
		StrideWidth:  1,
		StrideHeight: 1,
		Rounding:     pool.RoundFloor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MaxPooling[T]{cfg: cfg}, nil
}

// Forward pools the input and records the index map for the next
// backward pass. If the input shape differs from the declared shape,
// the layer adopts the new shape, which invalidates any previously
// recorded index map.
func (m *MaxPooling[T]) Forward(input *tensor.Cube[T]) (*tensor.Cube[T], error) {
	if !m.inputShape.Equal(input.Shape()) {
		if err := m.SetInputShape(input.Shape()); err != nil {
			return nil, err
		}
	}

	output, indices, err := pool.ForwardWithIndices(input, m.cfg, m.rule)
	if err != nil {
		return nil, err
	}

	m.indices = indices
	m.indexInput = input.Shape()
	return output, nil
}

// Infer pools the input without recording an index map. Use it when
// no backward pass will follow. An index map recorded for the same
// shape stays valid; a shape change still drops it.
func (m *MaxPooling[T]) Infer(input *tensor.Cube[T]) (*tensor.Cube[T], error) {
	if !m.inputShape.Equal(input.Shape()) {
		if err := m.SetInputShape(input.Shape()); err != nil {
			return nil, err
		}
	}
	return pool.Forward(input, m.cfg, m.rule)
}

// Backward scatters the upstream gradient back to input positions via
// the index map recorded by the last Forward. It may be called more
// than once against the same forward pass.
func (m *MaxPooling[T]) Backward(grad *tensor.Cube[T]) (*tensor.Cube[T], error) {
	if m.indices == nil {
		return nil, errors.Wrap(pool.ErrDimensionMismatch,
			"maxpooling: backward without a recorded forward pass")
	}
	if !grad.Shape().Equal(m.indices.Shape()) {
		return nil, errors.Wrapf(pool.ErrDimensionMismatch,
			"maxpooling: gradient shape %v, recorded output shape %v",
			grad.Shape(), m.indices.Shape())
	}
	return pool.Unpool(grad, m.indices, m.indexInput)
}

// SetInputShape declares the input shape and recomputes the output
// dimensions. Any recorded index map becomes stale and is dropped.
func (m *MaxPooling[T]) SetInputShape(shape tensor.Shape) error {
	out, err := m.cfg.OutputShape(shape)
	if err != nil {
		return err
	}
	m.inputShape = shape
	m.outputShape = out
	m.invalidateIndices()
	klog.V(2).Infof("maxpooling: input %v -> output %v (%s)", shape, out, m.cfg.Rounding)
	return nil
}

// ComputeOutputDimensions recomputes the output dimensions from the
// declared input shape and the current configuration.
func (m *MaxPooling[T]) ComputeOutputDimensions() (tensor.Shape, error) {
	if m.inputShape.IsZero() {
		return tensor.Shape{}, errors.Wrap(pool.ErrConfiguration,
			"maxpooling: no input shape declared")
	}
	out, err := m.cfg.OutputShape(m.inputShape)
	if err != nil {
		return tensor.Shape{}, err
	}
	m.outputShape = out
	return out, nil
}

// OutputShape returns the cached output dimensions, or the zero Shape
// if no input shape has been declared.
func (m *MaxPooling[T]) OutputShape() tensor.Shape {
	return m.outputShape
}

// InputShape returns the declared input shape, or the zero Shape if
// none has been declared.
func (m *MaxPooling[T]) InputShape() tensor.Shape {
	return m.inputShape
}

// KernelWidth returns the pooling window width.
func (m *MaxPooling[T]) KernelWidth() int { return m.cfg.KernelWidth }

// KernelHeight returns the pooling window height.
func (m *MaxPooling[T]) KernelHeight() int { return m.cfg.KernelHeight }

// StrideWidth returns the horizontal stride.
func (m *MaxPooling[T]) StrideWidth() int { return m.cfg.StrideWidth }

// StrideHeight returns the vertical stride.
func (m *MaxPooling[T]) StrideHeight() int { return m.cfg.StrideHeight }

// Rounding returns the output-dimension rounding mode.
func (m *MaxPooling[T]) Rounding() pool.Rounding { return m.cfg.Rounding }

// SetKernelWidth changes the pooling window width.
func (m *MaxPooling[T]) SetKernelWidth(k int) error {
	return m.mutate(func(c *pool.Config) { c.KernelWidth = k })
}

// SetKernelHeight changes the pooling window height.
func (m *MaxPooling[T]) SetKernelHeight(k int) error {
	return m.mutate(func(c *pool.Config) { c.KernelHeight = k })
}

// SetStrideWidth changes the horizontal stride.
func (m *MaxPooling[T]) SetStrideWidth(s int) error {
	return m.mutate(func(c *pool.Config) { c.StrideWidth = s })
}

// SetStrideHeight changes the vertical stride.
func (m *MaxPooling[T]) SetStrideHeight(s int) error {
	return m.mutate(func(c *pool.Config) { c.StrideHeight = s })
}

// SetRounding changes the rounding mode.
func (m *MaxPooling[T]) SetRounding(r pool.Rounding) error {
	return m.mutate(func(c *pool.Config) { c.Rounding = r })
}

// mutate applies a configuration change, validates it, and refreshes
// the output dimensions. The recorded index map is always dropped:
// it was produced under the old configuration.
func (m *MaxPooling[T]) mutate(change func(*pool.Config)) error {
	next := m.cfg
	change(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	m.cfg = next
	m.invalidateIndices()
	m.outputShape = tensor.Shape{}
	if !m.inputShape.IsZero() {
		if _, err := m.ComputeOutputDimensions(); err != nil {
			return err
		}
	}
	return nil
}

// invalidateIndices drops the recorded per-pass state. The next
// Backward will fail until a Forward re-records it.
func (m *MaxPooling[T]) invalidateIndices() {
	m.indices = nil
	m.indexInput = tensor.Shape{}
}

// Clone returns an independent deep copy, recorded index map included.
func (m *MaxPooling[T]) Clone() Layer[T] {
	clone := &MaxPooling[T]{
		cfg:         m.cfg,
		inputShape:  m.inputShape,
		outputShape: m.outputShape,
		indexInput:  m.indexInput,
	}
	if m.indices != nil {
		clone.indices = m.indices.Clone()
	}
	return clone
}

// Spec returns the persistable description of the layer: the five
// configuration fields. The index map is transient and excluded.
func (m *MaxPooling[T]) Spec() serialization.LayerSpec {
	return serialization.LayerSpec{
		Type: LayerTypeMaxPooling,
		Config: map[string]any{
			"kernel_width":  m.cfg.KernelWidth,
			"kernel_height": m.cfg.KernelHeight,
			"stride_width":  m.cfg.StrideWidth,
			"stride_height": m.cfg.StrideHeight,
			"rounding":      m.cfg.Rounding.String(),
		},
	}
}

// String returns a short description of the layer.
func (m *MaxPooling[T]) String() string {
	return fmt.Sprintf("MaxPooling(kernel=%dx%d, stride=%dx%d, rounding=%s)",
		m.cfg.KernelWidth, m.cfg.KernelHeight,
		m.cfg.StrideWidth, m.cfg.StrideHeight, m.cfg.Rounding)
}
