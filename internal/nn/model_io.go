package nn

import (
	"github.com/pkg/errors"

	"github.com/riven-ml/riven/internal/pool"
	"github.com/riven-ml/riven/internal/serialization"
	"github.com/riven-ml/riven/internal/tensor"
)

// SaveModel persists a Sequential model's architecture to a .riven
// file. Only layer configurations are written; per-pass state such as
// pooling index maps is transient and rebuilt by the first forward
// pass after loading.
func SaveModel[T tensor.Element](path string, model *Sequential[T]) error {
	specs := make([]serialization.LayerSpec, model.Len())
	for i := range specs {
		specs[i] = model.Layer(i).Spec()
	}
	return serialization.Save(path, "Sequential", specs)
}

// LoadModel reconstructs a Sequential model from a .riven file.
// Loaded layers start without a declared input shape; callers declare
// one via SetInputShape or implicitly with the first Forward.
func LoadModel[T tensor.Element](path string) (*Sequential[T], error) {
	header, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}

	model := NewSequential[T]()
	for i, spec := range header.Layers {
		layer, err := layerFromSpec[T](spec)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
		model.Add(layer)
	}
	return model, nil
}

// layerFromSpec reconstructs one layer from its persisted description.
func layerFromSpec[T tensor.Element](spec serialization.LayerSpec) (Layer[T], error) {
	switch spec.Type {
	case LayerTypeMaxPooling:
		return maxPoolingFromSpec[T](spec)
	default:
		return nil, errors.Wrapf(serialization.ErrUnknownLayerType, "%q", spec.Type)
	}
}

func maxPoolingFromSpec[T tensor.Element](spec serialization.LayerSpec) (*MaxPooling[T], error) {
	kernelW, err := intField(spec, "kernel_width")
	if err != nil {
		return nil, err
	}
	kernelH, err := intField(spec, "kernel_height")
	if err != nil {
		return nil, err
	}
	strideW, err := intField(spec, "stride_width")
	if err != nil {
		return nil, err
	}
	strideH, err := intField(spec, "stride_height")
	if err != nil {
		return nil, err
	}

	name, ok := spec.Config["rounding"].(string)
	if !ok {
		return nil, errors.Wrap(pool.ErrConfiguration, "missing rounding mode")
	}
	rounding, err := pool.ParseRounding(name)
	if err != nil {
		return nil, err
	}

	return NewMaxPooling[T](kernelW, kernelH,
		WithStride(strideW, strideH), WithRounding(rounding))
}

// intField reads an integer configuration value. JSON decoding hands
// numbers back as float64.
func intField(spec serialization.LayerSpec, key string) (int, error) {
	switch v := spec.Config[key].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, errors.Wrapf(pool.ErrConfiguration,
			"field %q missing or not a number", key)
	}
}
