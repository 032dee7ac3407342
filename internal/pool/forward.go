package pool

import (
	"github.com/pkg/errors"

	"github.com/riven-ml/riven/internal/parallel"
	"github.com/riven-ml/riven/internal/tensor"
)

// Forward slides the pooling window over every channel plane of in
// and reduces each window with rule. Channel planes are independent
// and are processed in parallel.
func Forward[T tensor.Element](in *tensor.Cube[T], cfg Config, rule Rule[T]) (*tensor.Cube[T], error) {
	out, err := prepareOutput(in, cfg)
	if err != nil {
		return nil, err
	}

	inShape, outShape := in.Shape(), out.Shape()
	offset := cfg.Rounding.offset()

	parallel.ForSlices(inShape.Slices, func(s int) {
		plane := in.Plane(s)
		for i := 0; i < outShape.Rows; i++ {
			rowStart := i * cfg.StrideHeight
			wrows := windowExtent(cfg.KernelHeight, rowStart, inShape.Rows, offset)
			for j := 0; j < outShape.Cols; j++ {
				colStart := j * cfg.StrideWidth
				wcols := windowExtent(cfg.KernelWidth, colStart, inShape.Cols, offset)
				w := Window[T]{
					plane:     plane,
					planeCols: inShape.Cols,
					row:       rowStart,
					col:       colStart,
					rows:      wrows,
					cols:      wcols,
				}
				out.Set(i, j, s, rule.Pool(w))
			}
		}
	}, parallel.DefaultConfig())

	return out, nil
}

// ForwardWithIndices is Forward plus gradient bookkeeping: alongside
// the pooled output it returns an index map recording, for every
// output cell, the flat input index of the element the rule selected.
// The map is what Unpool later replays to scatter gradients.
func ForwardWithIndices[T tensor.Element](
	in *tensor.Cube[T], cfg Config, rule Rule[T],
) (*tensor.Cube[T], *tensor.IndexMap, error) {
	out, err := prepareOutput(in, cfg)
	if err != nil {
		return nil, nil, err
	}
	indices, err := tensor.New[int](out.Shape())
	if err != nil {
		return nil, nil, err
	}

	inShape, outShape := in.Shape(), out.Shape()
	offset := cfg.Rounding.offset()

	parallel.ForSlices(inShape.Slices, func(s int) {
		plane := in.Plane(s)
		for i := 0; i < outShape.Rows; i++ {
			rowStart := i * cfg.StrideHeight
			wrows := windowExtent(cfg.KernelHeight, rowStart, inShape.Rows, offset)
			for j := 0; j < outShape.Cols; j++ {
				colStart := j * cfg.StrideWidth
				wcols := windowExtent(cfg.KernelWidth, colStart, inShape.Cols, offset)
				w := Window[T]{
					plane:     plane,
					planeCols: inShape.Cols,
					row:       rowStart,
					col:       colStart,
					rows:      wrows,
					cols:      wcols,
				}
				res := rule.PoolWithIndex(w)

				// Unmap the window-local column-major index to an
				// absolute flat index in the input cube.
				localRow := res.Index % wrows
				localCol := res.Index / wrows
				abs := inShape.Index(rowStart+localRow, colStart+localCol, s)

				out.Set(i, j, s, res.Value)
				indices.Set(i, j, s, abs)
			}
		}
	}, parallel.DefaultConfig())

	return out, indices, nil
}

// prepareOutput validates the configuration against the input shape
// and allocates the output cube.
func prepareOutput[T tensor.Element](in *tensor.Cube[T], cfg Config) (*tensor.Cube[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	outShape, err := cfg.OutputShape(in.Shape())
	if err != nil {
		return nil, err
	}
	out, err := tensor.New[T](outShape)
	if err != nil {
		return nil, errors.WithMessage(err, "allocating output")
	}
	return out, nil
}
