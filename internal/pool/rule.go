package pool

import "github.com/riven-ml/riven/internal/tensor"

// Window is a rectangular view into one channel plane. It borrows the
// plane's backing slice; no elements are copied.
type Window[T tensor.Element] struct {
	plane      []T // Channel plane, row-major.
	planeCols  int // Width of the full plane (row stride).
	row, col   int // Top-left anchor within the plane.
	rows, cols int // Window extent.
}

// At returns the window element at local coordinates (r, c).
func (w Window[T]) At(r, c int) T {
	return w.plane[(w.row+r)*w.planeCols+(w.col+c)]
}

// Rows returns the window height.
func (w Window[T]) Rows() int { return w.rows }

// Cols returns the window width.
func (w Window[T]) Cols() int { return w.cols }

// PoolResult pairs a pooled value with the window-local position it
// came from, keeping the value/index association explicit.
type PoolResult[T tensor.Element] struct {
	Value T
	// Index is the flat position of the selected element within the
	// window, counted down each column and then across columns
	// (column-major scan).
	Index int
}

// Rule is the pooling strategy applied to each window. Only the max
// rule is implemented; the interface keeps future strategies (average,
// stochastic) polymorphic over the same pair of capabilities.
type Rule[T tensor.Element] interface {
	// Pool reduces the window to a single value.
	Pool(w Window[T]) T

	// PoolWithIndex reduces the window and reports where the selected
	// value came from, for gradient routing.
	PoolWithIndex(w Window[T]) PoolResult[T]
}

// MaxRule selects the maximum value of a window. Ties break toward
// the first occurrence in column-major scan order, which keeps
// repeated forward passes and gradient routing deterministic.
type MaxRule[T tensor.Element] struct{}

// Pool returns the maximum element of the window.
func (MaxRule[T]) Pool(w Window[T]) T {
	best := w.At(0, 0)
	for c := 0; c < w.cols; c++ {
		for r := 0; r < w.rows; r++ {
			if v := w.At(r, c); v > best {
				best = v
			}
		}
	}
	return best
}

// PoolWithIndex returns the maximum element and its column-major flat
// position within the window.
func (MaxRule[T]) PoolWithIndex(w Window[T]) PoolResult[T] {
	res := PoolResult[T]{Value: w.At(0, 0), Index: 0}
	idx := 0
	for c := 0; c < w.cols; c++ {
		for r := 0; r < w.rows; r++ {
			if v := w.At(r, c); v > res.Value {
				res.Value = v
				res.Index = idx
			}
			idx++
		}
	}
	return res
}
