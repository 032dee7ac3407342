package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riven-ml/riven/internal/pool"
	"github.com/riven-ml/riven/internal/tensor"
)

var _ Layer[float32] = (*MaxPooling[float32])(nil)

// cube4x4 is the canonical single-channel test input:
// [[1,2,3,4],[5,6,7,8],[9,10,11,12],[13,14,15,16]].
func cube4x4(t *testing.T) *tensor.Cube[float32] {
	t.Helper()
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	c, err := tensor.FromSlice(data, tensor.Shape{Rows: 4, Cols: 4, Slices: 1})
	require.NoError(t, err)
	return c
}

func TestNewMaxPooling_Defaults(t *testing.T) {
	layer, err := NewMaxPooling[float32](3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, layer.KernelWidth())
	assert.Equal(t, 2, layer.KernelHeight())
	assert.Equal(t, 1, layer.StrideWidth())
	assert.Equal(t, 1, layer.StrideHeight())
	assert.Equal(t, pool.RoundFloor, layer.Rounding())
}

func TestNewMaxPooling_Options(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2,
		WithStride(2, 3), WithRounding(pool.RoundCeil))
	require.NoError(t, err)

	assert.Equal(t, 2, layer.StrideWidth())
	assert.Equal(t, 3, layer.StrideHeight())
	assert.Equal(t, pool.RoundCeil, layer.Rounding())
}

func TestNewMaxPooling_InvalidConfig(t *testing.T) {
	_, err := NewMaxPooling[float32](0, 2)
	assert.ErrorIs(t, err, pool.ErrConfiguration)

	_, err = NewMaxPooling[float32](2, 2, WithStride(0, 1))
	assert.ErrorIs(t, err, pool.ErrConfiguration)
}

func TestMaxPooling_ForwardBackwardScenario(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	out, err := layer.Forward(cube4x4(t))
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 8, 14, 16}, out.Data())

	gradOut, err := tensor.New[float32](out.Shape())
	require.NoError(t, err)
	gradOut.Fill(1)

	gradIn, err := layer.Backward(gradOut)
	require.NoError(t, err)

	want := []float32{
		0, 0, 0, 0,
		0, 1, 0, 1,
		0, 0, 0, 0,
		0, 1, 0, 1,
	}
	assert.Equal(t, want, gradIn.Data())
	assert.Equal(t, float32(4), gradIn.Sum())
}

func TestMaxPooling_BackwardBeforeForward(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2)
	require.NoError(t, err)

	grad, err := tensor.New[float32](tensor.Shape{Rows: 3, Cols: 3, Slices: 1})
	require.NoError(t, err)

	_, err = layer.Backward(grad)
	assert.ErrorIs(t, err, pool.ErrDimensionMismatch)
}

func TestMaxPooling_BackwardShapeMismatch(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	_, err = layer.Forward(cube4x4(t))
	require.NoError(t, err)

	wrong, err := tensor.New[float32](tensor.Shape{Rows: 3, Cols: 2, Slices: 1})
	require.NoError(t, err)

	_, err = layer.Backward(wrong)
	assert.ErrorIs(t, err, pool.ErrDimensionMismatch)
}

func TestMaxPooling_BackwardReplay(t *testing.T) {
	// The framework may backpropagate several gradients against one
	// forward pass; the recorded index map must survive replay.
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	_, err = layer.Forward(cube4x4(t))
	require.NoError(t, err)

	gradOut, err := tensor.New[float32](tensor.Shape{Rows: 2, Cols: 2, Slices: 1})
	require.NoError(t, err)
	gradOut.Fill(2)

	first, err := layer.Backward(gradOut)
	require.NoError(t, err)
	second, err := layer.Backward(gradOut)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestMaxPooling_SetInputShape(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	assert.True(t, layer.OutputShape().IsZero())

	require.NoError(t, layer.SetInputShape(tensor.Shape{Rows: 8, Cols: 6, Slices: 3}))
	assert.Equal(t, tensor.Shape{Rows: 4, Cols: 3, Slices: 3}, layer.OutputShape())

	// Kernel larger than the declared input must be rejected.
	err = layer.SetInputShape(tensor.Shape{Rows: 1, Cols: 1, Slices: 1})
	assert.ErrorIs(t, err, pool.ErrConfiguration)
}

func TestMaxPooling_ShapeChangeInvalidatesIndexMap(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	_, err = layer.Forward(cube4x4(t))
	require.NoError(t, err)

	// Declaring a new input shape drops the recorded index map.
	require.NoError(t, layer.SetInputShape(tensor.Shape{Rows: 6, Cols: 6, Slices: 1}))

	gradOut, err := tensor.New[float32](tensor.Shape{Rows: 2, Cols: 2, Slices: 1})
	require.NoError(t, err)
	_, err = layer.Backward(gradOut)
	assert.ErrorIs(t, err, pool.ErrDimensionMismatch)
}

func TestMaxPooling_MutationInvalidatesIndexMap(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	out, err := layer.Forward(cube4x4(t))
	require.NoError(t, err)

	require.NoError(t, layer.SetStrideWidth(1))

	gradOut, err := tensor.New[float32](out.Shape())
	require.NoError(t, err)
	_, err = layer.Backward(gradOut)
	assert.ErrorIs(t, err, pool.ErrDimensionMismatch)
}

func TestMaxPooling_MutationRecomputesOutputShape(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)
	require.NoError(t, layer.SetInputShape(tensor.Shape{Rows: 8, Cols: 8, Slices: 1}))
	require.Equal(t, tensor.Shape{Rows: 4, Cols: 4, Slices: 1}, layer.OutputShape())

	require.NoError(t, layer.SetStrideWidth(1))
	assert.Equal(t, tensor.Shape{Rows: 4, Cols: 7, Slices: 1}, layer.OutputShape())

	require.NoError(t, layer.SetKernelHeight(3))
	assert.Equal(t, tensor.Shape{Rows: 3, Cols: 7, Slices: 1}, layer.OutputShape())

	assert.ErrorIs(t, layer.SetKernelWidth(0), pool.ErrConfiguration)
	assert.ErrorIs(t, layer.SetStrideHeight(-1), pool.ErrConfiguration)
	assert.ErrorIs(t, layer.SetKernelWidth(9), pool.ErrConfiguration)
}

func TestMaxPooling_ComputeOutputDimensions(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2)
	require.NoError(t, err)

	_, err = layer.ComputeOutputDimensions()
	assert.ErrorIs(t, err, pool.ErrConfiguration)

	require.NoError(t, layer.SetInputShape(tensor.Shape{Rows: 5, Cols: 5, Slices: 2}))
	out, err := layer.ComputeOutputDimensions()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Rows: 4, Cols: 4, Slices: 2}, out)
}

func TestMaxPooling_CloneIsIndependent(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	_, err = layer.Forward(cube4x4(t))
	require.NoError(t, err)

	clone := layer.Clone().(*MaxPooling[float32])
	assert.Equal(t, layer.KernelWidth(), clone.KernelWidth())
	assert.Equal(t, layer.OutputShape(), clone.OutputShape())

	// The clone carries its own index map: backward works on both and
	// mutating the clone leaves the original untouched.
	gradOut, err := tensor.New[float32](tensor.Shape{Rows: 2, Cols: 2, Slices: 1})
	require.NoError(t, err)
	gradOut.Fill(1)

	fromClone, err := clone.Backward(gradOut)
	require.NoError(t, err)
	fromOriginal, err := layer.Backward(gradOut)
	require.NoError(t, err)
	assert.True(t, fromClone.Equal(fromOriginal))

	require.NoError(t, clone.SetKernelWidth(3))
	assert.Equal(t, 2, layer.KernelWidth())
}

func TestMaxPooling_InferMatchesForward(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 2, WithStride(2, 2))
	require.NoError(t, err)

	in := cube4x4(t)
	fromForward, err := layer.Forward(in)
	require.NoError(t, err)
	fromInfer, err := layer.Infer(in)
	require.NoError(t, err)
	assert.True(t, fromForward.Equal(fromInfer))

	// Infer on the same shape keeps the recorded index map usable.
	gradOut, err := tensor.New[float32](fromForward.Shape())
	require.NoError(t, err)
	gradOut.Fill(1)
	_, err = layer.Backward(gradOut)
	assert.NoError(t, err)
}

func TestMaxPooling_String(t *testing.T) {
	layer, err := NewMaxPooling[float32](2, 3, WithStride(2, 1), WithRounding(pool.RoundCeil))
	require.NoError(t, err)
	assert.Equal(t, "MaxPooling(kernel=2x3, stride=2x1, rounding=ceil)", layer.String())
}
