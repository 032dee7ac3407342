package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_Validate(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"valid", Shape{Rows: 4, Cols: 4, Slices: 1}, false},
		{"single element", Shape{Rows: 1, Cols: 1, Slices: 1}, false},
		{"zero rows", Shape{Rows: 0, Cols: 4, Slices: 1}, true},
		{"zero cols", Shape{Rows: 4, Cols: 0, Slices: 1}, true},
		{"zero slices", Shape{Rows: 4, Cols: 4, Slices: 0}, true},
		{"negative", Shape{Rows: -1, Cols: 4, Slices: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShape_Index(t *testing.T) {
	s := Shape{Rows: 3, Cols: 4, Slices: 2}

	// Channel-major, row-major planes.
	assert.Equal(t, 0, s.Index(0, 0, 0))
	assert.Equal(t, 1, s.Index(0, 1, 0))
	assert.Equal(t, 4, s.Index(1, 0, 0))
	assert.Equal(t, 12, s.Index(0, 0, 1))
	assert.Equal(t, 12+2*4+3, s.Index(2, 3, 1))
}

func TestCube_AtSet(t *testing.T) {
	c, err := New[float32](Shape{Rows: 2, Cols: 3, Slices: 2})
	require.NoError(t, err)

	c.Set(1, 2, 1, 42)
	assert.Equal(t, float32(42), c.At(1, 2, 1))
	assert.Equal(t, float32(42), c.Data()[c.Shape().Index(1, 2, 1)])
}

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	c, err := FromSlice(data, Shape{Rows: 2, Cols: 3, Slices: 1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.At(0, 0, 0))
	assert.Equal(t, 6.0, c.At(1, 2, 0))

	// The cube must not alias the source slice.
	data[0] = 99
	assert.Equal(t, 1.0, c.At(0, 0, 0))
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, Shape{Rows: 2, Cols: 2, Slices: 1})
	assert.Error(t, err)
}

func TestCube_Clone(t *testing.T) {
	c, err := FromSlice([]float32{1, 2, 3, 4}, Shape{Rows: 2, Cols: 2, Slices: 1})
	require.NoError(t, err)

	clone := c.Clone()
	require.True(t, c.Equal(clone))

	clone.Set(0, 0, 0, 99)
	assert.Equal(t, float32(1), c.At(0, 0, 0))
	assert.False(t, c.Equal(clone))
}

func TestCube_PlaneAliases(t *testing.T) {
	c, err := New[float32](Shape{Rows: 2, Cols: 2, Slices: 3})
	require.NoError(t, err)

	plane := c.Plane(1)
	require.Len(t, plane, 4)

	plane[0] = 7
	assert.Equal(t, float32(7), c.At(0, 0, 1))
}

func TestCube_Sum(t *testing.T) {
	c, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{Rows: 1, Cols: 3, Slices: 2})
	require.NoError(t, err)
	assert.Equal(t, 21.0, c.Sum())

	c.Fill(2)
	assert.Equal(t, 12.0, c.Sum())
}
