package gonum

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/bridge/bridgetest"
)

func TestConformance(t *testing.T) {
	b := NewBridge()
	bridgetest.Run(t, OriginName, func(shape array.Shape, values []float64) (*array.Record, error) {
		a, err := NewArray(shape, values)
		if err != nil {
			return nil, err
		}
		return b.Wrap(a)
	}, b.Live)
}

func TestNewArray(t *testing.T) {
	a, err := NewArray(array.Shape{2, 3, 2}, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	require.NoError(t, err)

	r, c := a.Matrix().Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, 9.0, a.At(1, 1, 1))

	_, err = NewArray(array.Shape{2, 3}, []float64{1, 2})
	require.ErrorIs(t, err, array.ErrInvalidShape)

	_, err = NewArray(array.Shape{6}, nil)
	require.ErrorIs(t, err, array.ErrInvalidShape)
}

func TestNewArrayEmpty(t *testing.T) {
	a, err := NewArray(array.Shape{0, 4}, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Matrix())
	assert.Empty(t, a.Data())
	assert.Equal(t, array.Shape{0, 4}, a.Shape())
}

func TestFromDenseSharesStorage(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	a := FromDense(m)
	assert.Same(t, m, a.Matrix())

	m.Set(0, 1, 7)
	assert.Equal(t, 7.0, a.At(0, 1))
}

func TestFromDenseCopiesSubMatrix(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	sub := m.Slice(1, 3, 1, 3).(*mat.Dense)

	a := FromDense(sub)
	if diff := cmp.Diff([]float64{5, 6, 8, 9}, a.Data()); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, array.Shape{2, 2}, a.Shape())
}

func TestAccept(t *testing.T) {
	b := New()

	_, ok := b.Accept(mat.NewDense(1, 1, nil))
	assert.True(t, ok)

	_, ok = b.Accept(&mat.Dense{})
	assert.False(t, ok, "empty matrices have no shape")

	_, ok = b.Accept((*Array)(nil))
	assert.False(t, ok)

	_, ok = b.Accept(mat.NewVecDense(2, nil))
	assert.False(t, ok)
}

func TestWrapDenseAndMove(t *testing.T) {
	b := NewBridge()

	src, err := b.Wrap(FromDense(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})))
	require.NoError(t, err)
	defer src.Destroy()

	dense := mat.NewDense(2, 2, nil)
	dst, err := b.Wrap(FromDense(dense))
	require.NoError(t, err)
	defer dst.Destroy()

	samples := []array.SampleMapping{{Input: 2, Output: 0}, {Input: 0, Output: 1}}
	require.NoError(t, dst.MoveSamplesFrom(src, samples, 0, 2))

	want := mat.NewDense(2, 2, []float64{5, 6, 1, 2})
	assert.True(t, mat.Equal(want, dense), "got %v", mat.Formatted(dense))
}

func TestSwapAxesMatchesTranspose(t *testing.T) {
	b := NewBridge()

	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	r, err := b.Wrap(FromDense(m))
	require.NoError(t, err)
	defer r.Destroy()

	require.NoError(t, r.SwapAxes(1, 0))
	v, err := b.Value(r)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m.T(), v.Matrix()))
}
