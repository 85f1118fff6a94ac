package bridge_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/backend/cpu"
	"github.com/born-ml/blockstore/internal/backend/gonum"
	"github.com/born-ml/blockstore/internal/bridge"
	"github.com/born-ml/blockstore/internal/tensor"
)

func TestWrapKeepsHostOwnership(t *testing.T) {
	b := cpu.NewBridge()
	raw, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)

	r, err := b.Wrap(raw)
	require.NoError(t, err)
	got, err := b.Value(r)
	require.NoError(t, err)
	assert.Same(t, raw, got)

	require.NoError(t, r.Destroy())
	assert.True(t, raw.IsUnique(), "destroying a wrapped record must not release the host tensor")
	assert.Equal(t, []float64{1, 2, 3, 4}, raw.AsFloat64())
}

func TestWrapRejectsLowRank(t *testing.T) {
	b := cpu.NewBridge()
	raw, err := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	_, err = b.Wrap(raw)
	require.ErrorIs(t, err, array.ErrInvalidShape)
	assert.Equal(t, 0, b.Live())
}

func TestReshapeOfWrappedValueSharesStorage(t *testing.T) {
	b := cpu.NewBridge()
	raw, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	r, err := b.Wrap(raw)
	require.NoError(t, err)
	defer r.Destroy()

	require.NoError(t, r.Reshape(array.Shape{3, 2}))
	view, err := b.Value(r)
	require.NoError(t, err)
	assert.NotSame(t, raw, view)
	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape(), "the host's own tensor keeps its shape")

	zeros, err := r.Create(array.Shape{3, 2})
	require.NoError(t, err)
	defer zeros.Destroy()
	require.NoError(t, r.MoveSamplesFrom(zeros, []array.SampleMapping{{Input: 0, Output: 0}}, 0, 2))
	assert.Equal(t, []float64{0, 0, 3, 4, 5, 6}, raw.AsFloat64(), "writes go through the shared buffer")
}

func TestCreateTracksChildren(t *testing.T) {
	b := gonum.NewBridge()
	parent, err := b.Wrap(mustArray(t, array.Shape{2, 2}))
	require.NoError(t, err)

	first, err := parent.Create(array.Shape{1, 1})
	require.NoError(t, err)
	second, err := parent.Create(array.Shape{2, 1})
	require.NoError(t, err)
	copied, err := parent.Copy()
	require.NoError(t, err)

	children, err := b.Children(parent)
	require.NoError(t, err)
	assert.Equal(t, []array.Handle{first.Handle(), second.Handle()}, children)

	require.NoError(t, first.Destroy())
	children, err = b.Children(parent)
	require.NoError(t, err)
	assert.Equal(t, []array.Handle{second.Handle()}, children)

	// Children outlive their parent.
	require.NoError(t, parent.Destroy())
	assert.Equal(t, array.Shape{2, 1}, second.Shape())
	require.NoError(t, second.Destroy())
	require.NoError(t, copied.Destroy())
	assert.Equal(t, 0, b.Live())
}

func TestValueFromOtherBackend(t *testing.T) {
	cpuBridge := cpu.NewBridge()
	gonumBridge := gonum.NewBridge()

	r, err := gonumBridge.Wrap(mustArray(t, array.Shape{2, 2}))
	require.NoError(t, err)
	defer r.Destroy()

	_, err = cpuBridge.Value(r)
	require.ErrorIs(t, err, array.ErrUnsupportedBackend)
}

func TestValueFromSecondBridgeOfSameBackend(t *testing.T) {
	a := gonum.NewBridge()
	b := gonum.NewBridge()

	r, err := a.Wrap(mustArray(t, array.Shape{2, 2}))
	require.NoError(t, err)
	defer r.Destroy()

	assert.Equal(t, a.Origin(), b.Origin())
	_, err = b.Value(r)
	require.ErrorIs(t, err, array.ErrUnsupportedBackend)
}

func TestMoveAcrossBridgesOfSameBackend(t *testing.T) {
	b1 := cpu.NewBridge()
	b2 := cpu.NewBridge()

	sevens, err := tensor.FromFloat64s([]float64{7, 7, 7, 7, 7, 7}, tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	nines, err := tensor.FromFloat64s([]float64{99, 99, 99, 99, 99, 99}, tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	zeros, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	src, err := b1.Wrap(sevens)
	require.NoError(t, err)
	defer src.Destroy()
	other, err := b2.Wrap(nines)
	require.NoError(t, err)
	defer other.Destroy()
	dst, err := b2.Wrap(zeros)
	require.NoError(t, err)
	defer dst.Destroy()
	require.Equal(t, src.Handle(), other.Handle(), "both arenas issue the same first handle")

	err = dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 0, Output: 0}}, 0, 3)
	require.ErrorIs(t, err, array.ErrOriginMismatch)
	assert.Equal(t, make([]float64, 6), zeros.AsFloat64())
}

func TestChildrenFromOtherBridge(t *testing.T) {
	a := gonum.NewBridge()
	b := gonum.NewBridge()

	r, err := a.Wrap(mustArray(t, array.Shape{2, 2}))
	require.NoError(t, err)
	defer r.Destroy()
	c, err := r.Create(array.Shape{1, 2})
	require.NoError(t, err)
	defer c.Destroy()

	_, err = b.Children(r)
	require.ErrorIs(t, err, array.ErrUnsupportedBackend)

	children, err := a.Children(r)
	require.NoError(t, err)
	assert.Equal(t, []array.Handle{c.Handle()}, children)
}

func TestMoveAcrossBackends(t *testing.T) {
	cpuBridge := cpu.NewBridge()
	gonumBridge := gonum.NewBridge()

	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	dst, err := cpuBridge.Wrap(raw)
	require.NoError(t, err)
	defer dst.Destroy()

	src, err := gonumBridge.Wrap(gonum.FromDense(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))
	require.NoError(t, err)
	defer src.Destroy()

	err = dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 0, Output: 0}}, 0, 3)
	require.ErrorIs(t, err, array.ErrOriginMismatch)
	assert.Equal(t, make([]float64, 6), raw.AsFloat64())
}

func TestSetDispatch(t *testing.T) {
	cpuBridge := cpu.NewBridge()
	gonumBridge := gonum.NewBridge()
	set := bridge.NewSet(cpuBridge, gonumBridge)

	raw, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	r1, err := set.Wrap(raw)
	require.NoError(t, err)
	defer r1.Destroy()
	assert.Equal(t, cpuBridge.Origin(), r1.Origin())

	dense := mat.NewDense(3, 2, nil)
	r2, err := set.Wrap(dense)
	require.NoError(t, err)
	defer r2.Destroy()
	assert.Equal(t, gonumBridge.Origin(), r2.Origin())

	v, err := set.Unwrap(r1)
	require.NoError(t, err)
	assert.Same(t, raw, v)

	v, err = set.Unwrap(r2)
	require.NoError(t, err)
	require.IsType(t, &gonum.Array{}, v)
	assert.Same(t, dense, v.(*gonum.Array).Matrix())

	_, err = set.Wrap([]float64{1, 2, 3})
	require.ErrorIs(t, err, array.ErrUnsupportedBackend)

	_, err = bridge.NewSet(cpuBridge).Unwrap(r2)
	require.ErrorIs(t, err, array.ErrUnsupportedBackend)
	assert.Contains(t, err.Error(), gonum.OriginName)

	assert.Panics(t, func() { set.Add(cpu.NewBridge()) })
}

func TestLifecycleLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := gonum.NewBridge(bridge.WithLogger(logger))

	r, err := b.Wrap(mustArray(t, array.Shape{2, 2}))
	require.NoError(t, err)
	c, err := r.Create(array.Shape{1, 2})
	require.NoError(t, err)
	require.NoError(t, r.Destroy())
	require.NoError(t, c.Destroy())

	out := buf.String()
	assert.Contains(t, out, "wrapped array")
	assert.Contains(t, out, "created array")
	assert.Contains(t, out, "destroyed array with live children")
	assert.Contains(t, out, "origin="+gonum.OriginName)
}

func mustArray(t *testing.T, shape array.Shape) *gonum.Array {
	t.Helper()
	a, err := gonum.NewArray(shape, nil)
	require.NoError(t, err)
	return a
}
