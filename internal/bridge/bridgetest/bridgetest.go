// Package bridgetest checks that a backend honours the array capability contract.
package bridgetest

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/origin"
)

// Factory creates a record of the backend under test holding values in row-major order.
type Factory func(shape array.Shape, values []float64) (*array.Record, error)

// Live reports how many arrays the backend currently tracks.
type Live func() int

// Run runs the conformance suite. name is the backend's origin name.
func Run(t *testing.T, name string, newArray Factory, live Live) {
	t.Helper()

	mk := func(t *testing.T, shape array.Shape, values []float64) *array.Record {
		t.Helper()
		if values == nil {
			values = make([]float64, shape.NumElements())
		}
		r, err := newArray(shape, values)
		require.NoError(t, err)
		t.Cleanup(func() { _ = r.Destroy() })
		return r
	}
	values := func(t *testing.T, r *array.Record) []float64 {
		t.Helper()
		v, err := r.Values()
		require.NoError(t, err)
		return v
	}

	t.Run("OriginRoundTrip", func(t *testing.T) {
		r := mk(t, array.Shape{2, 2}, nil)
		got, err := origin.Name(r.Origin())
		require.NoError(t, err)
		assert.Equal(t, name, got)
		assert.Equal(t, origin.Register(name), r.Origin())
	})

	t.Run("Reshape", func(t *testing.T) {
		r := mk(t, array.Shape{2, 3, 4}, sequence(24))

		require.NoError(t, r.Reshape(array.Shape{4, 6}))
		assert.Equal(t, array.Shape{4, 6}, r.Shape())
		assert.Equal(t, sequence(24), values(t, r))

		require.ErrorIs(t, r.Reshape(array.Shape{5, 5}), array.ErrInvalidShape)
		require.ErrorIs(t, r.Reshape(array.Shape{24}), array.ErrInvalidShape)
		assert.Equal(t, array.Shape{4, 6}, r.Shape())
		assert.Equal(t, sequence(24), values(t, r))
	})

	t.Run("SwapAxesInvolution", func(t *testing.T) {
		r := mk(t, array.Shape{2, 3, 4}, sequence(24))

		require.NoError(t, r.SwapAxes(0, 1))
		assert.Equal(t, array.Shape{3, 2, 4}, r.Shape())
		swapped := values(t, r)
		// new[j, i, k] == old[i, j, k]
		assert.Equal(t, 1*12+2*4+3.0, swapped[2*8+1*4+3])

		require.NoError(t, r.SwapAxes(0, 1))
		assert.Equal(t, array.Shape{2, 3, 4}, r.Shape())
		assert.Equal(t, sequence(24), values(t, r))

		require.ErrorIs(t, r.SwapAxes(0, 3), array.ErrAxisOutOfRange)
	})

	t.Run("CreateIsZeroed", func(t *testing.T) {
		r := mk(t, array.Shape{2, 2}, []float64{1, 2, 3, 4})

		c, err := r.Create(array.Shape{3, 2, 2})
		require.NoError(t, err)
		defer func() { require.NoError(t, c.Destroy()) }()

		assert.Equal(t, r.Origin(), c.Origin())
		assert.Equal(t, array.Shape{3, 2, 2}, c.Shape())
		assert.Equal(t, make([]float64, 12), values(t, c))
	})

	t.Run("CreateEmpty", func(t *testing.T) {
		r := mk(t, array.Shape{2, 2}, nil)

		c, err := r.Create(array.Shape{0, 5})
		require.NoError(t, err)
		defer func() { require.NoError(t, c.Destroy()) }()
		assert.Equal(t, array.Shape{0, 5}, c.Shape())
		assert.Empty(t, values(t, c))
	})

	t.Run("CopyIsIndependent", func(t *testing.T) {
		r := mk(t, array.Shape{3, 2, 5}, rowFilled(3))

		c, err := r.Copy()
		require.NoError(t, err)
		defer func() { require.NoError(t, c.Destroy()) }()
		assert.Equal(t, values(t, r), values(t, c))

		zeros, err := r.Create(array.Shape{3, 2, 5})
		require.NoError(t, err)
		defer func() { require.NoError(t, zeros.Destroy()) }()

		require.NoError(t, c.MoveSamplesFrom(zeros, []array.SampleMapping{{Input: 0, Output: 2}}, 0, 5))
		require.NoError(t, c.Reshape(array.Shape{6, 5}))

		assert.Equal(t, rowFilled(3), values(t, r))
		assert.Equal(t, array.Shape{3, 2, 5}, r.Shape())
	})

	t.Run("MoveSamplesScenario", func(t *testing.T) {
		src := mk(t, array.Shape{3, 2, 5}, rowFilled(3))
		dst := mk(t, array.Shape{4, 2, 5}, nil)

		samples := []array.SampleMapping{{Input: 0, Output: 1}, {Input: 2, Output: 3}}
		require.NoError(t, dst.MoveSamplesFrom(src, samples, 1, 4))

		got := values(t, dst)
		for i := 0; i < 4; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 5; k++ {
					want := 0.0
					if i == 3 && k >= 1 && k < 4 {
						want = 2
					}
					assert.Equal(t, want, got[i*10+j*5+k], "dst[%d, %d, %d]", i, j, k)
				}
			}
		}
	})

	t.Run("MoveSamplesAfterSwapAxes", func(t *testing.T) {
		// (2, 3) transposed to (3, 2): rows are the former columns.
		src := mk(t, array.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
		require.NoError(t, src.SwapAxes(0, 1))
		dst := mk(t, array.Shape{3, 2}, nil)

		require.NoError(t, dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 2, Output: 0}}, 0, 2))
		assert.Equal(t, []float64{3, 6, 0, 0, 0, 0}, values(t, dst))
	})

	t.Run("MoveSamplesOverlapLastWins", func(t *testing.T) {
		src := mk(t, array.Shape{3, 2, 5}, rowFilled(3))
		dst := mk(t, array.Shape{1, 2, 5}, nil)

		samples := []array.SampleMapping{{Input: 2, Output: 0}, {Input: 1, Output: 0}}
		require.NoError(t, dst.MoveSamplesFrom(src, samples, 0, 5))
		assert.Equal(t, rowFilled(2)[10:], values(t, dst))
	})

	t.Run("MoveSamplesManyRows", func(t *testing.T) {
		const rows = 300
		src := mk(t, array.Shape{rows, 1, 4}, sequence(rows*4))
		dst := mk(t, array.Shape{rows, 1, 4}, nil)

		samples := make([]array.SampleMapping, rows)
		for i := range samples {
			samples[i] = array.SampleMapping{Input: i, Output: rows - 1 - i}
		}
		require.NoError(t, dst.MoveSamplesFrom(src, samples, 0, 4))

		got := values(t, dst)
		for i := 0; i < rows; i++ {
			assert.Equal(t, float64((rows-1-i)*4+3), got[i*4+3])
		}
	})

	t.Run("MoveSamplesOutOfBounds", func(t *testing.T) {
		src := mk(t, array.Shape{3, 2, 5}, rowFilled(3))
		dst := mk(t, array.Shape{4, 2, 5}, nil)

		err := dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 0, Output: 0}, {Input: 3, Output: 1}}, 0, 5)
		require.ErrorIs(t, err, array.ErrIndexOutOfBounds)
		err = dst.MoveSamplesFrom(src, []array.SampleMapping{{Input: 1, Output: 0}}, 4, 6)
		require.ErrorIs(t, err, array.ErrIndexOutOfBounds)
		assert.Equal(t, make([]float64, 40), values(t, dst))
	})

	t.Run("ConcurrentUse", func(t *testing.T) {
		src := mk(t, array.Shape{3, 2, 5}, rowFilled(3))
		dst := mk(t, array.Shape{4, 2, 5}, nil)
		shared := mk(t, array.Shape{3, 4}, sequence(12))
		before := live()

		const rounds = 50
		var g errgroup.Group
		for row := 0; row < 4; row++ {
			row := row
			g.Go(func() error {
				for i := 0; i < rounds; i++ {
					mapping := []array.SampleMapping{{Input: row % 3, Output: row}}
					if err := dst.MoveSamplesFrom(src, mapping, 0, 5); err != nil {
						return err
					}
				}
				return nil
			})
		}
		for w := 0; w < 2; w++ {
			g.Go(func() error {
				for i := 0; i < rounds; i++ {
					if err := shared.Reshape(array.Shape{2, 6}); err != nil {
						return err
					}
					if err := shared.Reshape(array.Shape{3, 4}); err != nil {
						return err
					}
				}
				return nil
			})
			g.Go(func() error {
				for i := 0; i < rounds; i++ {
					c, err := shared.Copy()
					if err != nil {
						return err
					}
					v, err := c.Values()
					if err != nil {
						return err
					}
					if !slices.Equal(v, sequence(12)) {
						return fmt.Errorf("copy %d holds %v", i, v)
					}
					if err := c.Destroy(); err != nil {
						return err
					}
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		want := make([]float64, 40)
		for row := 0; row < 4; row++ {
			for k := 0; k < 10; k++ {
				want[row*10+k] = float64(row % 3)
			}
		}
		assert.Equal(t, want, values(t, dst))
		assert.Equal(t, sequence(12), values(t, shared))
		assert.Contains(t, []array.Shape{{2, 6}, {3, 4}}, shared.Shape())
		assert.Equal(t, before, live())
	})

	t.Run("DestroyReleasesHandle", func(t *testing.T) {
		before := live()
		r, err := newArray(array.Shape{2, 2}, make([]float64, 4))
		require.NoError(t, err)
		c, err := r.Create(array.Shape{2, 2})
		require.NoError(t, err)
		assert.Equal(t, before+2, live())

		require.NoError(t, r.Destroy())
		require.NoError(t, c.Destroy())
		assert.Equal(t, before, live())

		require.ErrorIs(t, c.Destroy(), array.ErrDestroyed)
		_, err = r.Values()
		require.ErrorIs(t, err, array.ErrDestroyed)
	})
}

// sequence returns 0, 1, ..., n-1.
func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// rowFilled returns the values of a (rows, 2, 5) array holding its row index.
func rowFilled(rows int) []float64 {
	out := make([]float64, rows*10)
	for i := range out {
		out[i] = float64(i / 10)
	}
	return out
}
