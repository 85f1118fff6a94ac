package bridge

import (
	"testing"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaReuseBumpsGeneration(t *testing.T) {
	var a arena[string]

	h1 := a.insert("first")
	v, err := a.get(h1)
	require.NoError(t, err)
	assert.Equal(t, "first", *v)

	removed, err := a.remove(h1)
	require.NoError(t, err)
	assert.Equal(t, "first", removed)
	assert.Equal(t, 0, a.len())

	h2 := a.insert("second")
	assert.Equal(t, h1.Index, h2.Index)
	assert.NotEqual(t, h1.Generation, h2.Generation)

	_, err = a.get(h1)
	require.ErrorIs(t, err, array.ErrDestroyed)
	_, err = a.remove(h1)
	require.ErrorIs(t, err, array.ErrDestroyed)

	v, err = a.get(h2)
	require.NoError(t, err)
	assert.Equal(t, "second", *v)
}

func TestArenaUnknownHandle(t *testing.T) {
	var a arena[int]
	_, err := a.get(array.Handle{Index: 7, Generation: 1})
	require.ErrorIs(t, err, array.ErrDestroyed)
}
