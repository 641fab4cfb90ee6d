package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaInsertGet(t *testing.T) {
	var a Arena[string]

	h := a.Insert("first")
	require.True(t, h.Valid())

	v, err := a.Get(h)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	_, err = a.Get(Handle{})
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestArenaReleaseCollect(t *testing.T) {
	var a Arena[string]

	h := a.Insert("shared")
	require.NoError(t, a.Retain(h))

	require.NoError(t, a.Release(h))
	assert.Equal(t, 1, a.Len())

	require.NoError(t, a.Release(h))
	assert.Equal(t, 0, a.Len())

	_, err := a.Get(h)
	assert.ErrorIs(t, err, ErrStaleHandle)

	var destroyed []string
	n := a.Collect(func(v string) { destroyed = append(destroyed, v) })
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"shared"}, destroyed)

	assert.Zero(t, a.Collect(nil))
}

func TestArenaStaleHandleAfterReuse(t *testing.T) {
	var a Arena[int]

	old := a.Insert(1)
	require.NoError(t, a.Release(old))
	a.Collect(nil)

	fresh := a.Insert(2)
	assert.Equal(t, old.index, fresh.index)
	assert.NotEqual(t, old.gen, fresh.gen)

	_, err := a.Get(old)
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.ErrorIs(t, a.Release(old), ErrStaleHandle)

	v, err := a.Get(fresh)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestArenaDrain(t *testing.T) {
	var a Arena[int]

	a.Insert(1)
	h := a.Insert(2)
	a.Insert(3)
	require.NoError(t, a.Release(h))

	sum := 0
	a.Drain(func(v int) { sum += v })
	assert.Equal(t, 6, sum)
	assert.Equal(t, 0, a.Len())
}
