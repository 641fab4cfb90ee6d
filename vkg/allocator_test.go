package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	assert.EqualValues(t, 12, makeAlignUp(12, 3))
	assert.EqualValues(t, 12, makeAlignUp(10, 3))
	assert.EqualValues(t, 7, makeAlignUp(7, 1))
	assert.EqualValues(t, 7, makeAlignUp(7, 0))
	assert.EqualValues(t, 256, makeAlignUp(200, 256))
}

func TestAllocator(t *testing.T) {
	a := LinearAllocator{Size: 1024}

	assert.Nil(t, a.Allocate(2048, 1), "larger than the pool")
	assert.Nil(t, a.Allocate(0, 1), "empty allocation")

	first := a.Allocate(512, 1)
	require.NotNil(t, first)
	assert.EqualValues(t, 0, first.Offset)

	assert.Nil(t, a.Allocate(768, 1))

	k := a.Allocate(500, 1)
	require.NotNil(t, k)
	assert.EqualValues(t, 512, k.Offset)

	assert.Nil(t, a.Allocate(50, 1))

	tail := a.Allocate(5, 1)
	require.NotNil(t, tail)
	assert.EqualValues(t, 1012, tail.Offset)

	assert.Nil(t, a.Allocate(20, 1))

	a.Free(k)
	again := a.Allocate(500, 1)
	require.NotNil(t, again, "freed range is reused: %s", a.String())
	assert.EqualValues(t, 512, again.Offset)

	a.Free(first)
	r := a.Allocate(20, 1)
	require.NotNil(t, r)
	assert.EqualValues(t, 0, r.Offset)

	r = a.Allocate(40, 1)
	require.NotNil(t, r)
	assert.EqualValues(t, 20, r.Offset)

	r = a.Allocate(12, 1)
	require.NotNil(t, r)
	assert.EqualValues(t, 60, r.Offset)

	assert.Nil(t, a.Allocate(500, 1))

	r = a.Allocate(5, 1)
	require.NotNil(t, r)
	assert.EqualValues(t, 72, r.Offset)

	assert.EqualValues(t, 20+40+12+5+500+5, a.Used())
}

func TestAllocatorAlignment(t *testing.T) {
	a := LinearAllocator{Size: 256}

	r := a.Allocate(10, 1)
	require.NotNil(t, r)
	assert.EqualValues(t, 0, r.Offset)

	r = a.Allocate(16, 64)
	require.NotNil(t, r)
	assert.EqualValues(t, 64, r.Offset)

	r = a.Allocate(8, 64)
	require.NotNil(t, r)
	assert.EqualValues(t, 128, r.Offset)

	assert.Nil(t, a.Allocate(100, 64), "aligned start leaves 64 bytes")
	assert.EqualValues(t, 34, a.Used())
}

func TestAllocatorFreeUnknown(t *testing.T) {
	a := LinearAllocator{Size: 64}
	r := a.Allocate(64, 1)
	require.NotNil(t, r)

	a.Free(&Allocation{Offset: 0, Size: 64})
	assert.Nil(t, a.Allocate(1, 1), "only the allocation itself frees its range")

	a.Free(r)
	assert.NotNil(t, a.Allocate(64, 1))
}
