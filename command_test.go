package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderFlush(t *testing.T) {
	r := newRecorder()
	target := r.target()
	enc := NewEncoder()

	enc.Clear(target, ClearColor)
	enc.Draw(Slice{End: 6}, PipelineState{}, PipeData{Out: target})
	require.Len(t, enc.Commands(), 2)

	require.NoError(t, enc.Flush(r))
	assert.Empty(t, enc.Commands())

	require.Len(t, r.submitted, 1)
	assert.Equal(t, ClearCommand{Target: target, Color: ClearColor}, r.submitted[0][0])
	assert.IsType(t, DrawCommand{}, r.submitted[0][1])
}

func TestEncoderFlushEmpty(t *testing.T) {
	r := newRecorder()

	require.NoError(t, NewEncoder().Flush(r))
	require.Len(t, r.submitted, 1)
	assert.Empty(t, r.submitted[0])
}
