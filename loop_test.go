package gfx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoop(t *testing.T, r *recorder) *Loop {
	t.Helper()
	sprite, err := NewSprite(r, r.target(), testShaders(), testPNG(t, 8, 8), 640, 480)
	require.NoError(t, err)
	r.ops = nil

	ctx := NewContext(r, r, r, sprite.Data.Out, nil)
	return NewLoop(ctx, sprite, nil)
}

func TestLoopStepOrder(t *testing.T) {
	r := newRecorder()
	l := newTestLoop(t, r)

	ok, err := l.Step()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []string{"encoder", "poll", "submit", "swap", "cleanup"}, r.ops)
	assert.Equal(t, 1, l.Frames())
	assert.Equal(t, Running, l.State())
}

func TestLoopClearsBeforeDraw(t *testing.T) {
	r := newRecorder()
	l := newTestLoop(t, r)

	for i := 0; i < 3; i++ {
		_, err := l.Step()
		require.NoError(t, err)
	}

	require.Len(t, r.submitted, 3)
	for _, cmds := range r.submitted {
		require.Len(t, cmds, 2)

		clear, ok := cmds[0].(ClearCommand)
		require.True(t, ok, "first command is %T", cmds[0])
		assert.Equal(t, Color{0.1, 0.1, 0.1, 1.0}, clear.Color)
		assert.Equal(t, l.Data.Out, clear.Target)

		draw, ok := cmds[1].(DrawCommand)
		require.True(t, ok, "second command is %T", cmds[1])
		assert.Equal(t, l.Slice, draw.Slice)
		assert.Equal(t, l.Pipeline, draw.Pipeline)
	}
}

func TestLoopEscapeAfterOtherKey(t *testing.T) {
	r := newRecorder()
	r.events = [][]Event{
		{KeyboardInput(KeyOther, Press), KeyboardInput(KeyOther, Release)},
		{KeyboardInput(KeyEscape, Press)},
		{KeyboardInput(KeyOther, Press)},
	}
	l := newTestLoop(t, r)

	require.NoError(t, l.Run())

	assert.Equal(t, 1, l.Frames())
	assert.Len(t, r.submitted, 1)
	assert.Equal(t, Exiting, l.State())
	assert.Equal(t, []string{
		"encoder", "poll", "submit", "swap", "cleanup",
		"encoder", "poll",
	}, r.ops)

	ok, err := l.Step()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, r.submitted, 1)
}

func TestLoopCloseBeforeFirstFrame(t *testing.T) {
	r := newRecorder()
	r.events = [][]Event{{Closed()}}
	l := newTestLoop(t, r)

	require.NoError(t, l.Run())
	assert.Zero(t, l.Frames())
	assert.Empty(t, r.submitted)
	assert.NotContains(t, r.ops, "swap")
}

func TestLoopEscapeReleaseDoesNotExit(t *testing.T) {
	r := newRecorder()
	r.events = [][]Event{
		{KeyboardInput(KeyEscape, Release)},
		{KeyboardInput(KeyEscape, Repeat)},
		{Closed()},
	}
	l := newTestLoop(t, r)

	require.NoError(t, l.Run())
	assert.Equal(t, 2, l.Frames())
}

func TestLoopSubmitErrorIsFatal(t *testing.T) {
	r := newRecorder()
	r.submitErr = fmt.Errorf("device lost")
	l := newTestLoop(t, r)

	err := l.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, r.submitErr)
	assert.NotContains(t, r.ops, "swap")
}

func TestEventRequestsExit(t *testing.T) {
	assert.True(t, Closed().RequestsExit())
	assert.True(t, KeyboardInput(KeyEscape, Press).RequestsExit())
	assert.False(t, KeyboardInput(KeyEscape, Release).RequestsExit())
	assert.False(t, KeyboardInput(KeyOther, Press).RequestsExit())
	assert.False(t, Event{}.RequestsExit())
}
