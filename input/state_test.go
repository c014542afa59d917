package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pincel/event"
)

// drain pops every queued message as a Publish
func drain(t *testing.T, ch *event.Channel) []event.Publish {
	t.Helper()
	var out []event.Publish
	for {
		msg, ok := ch.TryRecv()
		if !ok {
			return out
		}
		pub, ok := msg.(event.Publish)
		require.True(t, ok, "unexpected %T", msg)
		out = append(out, pub)
	}
}

func TestProcessKeySustainedPressPublishesOnce(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()

	s.ProcessKey(ch.Sender(), KeyA, true)
	s.ProcessKey(ch.Sender(), KeyA, true)

	msgs := drain(t, ch)
	require.Len(t, msgs, 1)
	assert.Equal(t, event.CodeKeyPressed, msgs[0].Code)
	assert.Equal(t, uint16(KeyA), msgs[0].Context.U16(0))
}

func TestProcessKeyPressThenRelease(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()

	s.ProcessKey(ch.Sender(), KeyEscape, true)
	s.ProcessKey(ch.Sender(), KeyEscape, false)

	r, err := event.NewRegistry(event.DefaultCapacity, ch, nil)
	require.NoError(t, err)
	var seen []event.Code
	h := event.Func(func(code event.Code, _, _ event.Handle, ctx event.Context, _ event.Sender) bool {
		assert.Equal(t, uint16(KeyEscape), ctx.U16(0))
		seen = append(seen, code)
		return true
	})
	r.Register(event.CodeKeyPressed, 0, h)
	r.Register(event.CodeKeyReleased, 0, h)

	for r.ListenMessages() {
	}
	assert.Equal(t, []event.Code{event.CodeKeyPressed, event.CodeKeyReleased}, seen)
}

func TestProcessKeyReleaseOfUpKeyIsSilent(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()
	s.ProcessKey(ch.Sender(), KeyB, false)
	assert.Empty(t, drain(t, ch))
}

func TestProcessKeyOutOfTable(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()
	s.ProcessKey(ch.Sender(), KeyMax+1, true)
	assert.Empty(t, drain(t, ch))
	assert.False(t, s.IsKeyDown(KeyMax+1))
}

func TestProcessButtonEdges(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()

	s.ProcessButton(ch.Sender(), ButtonRight, true)
	s.ProcessButton(ch.Sender(), ButtonRight, true)
	s.ProcessButton(ch.Sender(), ButtonRight, false)
	s.ProcessButton(ch.Sender(), ButtonMax, true)

	msgs := drain(t, ch)
	require.Len(t, msgs, 2)
	assert.Equal(t, event.CodeButtonPressed, msgs[0].Code)
	assert.Equal(t, event.CodeButtonReleased, msgs[1].Code)
	assert.Equal(t, uint16(ButtonRight), msgs[1].Context.U16(0))
}

func TestProcessMouseMoveIsEdgeTriggered(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()

	s.ProcessMouseMove(ch.Sender(), 0, 0)
	s.ProcessMouseMove(ch.Sender(), 10, -4)
	s.ProcessMouseMove(ch.Sender(), 10, -4)

	msgs := drain(t, ch)
	require.Len(t, msgs, 1)
	assert.Equal(t, event.CodeMouseMoved, msgs[0].Code)
	assert.Equal(t, int16(10), msgs[0].Context.I16(0))
	assert.Equal(t, int16(-4), msgs[0].Context.I16(1))
}

func TestProcessWheel(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()
	s.ProcessWheel(ch.Sender(), 0)
	s.ProcessWheel(ch.Sender(), -1)
	s.ProcessWheel(ch.Sender(), -1)

	msgs := drain(t, ch)
	require.Len(t, msgs, 2)
	assert.Equal(t, int8(-1), msgs[1].Context.I8(0))
}

func TestUpdateRollsCurrentIntoPrevious(t *testing.T) {
	ch := event.NewChannel(nil)
	s := NewState()

	s.ProcessKey(ch.Sender(), KeySpace, true)
	s.ProcessButton(ch.Sender(), ButtonLeft, true)
	s.ProcessMouseMove(ch.Sender(), 3, 4)
	assert.True(t, s.IsKeyDown(KeySpace))
	assert.False(t, s.WasKeyDown(KeySpace))
	assert.False(t, s.WasButtonDown(ButtonLeft))

	s.Update(16 * time.Millisecond)
	assert.True(t, s.WasKeyDown(KeySpace))
	assert.True(t, s.WasButtonDown(ButtonLeft))
	px, py := s.PreviousMousePosition()
	assert.Equal(t, [2]int16{3, 4}, [2]int16{px, py})
	assert.Equal(t, 16*time.Millisecond, s.Delta())

	// Edge detection uses current, not previous
	s.ProcessKey(ch.Sender(), KeySpace, false)
	assert.False(t, s.IsKeyDown(KeySpace))
	assert.True(t, s.WasKeyDown(KeySpace))
	msgs := drain(t, ch)
	assert.Equal(t, event.CodeKeyReleased, msgs[len(msgs)-1].Code)
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "escape", KeyEscape.String())
	assert.Equal(t, "q", (KeyA + 16).String())
	assert.Equal(t, "f5", (KeyF1 + 4).String())
	assert.Equal(t, "numpad3", (KeyNumpad0 + 3).String())

	k, ok := ParseKey(" Escape ")
	assert.True(t, ok)
	assert.Equal(t, KeyEscape, k)
	k, ok = ParseKey("f12")
	assert.True(t, ok)
	assert.Equal(t, KeyF12, k)
	_, ok = ParseKey("hyper")
	assert.False(t, ok)

	k, ok = KeyFromRune('Q')
	assert.True(t, ok)
	assert.Equal(t, KeyA+16, k)
	_, ok = KeyFromRune('é')
	assert.False(t, ok)

	assert.Equal(t, "wheel_up", ButtonWheelUp.String())
}
