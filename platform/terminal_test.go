package platform

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

type terminalHarness struct {
	screen tcell.SimulationScreen
	term   *Terminal
	in     *input.State
	ch     *event.Channel
}

func newTerminalHarness(t *testing.T) *terminalHarness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	h := &terminalHarness{
		screen: screen,
		term:   NewTerminalScreen(screen, 2*time.Second),
		in:     input.NewState(),
		ch:     event.NewChannel(nil),
	}
	require.NoError(t, h.term.Startup(0, 0, 80, 25))
	t.Cleanup(h.term.Shutdown)
	return h
}

func (h *terminalHarness) pump() bool {
	return h.term.PumpMessages(h.in, h.ch.Sender())
}

// drain returns the publishes queued since the last call
func (h *terminalHarness) drain() []event.Publish {
	var out []event.Publish
	for {
		msg, ok := h.ch.TryRecv()
		if !ok {
			return out
		}
		if pub, ok := msg.(event.Publish); ok {
			out = append(out, pub)
		}
	}
}

func TestTerminalKeyPressReleasedNextPump(t *testing.T) {
	h := newTerminalHarness(t)

	h.screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	require.True(t, h.pump())
	pubs := h.drain()
	require.Len(t, pubs, 1)
	assert.Equal(t, event.CodeKeyPressed, pubs[0].Code)
	assert.Equal(t, uint16(input.KeyA), pubs[0].Context.U16(0))
	assert.True(t, h.in.IsKeyDown(input.KeyA))

	h.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.True(t, h.pump())
	pubs = h.drain()
	require.Len(t, pubs, 2)
	assert.Equal(t, event.CodeKeyReleased, pubs[0].Code)
	assert.Equal(t, uint16(input.KeyA), pubs[0].Context.U16(0))
	assert.Equal(t, event.CodeKeyPressed, pubs[1].Code)
	assert.Equal(t, uint16(input.KeyEscape), pubs[1].Context.U16(0))
}

func TestTerminalCtrlModifierPressesControl(t *testing.T) {
	h := newTerminalHarness(t)

	h.screen.InjectKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	require.True(t, h.pump())
	assert.True(t, h.in.IsKeyDown(input.KeyControl))
	assert.True(t, h.in.IsKeyDown(input.KeyX))
}

func TestTerminalCtrlCTerminates(t *testing.T) {
	h := newTerminalHarness(t)

	h.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	assert.False(t, h.pump())
	assert.Empty(t, h.drain())
}

func TestTerminalMouse(t *testing.T) {
	h := newTerminalHarness(t)

	h.screen.InjectMouse(3, 4, tcell.Button1, tcell.ModNone)
	require.True(t, h.pump())
	pubs := h.drain()
	require.Len(t, pubs, 2)
	assert.Equal(t, event.CodeMouseMoved, pubs[0].Code)
	assert.Equal(t, int16(3), pubs[0].Context.I16(0))
	assert.Equal(t, int16(4), pubs[0].Context.I16(1))
	assert.Equal(t, event.CodeButtonPressed, pubs[1].Code)
	assert.Equal(t, uint16(input.ButtonLeft), pubs[1].Context.U16(0))

	h.screen.InjectMouse(3, 4, tcell.ButtonNone, tcell.ModNone)
	require.True(t, h.pump())
	pubs = h.drain()
	require.Len(t, pubs, 1)
	assert.Equal(t, event.CodeButtonReleased, pubs[0].Code)

	h.screen.InjectMouse(3, 4, tcell.WheelUp, tcell.ModNone)
	require.True(t, h.pump())
	pubs = h.drain()
	require.Len(t, pubs, 1)
	assert.Equal(t, event.CodeMouseWheel, pubs[0].Code)
	assert.Equal(t, int8(1), pubs[0].Context.I8(0))
}

func TestTerminalResize(t *testing.T) {
	h := newTerminalHarness(t)

	require.NoError(t, h.screen.PostEvent(tcell.NewEventResize(120, 40)))
	require.True(t, h.pump())
	pubs := h.drain()
	require.Len(t, pubs, 1)
	assert.Equal(t, event.CodeResized, pubs[0].Code)
	assert.Equal(t, uint16(120), pubs[0].Context.U16(0))
	assert.Equal(t, uint16(40), pubs[0].Context.U16(1))
}

func TestTerminalIdlePumpTimesOut(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalScreen(screen, 10*time.Millisecond)
	require.NoError(t, term.Startup(0, 0, 80, 25))
	defer term.Shutdown()

	assert.True(t, term.PumpMessages(input.NewState(), event.NewChannel(nil).Sender()))
}

func TestTerminalShutdownClosesStream(t *testing.T) {
	h := newTerminalHarness(t)

	h.term.Shutdown()
	assert.False(t, h.pump())
	h.term.Shutdown()
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), input.KeyQ, true},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), input.Key7, true},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.KeyEnter, true},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), input.KeyNext, true},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), input.KeyF1 + 4, true},
		{tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.ev.Name(), func(t *testing.T) {
			got, ok := translateKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
