package platform

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/core"
	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

// Terminal runs the application inside a tcell screen
//
// Terminals deliver key presses only, so every key pressed during one pump is
// released at the start of the next. Mouse button state is reported as a mask
// with each mouse event and maps directly onto press/release transitions
type Terminal struct {
	screen tcell.Screen
	frame  time.Duration

	events chan tcell.Event
	quit   chan struct{}
	held   []input.Key

	stopOnce sync.Once
}

// NewTerminal creates a backend that opens the controlling terminal on Startup
func NewTerminal(frame time.Duration) *Terminal {
	return &Terminal{frame: frame}
}

// NewTerminalScreen creates a backend over an existing, uninitialized screen
func NewTerminalScreen(screen tcell.Screen, frame time.Duration) *Terminal {
	return &Terminal{screen: screen, frame: frame}
}

// Screen returns the underlying screen, nil before Startup
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Startup initializes the screen and starts event forwarding
// Position and size are owned by the terminal emulator; the requested
// geometry is only logged
func (t *Terminal) Startup(x, y int16, width, height uint16) error {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "open terminal")
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	core.SetCrashFinalizer(t.screen.Fini)

	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.screen.Clear()
	t.screen.Show()

	t.events = make(chan tcell.Event, 64)
	t.quit = make(chan struct{})
	screen, events, quit := t.screen, t.events, t.quit
	core.Go(func() { screen.ChannelEvents(events, quit) })

	w, h := t.screen.Size()
	log.Infof("terminal %dx%d cells (requested %dx%d at %d,%d)", w, h, width, height, x, y)
	return nil
}

// PumpMessages releases last pump's keys, then handles at most one terminal event
func (t *Terminal) PumpMessages(in *input.State, ch event.Sender) bool {
	for _, k := range t.held {
		in.ProcessKey(ch, k, false)
	}
	t.held = t.held[:0]

	ev, ok, waited := t.next()
	if !waited {
		return true
	}
	if !ok {
		log.Info("terminal event stream closed")
		return false
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev, in, ch)

	case *tcell.EventMouse:
		t.handleMouse(ev, in, ch)

	case *tcell.EventResize:
		w, h := ev.Size()
		t.screen.Sync()
		ch.Publish(event.CodeResized, 0, event.ResizeContext(uint16(w), uint16(h)))

	case *tcell.EventError:
		log.Warningf("terminal error: %v", ev)
	}
	return true
}

// next waits up to one frame for an event
// waited is false when the frame elapsed with nothing to read
// A non-positive frame polls the queue once
func (t *Terminal) next() (ev tcell.Event, ok, waited bool) {
	if t.events == nil {
		return nil, false, true
	}
	if t.frame <= 0 {
		select {
		case ev, ok = <-t.events:
			return ev, ok, true
		default:
			return nil, false, false
		}
	}

	timer := time.NewTimer(t.frame)
	defer timer.Stop()
	select {
	case ev, ok = <-t.events:
		return ev, ok, true
	case <-timer.C:
		return nil, false, false
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey, in *input.State, ch event.Sender) bool {
	if ev.Key() == tcell.KeyCtrlC {
		log.Info("Ctrl+C, terminating")
		return false
	}

	key, ok := translateKey(ev)
	if !ok {
		log.Debugf("unmapped key %s", ev.Name())
		return true
	}

	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		t.press(in, ch, input.KeyShift)
	}
	if mods&tcell.ModCtrl != 0 {
		t.press(in, ch, input.KeyControl)
	}
	if mods&tcell.ModAlt != 0 {
		t.press(in, ch, input.KeyLMenu)
	}
	t.press(in, ch, key)
	return true
}

func (t *Terminal) press(in *input.State, ch event.Sender, key input.Key) {
	in.ProcessKey(ch, key, true)
	t.held = append(t.held, key)
}

var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button input.Button
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button2, input.ButtonRight},
	{tcell.Button3, input.ButtonMiddle},
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse, in *input.State, ch event.Sender) {
	x, y := ev.Position()
	in.ProcessMouseMove(ch, int16(x), int16(y))

	mask := ev.Buttons()
	for _, b := range mouseButtons {
		in.ProcessButton(ch, b.button, mask&b.mask != 0)
	}

	switch {
	case mask&tcell.WheelUp != 0:
		in.ProcessWheel(ch, 1)
	case mask&tcell.WheelDown != 0:
		in.ProcessWheel(ch, -1)
	}
}

// Shutdown stops event forwarding and restores the terminal
func (t *Terminal) Shutdown() {
	t.stopOnce.Do(func() {
		if t.quit != nil {
			close(t.quit)
		}
		if t.screen != nil {
			t.screen.Fini()
		}
		core.SetCrashFinalizer(nil)
	})
}

var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape:    input.KeyEscape,
	tcell.KeyEnter:     input.KeyEnter,
	tcell.KeyTab:       input.KeyTab,
	tcell.KeyBacktab:   input.KeyTab,
	tcell.KeyBackspace: input.KeyBackspace,
	tcell.KeyUp:        input.KeyUp,
	tcell.KeyDown:      input.KeyDown,
	tcell.KeyLeft:      input.KeyLeft,
	tcell.KeyRight:     input.KeyRight,
	tcell.KeyPgUp:      input.KeyPrior,
	tcell.KeyPgDn:      input.KeyNext,
	tcell.KeyHome:      input.KeyHome,
	tcell.KeyEnd:       input.KeyEnd,
	tcell.KeyInsert:    input.KeyInsert,
	tcell.KeyDelete:    input.KeyDelete,
	tcell.KeyHelp:      input.KeyHelp,
	tcell.KeyPrint:     input.KeyPrint,
	tcell.KeyPause:     input.KeyPause,
}

// translateKey maps a tcell key event onto the virtual key table
func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	k := ev.Key()
	if k == tcell.KeyRune {
		return input.KeyFromRune(ev.Rune())
	}
	if key, ok := namedKeys[k]; ok {
		return key, true
	}
	switch {
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		return input.KeyF1 + input.Key(k-tcell.KeyF1), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return input.KeyA + input.Key(k-tcell.KeyCtrlA), true
	}
	return 0, false
}
