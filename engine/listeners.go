package engine

import (
	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

// Builtins exposes the listeners Create registers so callers can reorder them
type Builtins struct {
	Listener event.Handle
	Quit     event.Handler // CodeApplicationQuit
	Key      event.Handler // CodeKeyPressed
	Resize   event.Handler // CodeResized
	Mouse    event.Handler // CodeMouseMoved
}

// quitListener stops the loop on APPLICATION_QUIT
type quitListener struct {
	app *Application
}

func (l *quitListener) HandleEvent(code event.Code, sender, listener event.Handle, ctx event.Context, ch event.Sender) bool {
	if code != event.CodeApplicationQuit {
		return false
	}
	log.Info("APPLICATION_QUIT received, shutting down")
	l.app.running.Store(false)
	return true
}

// keyListener turns the quit key into APPLICATION_QUIT
// It claims every KEY_PRESSED, so listeners registered after it never see key presses
type keyListener struct {
	app *Application
}

func (l *keyListener) HandleEvent(code event.Code, sender, listener event.Handle, ctx event.Context, ch event.Sender) bool {
	if code != event.CodeKeyPressed {
		return false
	}
	if input.Key(ctx.U16(0)) == l.app.quitKey {
		ch.Publish(event.CodeApplicationQuit, listener, event.Context{})
	}
	return true
}

// resizeListener records the surface size; other listeners still see RESIZED
type resizeListener struct {
	app *Application
}

func (l *resizeListener) HandleEvent(code event.Code, sender, listener event.Handle, ctx event.Context, ch event.Sender) bool {
	if code != event.CodeResized {
		return false
	}
	l.app.width, l.app.height = ctx.U16(0), ctx.U16(1)
	log.Debugf("RESIZED %dx%d", l.app.width, l.app.height)
	return false
}

// mouseListener records the pointer position; other listeners still see MOUSE_MOVED
type mouseListener struct {
	app *Application
}

func (l *mouseListener) HandleEvent(code event.Code, sender, listener event.Handle, ctx event.Context, ch event.Sender) bool {
	if code != event.CodeMouseMoved {
		return false
	}
	l.app.mouseX, l.app.mouseY = ctx.I16(0), ctx.I16(1)
	return false
}

func (a *Application) registerBuiltins() error {
	a.builtins = Builtins{
		Listener: event.NewHandle(),
		Quit:     &quitListener{app: a},
		Key:      &keyListener{app: a},
		Resize:   &resizeListener{app: a},
		Mouse:    &mouseListener{app: a},
	}

	subs := []struct {
		code    event.Code
		handler event.Handler
	}{
		{event.CodeApplicationQuit, a.builtins.Quit},
		{event.CodeKeyPressed, a.builtins.Key},
		{event.CodeResized, a.builtins.Resize},
		{event.CodeMouseMoved, a.builtins.Mouse},
	}
	for _, s := range subs {
		if _, err := a.registry.Register(s.code, a.builtins.Listener, s.handler); err != nil {
			return err
		}
	}
	return nil
}
