package core

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/pincel/event"
)

// QuitSignals are the signals that ask the application to stop
var QuitSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}

// ForwardSignals publishes APPLICATION_QUIT on ch for every received signal
// Defaults to QuitSignals when sigs is empty. The returned stop func detaches
// the handler and ends the forwarding goroutine
func ForwardSignals(ch event.Sender, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = QuitSignals
	}

	notify := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(notify, sigs...)

	Go(func() {
		for {
			select {
			case sig := <-notify:
				log.Infof("signal %s, requesting quit", sig)
				ch.Publish(event.CodeApplicationQuit, 0, event.Context{})
			case <-done:
				return
			}
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(notify)
			close(done)
		})
	}
}
