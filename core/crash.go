// Package core holds process-level plumbing shared by the executable and the
// platform backends: crash recovery and OS signal forwarding.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("pincel.core")

var (
	finalizerMu sync.Mutex
	finalizer   func()

	// Replaced in tests
	crashOut io.Writer = os.Stderr
	exit               = os.Exit
)

// SetCrashFinalizer registers fn to run before a crash report is printed
// A platform registers its surface teardown so the tty is usable for the trace
// Pass nil to clear
func SetCrashFinalizer(fn func()) {
	finalizerMu.Lock()
	finalizer = fn
	finalizerMu.Unlock()
}

func runFinalizer() {
	finalizerMu.Lock()
	fn := finalizer
	finalizer = nil
	finalizerMu.Unlock()
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(crashOut, "crash finalizer panicked: %v\n", r)
		}
	}()
	fn()
}

// HandleCrash restores the surface, prints the panic value and stack, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	runFinalizer()
	log.Criticalf("crash: %v", r)

	fmt.Fprintf(crashOut, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", debug.Stack())
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the go keyword for helpers that outlive a call
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
