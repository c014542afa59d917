package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	"golang.org/x/term"

	"github.com/lixenwraith/pincel/audio"
	"github.com/lixenwraith/pincel/core"
	"github.com/lixenwraith/pincel/engine"
	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/platform"
)

// GitSummary contains the version number
var GitSummary string
var logger = logging.MustGetLogger("pincel.main")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := NewCommandLine(GitSummary).ParseParameters(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pincel: %v\n", err)
		return 2
	}

	backend := resolveBackend(cfg.Backend, term.IsTerminal(int(os.Stdout.Fd())))
	logFile, err := setupLogging(cfg.Verbosity, logPath(cfg.LogFile, backend))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pincel: %v\n", err)
		return 1
	}
	if logFile != nil {
		defer logFile.Close()
	}

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	p, err := platform.New(backend, cfg.FrameInterval.Duration)
	if err != nil {
		logger.Errorf("platform: %v", err)
		return 1
	}
	app, err := engine.Default(cfg, p)
	if err != nil {
		logger.Errorf("create %s: %v", cfg.Name, err)
		fmt.Fprintf(os.Stderr, "pincel: %v\n", err)
		return 1
	}
	defer app.Close()

	stop := core.ForwardSignals(app.Sender())
	defer stop()

	if cfg.Sound {
		cue := audio.NewCue()
		if err := cue.Init(); err != nil {
			logger.Warningf("audio disabled: %v", err)
		} else {
			defer cue.Close()
			if err := cue.Subscribe(app.Registry(), event.NewHandle()); err != nil {
				logger.Warningf("audio cue: %v", err)
			}
		}
	}

	if err := traceInput(app); err != nil {
		logger.Warningf("input trace: %v", err)
	}

	logger.Infof("%s running on %s backend", cfg.Name, backend)
	if err := app.Run(); err != nil {
		logger.Errorf("run: %v", err)
		return 1
	}

	for _, line := range app.Stats().Lines() {
		logger.Debug(line)
	}
	return 0
}

// resolveBackend turns "auto" into a concrete backend name
func resolveBackend(name string, tty bool) string {
	if name != "auto" {
		return name
	}
	if tty {
		return platform.BackendTerminal
	}
	return platform.BackendHeadless
}

// logPath keeps logs off the terminal the terminal backend draws on
func logPath(configured, backend string) string {
	if configured != "" {
		return configured
	}
	if backend == platform.BackendTerminal {
		return filepath.Join(logDir, logFileName)
	}
	return ""
}

// traceInput logs input events at debug level without claiming them
func traceInput(app *engine.Application) error {
	listener := event.NewHandle()
	trace := event.Func(func(code event.Code, sender, _ event.Handle, ctx event.Context, _ event.Sender) bool {
		switch code {
		case event.CodeMouseMoved:
			logger.Debugf("%s %d,%d", code, ctx.I16(0), ctx.I16(1))
		case event.CodeMouseWheel:
			logger.Debugf("%s %d", code, ctx.I8(0))
		case event.CodeResized:
			logger.Debugf("%s %dx%d", code, ctx.U16(0), ctx.U16(1))
		default:
			logger.Debugf("%s %#x from %d", code, ctx.U16(0), sender)
		}
		return false
	})
	for _, code := range []event.Code{
		event.CodeKeyReleased,
		event.CodeButtonPressed,
		event.CodeButtonReleased,
		event.CodeMouseMoved,
		event.CodeMouseWheel,
		event.CodeResized,
	} {
		if _, err := app.Registry().Register(code, listener, trace); err != nil {
			return err
		}
	}
	return nil
}
