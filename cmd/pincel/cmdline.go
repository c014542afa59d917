package main

import (
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/lixenwraith/pincel/engine"
)

// CommandLine parses flags over an optional TOML config file
// Only flags given on the command line override file values
type CommandLine struct {
	app *kingpin.Application
	set map[string]bool
}

func NewCommandLine(version string) *CommandLine {
	res := &CommandLine{
		app: kingpin.New("pincel", "Event-driven application runtime."),
		set: make(map[string]bool),
	}
	res.app.Version(version)
	res.app.HelpFlag.Short('h')
	return res
}

func (cmdline *CommandLine) flag(name, help string) *kingpin.FlagClause {
	return cmdline.app.Flag(name, help).Action(func(*kingpin.ParseContext) error {
		cmdline.set[name] = true
		return nil
	})
}

// ParseParameters parses rawParams and returns the resulting configuration
func (cmdline *CommandLine) ParseParameters(rawParams []string) (engine.Config, error) {
	def := engine.DefaultConfig()

	configPath := cmdline.app.Flag("config", "TOML configuration file").Short('c').String()
	verbose := cmdline.flag("verbose", "Verbose mode, repeat for debug output.").Short('v').Counter()
	logFile := cmdline.flag("log-file", "Write logs to this file instead of the default sink").String()
	backend := cmdline.flag("backend", "Platform backend").Default(def.Backend).Enum("auto", "terminal", "headless")
	sound := cmdline.flag("sound", "Click on mouse button presses").Default(strconv.FormatBool(def.Sound)).Bool()

	name := cmdline.flag("name", "Application name").Default(def.Name).String()
	x := cmdline.flag("x", "Surface x position").Default(strconv.Itoa(int(def.X))).Int16()
	y := cmdline.flag("y", "Surface y position").Default(strconv.Itoa(int(def.Y))).Int16()
	width := cmdline.flag("width", "Surface width").Default(strconv.Itoa(int(def.Width))).Uint16()
	height := cmdline.flag("height", "Surface height").Default(strconv.Itoa(int(def.Height))).Uint16()

	capacity := cmdline.flag("capacity", "Event table size").Default(strconv.Itoa(def.Capacity)).Int()
	drain := cmdline.flag("drain", "Messages dispatched per tick").Default(def.Drain.String()).Enum("all", "one")
	frame := cmdline.flag("frame", "Longest wait for a native event per tick").Default(def.FrameInterval.String()).Duration()
	quitKey := cmdline.flag("quit-key", "Key that quits the application").Default(def.QuitKey).String()

	if _, err := cmdline.app.Parse(rawParams); err != nil {
		return def, err
	}

	res := def
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			return def, err
		}
		res = loaded
	}

	if cmdline.set["verbose"] {
		res.Verbosity = *verbose
	}
	if cmdline.set["log-file"] {
		res.LogFile = *logFile
	}
	if cmdline.set["backend"] {
		res.Backend = *backend
	}
	if cmdline.set["sound"] {
		res.Sound = *sound
	}
	if cmdline.set["name"] {
		res.Name = *name
	}
	if cmdline.set["x"] {
		res.X = *x
	}
	if cmdline.set["y"] {
		res.Y = *y
	}
	if cmdline.set["width"] {
		res.Width = *width
	}
	if cmdline.set["height"] {
		res.Height = *height
	}
	if cmdline.set["capacity"] {
		res.Capacity = *capacity
	}
	if cmdline.set["drain"] {
		policy, err := engine.ParseDrainPolicy(*drain)
		if err != nil {
			return def, err
		}
		res.Drain = policy
	}
	if cmdline.set["frame"] {
		res.FrameInterval = engine.Duration{Duration: *frame}
	}
	if cmdline.set["quit-key"] {
		res.QuitKey = *quitKey
	}

	return res, res.Validate()
}
