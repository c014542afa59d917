package engine

import (
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

// DrainPolicy selects how many queued messages a tick dispatches
type DrainPolicy uint8

const (
	// DrainAll dispatches every message pending when the tick's pass starts
	DrainAll DrainPolicy = iota
	// DrainOne dispatches at most one message per tick
	DrainOne
)

func (p DrainPolicy) String() string {
	switch p {
	case DrainAll:
		return "all"
	case DrainOne:
		return "one"
	default:
		return "unknown"
	}
}

// ParseDrainPolicy accepts "all" or "one"
func ParseDrainPolicy(s string) (DrainPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return DrainAll, nil
	case "one":
		return DrainOne, nil
	}
	return DrainAll, errors.Errorf("unknown drain policy %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *DrainPolicy) UnmarshalText(text []byte) error {
	v, err := ParseDrainPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (p DrainPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Duration reads "16ms" style strings from config files
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the startup configuration of an Application and its executable
type Config struct {
	Name   string `toml:"name"`
	X      int16  `toml:"x"`
	Y      int16  `toml:"y"`
	Width  uint16 `toml:"width"`
	Height uint16 `toml:"height"`

	// Event table size, application codes must stay below it
	Capacity int         `toml:"capacity"`
	Drain    DrainPolicy `toml:"drain"`
	// Upper bound a platform waits for a native event per tick
	FrameInterval Duration `toml:"frame_interval"`
	QuitKey       string   `toml:"quit_key"`

	Backend   string `toml:"backend"`
	Verbosity int    `toml:"verbosity"`
	LogFile   string `toml:"log_file"`
	Sound     bool   `toml:"sound"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Name:          "pincel",
		Width:         1280,
		Height:        720,
		Capacity:      event.DefaultCapacity,
		Drain:         DrainAll,
		FrameInterval: Duration{time.Second / 60},
		QuitKey:       "escape",
		Backend:       "auto",
	}
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	for _, key := range md.Undecoded() {
		log.Warningf("config %s: unknown key %s", path, key.String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges
func (c Config) Validate() error {
	if c.Capacity <= int(event.CodeMax) || c.Capacity > math.MaxUint16+1 {
		return errors.Wrapf(ErrInvalidConfig, "capacity %d outside (%d, %d]", c.Capacity, event.CodeMax, math.MaxUint16+1)
	}
	if c.Width == 0 || c.Height == 0 {
		return errors.Wrapf(ErrInvalidConfig, "size %dx%d", c.Width, c.Height)
	}
	// The pump is the loop's only wait; zero would spin
	if c.FrameInterval.Duration <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "frame interval %s must be positive", c.FrameInterval)
	}
	if c.Drain != DrainAll && c.Drain != DrainOne {
		return errors.Wrapf(ErrInvalidConfig, "drain policy %d", c.Drain)
	}
	if _, ok := input.ParseKey(c.QuitKey); !ok {
		return errors.Wrapf(ErrInvalidConfig, "quit key %q", c.QuitKey)
	}
	return nil
}
