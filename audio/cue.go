// Package audio plays short feedback tones for input events through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

var log = logging.MustGetLogger("pincel.audio")

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 50 * time.Millisecond
	clickAttack   = 2 * time.Millisecond
	clickRelease  = 20 * time.Millisecond
	clickVolume   = 0.4
)

// Button click pitches in Hz
var clickFreq = [input.ButtonMax]float64{
	input.ButtonLeft:   880,
	input.ButtonRight:  660,
	input.ButtonMiddle: 440,
}

// Cue sounds a click on every BUTTON_PRESSED
// It never claims the event, so later listeners still receive it
type Cue struct {
	mu      sync.Mutex
	enabled bool
	play    func(...beep.Streamer)
	plays   int
}

// NewCue creates a silent cue; call Init to open the speaker
func NewCue() *Cue {
	return &Cue{play: speaker.Play}
}

// Init opens the speaker; on error the cue stays silent
func (c *Cue) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "speaker init")
	}
	c.enabled = true
	return nil
}

// Close stops playback
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	speaker.Clear()
	c.enabled = false
}

// Plays returns how many clicks were started
func (c *Cue) Plays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays
}

// Subscribe registers the cue on r for BUTTON_PRESSED
func (c *Cue) Subscribe(r *event.Registry, listener event.Handle) error {
	_, err := r.Register(event.CodeButtonPressed, listener, c)
	return err
}

func (c *Cue) HandleEvent(code event.Code, sender, listener event.Handle, ctx event.Context, ch event.Sender) bool {
	if code != event.CodeButtonPressed {
		return false
	}
	button := input.Button(ctx.U16(0))
	if button >= input.ButtonMax || clickFreq[button] == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return false
	}
	click, err := Click(clickFreq[button])
	if err != nil {
		log.Warningf("click %s: %v", button, err)
		return false
	}
	c.play(click)
	c.plays++
	return false
}

// Click builds a short sine tone at freq Hz
func Click(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	tone := beep.Take(sampleRate.N(clickDuration), sine)
	return withVolume(newFade(tone, clickDuration, clickAttack, clickRelease), clickVolume), nil
}
