package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// fade ramps a stream in over attack samples and out over the last release
// samples of total, removing the pop of a hard start or cut
type fade struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

func newFade(s beep.Streamer, total, attack, release time.Duration) beep.Streamer {
	f := &fade{
		streamer: s,
		total:    sampleRate.N(total),
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
	}
	if f.attack+f.release > f.total {
		f.attack, f.release = f.total/2, f.total-f.total/2
	}
	return f
}

func (f *fade) gain() float64 {
	switch {
	case f.attack > 0 && f.pos < f.attack:
		return float64(f.pos) / float64(f.attack)
	case f.release > 0 && f.pos >= f.total-f.release:
		return float64(f.total-f.pos) / float64(f.release)
	}
	return 1
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	if f.pos >= f.total {
		return 0, false
	}
	if rest := f.total - f.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := f.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// withVolume scales s by a linear factor; zero or less is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
