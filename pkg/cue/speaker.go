package cue

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	// SampleRate is the output rate of the speaker.
	SampleRate = beep.SampleRate(44100)

	// ClickFrequency and ClickDuration shape the reveal tick.
	ClickFrequency = 1104.0
	ClickDuration  = 40 * time.Millisecond
)

// Click returns a short sine tick at freq, attenuated to vol in (0, 1].
// A non-positive vol yields silence of the same length.
func Click(sr beep.SampleRate, freq float64, d time.Duration, vol float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	tone := beep.Take(sr.N(d), sine)
	if vol <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(min(vol, 1))}, nil
}

// Speaker plays clicks on the default audio device. Clicks are mixed, so
// overlapping reveal steps do not cut each other off. A Speaker whose Init
// failed or was never called plays nothing.
type Speaker struct {
	Volume float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker returns an uninitialised speaker at volume vol.
func NewSpeaker(vol float64) *Speaker {
	return &Speaker{Volume: vol, mixer: &beep.Mixer{}}
}

// Init opens the audio device. Calling it again is a no-op.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play adds one click to the mix.
func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	click, err := Click(SampleRate, ClickFrequency, ClickDuration, s.Volume)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(click)
	speaker.Unlock()
}

// Close silences anything still playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}
