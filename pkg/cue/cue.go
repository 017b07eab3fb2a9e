// Package cue produces the audio and haptic feedback that accompanies each
// solution reveal step.
//
// A [Cue] is fire-and-forget: Play must return immediately and never fail.
// [Speaker] synthesises a short click through the system audio device;
// [Bell] rings the terminal bell as the nearest terminal analogue of a
// haptic pulse. Use [Multi] to combine them and [Cue.Play] as the reveal
// animator's OnCue callback.
package cue

import (
	"io"
	"sync"
)

// Cue emits one feedback pulse.
type Cue interface {
	Play()
}

// Func adapts a function to Cue.
type Func func()

func (f Func) Play() {
	if f != nil {
		f()
	}
}

// Silent is a Cue that does nothing.
var Silent Cue = Func(nil)

type multi []Cue

func (m multi) Play() {
	for _, c := range m {
		c.Play()
	}
}

// Multi plays every non-nil cue in order.
func Multi(cues ...Cue) Cue {
	var m multi
	for _, c := range cues {
		if c != nil {
			m = append(m, c)
		}
	}
	return m
}

// Bell writes the BEL control character to W for every cue.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

// NewBell returns a bell on w.
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

func (b *Bell) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.W != nil {
		_, _ = b.W.Write([]byte{'\a'})
	}
}
