package reveal

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/mazer/pkg/maze"
)

// FrameInterval is the delay between generation playback frames.
const FrameInterval = 50 * time.Millisecond

// Player replays recorded generation frames. Starting a new playback
// cancels the previous one, so at most one runs at a time.
type Player struct {
	Interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewPlayer returns a player at FrameInterval.
func NewPlayer() *Player {
	return &Player{Interval: FrameInterval}
}

// Play calls onFrame for each frame in order, waiting Interval between
// frames. The first frame is shown immediately. Cancellation of ctx, Stop,
// or a newer Play is observed before every frame; Play then returns the
// context error and no further frames are shown.
func (p *Player) Play(ctx context.Context, frames []*maze.Snapshot, onFrame func(i int, s *maze.Snapshot)) error {
	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.seq == seq {
			p.cancel = nil
		}
		p.mu.Unlock()
		cancel()
	}()

	interval := p.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i, f := range frames {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		onFrame(i, f)
	}
	return nil
}

// Stop cancels the running playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
