package reveal

import (
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
)

const (
	// BaseDelay separates consecutive reveal events at full speed.
	BaseDelay = 15 * time.Millisecond

	// ReferenceCellSize is the cell size at and above which reveals run at
	// full speed.
	ReferenceCellSize = 50.0
)

// State is the animator's lifecycle state.
type State int

const (
	// Idle: nothing scheduled. The revealed set may hold a finished path.
	Idle State = iota
	// Animating: events are pending.
	Animating
	// Cancelled: stopped part way; the revealed set keeps what had fired.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// SpeedFactor scales BaseDelay so that small cells reveal faster:
// min(1, cellSize/50), never negative.
func SpeedFactor(cellSize float64) float64 {
	return min(1, max(0, cellSize/ReferenceCellSize))
}

// PathOf returns the coordinates still to reveal: cells on the solution
// path the player has not visited, ordered by distance. Cells at equal
// distance keep their input order.
func PathOf(cells []maze.Cell) []maze.Coordinates {
	var path []maze.Cell
	for _, c := range cells {
		if c.OnSolutionPath && !c.IsVisited {
			path = append(path, c)
		}
	}
	slices.SortStableFunc(path, func(a, b maze.Cell) int { return a.Distance - b.Distance })
	out := make([]maze.Coordinates, len(path))
	for i, c := range path {
		out[i] = c.Coordinates()
	}
	return out
}

// OrderFromPath filters an engine-supplied path order down to cells that
// exist in s and are not yet visited, preserving the given order.
func OrderFromPath(order []maze.Coordinates, s *maze.Snapshot) []maze.Coordinates {
	out := make([]maze.Coordinates, 0, len(order))
	for _, c := range order {
		cell, ok := s.Lookup(c)
		if !ok || cell.IsVisited {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Callbacks receive reveal events. Either may be nil. They run outside the
// animator's lock, one at a time and in path order.
type Callbacks struct {
	// OnReveal is called after a coordinate joins the revealed set.
	OnReveal func(maze.Coordinates)
	// OnCue is called just before, for audio and haptic feedback.
	OnCue func()
}

// Option configures an Animator.
type Option func(*Animator)

// WithScheduler replaces the wall clock.
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) {
		if s != nil {
			a.sched = s
		}
	}
}

// WithBaseDelay replaces BaseDelay.
func WithBaseDelay(d time.Duration) Option {
	return func(a *Animator) {
		if d >= 0 {
			a.baseDelay = d
		}
	}
}

// Animator schedules and cancels solution reveals. The zero value is not
// usable; call NewAnimator. All methods are safe for concurrent use.
type Animator struct {
	sched     Scheduler
	baseDelay time.Duration

	mu       sync.Mutex
	state    State
	gen      uint64
	tokens   []*token
	path     []maze.Coordinates
	ready    []bool
	next     int
	fired    int
	drainer  uint64
	revealed maze.CoordinateSet
	done     chan struct{}

	show  bool
	cells []maze.Cell
	speed float64
	cb    Callbacks
}

// NewAnimator returns an idle animator on the wall clock.
func NewAnimator(opts ...Option) *Animator {
	a := &Animator{
		sched:     WallClock{},
		baseDelay: BaseDelay,
		revealed:  make(maze.CoordinateSet),
		done:      closedChan(),
		speed:     1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start cancels any running reveal, clears the revealed set and schedules
// one event per cell of PathOf(cells). Event i fires after
// i·BaseDelay·speedFactor. It returns the number of events scheduled.
// The cells replace whatever SetShowSolution would replay.
func (a *Animator) Start(cells []maze.Cell, speedFactor float64, cb Callbacks) int {
	return a.start(PathOf(cells), speedFactor, cb, cells, true)
}

// StartPath is Start with an explicit reveal order, such as one produced
// by OrderFromPath. cells, if non-nil, is remembered for Reset and
// SetShowSolution.
func (a *Animator) StartPath(path []maze.Coordinates, speedFactor float64, cb Callbacks, cells []maze.Cell) int {
	return a.start(path, speedFactor, cb, cells, cells != nil)
}

func (a *Animator) start(path []maze.Coordinates, speedFactor float64, cb Callbacks, cells []maze.Cell, keep bool) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked(true)
	if keep {
		a.cells = slices.Clone(cells)
	}
	a.speed, a.cb = speedFactor, cb
	return a.scheduleLocked(slices.Clone(path))
}

func (a *Animator) scheduleLocked(path []maze.Coordinates) int {
	a.gen++
	gen := a.gen
	a.path = path
	a.ready = make([]bool, len(path))
	a.next, a.fired = 0, 0
	a.tokens = make([]*token, len(path))
	observability.Reveal().OnRevealStart(gen, len(path))

	if len(path) == 0 {
		a.state = Idle
		a.done = closedChan()
		return 0
	}

	a.state = Animating
	a.done = make(chan struct{})
	step := time.Duration(float64(a.baseDelay) * max(a.speed, 0))
	for i := range path {
		tok := &token{}
		a.tokens[i] = tok
		tok.timer = a.sched.AfterFunc(time.Duration(i)*step, func() { a.fire(gen, i, tok) })
	}
	return len(path)
}

// fire marks event i ready and, unless another goroutine is already
// draining, delivers every ready event in order.
func (a *Animator) fire(gen uint64, i int, tok *token) {
	if !tok.claimFire() {
		return
	}
	a.mu.Lock()
	if gen != a.gen || a.state != Animating {
		a.mu.Unlock()
		return
	}
	a.ready[i] = true
	if a.drainer == gen {
		a.mu.Unlock()
		return
	}
	a.drainer = gen
	defer func() {
		if a.drainer == gen {
			a.drainer = 0
		}
		a.mu.Unlock()
	}()

	for gen == a.gen && a.next < len(a.path) && a.ready[a.next] {
		idx, c, cb := a.next, a.path[a.next], a.cb
		a.next++

		a.mu.Unlock()
		if cb.OnCue != nil {
			cb.OnCue()
		}
		a.mu.Lock()
		if gen != a.gen {
			return
		}
		a.revealed.Add(c)
		a.fired++
		observability.Reveal().OnRevealStep(gen, idx)

		a.mu.Unlock()
		if cb.OnReveal != nil {
			cb.OnReveal(c)
		}
		a.mu.Lock()

		// Done closes only once the last OnReveal has returned.
		if gen == a.gen && a.fired == len(a.path) {
			a.state = Idle
			a.tokens = nil
			close(a.done)
		}
	}
}

// Stop cancels every pending event but keeps the cells already revealed.
// The state becomes Cancelled if a reveal was running. It returns the
// number of events that had fired.
func (a *Animator) Stop() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelLocked(false)
}

// Cancel cancels every pending event and clears the revealed set. The
// state becomes Idle.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked(true)
}

func (a *Animator) cancelLocked(clear bool) int {
	fired := a.fired
	if a.state == Animating {
		for _, tok := range a.tokens {
			tok.cancel()
		}
		observability.Reveal().OnRevealCancel(a.gen, fired)
		a.gen++
		a.state = Cancelled
		close(a.done)
	}
	a.tokens = nil
	if clear {
		a.revealed = make(maze.CoordinateSet)
		a.state = Idle
	}
	return fired
}

// SetShowSolution turns the reveal toggle on or off. Turning it on starts
// a reveal of the last known cells; turning it off cancels.
func (a *Animator) SetShowSolution(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.show = on
	a.cancelLocked(true)
	if on {
		a.scheduleLocked(PathOf(a.cells))
	}
}

// ShowSolution reports the toggle state.
func (a *Animator) ShowSolution() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.show
}

// Reset installs a new snapshot. Any reveal is cancelled and the revealed
// set cleared; when the toggle is on the new path starts revealing with
// the last speed factor and callbacks.
func (a *Animator) Reset(s *maze.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked(true)
	a.cells = s.Cells()
	if a.show {
		a.scheduleLocked(PathOf(a.cells))
	}
}

// SetSpeedFactor changes the speed used by later Reset and
// SetShowSolution calls.
func (a *Animator) SetSpeedFactor(f float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speed = f
}

// SetCallbacks changes the callbacks used by later Reset and
// SetShowSolution calls.
func (a *Animator) SetCallbacks(cb Callbacks) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cb = cb
}

// State returns the current state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Revealed returns a copy of the revealed set.
func (a *Animator) Revealed() maze.CoordinateSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.revealed.Clone()
}

// Contains reports whether c has been revealed. It lets the animator be
// passed directly as a style.RevealedSet.
func (a *Animator) Contains(c maze.Coordinates) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.revealed.Contains(c)
}

// Done returns a channel closed when the current generation finishes or is
// stopped. With nothing scheduled the channel is already closed.
func (a *Animator) Done() <-chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
