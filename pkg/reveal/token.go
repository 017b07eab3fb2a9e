package reveal

import "sync/atomic"

const (
	tokenPending int32 = iota
	tokenFired
	tokenCancelled
)

// token guards one scheduled event. Exactly one of fire and cancel wins;
// the loser is a no-op.
type token struct {
	state atomic.Int32
	timer Timer
}

func (t *token) claimFire() bool {
	return t.state.CompareAndSwap(tokenPending, tokenFired)
}

// cancel stops the timer if the event has not fired. Safe to call any
// number of times.
func (t *token) cancel() bool {
	if !t.state.CompareAndSwap(tokenPending, tokenCancelled) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}
