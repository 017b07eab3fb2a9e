// Package reveal animates the solution path one cell at a time and replays
// recorded generation frames.
//
// An [Animator] owns all mutable reveal state: the pending cancellation
// tokens and the set of revealed coordinates. Each call to
// [Animator.Start] begins a new generation; timers from older generations
// find their token already claimed or their generation stale and do
// nothing. Callbacks are delivered strictly in path order even when the
// underlying timers race.
//
// Timers come from a [Scheduler]. Production code uses the wall clock;
// tests and offline renderers use a [ManualScheduler] and advance it
// explicitly.
//
// [Player] replays generation frames at a fixed interval with a
// cancellation check between every frame.
package reveal
