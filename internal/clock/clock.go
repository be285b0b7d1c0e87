// Package clock provides the two time sources the countdowns need: a wall
// clock for measuring real elapsed time across suspension and a monotonic
// reading for frame-to-frame progress.
package clock

import (
	"sync"
	"time"
)

// Clock exposes wall-clock and monotonic readings.
// Monotonic readings are only comparable with other readings from the same
// Clock and may stop advancing while the machine sleeps.
type Clock interface {
	Now() time.Time
	Monotonic() time.Duration
}

// System is the default Clock backed by the runtime.
var System Clock = newSystemClock()

type systemClock struct {
	origin time.Time
}

func newSystemClock() systemClock {
	return systemClock{origin: time.Now()}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Monotonic uses the monotonic component carried by time.Time.
func (c systemClock) Monotonic() time.Duration {
	return time.Since(c.origin)
}

// Fake is a manually driven Clock. Wall and monotonic readings move
// independently so tests can model a suspended process.
type Fake struct {
	mu   sync.Mutex
	wall time.Time
	mono time.Duration
}

func NewFake(wall time.Time) *Fake {
	return &Fake{wall: wall}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wall
}

func (f *Fake) Monotonic() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mono
}

// Advance moves both readings forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wall = f.wall.Add(d)
	f.mono += d
}

// AdvanceWall moves only the wall clock, as happens while a process is
// suspended and its monotonic source is paused.
func (f *Fake) AdvanceWall(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wall = f.wall.Add(d)
}

// ResetMonotonic models a fresh process whose monotonic origin restarted.
func (f *Fake) ResetMonotonic(v time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mono = v
}
