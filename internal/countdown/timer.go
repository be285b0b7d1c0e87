// Package countdown implements a countdown that survives suspension.
//
// A Timer measures frame-to-frame progress on a monotonic clock and keeps a
// wall-clock checkpoint in a storage.Store while it runs. When the host
// regains focus, or a new process starts, Resume reads the checkpoint back
// and re-anchors the monotonic start so progress continues from the real
// elapsed time instead of replaying from zero.
//
// A Timer is not safe for concurrent use. All calls are expected from one
// event loop; scheduled ticks are invalidated through Generation.
package countdown

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/sandeepkv93/mantrad/internal/clock"
	"github.com/sandeepkv93/mantrad/internal/storage"
)

// Progress is reported on every tick and transition.
type Progress struct {
	Phase     Phase
	Fraction  float64
	Elapsed   time.Duration
	Remaining time.Duration
	Duration  time.Duration
}

type Timer struct {
	cfg   Config
	keys  Keys
	clock clock.Clock
	store storage.Store

	phase      Phase
	startedAt  time.Duration
	hasStarted bool
	active     time.Duration
	paused     time.Duration
	gen        uint64

	progressFns []func(Progress)
	phaseFns    []func(Phase)
}

// New builds an Idle timer. Under ResumableFromMidpoint a previously
// persisted pause point is picked up so the next Start continues from it.
func New(cfg Config, clk clock.Clock, store storage.Store) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.System
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	t := &Timer{
		cfg:    cfg,
		keys:   KeysFor(cfg.KeyPrefix),
		clock:  clk,
		store:  store,
		phase:  PhaseIdle,
		active: cfg.Duration,
	}
	if cfg.Policy == ResumableFromMidpoint {
		if ms, ok := readPositiveInt(store, t.keys.PausedMs, time.Millisecond); ok {
			paused := time.Duration(ms) * time.Millisecond
			if paused < cfg.Duration {
				t.paused = paused
			}
		}
	}
	return t, nil
}

func (t *Timer) OnProgress(fn func(Progress)) {
	if fn != nil {
		t.progressFns = append(t.progressFns, fn)
	}
}

func (t *Timer) OnPhaseChange(fn func(Phase)) {
	if fn != nil {
		t.phaseFns = append(t.phaseFns, fn)
	}
}

func (t *Timer) Phase() Phase { return t.phase }

func (t *Timer) Config() Config { return t.cfg }

func (t *Timer) Duration() time.Duration { return t.cfg.Duration }

// Generation changes every time the tick loop is cancelled or restarted.
// A tick scheduled under an older generation must be dropped.
func (t *Timer) Generation() uint64 { return t.gen }

// StartedAt returns the monotonic anchor of the current run.
func (t *Timer) StartedAt() (time.Duration, bool) {
	return t.startedAt, t.hasStarted
}

// Deadline returns the wall-clock instant the current run ends.
func (t *Timer) Deadline() (time.Time, bool) {
	if t.phase != PhaseRunning {
		return time.Time{}, false
	}
	cp, ok := ReadCheckpoint(t.store, t.cfg.KeyPrefix)
	if !ok {
		return t.clock.Now().Add(t.active - t.elapsedAt(t.clock.Monotonic())), true
	}
	return cp.StartedAt.Add(cp.Duration), true
}

// Start begins a run. It is a no-op while already running.
func (t *Timer) Start() bool {
	if t.phase == PhaseRunning {
		return false
	}
	offset := time.Duration(0)
	if t.cfg.Policy == ResumableFromMidpoint && t.phase == PhaseIdle {
		offset = t.paused
	}
	t.active = t.cfg.Duration
	if offset >= t.active {
		offset = 0
	}

	t.gen++
	t.startedAt = t.clock.Monotonic() - offset
	t.hasStarted = true
	t.paused = 0
	t.writeCheckpoint(t.clock.Now().Add(-offset), t.active)
	t.remove(t.keys.PausedMs)
	t.setPhase(PhaseRunning)
	t.emit(t.progressAt(t.clock.Monotonic()))
	return true
}

// Pause interrupts a run. ResetOnly timers reset; resumable timers keep
// the elapsed time for the next Start.
func (t *Timer) Pause() bool {
	if t.phase != PhaseRunning {
		return false
	}
	if t.cfg.Policy == ResetOnly {
		t.Reset()
		return true
	}
	elapsed := t.elapsedAt(t.clock.Monotonic())
	if elapsed >= t.active {
		t.Complete()
		return true
	}

	t.gen++
	t.hasStarted = false
	t.startedAt = 0
	t.paused = elapsed
	t.removeCheckpoint()
	t.set(t.keys.PausedMs, strconv.FormatInt(elapsed.Milliseconds(), 10))
	t.setPhase(PhaseIdle)
	t.emit(t.idleProgress())
	return true
}

// Reset returns to Idle from any phase and forgets all progress.
func (t *Timer) Reset() {
	t.gen++
	t.hasStarted = false
	t.startedAt = 0
	t.paused = 0
	t.active = t.cfg.Duration
	t.removeCheckpoint()
	t.remove(t.keys.PausedMs)
	t.setPhase(PhaseIdle)
	t.emit(t.idleProgress())
}

// Toggle is the single-button control: start when idle, interrupt when
// running, clear when completed.
func (t *Timer) Toggle() Phase {
	switch t.phase {
	case PhaseIdle:
		t.Start()
	case PhaseRunning:
		if t.cfg.Policy == ResumableFromMidpoint {
			t.Pause()
		} else {
			t.Reset()
		}
	case PhaseCompleted:
		t.Reset()
	}
	return t.phase
}

// Tick advances a running countdown to the monotonic reading now.
// Ticks outside a run are ignored.
func (t *Timer) Tick(now time.Duration) Progress {
	if t.phase != PhaseRunning {
		return t.Snapshot()
	}
	p := t.progressAt(now)
	if p.Fraction >= 1 {
		t.Complete()
		return t.Snapshot()
	}
	t.emit(p)
	return p
}

// Complete finishes the run and reports full progress.
func (t *Timer) Complete() {
	if t.phase == PhaseCompleted {
		return
	}
	t.gen++
	t.hasStarted = false
	t.startedAt = 0
	t.paused = 0
	t.setPhase(PhaseCompleted)
	t.removeCheckpoint()
	t.remove(t.keys.PausedMs)
	t.emit(t.completedProgress())
}

// Resume reconciles with the persisted checkpoint. It reports whether a
// tick loop has to be (re)started.
func (t *Timer) Resume() bool {
	cp, ok := ReadCheckpoint(t.store, t.cfg.KeyPrefix)
	if !ok {
		return false
	}
	elapsed := t.clock.Now().Sub(cp.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	t.active = cp.Duration
	if elapsed >= cp.Duration {
		t.Complete()
		return false
	}

	t.gen++
	t.startedAt = t.clock.Monotonic() - elapsed
	t.hasStarted = true
	t.paused = 0
	t.setPhase(PhaseRunning)
	t.emit(t.progressAt(t.clock.Monotonic()))
	return true
}

// SetDuration stores a new preset and resets the countdown. The preset is
// persisted in whole seconds, so d must be a positive multiple of a second.
func (t *Timer) SetDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s is not positive", ErrInvalidDuration, d)
	}
	if d%time.Second != 0 {
		return fmt.Errorf("%w: %s is not a whole number of seconds", ErrInvalidDuration, d)
	}
	t.cfg.Duration = d
	err := t.store.Set(t.keys.Duration, strconv.FormatInt(int64(d/time.Second), 10))
	t.Reset()
	return err
}

func (t *Timer) Snapshot() Progress {
	switch t.phase {
	case PhaseRunning:
		return t.progressAt(t.clock.Monotonic())
	case PhaseCompleted:
		return t.completedProgress()
	default:
		return t.idleProgress()
	}
}

func (t *Timer) elapsedAt(now time.Duration) time.Duration {
	elapsed := now - t.startedAt
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (t *Timer) progressAt(now time.Duration) Progress {
	elapsed := t.elapsedAt(now)
	fraction := float64(elapsed) / float64(t.active)
	if fraction > 1 {
		fraction = 1
	}
	remaining := t.active - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		Phase:     t.phase,
		Fraction:  fraction,
		Elapsed:   elapsed,
		Remaining: remaining,
		Duration:  t.active,
	}
}

func (t *Timer) idleProgress() Progress {
	return Progress{
		Phase:     PhaseIdle,
		Fraction:  float64(t.paused) / float64(t.cfg.Duration),
		Elapsed:   t.paused,
		Remaining: t.cfg.Duration - t.paused,
		Duration:  t.cfg.Duration,
	}
}

func (t *Timer) completedProgress() Progress {
	return Progress{
		Phase:    PhaseCompleted,
		Fraction: 1,
		Elapsed:  t.active,
		Duration: t.active,
	}
}

func (t *Timer) setPhase(p Phase) {
	if t.phase == p {
		return
	}
	t.phase = p
	for _, fn := range t.phaseFns {
		fn(p)
	}
}

func (t *Timer) emit(p Progress) {
	for _, fn := range t.progressFns {
		fn(p)
	}
}

func (t *Timer) writeCheckpoint(startedAt time.Time, d time.Duration) {
	t.set(t.keys.StartTime, strconv.FormatInt(startedAt.UnixMilli(), 10))
	t.set(t.keys.DurationMs, strconv.FormatInt(d.Milliseconds(), 10))
}

func (t *Timer) removeCheckpoint() {
	t.remove(t.keys.StartTime)
	t.remove(t.keys.DurationMs)
}

func (t *Timer) set(key, value string) {
	if err := t.store.Set(key, value); err != nil {
		log.Printf("countdown: %s: persist %s: %v", t.cfg.KeyPrefix, key, err)
	}
}

func (t *Timer) remove(key string) {
	if err := t.store.Remove(key); err != nil {
		log.Printf("countdown: %s: remove %s: %v", t.cfg.KeyPrefix, key, err)
	}
}
