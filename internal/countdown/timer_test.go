package countdown

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/sandeepkv93/mantrad/internal/clock"
	"github.com/sandeepkv93/mantrad/internal/storage"
)

var t0 = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

type recorder struct {
	progress []Progress
	phases   []Phase
}

func (r *recorder) attach(tm *Timer) {
	tm.OnProgress(func(p Progress) { r.progress = append(r.progress, p) })
	tm.OnPhaseChange(func(p Phase) { r.phases = append(r.phases, p) })
}

func (r *recorder) last() Progress {
	if len(r.progress) == 0 {
		return Progress{}
	}
	return r.progress[len(r.progress)-1]
}

func newTimer(t *testing.T, d time.Duration, policy Policy) (*Timer, *clock.Fake, *storage.MemoryStore) {
	t.Helper()
	clk := clock.NewFake(t0)
	store := storage.NewMemoryStore()
	tm, err := New(Config{Duration: d, KeyPrefix: "mantra", Policy: policy}, clk, store)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}
	return tm, clk, store
}

func TestTickAtDurationCompletesWithFullProgress(t *testing.T) {
	for _, d := range []time.Duration{time.Millisecond, 20 * time.Second, 40 * time.Second, time.Hour} {
		tm, _, _ := newTimer(t, d, ResetOnly)
		var rec recorder
		rec.attach(tm)

		tm.Start()
		started, ok := tm.StartedAt()
		if !ok {
			t.Fatalf("expected monotonic anchor after start")
		}
		tm.Tick(started + d)

		if tm.Phase() != PhaseCompleted {
			t.Fatalf("d=%v: phase = %s, want completed", d, tm.Phase())
		}
		if got := rec.last().Fraction; got != 1.0 {
			t.Fatalf("d=%v: final progress = %v, want exactly 1", d, got)
		}
		if _, ok := tm.StartedAt(); ok {
			t.Fatalf("d=%v: monotonic anchor must be cleared on completion", d)
		}
	}
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	tm, clk, _ := newTimer(t, 5*time.Second, ResetOnly)
	if !tm.Start() {
		t.Fatal("first start should run")
	}
	first, _ := tm.StartedAt()
	gen := tm.Generation()

	clk.Advance(250 * time.Millisecond)
	if tm.Start() {
		t.Fatal("second start should be a no-op")
	}
	second, _ := tm.StartedAt()
	if first != second {
		t.Fatalf("anchor moved from %v to %v", first, second)
	}
	if tm.Generation() != gen {
		t.Fatal("no-op start must not restart the tick loop")
	}
}

func TestResumeAfterSuspensionContinuesFromMidpoint(t *testing.T) {
	tm, clk, _ := newTimer(t, 5*time.Second, ResetOnly)
	tm.Start()

	clk.AdvanceWall(3 * time.Second)
	if !tm.Resume() {
		t.Fatal("expected resume to restart the tick loop")
	}
	if tm.Phase() != PhaseRunning {
		t.Fatalf("phase = %s, want running", tm.Phase())
	}
	p := tm.Tick(clk.Monotonic())
	if math.Abs(p.Fraction-0.6) > 1e-9 {
		t.Fatalf("progress after resume = %v, want 0.6", p.Fraction)
	}
	if p.Remaining != 2*time.Second {
		t.Fatalf("remaining = %v, want 2s", p.Remaining)
	}
}

func TestResumeInFreshProcess(t *testing.T) {
	tm, clk, store := newTimer(t, 5*time.Second, ResetOnly)
	tm.Start()

	clk.AdvanceWall(3 * time.Second)
	clk.ResetMonotonic(42 * time.Millisecond)
	reloaded, err := New(tm.Config(), clk, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Phase() != PhaseIdle {
		t.Fatalf("reloaded timer should start idle, got %s", reloaded.Phase())
	}
	reloaded.Resume()
	p := reloaded.Tick(clk.Monotonic())
	if reloaded.Phase() != PhaseRunning || math.Abs(p.Fraction-0.6) > 1e-9 {
		t.Fatalf("unexpected resumed state: phase=%s progress=%v", reloaded.Phase(), p.Fraction)
	}
}

func TestResumeOvershootCompletesWithoutRunningTick(t *testing.T) {
	tm, clk, store := newTimer(t, 5*time.Second, ResetOnly)
	tm.Start()
	clk.AdvanceWall(6 * time.Second)

	reloaded, err := New(tm.Config(), clk, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	var rec recorder
	rec.attach(reloaded)

	if reloaded.Resume() {
		t.Fatal("an overdue checkpoint must not restart the tick loop")
	}
	if reloaded.Phase() != PhaseCompleted {
		t.Fatalf("phase = %s, want completed", reloaded.Phase())
	}
	for _, p := range rec.progress {
		if p.Phase == PhaseRunning {
			t.Fatalf("observed running progress during overshoot: %+v", p)
		}
	}
	for _, ph := range rec.phases {
		if ph == PhaseRunning {
			t.Fatal("observed running phase during overshoot")
		}
	}
	if rec.last().Fraction != 1 {
		t.Fatalf("final progress = %v, want 1", rec.last().Fraction)
	}
	if _, ok := ReadCheckpoint(store, "mantra"); ok {
		t.Fatal("checkpoint must be removed on completion")
	}
}

func TestResetClearsCheckpoint(t *testing.T) {
	tm, _, store := newTimer(t, 5*time.Second, ResetOnly)
	keys := KeysFor("mantra")

	tm.Start()
	for _, k := range []string{keys.StartTime, keys.DurationMs} {
		if _, ok := store.Get(k); !ok {
			t.Fatalf("expected %s after start", k)
		}
	}
	if v, _ := store.Get(keys.DurationMs); v != "5000" {
		t.Fatalf("duration checkpoint = %q, want 5000", v)
	}
	if v, _ := store.Get(keys.StartTime); v != "1770638400000" {
		t.Fatalf("start checkpoint = %q", v)
	}

	tm.Reset()
	for _, k := range []string{keys.StartTime, keys.DurationMs} {
		if _, ok := store.Get(k); ok {
			t.Fatalf("expected %s removed after reset", k)
		}
	}
	if tm.Phase() != PhaseIdle {
		t.Fatalf("phase = %s, want idle", tm.Phase())
	}
}

func TestSetDurationRoundTrip(t *testing.T) {
	tm, clk, store := newTimer(t, 15*time.Second, ResetOnly)
	if err := tm.SetDuration(40 * time.Second); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if v, _ := store.Get("mantraDuration"); v != "40" {
		t.Fatalf("persisted duration = %q, want 40", v)
	}

	d := LoadDuration(store, "mantra", 15*time.Second)
	reloaded, err := New(Config{Duration: d, KeyPrefix: "mantra"}, clk, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Duration().Milliseconds(); got != 40000 {
		t.Fatalf("reloaded duration = %dms, want 40000", got)
	}
}

func TestSetDurationRejectsNonPositive(t *testing.T) {
	tm, _, _ := newTimer(t, time.Second, ResetOnly)
	if err := tm.SetDuration(0); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestSetDurationRejectsFractionalSeconds(t *testing.T) {
	tm, _, store := newTimer(t, 15*time.Second, ResetOnly)
	for _, d := range []time.Duration{1500 * time.Millisecond, 500 * time.Millisecond} {
		if err := tm.SetDuration(d); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("SetDuration(%s) = %v, want ErrInvalidDuration", d, err)
		}
	}
	if tm.Duration() != 15*time.Second {
		t.Fatalf("duration changed to %s", tm.Duration())
	}
	if _, ok := store.Get("mantraDuration"); ok {
		t.Fatal("rejected duration must not be persisted")
	}
}

func TestSetDurationResetsRunningTimer(t *testing.T) {
	tm, _, store := newTimer(t, 15*time.Second, ResetOnly)
	tm.Start()
	if err := tm.SetDuration(20 * time.Second); err != nil {
		t.Fatalf("set duration: %v", err)
	}
	if tm.Phase() != PhaseIdle {
		t.Fatalf("phase = %s, want idle", tm.Phase())
	}
	if _, ok := ReadCheckpoint(store, "mantra"); ok {
		t.Fatal("checkpoint should be cleared by a duration change")
	}
}

func TestToggleResetOnlyPolicy(t *testing.T) {
	tm, clk, _ := newTimer(t, 5*time.Second, ResetOnly)
	if got := tm.Toggle(); got != PhaseRunning {
		t.Fatalf("toggle from idle = %s", got)
	}
	clk.Advance(2 * time.Second)
	if got := tm.Toggle(); got != PhaseIdle {
		t.Fatalf("toggle from running = %s", got)
	}
	if p := tm.Snapshot(); p.Fraction != 0 || p.Remaining != 5*time.Second {
		t.Fatalf("reset-only toggle should zero progress, got %+v", p)
	}
	tm.Toggle()
	clk.Advance(5 * time.Second)
	tm.Tick(clk.Monotonic())
	if got := tm.Toggle(); got != PhaseIdle {
		t.Fatalf("toggle from completed = %s", got)
	}
}

func TestPauseResumeFromMidpoint(t *testing.T) {
	tm, clk, store := newTimer(t, 10*time.Second, ResumableFromMidpoint)
	tm.Start()
	clk.Advance(4 * time.Second)

	if got := tm.Toggle(); got != PhaseIdle {
		t.Fatalf("toggle running = %s, want idle", got)
	}
	if _, ok := ReadCheckpoint(store, "mantra"); ok {
		t.Fatal("paused timer must not keep a running checkpoint")
	}
	if p := tm.Snapshot(); p.Remaining != 6*time.Second {
		t.Fatalf("paused remaining = %v, want 6s", p.Remaining)
	}

	clk.Advance(time.Minute)
	tm.Start()
	p := tm.Tick(clk.Monotonic())
	if math.Abs(p.Fraction-0.4) > 1e-9 {
		t.Fatalf("progress after resume = %v, want 0.4", p.Fraction)
	}
	cp, ok := ReadCheckpoint(store, "mantra")
	if !ok {
		t.Fatal("expected checkpoint after restart")
	}
	if want := clk.Now().Add(-4 * time.Second); !cp.StartedAt.Equal(want) {
		t.Fatalf("checkpoint start = %v, want %v", cp.StartedAt, want)
	}
}

func TestPausedPointSurvivesReload(t *testing.T) {
	tm, clk, store := newTimer(t, 10*time.Second, ResumableFromMidpoint)
	tm.Start()
	clk.Advance(3 * time.Second)
	tm.Pause()

	reloaded, err := New(tm.Config(), clk, store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p := reloaded.Snapshot(); p.Elapsed != 3*time.Second {
		t.Fatalf("reloaded paused elapsed = %v, want 3s", p.Elapsed)
	}
	reloaded.Reset()
	if _, ok := store.Get(KeysFor("mantra").PausedMs); ok {
		t.Fatal("reset must forget the paused point")
	}
}

func TestStaleGenerationAfterReset(t *testing.T) {
	tm, clk, _ := newTimer(t, 5*time.Second, ResetOnly)
	tm.Start()
	scheduled := tm.Generation()
	tm.Reset()
	if tm.Generation() == scheduled {
		t.Fatal("reset must invalidate ticks scheduled before it")
	}
	clk.Advance(10 * time.Second)
	tm.Tick(clk.Monotonic())
	if tm.Phase() != PhaseIdle {
		t.Fatalf("tick after reset changed phase to %s", tm.Phase())
	}
}

func TestResumeIgnoresMalformedCheckpoint(t *testing.T) {
	cases := map[string][2]string{
		"garbage start":  {"not-a-number", "5000"},
		"zero duration":  {"1770638400000", "0"},
		"negative start": {"-5", "5000"},
	}
	for name, vals := range cases {
		t.Run(name, func(t *testing.T) {
			tm, _, store := newTimer(t, 5*time.Second, ResetOnly)
			keys := KeysFor("mantra")
			_ = store.Set(keys.StartTime, vals[0])
			_ = store.Set(keys.DurationMs, vals[1])
			if tm.Resume() {
				t.Fatal("malformed checkpoint must not resume")
			}
			if tm.Phase() != PhaseIdle {
				t.Fatalf("phase = %s, want idle", tm.Phase())
			}
		})
	}
}

func TestOverflowingValuesFailOpen(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set("mantraDuration", "9300000000")
	if got := LoadDuration(store, "mantra", 15*time.Second); got != 15*time.Second {
		t.Fatalf("LoadDuration = %s, want fallback 15s", got)
	}
	_ = store.Set("mantraDuration", strconv.FormatInt(math.MaxInt64/int64(time.Second), 10))
	if got := LoadDuration(store, "mantra", 15*time.Second); got <= 0 {
		t.Fatalf("largest representable preset overflowed to %s", got)
	}

	tm, _, store := newTimer(t, 5*time.Second, ResetOnly)
	keys := KeysFor("mantra")
	_ = store.Set(keys.StartTime, "1770638400000")
	_ = store.Set(keys.DurationMs, "9223372036854775807")
	if _, ok := ReadCheckpoint(store, "mantra"); ok {
		t.Fatal("overflowing duration must read as no checkpoint")
	}
	if tm.Resume() {
		t.Fatal("overflowing checkpoint must not resume")
	}
	if tm.Phase() != PhaseIdle {
		t.Fatalf("phase = %s, want idle", tm.Phase())
	}

	_ = store.Set(keys.StartTime, "9223372036854775807")
	_ = store.Set(keys.DurationMs, "5000")
	if _, ok := ReadCheckpoint(store, "mantra"); ok {
		t.Fatal("overflowing start time must read as no checkpoint")
	}
}

func TestResumeWithoutCheckpointIsNoop(t *testing.T) {
	tm, _, _ := newTimer(t, 5*time.Second, ResetOnly)
	gen := tm.Generation()
	if tm.Resume() || tm.Phase() != PhaseIdle || tm.Generation() != gen {
		t.Fatal("resume without a checkpoint should do nothing")
	}
}

func TestDeadlineFollowsCheckpoint(t *testing.T) {
	tm, _, _ := newTimer(t, 5*time.Second, ResetOnly)
	if _, ok := tm.Deadline(); ok {
		t.Fatal("idle timer has no deadline")
	}
	tm.Start()
	got, ok := tm.Deadline()
	if !ok || !got.Equal(t0.Add(5*time.Second)) {
		t.Fatalf("deadline = %v ok=%v", got, ok)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{Duration: 0, KeyPrefix: "x"}, nil, nil); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := New(Config{Duration: time.Second}, nil, nil); err == nil {
		t.Fatal("expected missing prefix error")
	}
}
