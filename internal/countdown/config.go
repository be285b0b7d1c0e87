package countdown

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/mantrad/internal/storage"
)

var ErrInvalidDuration = errors.New("countdown: invalid duration")

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
)

// Policy decides what Toggle and Pause do to a running countdown.
type Policy int

const (
	// ResetOnly discards progress whenever a run is interrupted.
	ResetOnly Policy = iota
	// ResumableFromMidpoint keeps elapsed time across a pause.
	ResumableFromMidpoint
)

func (p Policy) String() string {
	if p == ResumableFromMidpoint {
		return "resumable"
	}
	return "reset-only"
}

type Config struct {
	Duration     time.Duration
	KeyPrefix    string
	Policy       Policy
	TickInterval time.Duration
}

func (c Config) Validate() error {
	if c.Duration <= 0 {
		return ErrInvalidDuration
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		return errors.New("countdown: key prefix is required")
	}
	return nil
}

// Keys is the persisted key space of one countdown.
type Keys struct {
	StartTime  string
	DurationMs string
	Duration   string
	PausedMs   string
}

func KeysFor(prefix string) Keys {
	return Keys{
		StartTime:  prefix + "StartTime",
		DurationMs: prefix + "DurationMs",
		Duration:   prefix + "Duration",
		PausedMs:   prefix + "PausedMs",
	}
}

// Checkpoint is the durable record of a running countdown.
type Checkpoint struct {
	StartedAt time.Time
	Duration  time.Duration
}

// ReadCheckpoint reports false when either key is missing or malformed.
func ReadCheckpoint(s storage.Store, prefix string) (Checkpoint, bool) {
	keys := KeysFor(prefix)
	start, ok := readPositiveInt(s, keys.StartTime, time.Millisecond)
	if !ok {
		return Checkpoint{}, false
	}
	dur, ok := readPositiveInt(s, keys.DurationMs, time.Millisecond)
	if !ok {
		return Checkpoint{}, false
	}
	return Checkpoint{
		StartedAt: time.UnixMilli(start),
		Duration:  time.Duration(dur) * time.Millisecond,
	}, true
}

// LoadDuration returns the persisted preset for prefix, or fallback.
func LoadDuration(s storage.Store, prefix string, fallback time.Duration) time.Duration {
	secs, ok := readPositiveInt(s, KeysFor(prefix).Duration, time.Second)
	if !ok {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// readPositiveInt rejects values that would overflow a Duration once
// multiplied by unit.
func readPositiveInt(s storage.Store, key string, unit time.Duration) (int64, bool) {
	raw, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 || v > math.MaxInt64/int64(unit) {
		return 0, false
	}
	return v, true
}
