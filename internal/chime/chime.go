// Package chime plays the completion tone through the system speaker.
package chime

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player lazily opens the speaker on first use. If the speaker cannot be
// opened, Play becomes a no-op.
type Player struct {
	once     sync.Once
	mu       sync.Mutex
	disabled bool
}

func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) init() {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("chime: audio disabled: failed to initialize speaker: %v", err)
		p.disabled = true
	}
}

// Play sounds a short two-note chime without blocking.
func (p *Player) Play() {
	p.once.Do(p.init)
	if p.disabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	high, err := tone(880, 180*time.Millisecond)
	if err != nil {
		log.Printf("chime: %v", err)
		return
	}
	low, err := tone(660, 260*time.Millisecond)
	if err != nil {
		log.Printf("chime: %v", err)
		return
	}
	speaker.Play(beep.Seq(high, beep.Silence(sampleRate.N(60*time.Millisecond)), low))
}

func tone(freq float64, d time.Duration) (beep.Streamer, error) {
	s, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(d), s), nil
}
