package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/brickbreaker/internal/loop"
)

const (
	// DefaultSampleRate is the speaker sample rate.
	DefaultSampleRate beep.SampleRate = 44100
	// DefaultVolume is the master gain applied to every cue.
	DefaultVolume = 0.5
	// bufferDuration is the speaker buffer length.
	bufferDuration = 100 * time.Millisecond
)

// Player mixes cues onto the system speaker. A Player that has not been
// initialized, or whose speaker failed to open, drops every cue.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sampleRate  beep.SampleRate
	volume      float64
	initialized bool
	logger      *log.Logger
}

var _ loop.AudioSink = (*Player)(nil)

// NewPlayer creates a player with the default rate and volume.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{
		mixer:      &beep.Mixer{},
		sampleRate: DefaultSampleRate,
		volume:     DefaultVolume,
		logger:     logger,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(bufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	if p.logger != nil {
		p.logger.Debug("audio ready", "rate", int(p.sampleRate))
	}
	return nil
}

// SetVolume sets the master gain. Values are clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = min(max(v, 0), 1)
	p.mu.Unlock()
}

// Play queues a cue. Safe to call from the tick goroutine.
func (p *Player) Play(cue loop.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := Sound(cue, p.sampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops every playing cue. Later cues are dropped.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
