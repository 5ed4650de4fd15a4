package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tapcolour/internal/core"
)

// Cue identifies a feedback sound.
type Cue int

const (
	CueCorrect Cue = iota
	CueWrong
	CueMissed
	CueStart
	CueGameOver
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueCorrect:
		return "correct"
	case CueWrong:
		return "wrong"
	case CueMissed:
		return "missed"
	case CueStart:
		return "start"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sound builds a fresh streamer for a cue.
func Sound(c Cue) beep.Streamer {
	switch c {
	case CueCorrect:
		return beep.Seq(
			note(660, 50*time.Millisecond, WaveSine),
			note(990, 70*time.Millisecond, WaveSine),
		)
	case CueWrong:
		return note(110, 180*time.Millisecond, WaveSaw)
	case CueMissed:
		return note(220, 120*time.Millisecond, WaveSquare)
	case CueStart:
		return note(523, 80*time.Millisecond, WaveSine)
	case CueGameOver:
		return beep.Seq(
			note(523, 120*time.Millisecond, WaveSquare),
			note(392, 120*time.Millisecond, WaveSquare),
			note(262, 240*time.Millisecond, WaveSquare),
		)
	default:
		return beep.Silence(0)
	}
}

// cueFor maps a gameplay event to its cue.
func cueFor(kind core.EventKind) (Cue, bool) {
	switch kind {
	case core.EventCorrectTap:
		return CueCorrect, true
	case core.EventWrongTap:
		return CueWrong, true
	case core.EventMissed:
		return CueMissed, true
	case core.EventSessionStarted:
		return CueStart, true
	case core.EventSessionEnded:
		return CueGameOver, true
	}
	return 0, false
}

// speakerOnce guards speaker.Init, which is process-wide.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player mixes cues into the system speaker.
// A nil *Player is valid and plays nothing.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	started bool
}

// NewPlayer creates a player at the given linear volume (0.0 to 1.0).
// Nothing is heard until Start succeeds.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Start opens the speaker and begins streaming the mixer.
func (p *Player) Start() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond))
	})
	if speakerErr != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", speakerErr)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play queues a cue. Safe to call before Start; the cue is then dropped.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return
	}

	s := withVolume(Sound(c), p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Handle plays the cue for each gameplay event. When a session ends in the
// same step as a wrong tap only the game-over cue plays.
func (p *Player) Handle(events []core.Event) {
	if p == nil || len(events) == 0 {
		return
	}
	for _, e := range events {
		if e.Kind == core.EventSessionEnded {
			p.Play(CueGameOver)
			return
		}
	}
	for _, e := range events {
		if c, ok := cueFor(e.Kind); ok {
			p.Play(c)
		}
	}
}

// Close silences everything queued. The speaker itself stays open since
// it is shared by the whole process.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.started = false
}
