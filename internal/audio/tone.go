// Package audio plays short synthesized cues for tap feedback.
// Sounds are generated on the fly as beep streamers and mixed into a
// single speaker stream, so no sample files ship with the binary.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is generated at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	wave     Wave
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

// Tone returns a streamer producing a single note of the given length.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, length: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack samples and out over the last
// release samples of its length.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	length   int
}

// Envelope shapes s, which must be length d long, with a linear attack and release.
func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		length:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.length - e.position; e.release > 0 && left < e.release {
			vol = math.Max(float64(left)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; 0 or less silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone with a short click-free attack and release.
func note(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return Envelope(Tone(freq, d, wave, SampleRate), d, 5*time.Millisecond, d/3, SampleRate)
}
