package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Sound names a game sound effect
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundPlayerHit
	SoundLevelUp
	SoundWin
	SoundLose
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	case SoundPlayerHit:
		return "player_hit"
	case SoundLevelUp:
		return "level_up"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	default:
		return "unknown"
	}
}

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator streams duration worth of a single tone
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	return &envelope{
		streamer: s,
		attack:   att,
		release:  min(rate.N(release), total-att),
		total:    total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		if e.position >= e.total {
			return i, i > 0
		}
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
		e.position++
	}
	return n, ok
}

func (e *envelope) gain() float64 {
	switch {
	case e.position < e.attack:
		return float64(e.position) / float64(e.attack)
	case e.release > 0 && e.position >= e.total-e.release:
		return float64(e.total-e.position) / float64(e.release)
	default:
		return 1
	}
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero is silenced
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an oscillator with a short fade at both ends
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect builds a fresh streamer for the sound at the given volume
func Effect(sound Sound, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundShot:
		s = newVolume(tone(1320, 40*time.Millisecond, WaveSquare, rate), 0.3)
	case SoundExplosion:
		s = tone(0, 250*time.Millisecond, WaveNoise, rate)
	case SoundPlayerHit:
		s = tone(110, 150*time.Millisecond, WaveSaw, rate)
	case SoundLevelUp:
		s = beep.Seq(
			tone(659.25, 80*time.Millisecond, WaveSquare, rate),
			tone(987.77, 120*time.Millisecond, WaveSquare, rate),
		)
	case SoundWin:
		s = beep.Seq(
			tone(523.25, 120*time.Millisecond, WaveSine, rate),
			tone(659.25, 120*time.Millisecond, WaveSine, rate),
			tone(783.99, 300*time.Millisecond, WaveSine, rate),
		)
	case SoundLose:
		s = beep.Seq(
			tone(220, 200*time.Millisecond, WaveSaw, rate),
			tone(146.83, 400*time.Millisecond, WaveSaw, rate),
		)
	default:
		return nil
	}
	return newVolume(s, volume)
}
