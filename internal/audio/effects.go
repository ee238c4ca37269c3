package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"chosenoffset.com/scavenger/internal/movement"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// note is one synthesized sound: a wave gliding from start to end Hz over
// its length, with a linear attack and release and a peak gain. Noise
// ignores the frequencies.
type note struct {
	wave       Wave
	start, end float64
	length     time.Duration
	attack     time.Duration
	release    time.Duration
	gain       float64
}

// tone is a pitched note with a short attack and a release over its
// second half.
func tone(w Wave, from, to float64, d time.Duration, gain float64) note {
	return note{wave: w, start: from, end: to, length: d, attack: 5 * time.Millisecond, release: d / 2, gain: gain}
}

// hiss is a noise burst that fades out over its whole length.
func hiss(d time.Duration, gain float64) note {
	return note{wave: WaveNoise, length: d, attack: time.Millisecond, release: d, gain: gain}
}

// layer is a run of notes played back to back; a sound mixes its layers.
type (
	layer []note
	sound []layer
)

// cueSounds holds the two variants of every audible cue. Bumps and the
// exit are silent.
var cueSounds = map[movement.Cue][2]sound{
	movement.CueStep: {
		{{tone(WaveSine, 180, 140, 60*time.Millisecond, 0.5)}, {hiss(60*time.Millisecond, 0.15)}},
		{{tone(WaveSine, 150, 120, 60*time.Millisecond, 0.5)}, {hiss(60*time.Millisecond, 0.15)}},
	},
	movement.CueChop: {
		{{tone(WaveSaw, 120, 90, 90*time.Millisecond, 0.4)}, {hiss(30*time.Millisecond, 0.4)}},
		{{tone(WaveSaw, 105, 80, 90*time.Millisecond, 0.4)}, {hiss(30*time.Millisecond, 0.4)}},
	},
	movement.CueEat: {
		{{tone(WaveSine, 523.25, 523.25, 70*time.Millisecond, 0.5), tone(WaveSine, 784.88, 784.88, 70*time.Millisecond, 0.5)}},
		{{tone(WaveSine, 587.33, 587.33, 70*time.Millisecond, 0.5), tone(WaveSine, 880.99, 880.99, 70*time.Millisecond, 0.5)}},
	},
	movement.CueDrink: {
		{{
			tone(WaveSquare, 392, 392, 45*time.Millisecond, 0.25),
			tone(WaveSquare, 490, 490, 45*time.Millisecond, 0.25),
			tone(WaveSquare, 588, 588, 45*time.Millisecond, 0.25),
		}},
		{{
			tone(WaveSquare, 440, 440, 45*time.Millisecond, 0.25),
			tone(WaveSquare, 550, 550, 45*time.Millisecond, 0.25),
			tone(WaveSquare, 660, 660, 45*time.Millisecond, 0.25),
		}},
	},
	movement.CueAttack: {
		{{tone(WaveSaw, 90, 60, 160*time.Millisecond, 0.5)}},
		{{tone(WaveSaw, 75, 50, 160*time.Millisecond, 0.5)}},
	},
}

// gameOverSound is a slow falling phrase.
var gameOverSound = sound{{
	tone(WaveSine, 392, 392, 220*time.Millisecond, 0.5),
	tone(WaveSine, 329.63, 329.63, 220*time.Millisecond, 0.5),
	tone(WaveSine, 261.63, 200, 440*time.Millisecond, 0.5),
}}

// Effect builds the streamer for a cue, or nil when the cue is silent.
// pitch scales every frequency; 1 is unchanged.
func Effect(cue movement.Cue, variant int, pitch float64, rate beep.SampleRate) beep.Streamer {
	variants, ok := cueSounds[cue]
	if !ok {
		return nil
	}
	return variants[variant%2].streamer(pitch, rate)
}

func (s sound) streamer(pitch float64, rate beep.SampleRate) beep.Streamer {
	layers := make([]beep.Streamer, 0, len(s))
	for _, l := range s {
		notes := make([]beep.Streamer, len(l))
		for i, n := range l {
			notes[i] = newVoice(n, pitch, rate)
		}
		layers = append(layers, beep.Seq(notes...))
	}
	return beep.Mix(layers...)
}

// voice renders one note.
type voice struct {
	note  note
	pitch float64
	rate  beep.SampleRate
	rng   *rand.Rand

	pos, total, attack, release int
	phase                       float64
}

func newVoice(n note, pitch float64, rate beep.SampleRate) *voice {
	return &voice{
		note:    n,
		pitch:   pitch,
		rate:    rate,
		rng:     rand.New(rand.NewSource(int64(n.start*1000) + int64(n.length))),
		total:   rate.N(n.length),
		attack:  rate.N(n.attack),
		release: rate.N(n.release),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for n < len(samples) && v.pos < v.total {
		val := v.wave() * v.envelope() * v.note.gain
		samples[n][0] = val
		samples[n][1] = val

		progress := float64(v.pos) / float64(v.total)
		freq := (v.note.start + (v.note.end-v.note.start)*progress) * v.pitch
		v.phase += freq / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
		n++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

func (v *voice) wave() float64 {
	switch v.note.wave {
	case WaveSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (v.phase - 0.5)
	case WaveNoise:
		return v.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * v.phase)
	}
}

// envelope is the gain multiplier at the current sample, in [0, 1].
func (v *voice) envelope() float64 {
	env := 1.0
	if v.attack > 0 && v.pos < v.attack {
		env = float64(v.pos) / float64(v.attack)
	}
	if left := v.total - v.pos; v.release > 0 && left < v.release {
		env = math.Min(env, float64(left)/float64(v.release))
	}
	return env
}
