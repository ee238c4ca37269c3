package audio

import (
	"testing"
	"time"

	"chosenoffset.com/scavenger/internal/movement"
	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the sample count.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("stream still running after %d samples", limit)
	return total
}

func TestVoiceWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVoice(note{wave: tt.wave, start: 440, end: 440, length: 10 * time.Millisecond, gain: 0.5}, 1, rate)
			samples := make([][2]float64, 100)
			n, ok := v.Stream(samples)
			if !ok || n != 100 {
				t.Fatalf("Stream = %d, %v", n, ok)
			}
			for i := 0; i < n; i++ {
				if s := samples[i][0]; s < -0.5 || s > 0.5 {
					t.Errorf("sample %d = %f, beyond gain", i, s)
				}
				if samples[i][0] != samples[i][1] {
					t.Errorf("sample %d not mono", i)
				}
				if tt.wave == WaveSquare && samples[i][0] != 0.5 && samples[i][0] != -0.5 {
					t.Errorf("square sample %d = %f", i, samples[i][0])
				}
			}
		})
	}
}

func TestVoiceStopsAfterLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	v := newVoice(tone(WaveSine, 220, 220, 10*time.Millisecond, 1), 1, rate)
	if got := drain(t, v, rate.N(time.Second)); got != rate.N(10*time.Millisecond) {
		t.Errorf("streamed %d samples, want %d", got, rate.N(10*time.Millisecond))
	}
	if n, ok := v.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("drained voice streamed %d, %v", n, ok)
	}
}

func TestVoiceEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	n := note{wave: WaveSquare, length: 100 * time.Millisecond, attack: 10 * time.Millisecond, release: 10 * time.Millisecond, gain: 1}
	samples := make([][2]float64, 100)
	if got, _ := newVoice(n, 1, rate).Stream(samples); got != 100 {
		t.Fatalf("n = %d", got)
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample %f, want silent attack start", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample %f, want 1", samples[50][0])
	}
	if samples[99][0] <= 0 || samples[99][0] >= 0.2 {
		t.Errorf("last sample %f, want nearly faded", samples[99][0])
	}
}

func TestVoiceGlideRaisesPitch(t *testing.T) {
	rate := beep.SampleRate(8000)
	v := newVoice(note{wave: WaveSine, start: 100, end: 400, length: time.Second, gain: 1}, 1, rate)
	samples := make([][2]float64, rate.N(time.Second))
	n, _ := v.Stream(samples)

	crossings := func(from, to int) int {
		c := 0
		for i := from + 1; i < to; i++ {
			if (samples[i-1][0] < 0) != (samples[i][0] < 0) {
				c++
			}
		}
		return c
	}
	first, second := crossings(0, n/2), crossings(n/2, n)
	if second <= first {
		t.Errorf("zero crossings %d then %d, want the second half higher", first, second)
	}
}

func TestEffectForCues(t *testing.T) {
	rate := beep.SampleRate(44100)
	audible := []movement.Cue{movement.CueStep, movement.CueChop, movement.CueEat, movement.CueDrink, movement.CueAttack}
	for _, cue := range audible {
		for variant := 0; variant < 2; variant++ {
			s := Effect(cue, variant, 1.0, rate)
			if s == nil {
				t.Fatalf("no effect for %q variant %d", cue, variant)
			}
			if n := drain(t, s, rate.N(time.Second)); n == 0 {
				t.Errorf("%q variant %d is empty", cue, variant)
			}
		}
	}
	for _, cue := range []movement.Cue{movement.CueNone, movement.CueBump, movement.CueExit} {
		if Effect(cue, 0, 1.0, rate) != nil {
			t.Errorf("cue %q should be silent", cue)
		}
	}
}

func TestGameOverSoundLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	n := drain(t, gameOverSound.streamer(1, rate), rate.N(2*time.Second))
	if want := rate.N(880 * time.Millisecond); n < want-3 || n > want+3 {
		t.Errorf("game over sound %d samples, want about %d", n, want)
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(0, nil)
	sm.PlayCue(movement.CueStep)
	sm.PlayGameOver()
	sm.Cleanup()
	if sm.Enabled() {
		t.Error("manager enabled without Initialize")
	}
	if sm.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers", sm.mixer.Len())
	}
}

func TestRandomizeRange(t *testing.T) {
	sm := NewSoundManager(0, nil)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		v, p := sm.randomize()
		seen[v] = true
		if p < lowPitch || p >= highPitch {
			t.Fatalf("pitch %f outside [%f, %f)", p, lowPitch, highPitch)
		}
	}
	if !seen[0] || !seen[1] {
		t.Errorf("variants seen %v, want both", seen)
	}
}
