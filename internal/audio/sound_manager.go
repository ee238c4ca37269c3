// Package audio plays synthesized sound cues for game events.
package audio

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/movement"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Random pitch range applied to variant cues
	lowPitch  = 0.95
	highPitch = 1.05
)

// SoundManager manages all game audio. Until Initialize succeeds every Play
// call is a no-op, so a machine without an audio device runs silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	rng         *rand.Rand
	initialized bool
	log         logging.Logger
}

// NewSoundManager creates a new sound manager. volume is a base-2 offset;
// 0 plays at full scale and -1 at half amplitude.
func NewSoundManager(volume float64, log logging.Logger) *SoundManager {
	if log == nil {
		log = logging.Noop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    log.With(logging.String("component", "audio")),
	}
}

// Initialize opens the speaker. On failure the manager stays silent and
// the wrapped error is returned for logging.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	speaker.Play(&effects.Volume{Streamer: sm.mixer, Base: 2, Volume: sm.volume})
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Enabled reports whether sound is playing.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayCue plays one of the cue's two variants at a slightly random pitch.
func (sm *SoundManager) PlayCue(cue movement.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	variant, pitch := sm.randomize()
	s := Effect(cue, variant, pitch, sampleRate)
	if s == nil {
		return
	}
	sm.add(s)
}

// PlayGameOver plays the game over phrase.
func (sm *SoundManager) PlayGameOver() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.add(gameOverSound.streamer(1, sampleRate))
}

// randomize picks a variant and a pitch in [lowPitch, highPitch).
func (sm *SoundManager) randomize() (int, float64) {
	return sm.rng.Intn(2), lowPitch + sm.rng.Float64()*(highPitch-lowPitch)
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
