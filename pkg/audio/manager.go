// Package audio plays synthesized sound effects in response to game events.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-shooter/pkg/event"
	"github.com/opd-ai/go-shooter/pkg/logging"
)

const (
	SampleRate = beep.SampleRate(44100)

	// DefaultMaxVoices bounds how many effects play at once
	DefaultMaxVoices = 16

	bufferDuration = 100 * time.Millisecond
)

// speakerLock guards the mixer while the speaker goroutine streams from it
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// SoundManager mixes sound effects onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	lock        sync.Locker
	throttle    *throttle
	logger      *logging.Logger
	volume      float64
	maxVoices   int
	initialized bool
	dropped     int
}

// NewSoundManager creates a sound manager. Nothing plays until Initialize
// succeeds.
func NewSoundManager(logger *logging.Logger, volume float64) *SoundManager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SoundManager{
		mixer:     &beep.Mixer{},
		lock:      speakerLock{},
		throttle:  newThrottle(throttleBurst, throttleWindow),
		logger:    logger,
		volume:    min(max(volume, 0), 1),
		maxVoices: DefaultMaxVoices,
	}
}

// Initialize opens the audio device. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(bufferDuration)); err != nil {
		return logging.WrapError(err, "init speaker")
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play starts a sound. It is dropped when audio is unavailable, the same
// sound started too often, or too many sounds are already playing.
func (sm *SoundManager) Play(sound Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if !sm.throttle.Allow(sound) {
		sm.dropped++
		return
	}
	s := Effect(sound, sm.volume, SampleRate)
	if s == nil {
		return
	}

	sm.lock.Lock()
	defer sm.lock.Unlock()
	if sm.mixer.Len() >= sm.maxVoices {
		sm.dropped++
		return
	}
	sm.mixer.Add(s)
}

// Playing returns the number of sounds still in the mixer
func (sm *SoundManager) Playing() int {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	return sm.mixer.Len()
}

// Dropped returns how many sounds were skipped
func (sm *SoundManager) Dropped() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.dropped
}

// Attach plays a sound for each game event published on bus. The returned
// function unsubscribes every handler.
func (sm *SoundManager) Attach(bus *event.Bus) func() {
	sounds := map[event.Type]Sound{
		event.BulletFired:    SoundShot,
		event.EnemyDestroyed: SoundExplosion,
		event.PlayerHit:      SoundPlayerHit,
		event.WeaponLevelUp:  SoundLevelUp,
		event.GameWon:        SoundWin,
		event.GameLost:       SoundLose,
	}

	subs := make([]*event.Subscription, 0, len(sounds))
	for eventType, sound := range sounds {
		subs = append(subs, bus.Subscribe(eventType, func(event.Event) {
			sm.Play(sound)
		}))
	}
	return func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}
}

// Close silences everything still playing
func (sm *SoundManager) Close(ctx context.Context) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.lock.Lock()
	sm.mixer.Clear()
	sm.lock.Unlock()
	sm.initialized = false
	sm.logger.Debug(ctx, "audio closed", "dropped", sm.dropped)
}
