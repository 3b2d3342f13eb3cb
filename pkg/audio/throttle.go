package audio

import (
	"sync"
	"time"
)

const (
	// each sound may start throttleBurst times per throttleWindow
	throttleBurst  = 4
	throttleWindow = 100 * time.Millisecond
)

// throttle is a token bucket per sound, so a wide volley of bullets does
// not start a dozen identical effects in the same frame
type throttle struct {
	maxTokens int
	window    time.Duration
	now       func() time.Time

	mu      sync.Mutex
	buckets map[Sound]*bucket
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

func newThrottle(maxTokens int, window time.Duration) *throttle {
	return &throttle{
		maxTokens: max(maxTokens, 1),
		window:    window,
		now:       time.Now,
		buckets:   make(map[Sound]*bucket),
	}
}

// Allow takes a token for sound, reporting false when none is left
func (t *throttle) Allow(sound Sound) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[sound]
	if !ok {
		b = &bucket{tokens: t.maxTokens, lastRefill: now}
		t.buckets[sound] = b
	}

	if elapsed := now.Sub(b.lastRefill); elapsed > 0 && b.tokens < t.maxTokens {
		refill := int(float64(t.maxTokens) * float64(elapsed) / float64(t.window))
		if refill > 0 {
			b.tokens = min(b.tokens+refill, t.maxTokens)
			b.lastRefill = now
		}
	}

	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}
