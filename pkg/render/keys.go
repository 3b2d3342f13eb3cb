// pkg/render/keys.go
package render

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shooter/pkg/engine"
)

// DefaultKeyHold is how many ticks a key press stays held. Terminals report
// presses and auto-repeat but never releases.
const DefaultKeyHold = 8

// keyFor maps a terminal key to a game control
func keyFor(key tcell.Key, ch rune) (engine.Key, bool) {
	switch key {
	case tcell.KeyUp:
		return engine.KeyUp, true
	case tcell.KeyDown:
		return engine.KeyDown, true
	case tcell.KeyLeft:
		return engine.KeyLeft, true
	case tcell.KeyRight:
		return engine.KeyRight, true
	case tcell.KeyTab, tcell.KeyBacktab:
		return engine.KeyCycleWeapon, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.KeyQuit, true
	case tcell.KeyRune:
		switch ch {
		case ' ':
			return engine.KeyFire, true
		case 'w', 'k':
			return engine.KeyUp, true
		case 's', 'j':
			return engine.KeyDown, true
		case 'a', 'h':
			return engine.KeyLeft, true
		case 'd', 'l':
			return engine.KeyRight, true
		case 'c':
			return engine.KeyCycleWeapon, true
		case 'q':
			return engine.KeyQuit, true
		}
	}
	return 0, false
}

// KeyPoller turns terminal key events into per-tick engine.Input values
type KeyPoller struct {
	screen  tcell.Screen
	events  chan tcell.Event
	hold    int
	mu      sync.Mutex
	held    map[engine.Key]int
	resized bool
}

// NewKeyPoller creates a poller for screen. Presses stay held for hold ticks.
func NewKeyPoller(screen tcell.Screen, hold int) *KeyPoller {
	return &KeyPoller{
		screen: screen,
		events: make(chan tcell.Event, 100),
		hold:   max(hold, 1),
		held:   make(map[engine.Key]int),
	}
}

// Start reads screen events on a goroutine until ctx is done or the screen
// is finalised.
func (p *KeyPoller) Start(ctx context.Context) {
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case p.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Handle applies one event
func (p *KeyPoller) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := keyFor(ev.Key(), ev.Rune()); ok {
			p.Press(k)
		}
	case *tcell.EventResize:
		p.mu.Lock()
		p.resized = true
		p.mu.Unlock()
	}
}

// Press marks k as held for the next hold ticks
func (p *KeyPoller) Press(k engine.Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held[k] = p.hold
}

// Resized reports and clears a pending resize
func (p *KeyPoller) Resized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := p.resized
	p.resized = false
	return r
}

// Poll drains queued events and returns the keys held for this tick
func (p *KeyPoller) Poll() engine.Input {
	for drained := false; !drained; {
		select {
		case ev := <-p.events:
			p.Handle(ev)
		default:
			drained = true
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	var in engine.Input
	for k, ticks := range p.held {
		in = in.With(k)
		if ticks <= 1 {
			delete(p.held, k)
		} else {
			p.held[k] = ticks - 1
		}
	}
	return in
}
