package engo

import (
	"testing"

	"github.com/opd-ai/go-shooter/pkg/engine"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name     string
		down     []string
		expected engine.Input
	}{
		{"nothing", nil, 0},
		{"fire", []string{"fire"}, engine.NewInput(engine.KeyFire)},
		{"diagonal", []string{"up", "left"}, engine.NewInput(engine.KeyUp, engine.KeyLeft)},
		{"cycle_and_quit", []string{"cycle", "quit"}, engine.NewInput(engine.KeyCycleWeapon, engine.KeyQuit)},
		{"unknown_button", []string{"jump"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := make(map[string]bool)
			for _, name := range tt.down {
				held[name] = true
			}
			got := readInput(func(name string) bool { return held[name] })
			if got != tt.expected {
				t.Errorf("readInput() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBindings_CoverEveryKeyOnce(t *testing.T) {
	seen := make(map[engine.Key]int)
	names := make(map[string]bool)
	for _, b := range bindings {
		seen[b.key]++
		if names[b.name] {
			t.Errorf("button %q registered twice", b.name)
		}
		names[b.name] = true
		if len(b.keys) == 0 {
			t.Errorf("button %q has no keys", b.name)
		}
	}

	keys := []engine.Key{
		engine.KeyUp, engine.KeyDown, engine.KeyLeft, engine.KeyRight,
		engine.KeyCycleWeapon, engine.KeyFire, engine.KeyQuit,
	}
	for _, k := range keys {
		if seen[k] != 1 {
			t.Errorf("key %v bound %d times, expected 1", k, seen[k])
		}
	}
}

func TestInputSystem_StartsEmpty(t *testing.T) {
	is := NewInputSystem()
	if is.Input() != 0 {
		t.Errorf("Input() = %v, expected no keys", is.Input())
	}
}
