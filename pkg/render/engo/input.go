// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shooter/pkg/engine"
)

// binding ties a named engo button to a game control
type binding struct {
	name string
	key  engine.Key
	keys []engo.Key
}

var bindings = []binding{
	{"up", engine.KeyUp, []engo.Key{engo.KeyArrowUp, engo.KeyW}},
	{"down", engine.KeyDown, []engo.Key{engo.KeyArrowDown, engo.KeyS}},
	{"left", engine.KeyLeft, []engo.Key{engo.KeyArrowLeft, engo.KeyA}},
	{"right", engine.KeyRight, []engo.Key{engo.KeyArrowRight, engo.KeyD}},
	{"cycle", engine.KeyCycleWeapon, []engo.Key{engo.KeyLeftShift, engo.KeyTab}},
	{"fire", engine.KeyFire, []engo.Key{engo.KeySpace}},
	{"quit", engine.KeyQuit, []engo.Key{engo.KeyEscape}},
}

// SetupInputBindings registers the game's buttons with engo
func SetupInputBindings() {
	for _, b := range bindings {
		engo.Input.RegisterButton(b.name, b.keys...)
	}
}

// readInput builds the held set from a button lookup
func readInput(down func(name string) bool) engine.Input {
	var in engine.Input
	for _, b := range bindings {
		if down(b.name) {
			in = in.With(b.key)
		}
	}
	return in
}

// InputSystem samples the keyboard once per frame
type InputSystem struct {
	current engine.Input
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Priority runs input sampling before the game step
func (is *InputSystem) Priority() int { return 10 }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update reads the held buttons
func (is *InputSystem) Update(dt float32) {
	is.current = readInput(func(name string) bool {
		return engo.Input.Button(name).Down()
	})
}

// Input returns the keys held during the last frame
func (is *InputSystem) Input() engine.Input {
	return is.current
}
