package engine

import "strings"

// Key is an abstract game control, independent of any input device
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyCycleWeapon
	KeyFire
	KeyQuit
	numKeys
)

var keyNames = [numKeys]string{"up", "down", "left", "right", "cycle", "fire", "quit"}

func (k Key) String() string {
	if k < numKeys {
		return keyNames[k]
	}
	return "unknown"
}

// Input is the set of keys held during one tick
type Input uint16

// NewInput returns an input with the given keys held
func NewInput(keys ...Key) Input {
	var in Input
	for _, k := range keys {
		in = in.With(k)
	}
	return in
}

// With returns a copy of in with k held
func (in Input) With(k Key) Input {
	return in | 1<<k
}

// Without returns a copy of in with k released
func (in Input) Without(k Key) Input {
	return in &^ (1 << k)
}

// Held reports whether k is held
func (in Input) Held(k Key) bool {
	return in&(1<<k) != 0
}

func (in Input) String() string {
	var held []string
	for k := Key(0); k < numKeys; k++ {
		if in.Held(k) {
			held = append(held, k.String())
		}
	}
	return "[" + strings.Join(held, " ") + "]"
}
