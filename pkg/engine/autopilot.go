package engine

import (
	"context"
	"math"
)

// Autopilot produces scripted input for headless runs. It steers under the
// nearest enemy, keeps firing and optionally swaps weapons on a fixed period.
// Given the same game seed it always plays the same game.
type Autopilot struct {
	// CycleEvery presses the weapon cycle key every CycleEvery ticks; 0 never cycles.
	CycleEvery uint64
	// Deadzone is how close, horizontally, the player must be to its target
	// before it stops steering.
	Deadzone float64
}

// NewAutopilot creates an autopilot that never changes weapon
func NewAutopilot() *Autopilot {
	return &Autopilot{Deadzone: 4}
}

// Next decides the input for the upcoming tick
func (a *Autopilot) Next(state *GameState) Input {
	in := NewInput(KeyFire)
	if a.CycleEvery > 0 && state.Tick > 0 && state.Tick%a.CycleEvery == 0 {
		in = NewInput(KeyCycleWeapon)
	}

	target, ok := nearestX(state)
	if !ok {
		return in
	}
	switch dx := target - state.Player.Center.X; {
	case dx > a.Deadzone:
		in = in.With(KeyRight)
	case dx < -a.Deadzone:
		in = in.With(KeyLeft)
	}
	return in
}

// nearestX returns the horizontal position of the enemy closest to the player.
func nearestX(state *GameState) (float64, bool) {
	best, found := math.Inf(1), false
	var x float64
	for _, e := range state.Enemies {
		if d := e.Distance(state.Player.Center); d < best {
			best, x, found = d, e.X, true
		}
	}
	return x, found
}

// RunTicks drives the game with the autopilot until it ends, ctx is
// cancelled, or maxTicks ticks have run (0 means no limit).
func (g *Game) RunTicks(ctx context.Context, pilot *Autopilot, maxTicks int) error {
	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		state := g.GetGameState()
		if state.Status != StatusPlaying {
			return nil
		}
		if err := g.Update(ctx, pilot.Next(state)); err != nil {
			return err
		}
	}
	return nil
}
