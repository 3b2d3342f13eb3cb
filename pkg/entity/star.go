package entity

import "github.com/opd-ai/go-shooter/pkg/physics"

// Star is a background particle. It has no hitbox.
type Star struct {
	Position   physics.Vector2D
	Velocity   physics.Vector2D
	Size       float64
	Brightness float64
}

// NewStar creates a star falling at speed
func NewStar(position physics.Vector2D, size, speed, brightness float64) *Star {
	return &Star{
		Position:   position,
		Velocity:   physics.Vector2D{Y: speed},
		Size:       size,
		Brightness: brightness,
	}
}

func (s *Star) Physics() {
	s.Position = s.Position.Add(s.Velocity)
}

// IsOffScreen reports whether the star fell below the playfield
func (s *Star) IsOffScreen(playfield physics.Vector2D) bool {
	return s.Position.Y > playfield.Y
}

func (s *Star) Render(r Renderer) {
	r.RenderStar(s)
}
