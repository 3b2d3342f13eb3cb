// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	BulletFired    Type = "bullet_fired"
	EnemyHit       Type = "enemy_hit"
	EnemyDestroyed Type = "enemy_destroyed"
	PlayerHit      Type = "player_hit"
	WeaponCycled   Type = "weapon_cycled"
	WeaponLevelUp  Type = "weapon_level_up"
	GameWon        Type = "game_won"
	GameLost       Type = "game_lost"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     SubscriptionID
	Cancel func()
}

type registration struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publisher's goroutine.
type Bus struct {
	handlers map[Type][]registration
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id != id {
			continue
		}
		// Copy so a Publish iterating the old slice is not disturbed.
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = next
		}
		return
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// Specific event implementations

// HitEvent describes a bullet striking an enemy or the player
type HitEvent struct {
	BaseEvent
	BulletID uint64
	TargetID uint64
	Damage   float64
	// Remaining is the target's health after the hit
	Remaining float64
}

// NewHitEvent creates a new hit event
func NewHitEvent(eventType Type, source interface{}, bulletID, targetID uint64, damage, remaining float64) *HitEvent {
	return &HitEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BulletID:  bulletID,
		TargetID:  targetID,
		Damage:    damage,
		Remaining: remaining,
	}
}

// EntityEvent contains information about an entity entering or leaving play
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Count    int
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, count int) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Count:    count,
	}
}

// WeaponEvent reports a weapon change or level-up
type WeaponEvent struct {
	BaseEvent
	Weapon string
	Level  int
}

// NewWeaponEvent creates a new weapon event
func NewWeaponEvent(eventType Type, source interface{}, weapon string, level int) *WeaponEvent {
	return &WeaponEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Weapon: weapon,
		Level:  level,
	}
}

// GameEvent reports the end of a game
type GameEvent struct {
	BaseEvent
	Tick   uint64
	Status string
}

// NewGameEvent creates a new game event
func NewGameEvent(eventType Type, source interface{}, tick uint64, status string) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:   tick,
		Status: status,
	}
}
