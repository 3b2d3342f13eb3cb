// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_GetType_ReturnsCorrectType(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{
			name:      "BulletFired event",
			eventType: BulletFired,
			source:    "test_source",
		},
		{
			name:      "EnemyDestroyed event",
			eventType: EnemyDestroyed,
			source:    123,
		},
		{
			name:      "Empty source",
			eventType: GameWon,
			source:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &BaseEvent{
				EventType: tt.eventType,
				Source:    tt.source,
			}

			if event.GetType() != tt.eventType {
				t.Errorf("GetType() = %v, want %v", event.GetType(), tt.eventType)
			}
			if event.GetSource() != tt.source {
				t.Errorf("GetSource() = %v, want %v", event.GetSource(), tt.source)
			}
		})
	}
}

func TestBusSubscribe_MultipleHandlers_AllRegistered(t *testing.T) {
	bus := NewEventBus()
	handler := func(e Event) {}

	sub1 := bus.Subscribe(EnemyHit, handler)
	sub2 := bus.Subscribe(EnemyHit, handler)
	_ = bus.Subscribe(PlayerHit, handler)

	if sub1.ID == 0 || sub1.ID == sub2.ID {
		t.Errorf("subscriptions should have unique non-zero IDs, got %d and %d", sub1.ID, sub2.ID)
	}
	if sub1.Cancel == nil {
		t.Error("subscription Cancel function should not be nil")
	}

	bus.mu.RLock()
	hitHandlers := len(bus.handlers[EnemyHit])
	playerHandlers := len(bus.handlers[PlayerHit])
	bus.mu.RUnlock()

	if hitHandlers != 2 {
		t.Errorf("expected 2 handlers for EnemyHit, got %d", hitHandlers)
	}
	if playerHandlers != 1 {
		t.Errorf("expected 1 handler for PlayerHit, got %d", playerHandlers)
	}
}

func TestBusPublish_WithSubscribers_CallsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	bus.Subscribe(EnemyHit, func(e Event) { calls = append(calls, "first") })
	bus.Subscribe(EnemyHit, func(e Event) { calls = append(calls, "second") })
	bus.Subscribe(PlayerHit, func(e Event) { calls = append(calls, "other") })

	bus.Publish(NewHitEvent(EnemyHit, "test", 1, 2, 4, 16))

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("handler calls = %v, want [first second]", calls)
	}
}

func TestBusPublish_NoSubscribers_NoError(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(&BaseEvent{EventType: GameLost})
}

func TestBusUnsubscribe_ByID_OnlyTargetRemoved(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false
	handler3Called := false

	sub1 := bus.Subscribe(WeaponCycled, func(e Event) { handler1Called = true })
	_ = bus.Subscribe(WeaponCycled, func(e Event) { handler2Called = true })
	sub3 := bus.Subscribe(WeaponLevelUp, func(e Event) { handler3Called = true })

	bus.Unsubscribe(WeaponCycled, sub1.ID)
	// Wrong type: must not remove anything.
	bus.Unsubscribe(WeaponCycled, sub3.ID)
	bus.Unsubscribe(WeaponCycled, 9999)

	bus.Publish(&BaseEvent{EventType: WeaponCycled})
	bus.Publish(&BaseEvent{EventType: WeaponLevelUp})

	if handler1Called {
		t.Error("handler1 should not be called after unsubscribing")
	}
	if !handler2Called {
		t.Error("handler2 should be called")
	}
	if !handler3Called {
		t.Error("handler3 should be called")
	}
}

func TestSubscriptionCancel_ValidSubscription_RemovesHandler(t *testing.T) {
	bus := NewEventBus()
	handlerCalled := false

	sub := bus.Subscribe(GameWon, func(e Event) { handlerCalled = true })
	sub.Cancel()
	// Cancelling twice is harmless.
	sub.Cancel()

	bus.mu.RLock()
	handlersAfter := len(bus.handlers[GameWon])
	bus.mu.RUnlock()

	if handlersAfter != 0 {
		t.Errorf("expected 0 handlers after cancel, got %d", handlersAfter)
	}

	bus.Publish(&BaseEvent{EventType: GameWon})
	if handlerCalled {
		t.Error("handler should not be called after cancellation")
	}
}

func TestBusPublish_HandlerCancelsItself(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	var sub *Subscription
	sub = bus.Subscribe(BulletFired, func(e Event) {
		calls++
		sub.Cancel()
	})
	bus.Subscribe(BulletFired, func(e Event) { calls++ })

	bus.Publish(&BaseEvent{EventType: BulletFired})
	bus.Publish(&BaseEvent{EventType: BulletFired})

	if calls != 3 {
		t.Errorf("expected 3 handler calls, got %d", calls)
	}
}

func TestBusSubscribe_ConcurrentAccess_ThreadSafe(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	handlerCount := 0
	var mu sync.Mutex

	handler := func(e Event) {
		mu.Lock()
		handlerCount++
		mu.Unlock()
	}

	numGoroutines := 10
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			bus.Subscribe(EnemyDestroyed, handler)
		}()
	}
	wg.Wait()

	event := &BaseEvent{EventType: EnemyDestroyed, Source: "test"}
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func() {
			defer wg.Done()
			bus.Publish(event)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if expected := numGoroutines * 3; handlerCount != expected {
		t.Errorf("expected %d handler calls, got %d", expected, handlerCount)
	}
}

func TestEventConstructors_ValidParameters_ReturnCorrectEvents(t *testing.T) {
	hit := NewHitEvent(PlayerHit, "engine", 7, 1, 10, 90)
	if hit.GetType() != PlayerHit || hit.BulletID != 7 || hit.TargetID != 1 || hit.Damage != 10 || hit.Remaining != 90 {
		t.Errorf("NewHitEvent() = %+v", hit)
	}

	destroyed := NewEntityEvent(EnemyDestroyed, "engine", 42, 20)
	if destroyed.GetType() != EnemyDestroyed || destroyed.EntityID != 42 || destroyed.Count != 20 {
		t.Errorf("NewEntityEvent() = %+v", destroyed)
	}

	weapon := NewWeaponEvent(WeaponLevelUp, nil, "WideGun", 3)
	if weapon.GetType() != WeaponLevelUp || weapon.Weapon != "WideGun" || weapon.Level != 3 || weapon.GetSource() != nil {
		t.Errorf("NewWeaponEvent() = %+v", weapon)
	}

	game := NewGameEvent(GameLost, "engine", 900, "game over")
	if game.GetType() != GameLost || game.Tick != 900 || game.Status != "game over" {
		t.Errorf("NewGameEvent() = %+v", game)
	}
}
