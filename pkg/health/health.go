// Package health exposes liveness and readiness probes for long-running
// simulations, so a soak run can be watched from outside the process.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/go-shooter/pkg/engine"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	checkTimeout = 5 * time.Second
)

// Check is a single named probe
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// Report aggregates the outcome of every registered check
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks"`
}

// Result is the outcome of one check
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker runs the registered checks
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
}

// NewChecker creates an empty checker
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
	}
}

// AddCheck registers a check, replacing any check with the same name
func (c *Checker) AddCheck(check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[check.Name()] = check
}

// RemoveCheck unregisters a check by name
func (c *Checker) RemoveCheck(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// Names lists the registered checks in order
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every check. The report is healthy only if all of them pass.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report := Report{
		Status: statusHealthy,
		Checks: make(map[string]Result, len(c.checks)),
	}
	for name, check := range c.checks {
		if err := check.Check(ctx); err != nil {
			report.Status = statusUnhealthy
			report.Checks[name] = Result{Status: statusUnhealthy, Message: err.Error()}
			continue
		}
		report.Checks[name] = Result{Status: statusHealthy}
	}
	return report
}

// LivenessHandler answers 200 for as long as the process serves requests
func (c *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// ReadinessHandler runs the checks and answers 503 if any fails
func (c *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	report := c.Run(ctx)

	w.Header().Set("Content-Type", "application/json")
	if report.Status == statusHealthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(report)
}

// Handler serves /health and /ready
func (c *Checker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", c.LivenessHandler)
	mux.HandleFunc("/ready", c.ReadinessHandler)
	return mux
}

// StateSource is satisfied by *engine.Game
type StateSource interface {
	GetGameState() *engine.GameState
}

// ProgressCheck fails when the tick counter stops moving for longer than
// the allowed stall while the game is still being played.
type ProgressCheck struct {
	source   StateSource
	maxStall time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastTick uint64
	lastSeen time.Time
}

// NewProgressCheck watches source for stalls longer than maxStall
func NewProgressCheck(source StateSource, maxStall time.Duration) *ProgressCheck {
	return &ProgressCheck{
		source:   source,
		maxStall: maxStall,
		now:      time.Now,
		lastSeen: time.Now(),
	}
}

func (p *ProgressCheck) Name() string {
	return "simulation_progress"
}

func (p *ProgressCheck) Check(ctx context.Context) error {
	state := p.source.GetGameState()

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if state.Tick != p.lastTick || state.Status != engine.StatusPlaying {
		p.lastTick, p.lastSeen = state.Tick, now
		return nil
	}
	if stalled := now.Sub(p.lastSeen); stalled > p.maxStall {
		return fmt.Errorf("tick %d has not advanced for %s", state.Tick, stalled.Round(time.Millisecond))
	}
	return nil
}

// PlayerCheck fails once the player has been destroyed
type PlayerCheck struct {
	source StateSource
}

// NewPlayerCheck reports the player's survival
func NewPlayerCheck(source StateSource) *PlayerCheck {
	return &PlayerCheck{source: source}
}

func (p *PlayerCheck) Name() string {
	return "player"
}

func (p *PlayerCheck) Check(ctx context.Context) error {
	state := p.source.GetGameState()
	if state.Status == engine.StatusLost {
		return fmt.Errorf("player destroyed at tick %d", state.Tick)
	}
	return nil
}

// MemoryCheck fails when heap usage exceeds the limit
type MemoryCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryCheck creates a memory check; getMemoryUsage reports megabytes
func NewMemoryCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryCheck {
	return &MemoryCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

func (m *MemoryCheck) Name() string {
	return "memory"
}

func (m *MemoryCheck) Check(ctx context.Context) error {
	if used := m.getMemoryUsage(); used > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", used, m.maxMemoryMB)
	}
	return nil
}
