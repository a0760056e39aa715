package core

import "sync"

// RunState is the lifecycle of a single aggregation or submission run
type RunState int

const (
	Idle RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// RunGuard rejects a new run while one is active
type RunGuard struct {
	mu    sync.Mutex
	state RunState
}

// TryStart moves the guard to Running. It returns false if a run is
// already active.
func (g *RunGuard) TryStart() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Running {
		return false
	}
	g.state = Running
	return true
}

// Finish returns the guard to Idle
func (g *RunGuard) Finish() {
	g.mu.Lock()
	g.state = Idle
	g.mu.Unlock()
}

// State returns the current run state
func (g *RunGuard) State() RunState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
