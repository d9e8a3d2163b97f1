package viewproc

import (
	"log/slog"
	"sync"
)

// State names one node of the generation/respawn state machine:
//
// start ──(open connection)──► connecting
// connecting ──Inited(gen=N, is_respawn=false)──► connected[gen=N]
// connected[N] ──Suspended──► suspended
// suspended ──Inited(gen=N+1, is_respawn=true)──► connected[N+1]
// connected[N] ──Disconnected(N)──► disconnected
// disconnected ──(respawn)──► connecting (new gen)
type State int

const (
	StateStart State = iota
	StateConnecting
	StateConnected
	StateSuspended
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateSuspended:
		return "suspended"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Controller drives the generation/respawn state machine. Reads (State,
// Generation, IsConnected) may come from any goroutine; only the app thread
// drives transitions.
type Controller struct {
	mu sync.RWMutex
	state State
	gen ViewProcessGen
}

// NewController returns a Controller in StateStart with no generation yet.
func NewController() *Controller {
	return &Controller{state: StateStart, gen: InvalidGen}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Generation returns the current generation, or InvalidGen if never connected.
func (c *Controller) Generation() ViewProcessGen {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// IsConnected reports whether the controller is in StateConnected.
func (c *Controller) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateConnected
}

// Connect transitions start → connecting, opening the IPC channel.
func (c *Controller) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateStart && c.state != StateDisconnected {
		slog.Warn("viewproc: Connect called from unexpected state", "state", c.state)
	}
	c.state = StateConnecting
}

// Inited handles the view process's Inited event: connecting → connected[N],
// or suspended → connected[N+1] when isRespawn.
func (c *Controller) Inited(gen ViewProcessGen, isRespawn bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateConnecting:
		if isRespawn {
			slog.Warn("viewproc: Inited(is_respawn=true) while connecting, not suspended")
		}
	case StateSuspended:
		if !isRespawn {
			slog.Warn("viewproc: Inited(is_respawn=false) while suspended")
		}
	default:
		slog.Warn("viewproc: Inited called from unexpected state", "state", c.state)
	}
	c.state = StateConnected
	c.gen = gen
}

// Suspend transitions connected → suspended.
func (c *Controller) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		slog.Warn("viewproc: Suspend called from unexpected state", "state", c.state)
	}
	c.state = StateSuspended
}

// Disconnected handles the view process's Disconnected(gen) event, moving
// to StateDisconnected iff gen matches the generation we believe is current
// (a Disconnected for a stale generation is ignored, already superseded).
func (c *Controller) Disconnected(gen ViewProcessGen) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		slog.Debug("viewproc: ignoring Disconnected for stale generation", "event_gen", gen, "current_gen", c.gen)
		return
	}
	c.state = StateDisconnected
}

// Respawn transitions disconnected → connecting, to be followed by a fresh
// Inited(gen+1, is_respawn=true) once the new process answers.
func (c *Controller) Respawn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateDisconnected {
		slog.Warn("viewproc: Respawn called from unexpected state", "state", c.state)
	}
	c.state = StateConnecting
}
