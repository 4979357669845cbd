// Package registry tracks the readiness of the external metadata service
// and issues per-dependency version queries against it over JSON-RPC.
package registry

import "sync"

// Readiness is the bootstrap state of the metadata service for this session.
type Readiness int

const (
	// Uninitialized means no bootstrap has been triggered yet.
	Uninitialized Readiness = iota
	// Loading means a bootstrap is in flight.
	Loading
	// Ready means the service connection is confirmed. Ready is terminal.
	Ready
)

// String returns the string representation of the readiness state.
func (r Readiness) String() string {
	switch r {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Tracker guards the session-wide readiness flag. Transitions are
// check-before-act: Begin is the only way to enter Loading, and it tells
// exactly one caller to perform the bootstrap.
type Tracker struct {
	mu    sync.Mutex
	state Readiness
}

// State returns the current readiness.
func (t *Tracker) State() Readiness {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin attempts the Uninitialized -> Loading transition. It returns true
// only for the caller that should run the bootstrap; concurrent callers see
// Loading (or Ready) and get false, so a second trigger never starts a
// second bootstrap.
func (t *Tracker) Begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Uninitialized {
		return false
	}
	t.state = Loading
	return true
}

// MarkReady records the Loading -> Ready transition. Ready never reverts.
func (t *Tracker) MarkReady() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Loading {
		t.state = Ready
	}
}

// Fail reverts Loading -> Uninitialized after a failed bootstrap so a later
// trigger can retry. It has no effect once Ready.
func (t *Tracker) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Loading {
		t.state = Uninitialized
	}
}
