package route

import (
	"context"
	"sync"
)

// Navigator hands out cancellable load tickets keyed by a navigation
// generation. Starting a new navigation cancels the previous in-flight load,
// results of a superseded generation must be dropped by the caller.
type Navigator struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

type Ticket struct {
	Gen    uint64
	Ctx    context.Context
	cancel context.CancelFunc
}

// Done releases the resources of the ticket
func (t Ticket) Done() {
	if t.cancel != nil {
		t.cancel()
	}
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

// Begin starts a new navigation generation
func (n *Navigator) Begin(parent context.Context) Ticket {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
	n.gen++
	ctx, cancel := context.WithCancel(parent)
	n.cancel = cancel
	return Ticket{Gen: n.gen, Ctx: ctx, cancel: cancel}
}

// Abort cancels the in-flight load (if any) and invalidates its generation.
// Used when navigating to a view which needs no load (the race list).
func (n *Navigator) Abort() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.gen++
}

// Current reports whether gen is the latest generation
func (n *Navigator) Current(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen == n.gen
}
