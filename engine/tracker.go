package engine

import (
	"context"
	"sync"
)

// EventType identifies a handle lifecycle event.
type EventType int

const (
	EventTracked EventType = iota
	EventReleased
)

// Event describes a handle lifecycle transition.
type Event struct {
	Type    EventType
	Session string
	Path    string
}

// Observer receives handle lifecycle events.
type Observer interface {
	OnHandleEvent(e Event)
}

// Tracker is a registry of live engine handles. Handles carry no
// finalizer, so a process outlives any handle that is dropped without
// Shutdown; tracking every spawned handle makes that gap auditable
// and gives callers a single ShutdownAll for program exit.
type Tracker struct {
	mu        sync.RWMutex
	handles   map[string]*Handle // keyed by session ID
	observers []Observer
	closed    bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		handles: make(map[string]*Handle),
	}
}

// Track registers h. It returns false if the tracker is closed or the
// session is already tracked.
func (t *Tracker) Track(h *Handle) bool {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return false
	}
	if _, exists := t.handles[h.Session()]; exists {
		t.mu.Unlock()
		return false
	}
	t.handles[h.Session()] = h
	t.mu.Unlock()

	t.notify(Event{Type: EventTracked, Session: h.Session(), Path: h.Path()})
	return true
}

// Release removes the handle for session and returns it. The handle is
// not shut down; that remains the caller's job.
func (t *Tracker) Release(session string) (*Handle, bool) {
	t.mu.Lock()
	h, ok := t.handles[session]
	if ok {
		delete(t.handles, session)
	}
	t.mu.Unlock()

	if !ok {
		return nil, false
	}
	t.notify(Event{Type: EventReleased, Session: session, Path: h.Path()})
	return h, true
}

// Len returns the number of tracked handles.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handles)
}

// Sessions returns the session IDs of all tracked handles.
func (t *Tracker) Sessions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.handles))
	for s := range t.handles {
		out = append(out, s)
	}
	return out
}

// Subscribe adds an observer for lifecycle events.
func (t *Tracker) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Tracker) Unsubscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// ShutdownAll releases every tracked handle and shuts it down,
// returning the first shutdown error. The tracker stops accepting
// handles afterwards.
func (t *Tracker) ShutdownAll(ctx context.Context) error {
	t.mu.Lock()
	t.closed = true
	handles := make([]*Handle, 0, len(t.handles))
	sessions := make([]string, 0, len(t.handles))
	for s, h := range t.handles {
		handles = append(handles, h)
		sessions = append(sessions, s)
	}
	t.handles = make(map[string]*Handle)
	t.mu.Unlock()

	var firstErr error
	for i, h := range handles {
		if err := h.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		t.notify(Event{Type: EventReleased, Session: sessions[i], Path: h.Path()})
	}
	return firstErr
}

func (t *Tracker) notify(e Event) {
	t.mu.RLock()
	observers := make([]Observer, len(t.observers))
	copy(observers, t.observers)
	t.mu.RUnlock()

	for _, o := range observers {
		o.OnHandleEvent(e)
	}
}
