package observe

import (
	"sync"

	"github.com/google/uuid"

	"github.com/grindlemire/go-observe/internal/debug"
)

// Handler is a callback registered under an event name. It receives the
// value that was written to the property of the same name.
type Handler func(value any)

// entry is a registered handler with its subscription token.
// Canceled entries are marked inactive and compacted on the next emit,
// so stale registrations do not accumulate.
type entry struct {
	token  uuid.UUID
	fn     Handler
	once   bool
	active bool
}

// Registry maps event names to ordered handler lists. Handlers for an event
// fire in registration order. Handler identity is token-based: every
// registration is issued an opaque uuid, and removal operates on that token,
// never on function comparison.
//
// Emission is synchronous and reentrant: a handler may itself trigger
// another emit, which runs to completion before the outer dispatch resumes.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]*entry

	// panicHandler, when set, isolates a panicking handler: the panic value
	// is handed to it and dispatch continues with the remaining handlers.
	// When nil (the default), a handler panic aborts the rest of that
	// dispatch and propagates to the caller of Emit.
	panicHandler func(event string, recovered any)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPanicHandler makes the registry recover a panicking handler and pass
// the panic value to fn, continuing dispatch with the remaining handlers.
// Without this option a handler panic propagates to the emitter.
func WithPanicHandler(fn func(event string, recovered any)) RegistryOption {
	return func(r *Registry) {
		r.panicHandler = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{handlers: make(map[string][]*entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscription is a handle to a single registration. Cancel it to stop
// receiving events; canceling more than once is a no-op.
type Subscription struct {
	registry *Registry
	event    string
	token    uuid.UUID
}

// Event returns the event name this subscription listens on.
func (s *Subscription) Event() string { return s.event }

// Token returns the opaque token identifying this registration.
func (s *Subscription) Token() uuid.UUID { return s.token }

// Cancel removes the registration. Equivalent to
// Registry.Unsubscribe(s.Event(), s.Token()). Idempotent.
func (s *Subscription) Cancel() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.Unsubscribe(s.event, s.token)
}

// Subscribe appends fn to the handler list for event and returns a
// cancelable subscription. Handlers fire in registration order.
func (r *Registry) Subscribe(event string, fn Handler) *Subscription {
	return r.add(event, fn, false)
}

// SubscribeOnce registers fn to fire at most once: the registration removes
// itself the first time event is emitted. Canceling the returned
// subscription before that first emission prevents any firing.
func (r *Registry) SubscribeOnce(event string, fn Handler) *Subscription {
	return r.add(event, fn, true)
}

func (r *Registry) add(event string, fn Handler, once bool) *Subscription {
	e := &entry{token: uuid.New(), fn: fn, once: once, active: true}

	r.mu.Lock()
	r.handlers[event] = append(r.handlers[event], e)
	r.mu.Unlock()

	debug.Log("registry: subscribed %s to %q (once=%v)", e.token, event, once)
	return &Subscription{registry: r, event: event, token: e.token}
}

// Unsubscribe removes the registration identified by token from event's
// handler list. Unknown events and unknown tokens are silent no-ops, so it
// is always safe to call, including repeatedly.
func (r *Registry) Unsubscribe(event string, token uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.handlers[event] {
		if e.token == token {
			e.active = false
			return
		}
	}
}

// Emit invokes every currently-registered handler for event, in
// registration order, passing value. Emitting an event with no subscribers
// is a no-op.
//
// Dispatch iterates over a snapshot taken at the start of the call, so a
// handler that unsubscribes itself or a sibling mid-dispatch never causes
// entries to be skipped or revisited. A once-registration is retired before
// its handler runs, so reentrant emission cannot fire it twice.
func (r *Registry) Emit(event string, value any) {
	r.mu.Lock()
	entries := r.handlers[event]
	if len(entries) == 0 {
		r.mu.Unlock()
		return
	}
	// Snapshot active entries and compact the stored list while holding
	// the lock. An empty list is equivalent to no registration at all.
	snapshot := make([]*entry, 0, len(entries))
	for _, e := range entries {
		if e.active {
			snapshot = append(snapshot, e)
		}
	}
	if len(snapshot) == 0 {
		delete(r.handlers, event)
	} else {
		r.handlers[event] = snapshot
	}
	r.mu.Unlock()

	debug.Log("registry: emit %q to %d handler(s)", event, len(snapshot))
	for _, e := range snapshot {
		if e.once {
			r.mu.Lock()
			fired := !e.active
			e.active = false
			r.mu.Unlock()
			if fired {
				// Retired by a reentrant emit or canceled mid-dispatch.
				continue
			}
		}
		r.invoke(event, value, e.fn)
	}
}

// invoke runs a single handler, applying the registry's panic policy.
func (r *Registry) invoke(event string, value any, fn Handler) {
	if r.panicHandler == nil {
		fn(value)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			debug.Log("registry: handler for %q panicked: %v", event, rec)
			r.panicHandler(event, rec)
		}
	}()
	fn(value)
}

// HandlerCount returns the number of live registrations for event.
func (r *Registry) HandlerCount(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.handlers[event] {
		if e.active {
			n++
		}
	}
	return n
}
