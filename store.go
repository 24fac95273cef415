package observe

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/grindlemire/go-observe/internal/debug"
)

// ErrReservedName is returned by Set when a property name collides with a
// control-surface method name (on, once, off). Such properties would be
// unreachable through the facade, so the write fails fast instead of
// silently shadowing.
var ErrReservedName = errors.New("property name is reserved")

// reservedNames are the control-surface names that take precedence over
// state properties of the same name.
var reservedNames = map[string]struct{}{
	"on":   {},
	"once": {},
	"off":  {},
}

// Store is the unified facade over a property table and its event registry.
// Setting a property notifies every handler registered under that property's
// name; map values are wrapped into reactive Object views so their own
// nested writes stay observable.
//
// All operations are synchronous: Set returns only after every handler
// triggered by the write has completed.
type Store struct {
	mu       sync.RWMutex
	values   map[string]any
	registry *Registry
}

// New creates an empty store. Options configure seeding and the handler
// panic policy.
func New(opts ...Option) *Store {
	cfg := newConfig(opts)
	s := &Store{
		values:   make(map[string]any),
		registry: NewRegistry(cfg.registryOpts...),
	}
	for _, name := range cfg.seedOrder {
		s.write(name, cfg.seed[name])
	}
	return s
}

// Registry-independent core write: wrap, notify, commit, in that order.
// Handlers run before the commit, so reading the property back during
// dispatch returns the previous value.
func (s *Store) write(name string, value any) {
	v := wrapValue(value, s.registry)
	debug.Log("store: write %q", name)
	s.registry.Emit(name, v)
	s.mu.Lock()
	s.values[name] = v
	s.mu.Unlock()
}

// Set writes a property. Map values are wrapped into reactive Objects before
// handlers are notified, so listeners receive the reactive view, never the
// raw map. Returns ErrReservedName for the names on, once, and off.
func (s *Store) Set(name string, value any) error {
	if _, reserved := reservedNames[name]; reserved {
		return errors.Wrapf(ErrReservedName, "cannot store property %q", name)
	}
	s.write(name, value)
	return nil
}

// Get returns the current value of a property, verbatim: the reactive
// Object view for map-valued properties, the stored value otherwise, nil
// for absent names.
func (s *Store) Get(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Keys returns the names of all stored properties, unordered.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// On registers fn for every future write of the named property.
func (s *Store) On(event string, fn Handler) *Subscription {
	return s.registry.Subscribe(event, fn)
}

// Once registers fn for the next write of the named property only.
func (s *Store) Once(event string, fn Handler) *Subscription {
	return s.registry.SubscribeOnce(event, fn)
}

// Off removes the registration identified by token from event. Unknown
// events and tokens are silent no-ops. Equivalent to canceling the
// subscription returned by On or Once.
func (s *Store) Off(event string, token uuid.UUID) {
	s.registry.Unsubscribe(event, token)
}

// defaultStore holds the process-wide store used by the package-level
// convenience functions. Created lazily on first use.
var defaultStore atomic.Pointer[Store]

// Default returns the process-wide store, creating it on first use.
func Default() *Store {
	if s := defaultStore.Load(); s != nil {
		return s
	}
	s := New()
	if defaultStore.CompareAndSwap(nil, s) {
		return s
	}
	return defaultStore.Load()
}

// SetDefault replaces the process-wide store. Useful in tests that need an
// isolated instance behind the package-level functions.
func SetDefault(s *Store) {
	defaultStore.Store(s)
}

// Set writes a property on the default store.
func Set(name string, value any) error {
	return Default().Set(name, value)
}

// Get reads a property from the default store.
func Get(name string) any {
	return Default().Get(name)
}

// On registers fn on the default store.
func On(event string, fn Handler) *Subscription {
	return Default().On(event, fn)
}

// Once registers fn on the default store for a single firing.
func Once(event string, fn Handler) *Subscription {
	return Default().Once(event, fn)
}

// Off removes a registration from the default store.
func Off(event string, token uuid.UUID) {
	Default().Off(event, token)
}
