package observe

import (
	"sort"
	"sync"
)

// Object is a reactive view over a map assigned into a Store. Writes through
// the view emit the written field's own name — not the name of the property
// that holds the object — so listeners always subscribe to the leaf name
// they expect to change. Reads return stored values verbatim.
//
// A view is created once, at the moment a map value is assigned through an
// interception point (Store.Set or Object.Set), and wraps that map directly:
// mutating the original map out of band is visible through the view but
// notifies nobody. Only writes through the view emit.
type Object struct {
	mu       sync.RWMutex
	fields   map[string]any
	registry *Registry
}

// newObject wraps src in a reactive view routed through reg.
// Wrapping is one level deep: entries of src that are themselves maps stay
// raw until they are reassigned through an interception point.
func newObject(src map[string]any, reg *Registry) *Object {
	if src == nil {
		src = make(map[string]any)
	}
	return &Object{fields: src, registry: reg}
}

// wrapValue transforms a value on its way into storage. Maps become reactive
// Objects; an already-reactive Object passes through unchanged, as do
// scalars, slices, structs, and nil.
func wrapValue(value any, reg *Registry) any {
	switch v := value.(type) {
	case *Object:
		return v
	case map[string]any:
		return newObject(v, reg)
	default:
		return value
	}
}

// Set writes field on the object: the value is wrapped if it is itself a
// map, field is emitted with the post-transform value, then the value is
// committed. Handlers therefore still observe the previous value when they
// read back during dispatch.
func (o *Object) Set(field string, value any) {
	v := wrapValue(value, o.registry)
	o.registry.Emit(field, v)
	o.mu.Lock()
	o.fields[field] = v
	o.mu.Unlock()
}

// Get returns the current value of field, or nil if absent.
func (o *Object) Get(field string) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.fields[field]
}

// Has reports whether field is present.
func (o *Object) Has(field string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.fields[field]
	return ok
}

// Len returns the number of fields.
func (o *Object) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.fields)
}

// Keys returns the field names in sorted order.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a shallow copy of the fields. Nested Objects are shared,
// not deep-copied.
func (o *Object) Snapshot() map[string]any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]any, len(o.fields))
	for k, v := range o.fields {
		out[k] = v
	}
	return out
}
