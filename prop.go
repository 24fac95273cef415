package observe

// Prop is a typed view over a single store property. It narrows the
// variant-typed core at the boundary: reads assert the stored value to T,
// and Bind only delivers emissions whose value is a T.
//
// Example usage:
//
//	count := observe.PropOf[int](store, "count")
//	count.Bind(func(v int) {
//	    fmt.Println("count changed to", v)
//	})
//	count.Set(count.Get() + 1)
type Prop[T any] struct {
	store *Store
	name  string
}

// PropOf creates a typed view over name on the given store.
func PropOf[T any](store *Store, name string) Prop[T] {
	return Prop[T]{store: store, name: name}
}

// NewProp creates a typed view over name on the default store.
func NewProp[T any](name string) Prop[T] {
	return PropOf[T](Default(), name)
}

// Name returns the property name this view covers.
func (p Prop[T]) Name() string { return p.name }

// Get returns the current value, or the zero value of T when the property
// is absent or holds a different type.
func (p Prop[T]) Get() T {
	v, _ := p.Lookup()
	return v
}

// Lookup returns the current value and whether the property holds a T.
func (p Prop[T]) Lookup() (T, bool) {
	v, ok := p.store.Get(p.name).(T)
	return v, ok
}

// Set writes the property through the store's normal interception path.
func (p Prop[T]) Set(v T) error {
	return p.store.Set(p.name, v)
}

// Update applies fn to the current value and sets the result.
//
// Example:
//
//	count.Update(func(v int) int { return v + 1 })
func (p Prop[T]) Update(fn func(T) T) error {
	return p.Set(fn(p.Get()))
}

// Bind registers fn for future writes of the property. Emissions whose
// value is not a T are dropped. Cancel the returned subscription to stop
// receiving updates.
func (p Prop[T]) Bind(fn func(T)) *Subscription {
	return p.store.On(p.name, func(value any) {
		if v, ok := value.(T); ok {
			fn(v)
		}
	})
}
