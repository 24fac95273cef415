// Package observe provides an in-process reactive state container.
//
// A Store maps property names to values. Writing a property synchronously
// notifies every handler registered under that property's name, and writing
// a map value wraps it in a reactive Object view so its own field writes
// stay observable. Event names are always the immediate property key being
// written, regardless of nesting depth.
//
//	store := observe.New()
//	store.On("user", func(v any) { fmt.Println("user:", v) })
//	store.Set("user", map[string]any{"name": "John"})
//
//	profile := store.Get("user").(*observe.Object)
//	store.On("name", func(v any) { fmt.Println("name:", v) })
//	profile.Set("name", "Jane") // emits "name", not "user"
package observe
