package main

import (
	"fmt"

	"github.com/spf13/cobra"

	observe "github.com/grindlemire/go-observe"
)

func demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Scripted walk-through of the notification semantics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runDemo()
		},
	}
}

func runDemo() {
	store := observe.New()

	fmt.Println("-- subscribe to \"user\" and \"name\", then write --")
	store.On("user", func(v any) { fmt.Printf("user changed: %s\n", render(v)) })
	store.On("name", func(v any) { fmt.Printf("name changed: %v\n", v) })

	store.Set("user", map[string]any{"name": "John"})

	fmt.Println("-- writing a field on the retrieved object emits the leaf name --")
	user := store.Get("user").(*observe.Object)
	user.Set("name", "Jane")

	fmt.Println("-- once subscriptions fire a single time --")
	store.Once("ready", func(v any) { fmt.Printf("ready (once): %v\n", v) })
	store.Set("ready", true)
	store.Set("ready", false)

	fmt.Println("-- cleanup closures stop future notifications --")
	sub := store.On("count", func(v any) { fmt.Printf("count: %v\n", v) })
	store.Set("count", 1)
	sub.Cancel()
	store.Set("count", 2)

	fmt.Println("-- typed overlays narrow the variant core --")
	count := observe.PropOf[int](store, "count")
	count.Bind(func(v int) { fmt.Printf("typed count: %d\n", v) })
	count.Update(func(v int) int { return v + 1 })
}
