package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	observe "github.com/grindlemire/go-observe"
)

const replHelp = `Commands:
  set <name> <value>   Write a property; value parses as YAML, so mappings
                       become reactive objects ({name: John})
  get <name>           Print the current value
  on <name>            Subscribe; prints every future write of <name>
  once <name>          Subscribe for the next write only
  off <name>           Cancel all repl subscriptions on <name>
  keys                 List stored property names
  help                 Show this help
  quit                 Exit`

func replCommand() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "repl [--seed state.yaml]",
		Short: "Interactive property shell over a reactive store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []observe.Option
			if seedPath != "" {
				seed, err := loadSeed(seedPath)
				if err != nil {
					return err
				}
				opts = append(opts, observe.WithSeed(seed))
			}
			return runREPL(observe.New(opts...), os.Stdin)
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML file with initial properties")
	return cmd
}

// loadSeed parses a YAML mapping into initial store properties.
func loadSeed(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read seed file %s", path)
	}
	seed := make(map[string]any)
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, errors.Wrapf(err, "failed to parse seed file %s", path)
	}
	return seed, nil
}

func runREPL(store *observe.Store, in *os.File) error {
	subs := make(map[string][]*observe.Subscription)
	fmt.Println(`Reactive store repl. Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Println(replHelp)
		case "keys":
			for _, k := range store.Keys() {
				fmt.Println(k)
			}
		case "get":
			name := strings.TrimSpace(rest)
			if name == "" {
				fmt.Println("usage: get <name>")
				continue
			}
			fmt.Println(render(store.Get(name)))
		case "set":
			name, raw, ok := strings.Cut(strings.TrimSpace(rest), " ")
			if !ok {
				fmt.Println("usage: set <name> <value>")
				continue
			}
			var value any
			if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
				fmt.Printf("bad value: %v\n", err)
				continue
			}
			if err := store.Set(name, normalize(value)); err != nil {
				fmt.Printf("set failed: %v\n", err)
			}
		case "on", "once":
			name := strings.TrimSpace(rest)
			if name == "" {
				fmt.Printf("usage: %s <name>\n", cmd)
				continue
			}
			handler := func(v any) { fmt.Printf("[%s] %s\n", name, render(v)) }
			var sub *observe.Subscription
			if cmd == "once" {
				sub = store.Once(name, handler)
			} else {
				sub = store.On(name, handler)
			}
			subs[name] = append(subs[name], sub)
		case "off":
			name := strings.TrimSpace(rest)
			for _, sub := range subs[name] {
				sub.Cancel()
			}
			delete(subs, name)
		default:
			fmt.Printf("unknown command %q; type \"help\"\n", cmd)
		}
	}
}

// render formats a stored value for display; reactive objects print as
// their field snapshot.
func render(v any) string {
	if obj, ok := v.(*observe.Object); ok {
		return fmt.Sprintf("%v", obj.Snapshot())
	}
	return fmt.Sprintf("%v", v)
}

// normalize rewrites YAML's map[any]any mappings (possible with non-string
// keys) into map[string]any so they wrap into reactive objects.
func normalize(v any) any {
	switch m := v.(type) {
	case map[string]any:
		for k, inner := range m {
			m[k] = normalize(inner)
		}
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, inner := range m {
			out[fmt.Sprintf("%v", k)] = normalize(inner)
		}
		return out
	default:
		return v
	}
}
