// Package main provides the observe CLI: a small shell around the reactive
// store for poking at its notification semantics.
//
// Usage:
//
//	observe repl [--seed state.yaml]   Interactive property shell
//	observe demo                       Scripted walk-through
//	observe version                    Print version information
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "observe",
		Short:         "Reactive state container playground",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		replCommand(),
		demoCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("observe %s\n", version)
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "observe: %v\n", err)
		os.Exit(1)
	}
}
