package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// execute builds the command tree and runs it. Every invocation gets a run
// id that is attached to all of its log lines.
func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "img2paint",
		Short:        "img2paint renders images as layered brush strokes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level).With("run", uuid.NewString()[:8])
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPaintCmd())
	root.AddCommand(newAngleCmd())
	root.AddCommand(newSharpnessCmd())

	return root.ExecuteContext(context.Background())
}
