package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/stencil"
)

func newRootCmd() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:           "stencil",
		Short:         "Generate projects from templates",
		Version:       stencil.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbosity)
		},
	}

	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity (-v, -vv, -vvv)")

	root.AddCommand(newGenCmd())

	return root
}

// setupLogging maps the -v count onto zerolog levels: default warn, then
// info, debug, trace.
func setupLogging(verbosity int) {
	level := zerolog.WarnLevel

	switch {
	case verbosity >= 3:
		level = zerolog.TraceLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
