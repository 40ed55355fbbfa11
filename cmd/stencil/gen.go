package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type genOptions struct {
	force          bool
	answers        string
	skipConfirms   []string
	nonInteractive bool
	dryRun         bool
}

func newGenCmd() *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen TEMPLATE OUTPUT_DIR",
		Short: "Generate a project from a template directory or git repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing output directory")
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "predefined answers as JSON, @<file>, or - for stdin")
	cmd.Flags().StringSliceVar(&opts.skipConfirms, "skip-confirms", nil, "confirmation prompts to skip: all, overwrite, hooks")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "never prompt; unanswered questions take their defaults")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "preview actions without touching the filesystem")

	return cmd
}

type skipConfirms struct {
	overwrite bool
	hooks     bool
}

func parseSkipConfirms(values []string) (skipConfirms, error) {
	var s skipConfirms

	for _, v := range values {
		switch v {
		case "all":
			s.overwrite = true
			s.hooks = true
		case "overwrite":
			s.overwrite = true
		case "hooks":
			s.hooks = true
		default:
			return s, fmt.Errorf("unknown skip-confirms value %q (expected all, overwrite or hooks)", v)
		}
	}

	return s, nil
}
