package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/stencil"
	"github.com/metalagman/stencil/template"
)

// runGen executes the generation pipeline: prepare output dir, resolve
// template, load config, confirm hooks, pre hook, answers, render, post
// hook, metadata.
func runGen(cmd *cobra.Command, templateArg, outputArg string, opts *genOptions) error {
	skip, err := parseSkipConfirms(opts.skipConfirms)
	if err != nil {
		return err
	}

	outputRoot, err := prepareOutputDir(outputArg, opts.force, opts.dryRun)
	if err != nil {
		return err
	}

	cacheDir, err := templateCacheDir()
	if err != nil {
		return err
	}

	templateRoot, err := template.Resolve(templateArg, cacheDir)
	if err != nil {
		return err
	}

	cfg, err := template.LoadConfig(templateRoot)
	if err != nil {
		return err
	}
	log.Debug().Str("template", templateRoot).Bool("follow_symlinks", cfg.FollowSymlinks).Msg("loaded template config")

	hooks := stencil.NewHookSet(templateRoot, cfg.PreHookFilename, cfg.PostHookFilename)
	hooks.PreRunner = cfg.PreHookRunner
	hooks.PostRunner = cfg.PostHookRunner

	execHooks, err := stencil.ConfirmExecution(hooks, skip.hooks, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if !opts.dryRun {
		if err := os.MkdirAll(outputRoot, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	payload := stencil.Payload{TemplateDir: templateRoot, OutputDir: outputRoot}

	preOut, err := runHookStage(cmd, hooks.PreFile, hooks.PreRunner, payload, cfg, execHooks, opts.dryRun)
	if err != nil {
		return err
	}

	engine := template.NewEngine()
	prompter := template.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	collector := &template.Collector{
		Engine:         engine,
		Prompter:       prompter,
		NonInteractive: opts.nonInteractive,
	}

	answers, err := collector.Collect(cfg, preOut, opts.answers, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := renderTemplate(engine, prompter, cfg, templateRoot, outputRoot, answers, opts, skip); err != nil {
		return err
	}

	payload.Answers = answers
	if _, err := runHookStage(cmd, hooks.PostFile, hooks.PostRunner, payload, cfg, execHooks, opts.dryRun); err != nil {
		return err
	}

	if !opts.dryRun {
		meta := template.Metadata{
			StencilVersion: stencil.Version,
			TemplateSource: templateArg,
			TemplateRoot:   templateRoot,
			Answers:        answers,
		}
		if err := meta.Save(outputRoot); err != nil {
			log.Warn().Err(err).Msg("save generation metadata")
		}
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would generate project in %s\n", outputRoot)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Project generated in %s\n", outputRoot)
	}

	return nil
}

func prepareOutputDir(outputArg string, force, dryRun bool) (string, error) {
	outputRoot, err := filepath.Abs(outputArg)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}

	if _, err := os.Stat(outputRoot); err == nil && !force && !dryRun {
		return "", fmt.Errorf("%w: %s", stencil.ErrOutputDirExists, outputRoot)
	}

	return outputRoot, nil
}

func templateCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}

	return filepath.Join(base, "stencil"), nil
}

func runHookStage(cmd *cobra.Command, hookFile string, runner []string, payload stencil.Payload, cfg template.Config, execHooks, dryRun bool) ([]byte, error) {
	if _, err := os.Stat(hookFile); err != nil {
		return nil, nil
	}

	if dryRun {
		log.Info().Str("hook", hookFile).Msg("would execute hook")

		return nil, nil
	}

	if !execHooks {
		log.Info().Str("hook", hookFile).Msg("hook execution declined, skipping")

		return nil, nil
	}

	var opts []stencil.RunOption
	if cfg.InteractiveHooks {
		opts = append(opts, stencil.WithTTY(true))
	}
	opts = append(opts, stencil.WithStderr(cmd.ErrOrStderr()))

	return stencil.NewHookRunner(runner).Run(cmd.Context(), hookFile, payload, opts...)
}

func renderTemplate(engine *template.Engine, prompter *template.Prompter, cfg template.Config, templateRoot, outputRoot string, answers map[string]any, opts *genOptions, skip skipConfirms) error {
	ignore, err := template.LoadIgnoreSet(templateRoot)
	if err != nil {
		return err
	}

	processor := &template.Processor{
		Engine:       engine,
		Config:       cfg,
		Ignore:       ignore,
		TemplateRoot: templateRoot,
		OutputRoot:   outputRoot,
		Answers:      answers,
		DryRun:       opts.dryRun,
	}

	if !opts.force && !skip.overwrite && !opts.nonInteractive {
		processor.ConfirmOverwrite = func(dest string) (bool, error) {
			return prompter.Confirm(fmt.Sprintf("Overwrite %s?", dest), false)
		}
	}

	return processor.Process()
}
