// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsp/internal/archive"
	"github.com/pdiddy/pdfsp/internal/command"
	"github.com/pdiddy/pdfsp/internal/failure"
	"github.com/pdiddy/pdfsp/internal/history"
	"github.com/pdiddy/pdfsp/internal/pages"
	"github.com/pdiddy/pdfsp/internal/split"
	"github.com/pdiddy/pdfsp/pkg/types"
)

func runSplit(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Help()
		return failure.New(failure.NotEnoughArgs, "")
	}

	stderr := cmd.ErrOrStderr()
	cfg, err := loadConfig(stderr)
	if err != nil {
		return err
	}

	opts := splitOpts
	opts.CloudfileDir = cfg.CloudfileDir

	app := split.New(command.NewExecRunner(), cfg.Tool,
		archive.Select(cfg.Archiver, stderr), cmd.OutOrStdout(), cmd.OutOrStdout())

	started := time.Now()
	result, runErr := app.Execute(cmd.Context(), opts, args)

	if cfg.History.Enabled && !noHistory && !opts.DryRun {
		rec := runRecord(started, args, result, runErr)
		if err := recordRun(cmd.Context(), cfg.History.Path, rec); err != nil {
			fmt.Fprintf(stderr, "warning: could not record run history: %v\n", err)
		}
	}
	return runErr
}

// runRecord describes a finished run. Source and pages fall back to the raw
// arguments when the run stopped before validation completed.
func runRecord(started time.Time, args []string, result types.SplitResult, runErr error) types.RunRecord {
	rec := types.RunRecord{
		StartedAt:  started,
		Source:     result.Source,
		TotalPages: result.TotalPages,
		Archive:    result.Archive,
		Status:     "ok",
		ExitCode:   failure.ExitCode(runErr),
	}
	if rec.Source == "" && len(args) > 0 {
		rec.Source = args[0]
	}
	if len(args) > 1 {
		if cuts, err := pages.ParseCuts(args[1:]); err == nil {
			rec.Pages = cuts
		}
	}
	for _, o := range result.Outputs {
		rec.Outputs = append(rec.Outputs, o.Path)
	}
	if runErr != nil {
		rec.Status = failure.KindOf(runErr).String()
	}
	return rec
}

func recordRun(ctx context.Context, path string, rec types.RunRecord) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Record(ctx, rec)
	return err
}

// openHistory opens the configured history database for reading.
func openHistory(w io.Writer) (*history.Store, error) {
	cfg, err := loadConfig(w)
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.History.Path)
}
