// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split drives a split run: it checks the external tool is present,
// validates the request, asks the tool for the page count, computes the
// ranges, runs one tool invocation per range, and archives the source.
//
// Ranges run strictly in order. The first failing invocation stops the run;
// files written by earlier ranges are left on disk.
package split

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfsp/internal/archive"
	"github.com/pdiddy/pdfsp/internal/command"
	"github.com/pdiddy/pdfsp/internal/failure"
	"github.com/pdiddy/pdfsp/internal/pages"
	"github.com/pdiddy/pdfsp/internal/request"
	"github.com/pdiddy/pdfsp/pkg/types"
)

// DefaultTool is the splitting binary used when none is configured.
const DefaultTool = "pdftk"

// pageCountField is the dump_data line carrying the page count.
const pageCountField = "NumberOfPages"

// App sequences a split run. It holds no per-run state and may be reused.
type App struct {
	runner   command.Runner
	tool     string
	archiver archive.Archiver

	// log receives status lines; out receives the dry-run plan.
	log io.Writer
	out io.Writer
}

// New returns an App that runs tool through runner. A nil archiver means
// archiving requests are handled by a NullArchiver writing to log.
func New(runner command.Runner, tool string, arch archive.Archiver, log, out io.Writer) *App {
	if tool == "" {
		tool = DefaultTool
	}
	if arch == nil {
		arch = archive.NewNullArchiver(log)
	}
	return &App{runner: runner, tool: tool, archiver: arch, log: log, out: out}
}

// Plan is the dry-run description of a split.
type Plan struct {
	Source     string              `yaml:"source"`
	TotalPages int                 `yaml:"total_pages"`
	DestDir    string              `yaml:"dest_dir"`
	Archive    bool                `yaml:"archive"`
	Ranges     []string            `yaml:"ranges"`
	Outputs    []types.SplitOutput `yaml:"outputs"`
	Commands   []string            `yaml:"commands"`
}

// Execute runs the whole state machine for tokens already split into flag
// values (opts) and positional arguments. The returned result describes the
// outputs written so far, also on failure.
func (a *App) Execute(ctx context.Context, opts request.Options, args []string) (types.SplitResult, error) {
	if err := a.Preflight(); err != nil {
		return types.SplitResult{}, err
	}
	req, err := request.Validate(opts, args)
	if err != nil {
		return types.SplitResult{}, err
	}
	return a.Run(ctx, req)
}

// Preflight checks that the splitting tool can be started.
func (a *App) Preflight() error {
	if _, ok := a.runner.Run(command.Line(a.tool, "--version")); !ok {
		return failure.New(failure.ToolMissing, a.tool)
	}
	return nil
}

// Run splits a validated request.
func (a *App) Run(ctx context.Context, req types.SplitRequest) (types.SplitResult, error) {
	result := types.SplitResult{Source: req.Source}

	total, err := a.PageCount(req.Source)
	if err != nil {
		return result, err
	}
	result.TotalPages = total

	ranges, err := a.ranges(req.Pages, total)
	if err != nil {
		return result, err
	}

	outputs := make([]types.SplitOutput, len(ranges))
	for i, r := range ranges {
		outputs[i] = types.SplitOutput{
			Index: i + 1,
			Range: r.String(),
			Path:  OutputPath(req.DestDir, req.Source, i+1),
		}
	}

	if req.DryRun {
		result.Outputs = outputs
		return result, a.writePlan(req, total, ranges, outputs)
	}

	for _, o := range outputs {
		line := command.Line(a.tool, req.Source, "cat", o.Range, "output", o.Path)
		output, ok := a.runner.Run(line)
		if !ok {
			fmt.Fprintf(a.log, "failed:  pages %s (%s)\n", o.Range, strings.TrimSpace(output))
			return result, failure.Wrap(failure.SplitFailed,
				fmt.Sprintf("pages %s of %s could not be written to %s", o.Range, req.Source, o.Path),
				fmt.Errorf("%s: %s", line, strings.TrimSpace(output)))
		}
		result.Outputs = append(result.Outputs, o)
		fmt.Fprintf(a.log, "split:   pages %s -> %s\n", o.Range, o.Path)
	}

	if !req.Archive {
		return result, nil
	}
	fmt.Fprintf(a.log, "archive: %s via %s\n", req.Source, a.archiver.Name())
	outcome, err := a.archiver.Archive(ctx, req.Source)
	result.Archive = outcome
	if err != nil {
		return result, failure.Wrap(failure.ArchiveFailed, req.Source, err)
	}
	return result, nil
}

// ranges rejects duplicate and out-of-range cuts and computes the ranges.
func (a *App) ranges(cuts []int, total int) ([]pages.Range, error) {
	if _, dup := pages.FirstDuplicate(cuts); dup {
		return nil, failure.New(failure.DuplicatePages, pages.Join(cuts))
	}
	if over := pages.Exceeding(cuts, total); len(over) > 0 {
		return nil, failure.New(failure.TooManyPages,
			fmt.Sprintf("The page list is %s; the pdf has %d pages", pages.Join(cuts), total))
	}
	return pages.Compute(cuts, total), nil
}

// PageCount asks the tool to dump the document metadata and reads the
// NumberOfPages field. A failing command or a missing or malformed field is
// an error; there is no default.
func (a *App) PageCount(source string) (int, error) {
	output, ok := a.runner.Run(command.Line(a.tool, source, "dump_data"))
	if !ok {
		return 0, failure.Wrap(failure.PageCountUnreadable, source,
			fmt.Errorf("%s dump_data failed: %s", a.tool, strings.TrimSpace(output)))
	}
	n, err := ParsePageCount(output)
	if err != nil {
		return 0, failure.Wrap(failure.PageCountUnreadable, source, err)
	}
	return n, nil
}

// ParsePageCount finds the first "NumberOfPages: N" line in dump output.
func ParsePageCount(dump string) (int, error) {
	sc := bufio.NewScanner(strings.NewReader(dump))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, pageCountField) {
			continue
		}
		_, value, found := strings.Cut(line, ":")
		if !found {
			return 0, fmt.Errorf("malformed %s line %q", pageCountField, line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("malformed %s line %q: %w", pageCountField, line, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("negative page count in %q", line)
		}
		return n, nil
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading dump output: %w", err)
	}
	return 0, fmt.Errorf("no %s field in dump output", pageCountField)
}

// OutputPath returns <destDir>/<source stem>_<index>.pdf.
func OutputPath(destDir, source string, index int) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(destDir, fmt.Sprintf("%s_%d.pdf", stem, index))
}

func (a *App) writePlan(req types.SplitRequest, total int, ranges []pages.Range, outputs []types.SplitOutput) error {
	plan := Plan{
		Source:     req.Source,
		TotalPages: total,
		DestDir:    req.DestDir,
		Archive:    req.Archive,
		Ranges:     pages.Strings(ranges),
		Outputs:    outputs,
	}
	for _, o := range outputs {
		plan.Commands = append(plan.Commands, command.Line(a.tool, req.Source, "cat", o.Range, "output", o.Path))
	}
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return enc.Close()
}
