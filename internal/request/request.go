// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package request turns raw command-line tokens into a types.SplitRequest.
//
// Validation is an ordered cascade; the first failing check decides the
// failure kind and later checks are never reached:
//
//  1. at least a filename and one cut
//  2. --destdir and --cloudfile not both given
//  3. the source is an existing regular file
//  4. the source ends in .pdf (any case)
//  5. every cut is an unsigned integer
//  6. the destination is an existing directory
//
// Duplicate cuts and cuts beyond the last page are checked later, once the
// page count is known.
package request

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pdiddy/pdfsp/internal/failure"
	"github.com/pdiddy/pdfsp/internal/pages"
	"github.com/pdiddy/pdfsp/pkg/types"
)

// Options holds the flag values that shape a SplitRequest.
type Options struct {
	Archive   bool
	Cloudfile bool
	DestDir   string
	DryRun    bool

	// CloudfileDir is the directory used when Cloudfile is set. It comes
	// from configuration, not from a flag.
	CloudfileDir string
}

// BindFlags registers the split flags on fs, storing values in opts.
func BindFlags(fs *pflag.FlagSet, opts *Options) {
	fs.BoolVarP(&opts.Archive, "archive", "a", false, "archive the original file after splitting")
	fs.BoolVarP(&opts.Cloudfile, "cloudfile", "c", false, "output the pages to the cloudfile dir")
	fs.StringVarP(&opts.DestDir, "destdir", "d", "", "destination dir for the output pages")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "print the split plan without running it")
}

// Parse reads flags and positional arguments from tokens and validates them.
// defaults supplies values not carried by flags (CloudfileDir). A -h/--help
// token returns pflag.ErrHelp.
func Parse(tokens []string, defaults Options) (types.SplitRequest, error) {
	opts := defaults
	fs := pflag.NewFlagSet("pdfsp", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindFlags(fs, &opts)
	if err := fs.Parse(tokens); err != nil {
		return types.SplitRequest{}, err
	}
	return Validate(opts, fs.Args())
}

// Validate runs the validation cascade over already-parsed options and the
// positional arguments (filename followed by cuts).
func Validate(opts Options, args []string) (types.SplitRequest, error) {
	if len(args) < 2 {
		return types.SplitRequest{}, failure.New(failure.NotEnoughArgs, "")
	}
	if opts.DestDir != "" && opts.Cloudfile {
		return types.SplitRequest{}, failure.New(failure.DuplicateDestination, "")
	}

	source := args[0]
	if !isFile(source) {
		return types.SplitRequest{}, failure.New(failure.InvalidFilename, source)
	}
	if !strings.EqualFold(filepath.Ext(source), ".pdf") {
		return types.SplitRequest{}, failure.New(failure.NotAPDF, source)
	}

	cutTokens := args[1:]
	if bad := pages.NonIntegers(cutTokens); len(bad) > 0 {
		return types.SplitRequest{}, failure.New(failure.PagelistNotIntegers, strings.Join(bad, " "))
	}
	cuts, err := pages.ParseCuts(cutTokens)
	if err != nil {
		return types.SplitRequest{}, failure.Wrap(failure.PagelistNotIntegers, strings.Join(cutTokens, " "), err)
	}

	destDir, err := resolveDestDir(opts)
	if err != nil {
		return types.SplitRequest{}, err
	}

	absSource, err := filepath.Abs(source)
	if err != nil {
		return types.SplitRequest{}, failure.Wrap(failure.InvalidFilename, source, err)
	}

	return types.SplitRequest{
		Source:    absSource,
		Pages:     cuts,
		DestDir:   destDir,
		Archive:   opts.Archive,
		Cloudfile: opts.Cloudfile,
		DryRun:    opts.DryRun,
	}, nil
}

// resolveDestDir picks the output directory: --destdir, the cloudfile dir,
// or the working directory, in that order.
func resolveDestDir(opts Options) (string, error) {
	dir := opts.DestDir
	if dir == "" && opts.Cloudfile {
		dir = opts.CloudfileDir
		if dir == "" {
			return "", failure.New(failure.InvalidDir, "(cloudfile_dir is not configured)")
		}
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", failure.Wrap(failure.InvalidDir, ".", err)
		}
		return wd, nil
	}

	dir = ExpandHome(dir)
	if !isDir(dir) {
		return "", failure.New(failure.InvalidDir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", failure.Wrap(failure.InvalidDir, dir, err)
	}
	return abs, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
