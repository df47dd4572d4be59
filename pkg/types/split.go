// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SplitRequest is the validated form of the command line. It is built once
// by the request package and treated as read-only afterwards.
type SplitRequest struct {
	// Source is the absolute path of the PDF to split.
	Source string `json:"source" yaml:"source"`

	// Pages holds the cut points sorted ascending. Duplicates and values
	// above the page count are rejected once the page count is known.
	Pages []int `json:"pages" yaml:"pages"`

	// DestDir is the resolved, absolute output directory.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// Archive requests archiving of Source after a successful split.
	Archive bool `json:"archive" yaml:"archive"`

	// Cloudfile records that DestDir came from the cloudfile setting.
	Cloudfile bool `json:"cloudfile" yaml:"cloudfile"`

	// DryRun prints the plan without running any split command.
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// ArchiveOutcome describes what the archiver did with the source file.
type ArchiveOutcome string

const (
	ArchiveNone            ArchiveOutcome = ""
	ArchiveSkipped         ArchiveOutcome = "skipped"
	ArchiveUploaded        ArchiveOutcome = "uploaded"
	ArchiveAlreadyArchived ArchiveOutcome = "already-archived"
)

// SplitOutput is one file produced (or planned) by a split run.
type SplitOutput struct {
	// Index is the 1-based position of the range.
	Index int    `json:"index" yaml:"index"`
	Range string `json:"range" yaml:"range"`
	Path  string `json:"path" yaml:"path"`
}

// SplitResult is the outcome of a split run. On failure it holds the
// outputs written before the failing range.
type SplitResult struct {
	Source     string         `json:"source" yaml:"source"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Outputs    []SplitOutput  `json:"outputs" yaml:"outputs"`
	Archive    ArchiveOutcome `json:"archive,omitempty" yaml:"archive,omitempty"`
}

// RunRecord is one row of the run history ledger.
type RunRecord struct {
	ID         int64          `json:"id" yaml:"id"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	Source     string         `json:"source" yaml:"source"`
	Pages      []int          `json:"pages" yaml:"pages"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Outputs    []string       `json:"outputs" yaml:"outputs"`
	Archive    ArchiveOutcome `json:"archive,omitempty" yaml:"archive,omitempty"`

	// Status is "ok" or the failure kind name.
	Status   string `json:"status" yaml:"status"`
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
}
