// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package failure maps every way a split run can fail to a fixed diagnostic
// and a stable process exit code.
package failure

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies a class of failure. Each kind has exactly one exit code.
type Kind int

const (
	Unknown Kind = iota
	ToolMissing
	NotEnoughArgs
	InvalidFilename
	NotAPDF
	PagelistNotIntegers
	DuplicateDestination
	InvalidDir
	DuplicatePages
	TooManyPages
	PageCountUnreadable
	SplitFailed
	ArchiveFailed
)

// ExitGeneric is returned for errors that carry no Kind, such as malformed
// flags or an unreadable config file.
const ExitGeneric = 1

type entry struct {
	name    string
	code    int
	summary string
	detail  string // formatted with the failure subject
}

var table = map[Kind]entry{
	NotEnoughArgs: {
		name:    "not-enough-args",
		code:    65,
		summary: "pdfsp needs at least two arguments (in addition to any options)",
		detail:  "The first should be a pdf filename to split, the rest are page numbers after which to split",
	},
	InvalidFilename: {
		name:    "invalid-filename",
		code:    66,
		summary: "The first argument should be a pdf file to split",
		detail:  "%s is not a file that exists",
	},
	InvalidDir: {
		name:    "invalid-dir",
		code:    67,
		summary: "The destination directory should be a valid directory",
		detail:  "%s is not a valid directory",
	},
	NotAPDF: {
		name:    "not-a-pdf",
		code:    68,
		summary: "The first argument should be a pdf file to split",
		detail:  "%s is not a pdf. It should end in .pdf",
	},
	DuplicateDestination: {
		name:    "duplicate-destination",
		code:    69,
		summary: "The destdir and cloudfile options both set the destination directory",
		detail:  "Please use just one of them to define the destination directory",
	},
	PagelistNotIntegers: {
		name:    "pagelist-not-integers",
		code:    70,
		summary: "The second argument onwards should be the list of pages to split after",
		detail:  "They should all be integers but these were not: %s",
	},
	ToolMissing: {
		name:    "tool-missing",
		code:    71,
		summary: "This application requires %s to be installed on the system",
		detail:  "%s does not appear to be present",
	},
	DuplicatePages: {
		name:    "duplicate-pages",
		code:    72,
		summary: "Your list of pages contains duplicates",
		detail:  "The page list is %s",
	},
	TooManyPages: {
		name:    "too-many-pages",
		code:    73,
		summary: "Your list of pages contains numbers higher than the number of pages in the pdf",
		detail:  "%s",
	},
	PageCountUnreadable: {
		name:    "page-count-unreadable",
		code:    74,
		summary: "Could not read the number of pages in the pdf",
		detail:  "%s",
	},
	ArchiveFailed: {
		name:    "archive-failed",
		code:    75,
		summary: "The pdf was split but archiving the original failed",
		detail:  "%s",
	},
	SplitFailed: {
		name:    "split-command-failed",
		code:    78,
		summary: "The split command failed; later ranges were not attempted",
		detail:  "%s",
	},
}

// Error is a failure of a known kind. Subject fills the detail line (a path,
// the offending page list, the tool name). Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

// New returns a failure of the given kind about subject.
func New(kind Kind, subject string) *Error {
	return &Error{Kind: kind, Subject: subject}
}

// Wrap returns a failure of the given kind caused by err.
func Wrap(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Detail())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Summary returns the fixed first diagnostic line.
func (e *Error) Summary() string {
	ent := table[e.Kind]
	if e.Kind == ToolMissing {
		return fmt.Sprintf(ent.summary, e.Subject)
	}
	return ent.summary
}

// Detail returns the second diagnostic line with the subject filled in.
func (e *Error) Detail() string {
	ent, ok := table[e.Kind]
	if !ok {
		return e.Subject
	}
	if !strings.Contains(ent.detail, "%s") {
		return ent.detail
	}
	return fmt.Sprintf(ent.detail, e.Subject)
}

// String returns the kind's stable name, e.g. "not-a-pdf".
func (k Kind) String() string {
	if ent, ok := table[k]; ok {
		return ent.name
	}
	return "unknown"
}

// Code returns the kind's exit code.
func (k Kind) Code() int {
	if ent, ok := table[k]; ok {
		return ent.code
	}
	return ExitGeneric
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(table))
	for k := ToolMissing; k <= ArchiveFailed; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindOf returns the Kind carried by err, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// ExitCode maps err to a process exit code: 0 for nil, the kind's code for
// a failure, ExitGeneric otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).Code()
}

// Report writes the diagnostic for err to w. Failures print their summary
// and detail lines followed by the cause; other errors print a single line.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var fe *Error
	if !errors.As(err, &fe) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, fe.Summary())
	fmt.Fprintln(w, fe.Detail())
	if fe.Err != nil {
		fmt.Fprintf(w, "cause: %v\n", fe.Err)
	}
}
