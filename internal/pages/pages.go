// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages turns a list of cut points into the inclusive page ranges
// handed to the splitting tool.
package pages

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// cutPattern accepts an unsigned integer with optional surrounding whitespace.
var cutPattern = regexp.MustCompile(`^\s*\d+\s*$`)

// Range is an inclusive page interval assigned to one output file.
type Range struct {
	Start int
	End   int
}

// String renders the range in the form the splitting tool expects:
// "3" for a single page, "3-5" otherwise.
func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of pages in the range.
func (r Range) Len() int { return r.End - r.Start + 1 }

// Compute returns the ranges for the sorted, duplicate-free cuts of a
// document with total pages. total is appended as a final cut when it is not
// already the last one. Callers must reject duplicate and out-of-bounds cuts
// first; Compute does not deduplicate or clamp.
func Compute(cuts []int, total int) []Range {
	ends := make([]int, 0, len(cuts)+1)
	ends = append(ends, cuts...)
	if len(ends) == 0 || ends[len(ends)-1] != total {
		ends = append(ends, total)
	}

	ranges := make([]Range, 0, len(ends))
	start := 1
	for _, cut := range ends {
		ranges = append(ranges, Range{Start: start, End: cut})
		start = cut + 1
	}
	return ranges
}

// Strings renders each range with Range.String.
func Strings(ranges []Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}
	return out
}

// IsCut reports whether token is an unsigned integer, ignoring surrounding
// whitespace.
func IsCut(token string) bool {
	return cutPattern.MatchString(token)
}

// NonIntegers returns the tokens that are not valid cuts, in input order.
func NonIntegers(tokens []string) []string {
	var bad []string
	for _, tok := range tokens {
		if !IsCut(tok) {
			bad = append(bad, tok)
		}
	}
	return bad
}

// ParseCuts trims and parses tokens and returns them sorted ascending.
// Duplicates are kept so the caller can report them.
func ParseCuts(tokens []string) ([]int, error) {
	cuts := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if !IsCut(tok) {
			return nil, fmt.Errorf("page %q is not an integer", tok)
		}
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("parsing page %q: %w", tok, err)
		}
		cuts = append(cuts, n)
	}
	sort.Ints(cuts)
	return cuts, nil
}

// FirstDuplicate returns the first value that appears twice in a row in
// sorted cuts. The walk starts from page 0, so a cut of 0 counts as a
// duplicate: no range can end before page 1.
func FirstDuplicate(cuts []int) (int, bool) {
	prev := 0
	for _, c := range cuts {
		if c <= prev {
			return c, true
		}
		prev = c
	}
	return 0, false
}

// Exceeding returns the cuts greater than total, in input order.
func Exceeding(cuts []int, total int) []int {
	var over []int
	for _, c := range cuts {
		if c > total {
			over = append(over, c)
		}
	}
	return over
}

// Join renders cuts as a space-separated list for diagnostics.
func Join(cuts []int) string {
	parts := make([]string, len(cuts))
	for i, c := range cuts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, " ")
}
