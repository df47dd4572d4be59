// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package failure

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodesAreDistinct(t *testing.T) {
	seen := map[int]Kind{}
	for _, k := range Kinds() {
		code := k.Code()
		assert.NotZero(t, code, "kind %s", k)
		assert.NotEqual(t, ExitGeneric, code, "kind %s shares the generic code", k)
		if prev, dup := seen[code]; dup {
			t.Errorf("kinds %s and %s share exit code %d", prev, k, code)
		}
		seen[code] = k
	}
	assert.Len(t, seen, 12)
}

func TestStableCodes(t *testing.T) {
	want := map[Kind]int{
		NotEnoughArgs:        65,
		InvalidFilename:      66,
		InvalidDir:           67,
		NotAPDF:              68,
		DuplicateDestination: 69,
		PagelistNotIntegers:  70,
		ToolMissing:          71,
		DuplicatePages:       72,
		TooManyPages:         73,
		PageCountUnreadable:  74,
		ArchiveFailed:        75,
		SplitFailed:          78,
	}
	for k, code := range want {
		assert.Equal(t, code, k.Code(), "kind %s", k)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, ExitGeneric, ExitCode(errors.New("unknown flag: --bogus")))
	assert.Equal(t, 68, ExitCode(New(NotAPDF, "scan.txt")))

	wrapped := fmt.Errorf("running split: %w", New(TooManyPages, "3 12"))
	assert.Equal(t, 73, ExitCode(wrapped))
	assert.Equal(t, TooManyPages, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(SplitFailed, "pages 5-7", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "split-command-failed")
	assert.Contains(t, err.Error(), "pages 5-7")
}

func TestReport(t *testing.T) {
	t.Run("failure prints summary and detail", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, New(InvalidFilename, "/tmp/missing.pdf"))
		assert.Equal(t,
			"The first argument should be a pdf file to split\n/tmp/missing.pdf is not a file that exists\n",
			buf.String())
	})

	t.Run("tool name in summary", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, New(ToolMissing, "pdftk"))
		assert.Contains(t, buf.String(), "requires pdftk to be installed")
		assert.Contains(t, buf.String(), "pdftk does not appear to be present")
	})

	t.Run("detail without subject", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, New(DuplicateDestination, ""))
		assert.Contains(t, buf.String(), "Please use just one of them")
	})

	t.Run("cause is printed", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, Wrap(ArchiveFailed, "/tmp/scan.pdf", errors.New("access denied")))
		assert.Contains(t, buf.String(), "cause: access denied")
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, errors.New("unknown shorthand flag: 'x'"))
		assert.Equal(t, "Error: unknown shorthand flag: 'x'\n", buf.String())
	})

	t.Run("nil writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		Report(&buf, nil)
		require.Zero(t, buf.Len())
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not-a-pdf", NotAPDF.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, ExitGeneric, Unknown.Code())
}
