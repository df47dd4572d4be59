// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfsp/internal/failure"
	"github.com/pdiddy/pdfsp/internal/secrets"
	"github.com/pdiddy/pdfsp/pkg/types"
)

func useConfig(t *testing.T, yaml string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	if yaml == "" {
		return
	}
	path := filepath.Join(t.TempDir(), "pdfsp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
}

func TestLoadConfigDefaults(t *testing.T) {
	useConfig(t, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := loadConfig(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "pdftk", cfg.Tool)
	assert.Equal(t, filepath.Join(home, "cloudfile"), cfg.CloudfileDir)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(home, ".local", "share", "pdfsp", "history.db"), cfg.History.Path)
	assert.Nil(t, cfg.Archiver)
}

func TestLoadConfigArchiver(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, secrets.SecretAccessKey), []byte("from-file\n"), 0o600))

	useConfig(t, `
tool: /opt/bin/pdftk
cloudfile_dir: /srv/cloudfile
secrets_dir: `+secretsDir+`
history:
  enabled: false
archiver:
  type: s3
  access_key_id: AKIAEXAMPLE
  bucket: scans-archive
  region: us-east-1
`)

	var warn bytes.Buffer
	cfg, err := loadConfig(&warn)
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/pdftk", cfg.Tool)
	assert.Equal(t, "/srv/cloudfile", cfg.CloudfileDir)
	assert.False(t, cfg.History.Enabled)
	require.NotNil(t, cfg.Archiver)
	assert.Equal(t, types.ArchiverS3, cfg.Archiver.Type)
	assert.Equal(t, "AKIAEXAMPLE", cfg.Archiver.AccessKeyID)
	assert.Equal(t, "from-file", cfg.Archiver.SecretAccessKey)
	assert.Equal(t, "scans-archive", cfg.Archiver.Bucket)
	assert.Equal(t, "us-east-1", cfg.Archiver.Region)
	assert.Contains(t, warn.String(), "Loaded secrets")
}

func TestRunRecord(t *testing.T) {
	started := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("successful split", func(t *testing.T) {
		result := types.SplitResult{
			Source:     "/scans/a.pdf",
			TotalPages: 10,
			Outputs: []types.SplitOutput{
				{Index: 1, Range: "1-3", Path: "/out/a_1.pdf"},
				{Index: 2, Range: "4-10", Path: "/out/a_2.pdf"},
			},
			Archive: types.ArchiveUploaded,
		}
		rec := runRecord(started, []string{"a.pdf", "4"}, result, nil)
		assert.Equal(t, "ok", rec.Status)
		assert.Equal(t, 0, rec.ExitCode)
		assert.Equal(t, "/scans/a.pdf", rec.Source)
		assert.Equal(t, []int{4}, rec.Pages)
		assert.Equal(t, []string{"/out/a_1.pdf", "/out/a_2.pdf"}, rec.Outputs)
		assert.Equal(t, types.ArchiveUploaded, rec.Archive)
	})

	t.Run("validation failure falls back to arguments", func(t *testing.T) {
		rec := runRecord(started, []string{"notes.txt", "7", "3"}, types.SplitResult{},
			failure.New(failure.NotAPDF, "notes.txt"))
		assert.Equal(t, "not-a-pdf", rec.Status)
		assert.Equal(t, 68, rec.ExitCode)
		assert.Equal(t, "notes.txt", rec.Source)
		assert.Equal(t, []int{3, 7}, rec.Pages)
		assert.Empty(t, rec.Outputs)
	})

	t.Run("unclassified error", func(t *testing.T) {
		rec := runRecord(started, []string{"a.pdf", "x"}, types.SplitResult{}, errors.New("boom"))
		assert.Equal(t, "unknown", rec.Status)
		assert.Equal(t, failure.ExitGeneric, rec.ExitCode)
		assert.Nil(t, rec.Pages)
	})
}

func TestFormatHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	formatHistoryTable(&buf, nil)
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	formatHistoryTable(&buf, []types.RunRecord{{
		ID:        3,
		StartedAt: time.Now(),
		Source:    "/scans/a.pdf",
		Pages:     []int{4, 7},
		Outputs:   []string{"/out/a_1.pdf", "/out/a_2.pdf", "/out/a_3.pdf"},
		Status:    "ok",
	}})
	out := buf.String()
	assert.Contains(t, out, "/scans/a.pdf")
	assert.Contains(t, out, "4 7")
	assert.Contains(t, out, "1 runs")
}
