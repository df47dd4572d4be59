// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads archiver credentials kept outside the config file.
// A secrets directory holds one file per credential: the file name is the
// key and the trimmed contents are the value.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfsp/pkg/types"
)

// Credential file names.
const (
	AccessKeyID     = "aws-access-key-id"
	SecretAccessKey = "aws-secret-access-key"
)

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty map. Unreadable files are reported on warn and skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			found[name] = value
		}
	}
	return found, nil
}

// FillArchiver copies credentials from loaded into the empty fields of cfg.
// Values already set in cfg win. It reports whether any field changed.
func FillArchiver(cfg *types.ArchiverConfig, loaded map[string]string) bool {
	if cfg == nil {
		return false
	}
	changed := false
	if cfg.AccessKeyID == "" && loaded[AccessKeyID] != "" {
		cfg.AccessKeyID = loaded[AccessKeyID]
		changed = true
	}
	if cfg.SecretAccessKey == "" && loaded[SecretAccessKey] != "" {
		cfg.SecretAccessKey = loaded[SecretAccessKey]
		changed = true
	}
	return changed
}
