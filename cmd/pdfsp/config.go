// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/viper"

	"github.com/pdiddy/pdfsp/internal/request"
	"github.com/pdiddy/pdfsp/internal/secrets"
	"github.com/pdiddy/pdfsp/internal/split"
	"github.com/pdiddy/pdfsp/pkg/types"
)

const (
	defaultCloudfileDir = "~/cloudfile"
	defaultSecretsDir   = "~/.config/pdfsp/secrets"
	defaultHistoryPath  = "~/.local/share/pdfsp/history.db"
)

func setDefaults() {
	viper.SetDefault("tool", split.DefaultTool)
	viper.SetDefault("cloudfile_dir", defaultCloudfileDir)
	viper.SetDefault("secrets_dir", defaultSecretsDir)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", defaultHistoryPath)
}

// loadConfig builds the Config from viper. An archiver section with empty
// credentials is completed from the secrets directory; warnings go to warn.
func loadConfig(warn io.Writer) (types.Config, error) {
	cfg := types.Config{
		Tool:         viper.GetString("tool"),
		CloudfileDir: request.ExpandHome(viper.GetString("cloudfile_dir")),
		SecretsDir:   request.ExpandHome(viper.GetString("secrets_dir")),
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    request.ExpandHome(viper.GetString("history.path")),
		},
	}

	if !viper.IsSet("archiver") {
		return cfg, nil
	}
	var arch types.ArchiverConfig
	if err := viper.UnmarshalKey("archiver", &arch); err != nil {
		return cfg, fmt.Errorf("reading archiver config: %w", err)
	}

	loaded, err := secrets.Load(cfg.SecretsDir, warn)
	if err != nil {
		return cfg, err
	}
	if secrets.FillArchiver(&arch, loaded) {
		fmt.Fprintf(warn, "Loaded secrets: %v\n", secretNames(loaded))
	}
	cfg.Archiver = &arch
	return cfg, nil
}

func secretNames(loaded map[string]string) []string {
	names := make([]string, 0, len(loaded))
	for k := range loaded {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
