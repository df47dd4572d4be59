// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfsp CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfsp/internal/failure"
	"github.com/pdiddy/pdfsp/internal/request"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	splitOpts request.Options
	noHistory bool
)

// rootCmd splits a PDF. Subcommands report history and version.
var rootCmd = &cobra.Command{
	Use:   "pdfsp [flags] <file.pdf> <page> [page...]",
	Short: "Split a PDF into several files at the given pages",
	Long: `pdfsp splits a PDF into consecutive page ranges. Each page number given
ends an output file, so "pdfsp scan.pdf 4 7" on a ten page file writes
scan_1.pdf (pages 1-4), scan_2.pdf (pages 5-7) and scan_3.pdf (pages 8-10).

Splitting is done by pdftk (or the configured tool). With --archive the
source is uploaded to the configured bucket and removed once the upload is
confirmed.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runSplit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfsp.yaml, ~/.config/pdfsp/pdfsp.yaml or ~/.pdfsprc)")

	request.BindFlags(rootCmd.Flags(), &splitOpts)
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	home, homeErr := os.UserHomeDir()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfsp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if homeErr == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfsp"))
		}
	}

	viper.SetEnvPrefix("PDFSP")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" && homeErr == nil {
		legacy := filepath.Join(home, ".pdfsprc")
		if _, statErr := os.Stat(legacy); statErr == nil {
			viper.SetConfigFile(legacy)
			viper.SetConfigType("yaml")
			err = viper.ReadInConfig()
		}
	}
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	case cfgFile != "":
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		failure.Report(os.Stderr, err)
		os.Exit(failure.ExitCode(err))
	}
}
