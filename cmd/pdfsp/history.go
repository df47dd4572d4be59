// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsp/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent split runs",
	Long: `History lists past split runs, newest first, from the SQLite ledger at
history.path. Each row shows when the run started, the source file, the cut
pages, how many files were written and how the run ended.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().String("format", "table", "output format: table, json or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := openHistory(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	switch format {
	case "table", "":
		records, err := store.List(ctx, limit)
		if err != nil {
			return err
		}
		formatHistoryTable(out, records)
		return nil
	case "json":
		return store.ExportJSON(ctx, out, limit)
	case "yaml":
		return store.ExportYAML(ctx, out, limit)
	default:
		return fmt.Errorf("unsupported format %q: use table, json or yaml", format)
	}
}

func formatHistoryTable(w io.Writer, records []types.RunRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-19s  %-40s  %-12s  %-5s  %-16s  %s\n",
		"ID", "Started", "Source", "Pages", "Files", "Archive", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 115))

	for _, r := range records {
		source := r.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		cuts := make([]string, len(r.Pages))
		for i, p := range r.Pages {
			cuts[i] = fmt.Sprint(p)
		}
		pageList := strings.Join(cuts, " ")
		if len(pageList) > 12 {
			pageList = pageList[:9] + "..."
		}
		archived := string(r.Archive)
		if archived == "" {
			archived = "-"
		}
		fmt.Fprintf(w, "%-4d  %-19s  %-40s  %-12s  %-5d  %-16s  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), source, pageList,
			len(r.Outputs), archived, r.Status)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(records))
}
