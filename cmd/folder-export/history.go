// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/folder-export/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous exports",
	Long: `History lists exports recorded in the history database, newest first.
Use --folder to show exports of a single folder.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", defaultHistoryPath, "history database file")
	historyCmd.Flags().String("folder", "", "only show exports of this folder-id")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history.path")
	if cmd.Flags().Changed("history-db") {
		path, _ = cmd.Flags().GetString("history-db")
	}
	folderID, _ := cmd.Flags().GetString("folder")
	limit, _ := cmd.Flags().GetInt("limit")

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	entries, err := l.List(cmd.Context(), ledger.ListOptions{FolderID: folderID, Limit: limit})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []ledger.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No exports recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-20s  %-4s  %-7s  %-7s  %s\n",
		"When", "Folder", "Subs", "Folders", "Content", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		folder := e.FolderID
		if len(folder) > 20 {
			folder = folder[:17] + "..."
		}
		subs := "no"
		if e.Subdirectories {
			subs = "yes"
		}
		fmt.Fprintf(w, "%-20s  %-20s  %-4s  %-7d  %-7d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), folder, subs, e.Folders, e.Content, e.Output)
	}

	fmt.Fprintf(w, "\n%d exports\n", len(entries))
	return nil
}
