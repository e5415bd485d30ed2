// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wordbank/internal/wordbank"
)

var approveCmd = &cobra.Command{
	Use:   "approve ID...",
	Short: "Approve entries into the master wordbank",
	Long: `Approve marks entries as checked so later generate runs reuse them
instead of calling the APIs again. Each ID is looked up in the --in wordbank
file first, so edits made there (an emoji, better sentences) are carried
into the master wordbank; otherwise the recorded master entry is approved
as is. With --remove the entries are deleted from the master wordbank.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApprove,
}

func init() {
	approveCmd.Flags().String("in", "wordbank.json", "wordbank file holding edited entries")
	approveCmd.Flags().Bool("remove", false, "remove the entries from the master wordbank instead")

	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	inPath, _ := cmd.Flags().GetString("in")
	remove, _ := cmd.Flags().GetBool("remove")
	w := cmd.OutOrStdout()

	if remove {
		for _, id := range args {
			ok, err := a.store.Remove(ctx, id)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(w, "removed:  %s\n", id)
			} else {
				fmt.Fprintf(w, "skipped:  %s (not in master wordbank)\n", id)
			}
		}
		return nil
	}

	wb, err := wordbank.NewFile(inPath).Load()
	if err != nil {
		return err
	}

	missing := 0
	for _, id := range args {
		e, ok := wordbank.Find(wb, id)
		if !ok {
			m, found, err := a.store.Entry(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(w, "failed:   %s (no such entry)\n", id)
				missing++
				continue
			}
			e = m.WordEntry
		}
		if err := a.store.Approve(ctx, e); err != nil {
			return err
		}
		fmt.Fprintf(w, "approved: %s\n", e.ID)
		if gaps := wordbank.Missing(e); len(gaps) > 0 {
			fmt.Fprintf(w, "  warning: still missing %v\n", gaps)
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d entr(ies) not found", missing)
	}
	return nil
}
