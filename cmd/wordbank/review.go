// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wordbank/internal/store"
	"github.com/pdiddy/wordbank/internal/wordbank"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List master wordbank entries that need review",
	Long: `Review lists the entries recorded by generate that are incomplete:
missing a visual, example sentences, distractors, or (for nouns) a
category. Approve an entry once it has been checked.`,
	Args: cobra.NoArgs,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().Uint64("limit", 0, "show at most this many entries")
	reviewCmd.Flags().Bool("all", false, "list every master entry, not only those needing review")
	reviewCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(reviewCmd)
}

type reviewOutput struct {
	ID       string   `json:"id"`
	Word     string   `json:"word"`
	POS      string   `json:"pos"`
	Approved bool     `json:"approved"`
	Missing  []string `json:"missing"`
	Updated  string   `json:"updated"`
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	limit, _ := cmd.Flags().GetUint64("limit")
	all, _ := cmd.Flags().GetBool("all")
	asJSON, _ := cmd.Flags().GetBool("json")

	entries, err := a.store.List(ctx, store.ListFilter{NeedsReview: !all, Limit: limit})
	if err != nil {
		return err
	}

	out := make([]reviewOutput, 0, len(entries))
	for _, e := range entries {
		missing := wordbank.Missing(e.WordEntry)
		if missing == nil {
			missing = []string{}
		}
		out = append(out, reviewOutput{
			ID:       e.ID,
			Word:     e.Word,
			POS:      e.PartOfSpeech,
			Approved: e.Approved,
			Missing:  missing,
			Updated:  e.UpdatedAt,
		})
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	if len(out) == 0 {
		fmt.Fprintln(w, "nothing to review")
		return nil
	}
	for _, o := range out {
		mark := " "
		if o.Approved {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-16s %-10s %s\n", mark, o.ID, o.POS, strings.Join(o.Missing, ", "))
	}
	fmt.Fprintf(w, "\n%d entries (* = approved)\n", len(out))
	return nil
}
