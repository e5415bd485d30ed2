// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate WORD --distractors a,b,c",
	Short: "Check an existing distractor list against the exclusion rules",
	Long: `Validate reports, for each supplied distractor, which exclusion rules it
breaks: 1 and 5 (avoid words), 2 (starting sound), 3 (rhyme), 4 (category),
6 (length) and 8 (reuse). The similarity column is the Jaro-Winkler score
against WORD and is informational only.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	addTargetFlags(validateCmd)
	validateCmd.Flags().StringSlice("distractors", nil, "distractors to check (required)")
	validateCmd.Flags().Bool("fetch", false, "fetch relationships and category from the lexicon sources")
	_ = validateCmd.MarkFlagRequired("distractors")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	distractors, _ := cmd.Flags().GetStringSlice("distractors")
	fetch, _ := cmd.Flags().GetBool("fetch")
	asJSON, _ := cmd.Flags().GetBool("json")

	// Validation never draws from the pool.
	opts := poolFromFlags(cmd)
	opts.skipPool = true
	gen, err := a.generator(ctx, opts)
	if err != nil {
		return err
	}
	t := targetFromFlags(ctx, cmd, a, args[0], fetch)
	results := gen.ValidateDistractors(ctx, t, distractors)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	w := cmd.OutOrStdout()
	invalid := 0
	for _, r := range results {
		status := "ok"
		if !r.Valid {
			status = "INVALID"
			invalid++
		}
		fmt.Fprintf(w, "%-16s %-7s similarity %.2f\n", r.Word, status, r.Similarity)
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}
	fmt.Fprintf(w, "\n%d of %d distractors valid\n", len(results)-invalid, len(results))
	if invalid > 0 {
		return fmt.Errorf("%d distractor(s) break exclusion rules", invalid)
	}
	return nil
}
