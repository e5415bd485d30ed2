// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wordbank/internal/wordbank"
)

var generateCmd = &cobra.Command{
	Use:   "generate [WORD...]",
	Short: "Build wordbank entries for a list of words",
	Long: `Generate assembles a complete entry for each word: definition, part of
speech, relationship words, category, sound group, example sentences,
frequency rank and ten distractors. Entries are merged into the output
wordbank file and recorded in the master wordbank for review.

Words come from the arguments, from --words-file (one "word" or
"word,pos" per line), or, when neither is given, from the most frequent
words. --count N stops the run once N entries are built; without a word
list it draws three times as many frequent words so that skipped words
are replaced. Approved master entries are reused unless --force is set.

When an API rate limit is exhausted the run stops and saves the remaining
words; run generate --resume to continue.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("words-file", "", "file of words to generate, one per line")
	generateCmd.Flags().Int("count", 0, "stop after this many entries (the most frequent words when no words are given)")
	generateCmd.Flags().String("pos", "", "part of speech for words that do not name one")
	generateCmd.Flags().String("out", "wordbank.json", "wordbank file to write")
	generateCmd.Flags().String("format", "", "output format: json or yaml (default from --out extension)")
	generateCmd.Flags().Bool("resume", false, "continue the words left by a stopped run")
	generateCmd.Flags().Bool("force", false, "regenerate words even when an approved entry exists")
	generateCmd.Flags().Bool("no-master", false, "do not reuse approved master entries")
	generateCmd.Flags().Duration("delay", 0, "pause between words (default from config, 300ms)")
	generateCmd.Flags().String("language", "", "wordbank language (default from config)")
	generateCmd.Flags().String("pool", "", "local distractor word list, most frequent first")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	wordsFile, _ := cmd.Flags().GetString("words-file")
	count, _ := cmd.Flags().GetInt("count")
	pos, _ := cmd.Flags().GetString("pos")
	outPath, _ := cmd.Flags().GetString("out")
	formatFlag, _ := cmd.Flags().GetString("format")
	resume, _ := cmd.Flags().GetBool("resume")

	gc := a.cfg.Generation
	if cmd.Flags().Changed("force") {
		gc.Force, _ = cmd.Flags().GetBool("force")
	}
	if noMaster, _ := cmd.Flags().GetBool("no-master"); noMaster {
		gc.UseMaster = false
	}
	if d, _ := cmd.Flags().GetDuration("delay"); d > 0 {
		gc.APIDelay = d
	}
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		gc.Language = lang
	}

	out := wordbank.NewFile(outPath)
	if formatFlag != "" {
		if out.Format, err = wordbank.ParseFormat(formatFlag); err != nil {
			return err
		}
	}

	var reqs []wordbank.Request
	switch {
	case resume:
		saved, err := a.store.LoadProgress(ctx, wordbank.ProgressName)
		if err != nil {
			return err
		}
		if len(saved) == 0 {
			return fmt.Errorf("no saved progress to resume")
		}
		if reqs, err = wordbank.ParseRequests(saved, ""); err != nil {
			return err
		}
	case len(args) > 0 || wordsFile != "":
		if reqs, err = wordbank.ParseRequests(args, pos); err != nil {
			return err
		}
		if wordsFile != "" {
			f, err := os.Open(wordsFile)
			if err != nil {
				return fmt.Errorf("opening words file: %w", err)
			}
			fromFile, err := wordbank.ReadWordList(f)
			f.Close()
			if err != nil {
				return err
			}
			for _, r := range fromFile {
				if r.POS == "" {
					r.POS = pos
				}
				reqs = append(reqs, r)
			}
		}
	case count > 0:
		top, err := a.freq.TopWords(ctx, count*candidatesPerEntry, nil)
		if err != nil {
			return err
		}
		if reqs, err = wordbank.ParseRequests(top, pos); err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide words, --words-file, --count or --resume")
	}
	reqs = wordbank.Dedupe(reqs)
	gc.Count = count

	poolFile, _ := cmd.Flags().GetString("pool")
	gen, err := a.generator(ctx, poolOptions{language: gc.Language, poolFile: poolFile})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	result, runErr := a.builder(gen, gc).Run(ctx, reqs, w)

	if len(result.Entries) > 0 {
		wb, err := out.Load()
		if err != nil {
			return err
		}
		wb.Language = gc.Language
		wb.RunID = result.RunID
		wb.GeneratedAt = time.Now().UTC()
		added, updated := wordbank.Upsert(wb, result.Entries...)
		if err := out.Save(wb); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s: %d added, %d updated, %d total\n", out.Path, added, updated, wb.TotalEntries)
	}

	if n := countIncomplete(result); n > 0 {
		fmt.Fprintf(w, "%d entries need review (see: wordbank review)\n", n)
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d word(s) failed generation", result.Failed)
	}
	return nil
}

// candidatesPerEntry is how many frequent words --count draws per wanted
// entry, leaving room for excluded and undefined words.
const candidatesPerEntry = 3

func countIncomplete(r wordbank.RunResult) int {
	n := 0
	for _, item := range r.Review {
		if item.Reason == wordbank.ReasonIncomplete {
			n++
		}
	}
	return n
}
