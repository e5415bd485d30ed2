// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/wordbank/internal/distractor"
	"github.com/pdiddy/wordbank/internal/lexicon"
	"github.com/pdiddy/wordbank/pkg/types"
)

// ProgressName is the progress key a generation run saves its remaining
// words under.
const ProgressName = "generate"

// DefaultAPIDelay is the pause between consecutive words.
const DefaultAPIDelay = 300 * time.Millisecond

// RunResult holds the outcome of a generation run.
type RunResult struct {
	RunID     string
	Generated int
	Reused    int
	Skipped   int
	Failed    int
	Entries   []types.WordEntry
	Review    []types.ReviewItem

	// Usage is the distractor usage ledger at the end of the run, most
	// used first.
	Usage []distractor.UsageCount

	// Remaining lists the requests not processed because the run stopped
	// early. Empty after a complete run.
	Remaining []Request
}

// Total returns the number of words processed.
func (r RunResult) Total() int {
	return r.Generated + r.Reused + r.Skipped + r.Failed
}

// HasFailures reports whether any word failed.
func (r RunResult) HasFailures() bool {
	return r.Failed > 0
}

// Run builds an entry for each request in order, printing per-word status
// to w. The distractor usage ledger is reset first so reuse limits apply
// per run. Excluded and unknown words are skipped; other failures are
// counted and the run continues. With a positive Count in the generation
// config the run ends once that many entries are built, leaving later
// requests as unused spares. A rate limit or cancelled context stops
// the run, saves the unprocessed words as progress, and returns the error
// alongside the partial result.
func (b *Builder) Run(ctx context.Context, reqs []Request, w io.Writer) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString()}
	b.gen.ResetUsage()
	b.log.InfoContext(ctx, "run started", "run_id", result.RunID, "words", len(reqs))

	delay := b.cfg.APIDelay
	if delay <= 0 {
		delay = DefaultAPIDelay
	}

	for i, req := range reqs {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return b.stop(ctx, result, reqs[i:], w, err)
			}
		}

		fmt.Fprintf(w, "generating: %s\n", req.Word)
		built, err := b.BuildEntry(ctx, req)
		switch {
		case errors.Is(err, lexicon.ErrRateLimited), ctx.Err() != nil:
			return b.stop(ctx, result, reqs[i:], w, err)
		case errors.Is(err, lexicon.ErrExcluded):
			fmt.Fprintf(w, "skipped:  %s (excluded word)\n", req.Word)
			result.Skipped++
			continue
		case errors.Is(err, ErrPOSMismatch):
			fmt.Fprintf(w, "skipped:  %s (not a %s)\n", req.Word, req.POS)
			result.Skipped++
			continue
		case errors.Is(err, lexicon.ErrNotFound):
			fmt.Fprintf(w, "skipped:  %s (no definition)\n", req.Word)
			result.Skipped++
			continue
		case err != nil:
			fmt.Fprintf(w, "failed:   %s (%v)\n", req.Word, err)
			result.Failed++
			continue
		}

		if built.Reused {
			fmt.Fprintf(w, "  reused approved entry\n")
			result.Reused++
		} else {
			result.Generated++
		}
		for _, item := range built.Review {
			if item.Reason == ReasonIncomplete {
				fmt.Fprintf(w, "  warning: %s\n", item.Details)
			}
		}
		result.Entries = append(result.Entries, built.Entry)
		result.Review = append(result.Review, built.Review...)

		if b.cfg.Count > 0 && len(result.Entries) >= b.cfg.Count {
			fmt.Fprintf(w, "reached %d entries, %d candidates unused\n", b.cfg.Count, len(reqs)-i-1)
			break
		}
	}

	if b.master != nil {
		if err := b.master.ClearProgress(ctx, ProgressName); err != nil {
			b.log.WarnContext(ctx, "clearing progress failed", "error", err)
		}
	}
	b.reportUsage(&result, w)
	fmt.Fprintf(w, "\nRun summary: %d generated, %d reused, %d skipped, %d failed (total: %d)\n",
		result.Generated, result.Reused, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// stop records remaining as saved progress and ends the run with cause.
func (b *Builder) stop(ctx context.Context, result RunResult, remaining []Request, w io.Writer, cause error) (RunResult, error) {
	if cause == nil {
		cause = ctx.Err()
	}
	result.Remaining = remaining

	if b.master != nil {
		words := make([]string, len(remaining))
		for i, r := range remaining {
			words[i] = r.String()
		}
		// The run context may already be cancelled.
		if err := b.master.SaveProgress(context.WithoutCancel(ctx), ProgressName, words); err != nil {
			b.log.WarnContext(ctx, "saving progress failed", "error", err)
		} else {
			fmt.Fprintf(w, "stopped: %d words saved, continue with --resume\n", len(words))
		}
	}
	b.reportUsage(&result, w)
	fmt.Fprintf(w, "\nRun summary: %d generated, %d reused, %d skipped, %d failed (total: %d)\n",
		result.Generated, result.Reused, result.Skipped, result.Failed, result.Total())
	return result, fmt.Errorf("run stopped: %w", cause)
}

// reportUsage records the usage ledger on result and prints the most
// reused distractors.
func (b *Builder) reportUsage(result *RunResult, w io.Writer) {
	ledger := b.gen.Ledger()
	result.Usage = ledger.Snapshot()
	if ledger.Len() == 0 {
		return
	}
	top := result.Usage[:min(5, len(result.Usage))]
	parts := make([]string, len(top))
	for i, u := range top {
		parts[i] = fmt.Sprintf("%s (%d)", u.Word, u.Count)
	}
	fmt.Fprintf(w, "Distractor usage: %d distinct words, most used: %s\n", ledger.Len(), strings.Join(parts, ", "))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
