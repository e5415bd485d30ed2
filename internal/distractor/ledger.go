// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package distractor

import (
	"sort"
	"strings"
)

// UsageLedger counts how often each word has been emitted as a distractor
// since the last Reset. Keys are lowercase. Not safe for concurrent use.
type UsageLedger struct {
	counts   map[string]int
	maxReuse int
}

// NewUsageLedger returns an empty ledger with the given reuse ceiling.
func NewUsageLedger(maxReuse int) *UsageLedger {
	return &UsageLedger{counts: make(map[string]int), maxReuse: maxReuse}
}

// Count returns how many times word has been recorded.
func (l *UsageLedger) Count(word string) int {
	return l.counts[strings.ToLower(word)]
}

// Exhausted reports whether word has reached the reuse ceiling.
func (l *UsageLedger) Exhausted(word string) bool {
	return l.Count(word) >= l.maxReuse
}

// Record increments the count for word.
func (l *UsageLedger) Record(word string) {
	l.counts[strings.ToLower(word)]++
}

// Reset forgets every count.
func (l *UsageLedger) Reset() {
	clear(l.counts)
}

// Len returns the number of distinct words recorded.
func (l *UsageLedger) Len() int { return len(l.counts) }

// UsageCount is one ledger row.
type UsageCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Snapshot returns the ledger sorted by descending count, then word.
func (l *UsageLedger) Snapshot() []UsageCount {
	out := make([]UsageCount, 0, len(l.counts))
	for w, c := range l.counts {
		out = append(out, UsageCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
