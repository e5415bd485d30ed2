// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"strings"
	"unicode"
)

// stopwords are function words and abstract fillers that never make useful
// wordbank entries or distractors: pronouns, auxiliaries, prepositions,
// conjunctions, determiners and a handful of vague verbs and nouns.
var stopwords = toSet(
	// pronouns
	"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself",
	"he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "we", "us", "our", "ours", "ourselves",
	"they", "them", "their", "theirs", "themselves",
	"who", "whom", "whose", "which", "what", "that", "this", "these", "those",

	// auxiliaries and modals
	"be", "am", "is", "are", "was", "were", "been", "being",
	"have", "has", "had", "having",
	"do", "does", "did", "doing", "done",
	"will", "would", "shall", "should", "can", "could", "may", "might", "must",

	// prepositions
	"about", "above", "across", "after", "against", "along", "among", "around",
	"at", "before", "behind", "below", "beneath", "beside", "between", "beyond",
	"by", "down", "during", "except", "for", "from", "in", "inside", "into",
	"like", "near", "of", "off", "on", "onto", "out", "outside", "over",
	"past", "since", "through", "throughout", "till", "to", "toward", "towards",
	"under", "underneath", "until", "up", "upon", "with", "within", "without",

	// conjunctions
	"and", "or", "but", "nor", "so", "yet", "if", "then", "else",
	"because", "although", "though", "unless", "while", "whereas", "whether",

	// determiners
	"the", "a", "an", "some", "any", "no", "every", "each", "either", "neither",
	"both", "few", "many", "much", "more", "most", "other", "another",
	"such", "all", "half", "several", "enough",

	// function-like adverbs
	"very", "too", "quite", "rather", "just", "only", "also", "even", "still",
	"already", "always", "never", "ever", "often", "sometimes", "usually",
	"again", "further", "once", "here", "there", "now", "well",
	"how", "when", "where", "why",

	// vague verbs and nouns
	"get", "got", "make", "made", "go", "went", "gone",
	"know", "think", "see", "come", "take", "want", "use",
	"thing", "things", "way", "ways", "something", "anything", "nothing",
	"everything", "someone", "anyone", "everyone", "nobody",
	"back", "going",
)

// IsStopword reports whether word is a function word excluded from the
// wordbank.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
