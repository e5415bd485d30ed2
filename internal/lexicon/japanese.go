// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/pdiddy/wordbank/pkg/types"
)

// ipaPOS maps IPA dictionary part-of-speech labels to wordbank ones.
var ipaPOS = map[string]string{
	"名詞":  types.POSNoun,
	"動詞":  types.POSVerb,
	"形容詞": types.POSAdjective,
	"副詞":  types.POSAdverb,
}

// JapanesePOS is an offline part-of-speech oracle for Japanese words backed
// by the kagome morphological analyser and the IPA dictionary. It implements
// distractor.POSResolver.
type JapanesePOS struct {
	t *tokenizer.Tokenizer
}

// NewJapanesePOS loads the IPA dictionary.
func NewJapanesePOS() (*JapanesePOS, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}
	return &JapanesePOS{t: t}, nil
}

// PartsOfSpeech returns the part of speech of word's head token. Words the
// dictionary does not know, or whose class has no wordbank equivalent
// (particles, auxiliaries), yield an empty list.
func (j *JapanesePOS) PartsOfSpeech(_ context.Context, word string) ([]string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}
	for _, tok := range j.t.Tokenize(word) {
		if tok.Class == tokenizer.DUMMY || strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		features := tok.Features()
		if len(features) == 0 {
			return nil, nil
		}
		if pos, ok := ipaPOS[features[0]]; ok {
			return []string{pos}, nil
		}
		return nil, nil
	}
	return nil, nil
}
