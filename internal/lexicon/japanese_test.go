// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJapanesePOS(t *testing.T) {
	j, err := NewJapanesePOS()
	require.NoError(t, err)

	tests := []struct {
		word string
		want []string
	}{
		{"猫", []string{"noun"}},
		{"走る", []string{"verb"}},
		{"高い", []string{"adjective"}},
		{"が", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := j.PartsOfSpeech(context.Background(), tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
