// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIdioms = `# English idioms
Let the cat out of the bag

curiosity killed the cat
raining cats and dogs
play  cat and mouse
catch your breath
`

func TestIdiomsPhrases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idioms_en.txt"), []byte(sampleIdioms), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_idioms_en.txt"),
		[]byte("curiosity killed the cat\nlook what the cat dragged in\n"), 0o644))

	idioms := NewIdioms(dir, "en")
	ctx := context.Background()

	got, err := idioms.Phrases(ctx, "Cat", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Let the cat out of the bag",
		"Curiosity killed the cat",
		"Play cat and mouse",
		"Look what the cat dragged in",
	}, got)
	assert.Len(t, idioms.phrases, 6, "duplicates across files are dropped")

	got, err = idioms.Phrases(ctx, "cat", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = idioms.Phrases(ctx, "breath", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Catch your breath"}, got)
}

func TestIdiomsUnicodeWords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idioms_de.txt"),
		[]byte("die katze im sack kaufen\nbären aufbinden\neinen bären aufbinden\n"), 0o644))

	got, err := NewIdioms(dir, "de").Phrases(context.Background(), "bären", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bären aufbinden", "Einen bären aufbinden"}, got)
}

func TestIdiomsMissingFiles(t *testing.T) {
	got, err := NewIdioms(t.TempDir(), "fr").Phrases(context.Background(), "chat", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}
