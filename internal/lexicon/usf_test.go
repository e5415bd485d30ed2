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

const sampleUSF = `CUE, TARGET, NORMED?, #G, #P, FSG
CAT, DOG, YES, 97, 150, .647
CAT, MOUSE, YES, 12, 150, .080
CAT, KITTEN, YES, 30, 150, .200
CAT, LITTER BOX, NO, 5, 150, .033
CAT, FUR, YES, 0, 150, .000
CAR, DRIVE, YES, 40, 150, .267
`

func TestUSFNormsAssociations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cue_Target_Pairs.C"), []byte(sampleUSF), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"), []byte("just,some,columns\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o644))

	u := NewUSFNorms(dir)
	ctx := context.Background()

	got, err := u.Associations(ctx, "cat", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "kitten", "mouse"}, got)

	got, err = u.Associations(ctx, "Cat", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "kitten"}, got)

	got, err = u.Associations(ctx, "zebra", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUSFNormsMissingDir(t *testing.T) {
	u := NewUSFNorms(filepath.Join(t.TempDir(), "missing"))
	_, err := u.Associations(context.Background(), "cat", 5)
	assert.Error(t, err)
}
