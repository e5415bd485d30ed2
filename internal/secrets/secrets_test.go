// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		dirs  []string
		want  map[string]string
	}{
		{
			name: "key files trimmed",
			files: map[string]string{
				MWThesaurusKey: "  mw_abc123  \n",
				ContactEmail:   "speech@example.org\n",
			},
			want: map[string]string{MWThesaurusKey: "mw_abc123", ContactEmail: "speech@example.org"},
		},
		{
			name:  "blank files omitted",
			files: map[string]string{MWThesaurusKey: "k", ContactEmail: " \n\t"},
			want:  map[string]string{MWThesaurusKey: "k"},
		},
		{
			name:  "dotfiles and directories ignored",
			files: map[string]string{".gitkeep": "", ".old-key": "stale", ContactEmail: "a@b.c"},
			dirs:  []string{"archive"},
			want:  map[string]string{ContactEmail: "a@b.c"},
		},
		{
			name: "empty directory",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			for _, d := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
			}

			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingDir(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), ".secrets"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain", "x")

	_, err := Load(filepath.Join(dir, "plain"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secrets directory")
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions do not apply to root")
	}
	dir := t.TempDir()
	writeFile(t, dir, ContactEmail, "a@b.c")
	bad := filepath.Join(dir, MWThesaurusKey)
	require.NoError(t, os.WriteFile(bad, []byte("secret"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{ContactEmail: "a@b.c"}, got)
}

func TestGet(t *testing.T) {
	t.Setenv("WORDBANK_TEST_MW_KEY", " from-env ")

	loaded := map[string]string{MWThesaurusKey: "from-file"}
	assert.Equal(t, "from-file", Get(loaded, MWThesaurusKey, "WORDBANK_TEST_MW_KEY"))
	assert.Equal(t, "from-env", Get(map[string]string{}, MWThesaurusKey, "WORDBANK_TEST_MW_KEY"))
	assert.Empty(t, Get(nil, MWThesaurusKey, ""))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
