// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wordbank/pkg/types"
)

// DocumentVersion is written to every wordbank file.
const DocumentVersion = "2.0"

// GenerationMethod labels documents written by this tool.
const GenerationMethod = "cli"

// Format is the on-disk encoding of a wordbank document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// FormatFor picks the format from path's extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// New returns an empty wordbank document.
func New(language string) *types.Wordbank {
	if language == "" {
		language = "en"
	}
	return &types.Wordbank{
		Version:          DocumentVersion,
		Language:         language,
		GeneratedAt:      time.Now().UTC(),
		GenerationMethod: GenerationMethod,
		Words:            []types.WordEntry{},
	}
}

// File is a wordbank document on disk.
type File struct {
	Path   string
	Format Format
}

// NewFile returns a File whose format follows path's extension.
func NewFile(path string) File {
	return File{Path: path, Format: FormatFor(path)}
}

// Load reads the document. A missing file yields an empty English
// document and no error.
func (f File) Load() (*types.Wordbank, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading wordbank %s: %w", f.Path, err)
	}

	var wb types.Wordbank
	if f.Format == FormatYAML {
		err = yaml.Unmarshal(data, &wb)
	} else {
		err = json.Unmarshal(data, &wb)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing wordbank %s: %w", f.Path, err)
	}
	if wb.Words == nil {
		wb.Words = []types.WordEntry{}
	}
	return &wb, nil
}

// Save writes wb, refreshing TotalEntries. The file is replaced atomically
// through a temporary file in the same directory.
func (f File) Save(wb *types.Wordbank) error {
	wb.TotalEntries = len(wb.Words)
	if wb.Version == "" {
		wb.Version = DocumentVersion
	}

	var (
		data []byte
		err  error
	)
	if f.Format == FormatYAML {
		data, err = yaml.Marshal(wb)
	} else {
		data, err = json.MarshalIndent(wb, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding wordbank: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".wordbank-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing wordbank: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Upsert replaces entries with a matching ID in place and appends the rest.
func Upsert(wb *types.Wordbank, entries ...types.WordEntry) (added, updated int) {
	index := make(map[string]int, len(wb.Words))
	for i, e := range wb.Words {
		index[e.ID] = i
	}
	for _, e := range entries {
		if i, ok := index[e.ID]; ok {
			wb.Words[i] = e
			updated++
			continue
		}
		index[e.ID] = len(wb.Words)
		wb.Words = append(wb.Words, e)
		added++
	}
	wb.TotalEntries = len(wb.Words)
	return added, updated
}

// Find returns the entry whose ID or word matches key case-insensitively.
func Find(wb *types.Wordbank, key string) (types.WordEntry, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, e := range wb.Words {
		if strings.ToLower(e.ID) == key || strings.ToLower(e.Word) == key {
			return e, true
		}
	}
	return types.WordEntry{}, false
}
