// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// wordFile is the YAML layout of a word list.
type wordFile struct {
	Words []string `yaml:"words"`
}

// WordList is an in-memory dictionary.
type WordList struct {
	readings map[string][]int
}

// NewWordList builds a dictionary from entries. Duplicate readings of a
// form are kept once, in first-seen order.
func NewWordList(entries []Entry) *WordList {
	w := &WordList{readings: make(map[string][]int)}
	for _, e := range entries {
		w.add(e)
	}
	return w
}

func (w *WordList) add(e Entry) {
	for _, v := range w.readings[e.Form] {
		if v == e.Vowel {
			return
		}
	}
	w.readings[e.Form] = append(w.readings[e.Form], e.Vowel)
}

// Lookup implements Dictionary.
func (w *WordList) Lookup(_ context.Context, form string) ([]int, error) {
	return w.readings[Normalize(form)], nil
}

// Len returns the number of distinct forms.
func (w *WordList) Len() int {
	return len(w.readings)
}

// Close implements Dictionary.
func (w *WordList) Close() error { return nil }

// ParseYAML reads a word list document:
//
//	words:
//	  - ма+ма
//	  - за+мок
//	  - замо+к
func ParseYAML(r io.Reader) ([]Entry, error) {
	var f wordFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("decoding word list: %w", err)
	}

	entries := make([]Entry, 0, len(f.Words))
	for i, w := range f.Words {
		e, err := ParseEntry(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadYAMLFile reads a word list from path.
func LoadYAMLFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	entries, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Builtin returns the word list compiled into the binary.
func Builtin() *WordList {
	entries, err := ParseYAML(strings.NewReader(string(builtinYAML)))
	if err != nil {
		panic("dictionary: invalid builtin word list: " + err.Error())
	}
	return NewWordList(entries)
}

// Open returns the dictionary at path: the built-in list when path is
// empty, a word list for .yaml/.yml files, and a SQLite store otherwise.
func Open(path string) (Dictionary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path == "" {
			return Builtin(), nil
		}
	case ".yaml", ".yml":
		entries, err := LoadYAMLFile(path)
		if err != nil {
			return nil, err
		}
		return NewWordList(entries), nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	return OpenStore(path)
}
