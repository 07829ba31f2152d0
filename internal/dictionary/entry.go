// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dictionary stores word forms with the position of their stressed
// vowel. Entries are written with a plus sign after the stressed vowel
// ("за+мок"); positions are vowel ordinals counted from zero, so they do
// not depend on letter case or apostrophes.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StressMarker separates the stressed vowel in dictionary source entries.
const StressMarker = '+'

// ErrBadEntry is returned for entries that do not mark exactly one vowel.
var ErrBadEntry = errors.New("invalid dictionary entry")

// Entry is one reading of a word form.
type Entry struct {
	// Form is the normalized word form without the marker.
	Form string `json:"form" yaml:"form"`

	// Vowel is the zero-based ordinal of the stressed vowel in Form.
	Vowel int `json:"vowel" yaml:"vowel"`
}

// Dictionary looks up stress readings for normalized word forms.
type Dictionary interface {
	// Lookup returns the stressed vowel ordinals known for form, in
	// dictionary order. An unknown form yields no readings and no error.
	Lookup(ctx context.Context, form string) ([]int, error)

	// Close releases any resources held by the dictionary.
	Close() error
}

// IsVowel reports whether r is a Ukrainian vowel letter, in either case.
func IsVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'а', 'е', 'є', 'и', 'і', 'ї', 'о', 'у', 'ю', 'я':
		return true
	}
	return false
}

// CountVowels returns the number of vowel letters in s.
func CountVowels(s string) int {
	n := 0
	for _, r := range s {
		if IsVowel(r) {
			n++
		}
	}
	return n
}

// Normalize composes form to NFC, lowercases it and folds apostrophe
// variants to U+0027.
func Normalize(form string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '’', 'ʼ', '‘', '`':
			return '\''
		}
		return unicode.ToLower(r)
	}, norm.NFC.String(strings.TrimSpace(form)))
}

// ParseEntry reads a source entry such as "за+мок". The marker must follow
// exactly one vowel.
func ParseEntry(s string) (Entry, error) {
	var (
		form   strings.Builder
		vowels int
		vowel  = -1
		prev   rune
	)
	for _, r := range Normalize(s) {
		if r == StressMarker {
			if vowel >= 0 {
				return Entry{}, fmt.Errorf("%w: %q marks more than one vowel", ErrBadEntry, s)
			}
			if !IsVowel(prev) {
				return Entry{}, fmt.Errorf("%w: %q has a marker not following a vowel", ErrBadEntry, s)
			}
			vowel = vowels - 1
			prev = r
			continue
		}
		if IsVowel(r) {
			vowels++
		}
		form.WriteRune(r)
		prev = r
	}
	if vowel < 0 {
		return Entry{}, fmt.Errorf("%w: %q has no stress marker", ErrBadEntry, s)
	}
	return Entry{Form: form.String(), Vowel: vowel}, nil
}

// String renders the entry in source form.
func (e Entry) String() string {
	var b strings.Builder
	n := 0
	for _, r := range e.Form {
		b.WriteRune(r)
		if IsVowel(r) {
			if n == e.Vowel {
				b.WriteRune(StressMarker)
			}
			n++
		}
	}
	return b.String()
}
