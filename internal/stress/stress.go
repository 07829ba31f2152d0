// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stress marks the stressed vowel of Ukrainian words. Annotators
// implement the pipeline's Transformer contract: one text unit in, the same
// text with stress marks out.
package stress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/nagolos/internal/dictionary"
	"github.com/pdiddy/nagolos/pkg/types"
)

// Options controls how annotators mark words.
type Options struct {
	// Symbol selects the inserted mark (default combining acute).
	Symbol types.StressSymbol

	// OnAmbiguity decides words with several readings (default skip).
	OnAmbiguity types.AmbiguityPolicy

	// Logger receives per-unit debug counts. Nil discards.
	Logger *slog.Logger
}

// Lookuper returns the stressed vowel ordinals known for a normalized form.
type Lookuper interface {
	Lookup(ctx context.Context, form string) ([]int, error)
}

// Stressifier marks words found in a dictionary.
type Stressifier struct {
	dict   Lookuper
	mark   string
	policy types.AmbiguityPolicy
	logger *slog.Logger
}

// NewStressifier returns an annotator backed by dict.
func NewStressifier(dict Lookuper, opts Options) *Stressifier {
	policy := opts.OnAmbiguity
	if policy == "" {
		policy = types.AmbiguitySkip
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stressifier{
		dict:   dict,
		mark:   opts.Symbol.Mark(),
		policy: policy,
		logger: logger,
	}
}

// Transform returns text with every known word marked. Everything that is
// not a word passes through byte for byte.
func (s *Stressifier) Transform(ctx context.Context, text string) (string, error) {
	var (
		b      strings.Builder
		words  int
		marked int
	)
	b.Grow(len(text) + len(text)/8)

	for _, tok := range tokenize(text) {
		if !tok.word {
			b.WriteString(tok.text)
			continue
		}
		words++
		out, err := s.stressWord(ctx, tok.text)
		if err != nil {
			return "", err
		}
		if out != tok.text {
			marked++
		}
		b.WriteString(out)
	}

	s.logger.Debug("unit stressed", "words", words, "marked", marked)
	return b.String(), nil
}

func (s *Stressifier) stressWord(ctx context.Context, word string) (string, error) {
	if hasStressMark(word) {
		return word, nil
	}
	composed := norm.NFC.String(word)
	vowels := dictionary.CountVowels(composed)
	if vowels < 2 {
		return word, nil
	}

	readings, err := s.dict.Lookup(ctx, dictionary.Normalize(composed))
	if err != nil {
		return "", fmt.Errorf("looking up %q: %w", word, err)
	}

	chosen := choose(readings, vowels, s.policy)
	if len(chosen) == 0 {
		return word, nil
	}
	return mark(composed, chosen, s.mark), nil
}

// choose applies the ambiguity policy to the in-range, de-duplicated
// readings.
func choose(readings []int, vowels int, policy types.AmbiguityPolicy) map[int]bool {
	var valid []int
	seen := make(map[int]bool, len(readings))
	for _, r := range readings {
		if r < 0 || r >= vowels || seen[r] {
			continue
		}
		seen[r] = true
		valid = append(valid, r)
	}

	switch {
	case len(valid) == 0:
		return nil
	case len(valid) == 1:
		return map[int]bool{valid[0]: true}
	}

	switch policy {
	case types.AmbiguityFirst:
		return map[int]bool{valid[0]: true}
	case types.AmbiguityAll:
		return seen
	default:
		return nil
	}
}

// mark inserts m after each vowel whose ordinal is in at.
func mark(word string, at map[int]bool, m string) string {
	var b strings.Builder
	b.Grow(len(word) + len(at)*len(m))
	n := 0
	for _, r := range word {
		b.WriteRune(r)
		if dictionary.IsVowel(r) {
			if at[n] {
				b.WriteString(m)
			}
			n++
		}
	}
	return b.String()
}

func hasStressMark(word string) bool {
	return strings.ContainsAny(word, "\u0301\u00b4")
}

type token struct {
	text string
	word bool
}

// tokenize splits text into words and the runs between them. A word starts
// with a letter and continues over letters, combining marks and acute
// accents; an apostrophe joins letters on both sides ("м'ясо").
func tokenize(text string) []token {
	runes := []rune(text)
	var (
		toks  []token
		start int
		inW   bool
	)
	flush := func(end int, word bool) {
		if end > start {
			toks = append(toks, token{text: string(runes[start:end]), word: word})
		}
		start = end
	}

	for i, r := range runes {
		var w bool
		switch {
		case unicode.IsLetter(r):
			w = true
		case inW && (unicode.Is(unicode.Mn, r) || r == '\u00b4'):
			w = true
		case inW && isApostrophe(r):
			w = i+1 < len(runes) && unicode.IsLetter(runes[i+1])
		}
		if w != inW {
			flush(i, inW)
			inW = w
		}
	}
	flush(len(runes), inW)
	return toks
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', 'ʼ', '‘', '`':
		return true
	}
	return false
}
