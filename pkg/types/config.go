// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StressBackend selects the stress annotator used to transform text units.
type StressBackend string

const (
	BackendDictionary StressBackend = "dictionary"
	BackendContainer  StressBackend = "container"
	BackendHTTP       StressBackend = "http"
	BackendNone       StressBackend = "none"
)

// StressSymbol names the mark inserted after a stressed vowel.
type StressSymbol string

const (
	// SymbolCombining is U+0301 COMBINING ACUTE ACCENT; it renders over the vowel.
	SymbolCombining StressSymbol = "combining"
	// SymbolAcute is U+00B4 ACUTE ACCENT; it renders after the vowel.
	SymbolAcute StressSymbol = "acute"
)

// Mark returns the text inserted for the symbol.
func (s StressSymbol) Mark() string {
	if s == SymbolAcute {
		return "\u00b4"
	}
	return "\u0301"
}

// AmbiguityPolicy decides what happens to a word with several dictionary
// readings (e.g. за́мок / замо́к).
type AmbiguityPolicy string

const (
	AmbiguitySkip  AmbiguityPolicy = "skip"
	AmbiguityFirst AmbiguityPolicy = "first"
	AmbiguityAll   AmbiguityPolicy = "all"
)

// StressConfig holds settings for the stress annotator.
type StressConfig struct {
	// Backend selects the annotator: dictionary, container, http or none.
	Backend StressBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Symbol selects the stress mark.
	Symbol StressSymbol `json:"symbol" yaml:"symbol" mapstructure:"symbol"`

	// OnAmbiguity controls words with more than one known stress position.
	OnAmbiguity AmbiguityPolicy `json:"on_ambiguity" yaml:"on_ambiguity" mapstructure:"on_ambiguity"`

	// Dictionary is a YAML word list or SQLite database path. Empty selects
	// the built-in word list.
	Dictionary string `json:"dictionary" yaml:"dictionary" mapstructure:"dictionary"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// URL is the endpoint used by the http backend.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Timeout bounds a single http backend request (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig holds logging settings. Level comes from --verbose.
type LogConfig struct {
	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all nagolos settings.
type Config struct {
	Stress StressConfig `json:"stress" yaml:"stress" mapstructure:"stress"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

const (
	DefaultImage      = "ukrainian-word-stress:latest"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 5
)

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Stress: StressConfig{
			Backend:     BackendDictionary,
			Symbol:      SymbolCombining,
			OnAmbiguity: AmbiguitySkip,
			Image:       DefaultImage,
			Timeout:     DefaultTimeout,
			MaxRetries:  DefaultMaxRetries,
		},
		Log: LogConfig{Format: "text"},
	}
}

// Validate reports configuration values outside their allowed sets.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Stress),
		validation.Field(&c.Log),
	)
}

// Validate implements validation.Validatable.
func (s StressConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Backend, validation.Required,
			validation.In(BackendDictionary, BackendContainer, BackendHTTP, BackendNone)),
		validation.Field(&s.Symbol, validation.In(SymbolCombining, SymbolAcute)),
		validation.Field(&s.OnAmbiguity, validation.In(AmbiguitySkip, AmbiguityFirst, AmbiguityAll)),
		validation.Field(&s.Image, validation.When(s.Backend == BackendContainer, validation.Required)),
		validation.Field(&s.URL, validation.When(s.Backend == BackendHTTP, validation.Required)),
		validation.Field(&s.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&s.MaxRetries, validation.Min(0)),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Format, validation.In("text", "json")),
	)
}
