// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns a source document into a stress-marked
// word-processor document: validate, classify, extract, transform each text
// unit, then persist. Every failure ends the run; nothing is retried and no
// partial output is written.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nagolos/internal/docx"
	"github.com/pdiddy/nagolos/internal/source"
	"github.com/pdiddy/nagolos/pkg/types"
)

// OutputSuffix is appended to the source stem to name the default output.
const OutputSuffix = "_nagolos"

// Transformer rewrites one text unit. Different stress annotators
// (dictionary, container, http) implement this interface.
type Transformer interface {
	// Transform returns the annotated form of text.
	Transform(ctx context.Context, text string) (string, error)
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(ctx context.Context, text string) (string, error)

// Transform calls f.
func (f TransformFunc) Transform(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// State is a step of a pipeline run.
type State string

const (
	StateIdle         State = "idle"
	StateValidated    State = "validated"
	StateClassified   State = "classified"
	StateExtracting   State = "extracting"
	StateTransforming State = "transforming"
	StatePersisted    State = "persisted"
	StateFailed       State = "failed"
)

// Pipeline runs conversions with a fixed transformer. A Pipeline holds no
// per-run state and may be reused.
type Pipeline struct {
	transformer Transformer
	logger      *slog.Logger
	observe     func(State)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for progress messages. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(State)) Option {
	return func(p *Pipeline) {
		p.observe = fn
	}
}

// New creates a Pipeline that applies t to every text unit.
func New(t Transformer, opts ...Option) *Pipeline {
	p := &Pipeline{
		transformer: t,
		logger:      slog.New(slog.DiscardHandler),
		observe:     func(State) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OutputPath derives the default destination for src: same directory, the
// source stem with OutputSuffix, and the word-processor extension whatever
// the source format was.
func OutputPath(src string) string {
	dir, base := filepath.Split(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if source.Extension(src) == "" {
		stem = base
	}
	return filepath.Join(dir, stem+OutputSuffix+types.OutputFormat.Extension())
}

// Process converts input and writes the result to output, or to
// OutputPath(input) when output is empty. Unit i of the source becomes
// paragraph i of the output. Errors are returned as-is from the failing
// step: source.ErrNotFound and source.ErrUnsupportedFormat (wrapped),
// *source.ReadError, *TransformError, or *PersistError.
func (p *Pipeline) Process(ctx context.Context, input, output string) (result types.Result, err error) {
	p.observe(StateIdle)
	defer func() {
		if err != nil {
			p.observe(StateFailed)
		}
	}()

	if err := source.CheckFile(input); err != nil {
		return types.Result{}, err
	}
	p.observe(StateValidated)

	format, err := source.Classify(input)
	if err != nil {
		return types.Result{}, err
	}
	p.observe(StateClassified)

	if output == "" {
		output = OutputPath(input)
	}
	p.logger.Info("processing file", "path", input, "format", format, "output", output)

	p.observe(StateExtracting)
	units, err := source.Extract(input, format)
	if err != nil {
		return types.Result{}, err
	}
	p.logger.Debug("extracted text units", "count", len(units))

	p.observe(StateTransforming)
	doc, err := p.assemble(ctx, units)
	if err != nil {
		return types.Result{}, err
	}

	if err := persist(doc, output); err != nil {
		return types.Result{}, err
	}
	p.observe(StatePersisted)
	p.logger.Info("processing completed", "output", output, "units", doc.Len())

	return types.Result{
		Source:      input,
		Destination: output,
		Format:      format,
		Units:       doc.Len(),
	}, nil
}

// assemble transforms units in order into a new document.
func (p *Pipeline) assemble(ctx context.Context, units []string) (*docx.Document, error) {
	doc := docx.New()
	for i, unit := range units {
		out, err := p.transformer.Transform(ctx, unit)
		if err != nil {
			return nil, &TransformError{Index: i, Err: err}
		}
		p.logger.Debug("transformed unit", "index", i, "in_len", len(unit), "out_len", len(out))
		if err := doc.AddParagraph(out); err != nil {
			return nil, fmt.Errorf("appending unit %d: %w", i, err)
		}
	}
	return doc, nil
}

// persist saves doc at path, creating missing parent directories.
func persist(doc *docx.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := doc.Save(path); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
