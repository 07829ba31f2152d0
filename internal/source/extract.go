// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"

	"github.com/pdiddy/nagolos/internal/docx"
	"github.com/pdiddy/nagolos/internal/pdf"
	"github.com/pdiddy/nagolos/pkg/types"
)

// ReadError reports a failure to open or parse a source document.
type ReadError struct {
	Path   string
	Format types.Format
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s source %s: %v", e.Format, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Extract returns the text units of the document at path in source order.
// The source file is closed before Extract returns. On failure no units are
// returned; the error is a *ReadError.
func Extract(path string, format types.Format) ([]string, error) {
	var (
		units []string
		err   error
	)
	switch format {
	case types.FormatWord:
		units, err = docx.ReadParagraphs(path)
	case types.FormatPDF:
		units, err = pdf.ReadPages(path)
	default:
		return nil, fmt.Errorf("%w: no extractor for %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ReadError{Path: path, Format: format, Err: err}
	}
	if units == nil {
		units = []string{}
	}
	return units, nil
}
