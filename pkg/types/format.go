// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across nagolos stages.
package types

// Format identifies a supported source container. The set is closed: any
// extension outside it is rejected rather than guessed.
type Format string

const (
	FormatWord Format = "docx"
	FormatPDF  Format = "pdf"
)

// Extension returns the file extension for f, including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Formats lists the supported source formats in classification order.
func Formats() []Format {
	return []Format{FormatWord, FormatPDF}
}

// OutputFormat is the container every run writes, whatever the source was.
const OutputFormat = FormatWord

// Result describes a completed conversion run.
type Result struct {
	// Source is the input path as given.
	Source string `json:"source" yaml:"source"`

	// Destination is the path the output document was persisted to.
	Destination string `json:"destination" yaml:"destination"`

	// Format is the classified source format.
	Format Format `json:"format" yaml:"format"`

	// Units is the number of text units extracted, transformed and written.
	Units int `json:"units" yaml:"units"`
}
