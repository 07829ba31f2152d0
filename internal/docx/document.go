// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrSaved is returned when a Document is modified or saved after it has
// already been persisted.
var ErrSaved = errors.New("document already saved")

// Document is an in-memory, append-only word-processor document made of
// plain-text paragraphs. The zero value is not usable; call New.
type Document struct {
	paragraphs []string
	saved      bool
}

// New creates an empty document.
func New() *Document {
	return &Document{paragraphs: []string{}}
}

// AddParagraph appends text as a new paragraph. Line feeds and carriage
// returns become line breaks and tabs become tab stops.
func (d *Document) AddParagraph(text string) error {
	if d.saved {
		return ErrSaved
	}
	d.paragraphs = append(d.paragraphs, text)
	return nil
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	return len(d.paragraphs)
}

// Paragraphs returns a copy of the paragraph texts in order.
func (d *Document) Paragraphs() []string {
	out := make([]string, len(d.paragraphs))
	copy(out, d.paragraphs)
	return out
}

// Save persists the document to path. The archive is written to a temporary
// file in the same directory and renamed into place, so path either holds
// the complete document or is left untouched. The parent directory must
// exist. A document can be saved once.
func (d *Document) Save(path string) (err error) {
	if d.saved {
		return ErrSaved
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".nagolos-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = d.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}

	d.saved = true
	return nil
}

// countingWriter tracks bytes written for WriteTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo writes the document as a .docx archive to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name, body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", d.documentXML()},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return cw.n, fmt.Errorf("adding %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finalizing archive: %w", err)
	}
	return cw.n, nil
}

func (d *Document) documentXML() string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wordNamespace + `"><w:body>`)
	for _, p := range d.paragraphs {
		writeParagraph(&b, p)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1134" w:right="850" w:bottom="1134" w:left="1701" w:header="708" w:footer="708" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writeParagraph emits one w:p. Text is split into w:t segments around
// line breaks and tabs; characters XML cannot carry are dropped.
func writeParagraph(b *strings.Builder, text string) {
	text = strings.Map(xmlSafe, text)
	if text == "" {
		b.WriteString(`<w:p/>`)
		return
	}

	b.WriteString(`<w:p><w:r>`)
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		xml.EscapeText(b, []byte(seg.String()))
		b.WriteString(`</w:t>`)
		seg.Reset()
	}
	for _, r := range text {
		switch r {
		case '\n', '\r':
			flush()
			b.WriteString(`<w:br/>`)
		case '\t':
			flush()
			b.WriteString(`<w:tab/>`)
		default:
			seg.WriteRune(r)
		}
	}
	flush()
	b.WriteString(`</w:r></w:p>`)
}

// xmlSafe drops runes outside the XML 1.0 Char production.
func xmlSafe(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r >= 0x20 && r <= 0xD7FF:
		return r
	case r >= 0xE000 && r <= 0xFFFD:
		return r
	case r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return -1
}
