// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads and writes Office Open XML word-processor documents at
// the level nagolos needs: an ordered list of plain-text paragraphs.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	packageRelsPart     = "_rels/.rels"
	defaultDocumentPart = "word/document.xml"
	officeDocumentRel   = "/officeDocument"
)

// ErrNoDocumentPart is returned when the archive has no main document part.
var ErrNoDocumentPart = errors.New("main document part not found in archive")

// ReadParagraphs returns the text of every body-level paragraph of the
// document at path, in document order. Empty paragraphs are kept so that
// blank lines survive the round trip. Paragraphs inside tables and text
// boxes are not body paragraphs and are not returned.
func ReadParagraphs(docPath string) ([]string, error) {
	r, err := zip.OpenReader(docPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	part, err := mainPart(&r.Reader)
	if err != nil {
		return nil, err
	}

	var doc *zip.File
	for _, f := range r.File {
		if f.Name == part {
			doc = f
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDocumentPart, part)
	}

	rc, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", part, err)
	}
	defer rc.Close()

	paragraphs, err := parseParagraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", part, err)
	}
	return paragraphs, nil
}

type relationships struct {
	Items []struct {
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// mainPart resolves the main document part from the package relationships,
// falling back to word/document.xml when the package has none.
func mainPart(r *zip.Reader) (string, error) {
	var rels *zip.File
	for _, f := range r.File {
		if f.Name == packageRelsPart {
			rels = f
			break
		}
	}
	if rels == nil {
		return defaultDocumentPart, nil
	}

	rc, err := rels.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", packageRelsPart, err)
	}
	defer rc.Close()

	var parsed relationships
	if err := xml.NewDecoder(rc).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parsing %s: %w", packageRelsPart, err)
	}
	for _, rel := range parsed.Items {
		if strings.HasSuffix(rel.Type, officeDocumentRel) {
			return path.Clean(strings.TrimPrefix(rel.Target, "/")), nil
		}
	}
	return defaultDocumentPart, nil
}

// parseParagraphs walks document.xml and collects paragraph text. A
// paragraph is a w:p whose parent is w:body. Its text is the content of the
// runs directly under it or under a hyperlink directly under it.
func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []xml.StartElement
		paragraphs []string
		text       strings.Builder
		paraDepth  = -1 // stack depth of the open body paragraph
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" && paraDepth < 0 && len(stack) > 0 && stack[len(stack)-1].Name.Local == "body" {
				paraDepth = len(stack)
				text.Reset()
			}
			stack = append(stack, t)
			if paraDepth >= 0 && inRun(stack, paraDepth) {
				switch t.Name.Local {
				case "t":
					inText = true
				case "tab", "ptab":
					text.WriteByte('\t')
				case "cr":
					text.WriteByte('\n')
				case "br":
					if breakType(t) == "textWrapping" {
						text.WriteByte('\n')
					}
				case "noBreakHyphen":
					text.WriteByte('-')
				}
			}

		case xml.CharData:
			if inText {
				text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			inText = false
			if paraDepth >= 0 && len(stack) == paraDepth {
				paragraphs = append(paragraphs, text.String())
				paraDepth = -1
			}
		}
	}

	return paragraphs, nil
}

// inRun reports whether the innermost element is a child of a run that
// belongs directly to the paragraph at paraDepth.
func inRun(stack []xml.StartElement, paraDepth int) bool {
	rel := stack[paraDepth+1:]
	switch len(rel) {
	case 2:
		return rel[0].Name.Local == "r"
	case 3:
		return rel[0].Name.Local == "hyperlink" && rel[1].Name.Local == "r"
	}
	return false
}

func breakType(el xml.StartElement) string {
	for _, a := range el.Attr {
		if a.Name.Local == "type" {
			return a.Value
		}
	}
	return "textWrapping"
}
