// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixture builds small source documents for tests.
package fixture

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pdiddy/nagolos/internal/docx"
)

// PDF returns a minimal PDF with one page per content stream, all sharing a
// Helvetica font resource named F1.
func PDF(contents ...string) []byte {
	n := len(contents)
	fontObj := 3 + 2*n
	objects := make([]string, 0, fontObj)

	kids := make([]string, n)
	for i := range contents {
		kids[i] = strconv.Itoa(3+2*i) + " 0 R"
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids ["+strings.Join(kids, " ")+"] /Count "+strconv.Itoa(n)+" >>",
	)
	for i, c := range contents {
		objects = append(objects,
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents "+strconv.Itoa(4+2*i)+
				" 0 R /Resources << /Font << /F1 "+strconv.Itoa(fontObj)+" 0 R >> >> >>",
			stream("", c),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	return build(objects)
}

// FormPDF returns a one-page PDF whose page invokes a Form XObject named X1.
// The page has a Helvetica font F1. The form has its own font F2 whose
// /Differences map codes 0xC0-0xC5 to the Cyrillic letters А Б В Г Д Е.
func FormPDF(page, form string) []byte {
	return build([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R" +
			" /Resources << /Font << /F1 5 0 R >> /XObject << /X1 6 0 R >> >> >>",
		stream("", page),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		stream("/Type /XObject /Subtype /Form /BBox [0 0 612 792] /Resources << /Font << /F2 7 0 R >> >> ", form),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Times-Roman" +
			" /Encoding << /Type /Encoding /BaseEncoding /WinAnsiEncoding" +
			" /Differences [192 /afii10017 /afii10018 /afii10019 /afii10020 /afii10021 /afii10022] >> >>",
	})
}

func stream(entries, content string) string {
	return "<< " + entries + "/Length " + strconv.Itoa(len(content)) + " >>\nstream\n" + content + "\nendstream"
}

// build serializes objects, numbered from 1, with a cross-reference table.
func build(objects []string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	xref := b.Len()
	size := len(objects) + 1
	b.WriteString("xref\n0 " + strconv.Itoa(size) + "\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i < size; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size " + strconv.Itoa(size) + " /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xref) + "\n%%EOF\n")
	return []byte(b.String())
}

// TextStream returns a page content stream showing each line on its own
// baseline. Lines must be ASCII without parentheses or backslashes.
func TextStream(lines ...string) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("0 -14 Td\n")
		}
		b.WriteString("(" + l + ") Tj\n")
	}
	b.WriteString("ET")
	return b.String()
}

// WritePDF writes a PDF built from page contents to dir/name.
func WritePDF(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PDF(pages...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteFormPDF writes a FormPDF document to dir/name.
func WriteFormPDF(t testing.TB, dir, name, page, form string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, FormPDF(page, form), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteDocx writes a word-processor document with the given paragraphs to
// dir/name.
func WriteDocx(t testing.TB, dir, name string, paragraphs ...string) string {
	t.Helper()
	doc := docx.New()
	for _, p := range paragraphs {
		if err := doc.AddParagraph(p); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, name)
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}
