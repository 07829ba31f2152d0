// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nagolos/internal/fixture"
	"github.com/pdiddy/nagolos/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want types.Format
	}{
		{"report.docx", types.FormatWord},
		{"REPORT.DOCX", types.FormatWord},
		{"dir/Report.DocX", types.FormatWord},
		{"scan.pdf", types.FormatPDF},
		{"/abs/path/Scan.PDF", types.FormatPDF},
		{"archive.tar.pdf", types.FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Classify(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	for _, path := range []string{"notes.txt", "legacy.doc", "noext", ".docx", "dir.pdf/file", "book.odt"} {
		t.Run(path, func(t *testing.T) {
			_, err := Classify(path)
			require.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Contains(t, err.Error(), ".docx, .pdf", "message should list the supported set")
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClassify_DoesNotTouchFilesystem(t *testing.T) {
	got, err := Classify(filepath.Join(t.TempDir(), "absent.docx"))
	require.NoError(t, err)
	assert.Equal(t, types.FormatWord, got)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".docx", Extension("a/b/c.DOCX"))
	assert.Equal(t, ".gz", Extension("a.tar.gz"))
	assert.Equal(t, "", Extension(".bashrc"))
	assert.Equal(t, "", Extension("README"))
	assert.Equal(t, []string{".docx", ".pdf"}, SupportedExtensions())
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.NoError(t, CheckFile(file))

	err := CheckFile(filepath.Join(dir, "missing.docx"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing.docx")

	err = CheckFile(dir)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestExtract_Word(t *testing.T) {
	path := fixture.WriteDocx(t, t.TempDir(), "in.docx", "Перший абзац", "", "Третій абзац")

	units, err := Extract(path, types.FormatWord)
	require.NoError(t, err)
	assert.Equal(t, []string{"Перший абзац", "", "Третій абзац"}, units)
}

func TestExtract_PDF(t *testing.T) {
	path := fixture.WritePDF(t, t.TempDir(), "in.pdf",
		fixture.TextStream("Page one", "still page one"),
		fixture.TextStream("Page two"),
	)

	units, err := Extract(path, types.FormatPDF)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Page one\nstill page one", units[0])
	assert.Equal(t, "Page two", units[1])
}

func TestExtract_EmptyDocument(t *testing.T) {
	path := fixture.WriteDocx(t, t.TempDir(), "empty.docx")

	units, err := Extract(path, types.FormatWord)
	require.NoError(t, err)
	assert.NotNil(t, units)
	assert.Empty(t, units)
}

func TestExtract_ReadError(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		file   string
		format types.Format
	}{
		{"corrupt docx", "bad.docx", types.FormatWord},
		{"corrupt pdf", "bad.pdf", types.FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

			units, err := Extract(path, tt.format)
			assert.Nil(t, units)

			var readErr *ReadError
			require.True(t, errors.As(err, &readErr), "want *ReadError, got %T", err)
			assert.Equal(t, path, readErr.Path)
			assert.Equal(t, tt.format, readErr.Format)
			assert.Contains(t, err.Error(), path)
			assert.NotErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestExtract_UnknownFormat(t *testing.T) {
	_, err := Extract("x.odt", types.Format("odt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
