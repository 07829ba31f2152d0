// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source validates input documents, classifies them by format, and
// extracts their text units: one per paragraph for word-processor
// documents, one per page for PDFs.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nagolos/pkg/types"
)

var (
	// ErrNotFound means the input path is missing or is not a regular file.
	ErrNotFound = errors.New("input file not found")

	// ErrUnsupportedFormat means the input extension is outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// CheckFile verifies that path names an existing regular file. It runs
// before Classify so a missing file is never reported as a format problem.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	return nil
}

// Extension returns the lowercase extension of path including the dot. A
// base name whose only dot is the leading one has no extension.
func Extension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.ToLower(ext)
}

// SupportedExtensions lists the accepted extensions in classification order.
func SupportedExtensions() []string {
	formats := types.Formats()
	exts := make([]string, len(formats))
	for i, f := range formats {
		exts[i] = f.Extension()
	}
	return exts
}

// Classify maps the extension of path to a source format. It only looks at
// the path string.
func Classify(path string) (types.Format, error) {
	ext := Extension(path)
	for _, f := range types.Formats() {
		if ext == f.Extension() {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported formats: %s)",
		ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions(), ", "))
}
