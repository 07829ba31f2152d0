// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nagolos/internal/docx"
	"github.com/pdiddy/nagolos/internal/fixture"
	"github.com/pdiddy/nagolos/internal/pipeline"
	"github.com/pdiddy/nagolos/internal/source"
	"github.com/pdiddy/nagolos/pkg/types"
)

const acute = "\u0301"

// isolate keeps user config files and NAGOLOS_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"NAGOLOS_STRESS_BACKEND", "NAGOLOS_STRESS_SYMBOL", "NAGOLOS_STRESS_ON_AMBIGUITY",
		"NAGOLOS_STRESS_DICTIONARY", "NAGOLOS_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func readOutput(t *testing.T, path string) []string {
	t.Helper()
	got, err := docx.ReadParagraphs(path)
	require.NoError(t, err)
	return got
}

func TestRunConvertWord(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := fixture.WriteDocx(t, dir, "story.docx", "Мама мила раму.", "", "книга")

	code, stdout, stderr := runCLI(t, src)
	require.Equal(t, exitOK, code, stderr)

	dest := filepath.Join(dir, "story_nagolos.docx")
	assert.Equal(t, dest+"\n", stdout)
	assert.Equal(t, []string{"Ма" + acute + "ма мила ра" + acute + "му.", "", "кни" + acute + "га"}, readOutput(t, dest))
	assert.Contains(t, stderr, "processing file")
	assert.Contains(t, stderr, "processing completed")
}

func TestRunConvertPDF(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := fixture.WritePDF(t, dir, "lecture.pdf",
		fixture.TextStream("Page one"),
		fixture.TextStream(),
	)
	out := filepath.Join(dir, "out", "marked.docx")

	code, stdout, stderr := runCLI(t, "--backend", "none", "-o", out, src)
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(t, out+"\n", stdout)
	assert.Equal(t, []string{"Page one", ""}, readOutput(t, out))
	assert.NoFileExists(t, filepath.Join(dir, "lecture_nagolos.docx"))
}

func TestRunFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		in   string
		want string
	}{
		{name: "acute symbol", args: []string{"--symbol", "acute"}, in: "мама", want: "ма\u00b4ма"},
		{name: "first reading", args: []string{"--on-ambiguity", "first"}, in: "замок", want: "за" + acute + "мок"},
		{name: "env selects all readings", env: map[string]string{"NAGOLOS_STRESS_ON_AMBIGUITY": "all"}, in: "замок", want: "за" + acute + "мо" + acute + "к"},
		{name: "flag beats env", args: []string{"--on-ambiguity", "skip"}, env: map[string]string{"NAGOLOS_STRESS_ON_AMBIGUITY": "all"}, in: "замок", want: "замок"},
		{name: "passthrough backend", args: []string{"--backend", "none"}, in: "мама", want: "мама"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			src := fixture.WriteDocx(t, dir, "in.docx", tt.in)

			code, _, stderr := runCLI(t, append(tt.args, src)...)
			require.Equal(t, exitOK, code, stderr)
			assert.Equal(t, []string{tt.want}, readOutput(t, pipeline.OutputPath(src)))
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "words.yaml")
	require.NoError(t, os.WriteFile(words, []byte("words:\n  - ко+т\n  - соба+ка\n"), 0o644))
	cfgPath := filepath.Join(dir, "nagolos.yaml")
	cfg := fmt.Sprintf("stress:\n  dictionary: %s\n  symbol: acute\nlog:\n  format: json\n", words)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	src := fixture.WriteDocx(t, dir, "pets.docx", "собака і мама")
	code, _, stderr := runCLI(t, "--config", cfgPath, src)
	require.Equal(t, exitOK, code, stderr)

	assert.Equal(t, []string{"соба\u00b4ка і мама"}, readOutput(t, pipeline.OutputPath(src)))
	assert.Contains(t, stderr, `"msg":"processing completed"`)
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) []string
		want  int
		msg   string
	}{
		{
			name:  "missing argument",
			setup: func(*testing.T, string) []string { return nil },
			want:  exitError,
			msg:   "accepts 1 arg(s)",
		},
		{
			name:  "missing input",
			setup: func(_ *testing.T, dir string) []string { return []string{filepath.Join(dir, "none.docx")} },
			want:  exitInput,
			msg:   "input file not found",
		},
		{
			name: "missing input with unavailable container runtime",
			setup: func(t *testing.T, dir string) []string {
				t.Setenv("PATH", t.TempDir())
				return []string{"--backend", "container", filepath.Join(dir, "none.pdf")}
			},
			want: exitInput,
			msg:  "input file not found",
		},
		{
			name: "unsupported format with unreachable service",
			setup: func(t *testing.T, dir string) []string {
				t.Setenv("NAGOLOS_STRESS_URL", "http://127.0.0.1:1")
				p := filepath.Join(dir, "notes.txt")
				require.NoError(t, os.WriteFile(p, []byte("мама"), 0o644))
				return []string{"--backend", "http", p}
			},
			want: exitInput,
			msg:  "unsupported file format",
		},
		{
			name: "unsupported format",
			setup: func(t *testing.T, dir string) []string {
				p := filepath.Join(dir, "notes.txt")
				require.NoError(t, os.WriteFile(p, []byte("мама"), 0o644))
				return []string{p}
			},
			want: exitInput,
			msg:  "unsupported file format",
		},
		{
			name: "corrupt document",
			setup: func(t *testing.T, dir string) []string {
				p := filepath.Join(dir, "broken.docx")
				require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))
				return []string{p}
			},
			want: exitError,
			msg:  "broken.docx",
		},
		{
			name: "invalid symbol",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--symbol", "grave", fixture.WriteDocx(t, dir, "a.docx", "мама")}
			},
			want: exitError,
			msg:  "invalid configuration",
		},
		{
			name: "unknown flag",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--colour", fixture.WriteDocx(t, dir, "a.docx", "мама")}
			},
			want: exitError,
			msg:  "unknown flag",
		},
		{
			name: "missing config file",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--config", filepath.Join(dir, "nope.yaml"), fixture.WriteDocx(t, dir, "a.docx", "мама")}
			},
			want: exitError,
			msg:  "reading config",
		},
		{
			name: "missing dictionary",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--dictionary", filepath.Join(dir, "nope.db"), fixture.WriteDocx(t, dir, "a.docx", "мама")}
			},
			want: exitError,
			msg:  "opening dictionary",
		},
		{
			name: "output is a directory",
			setup: func(t *testing.T, dir string) []string {
				out := filepath.Join(dir, "taken")
				require.NoError(t, os.Mkdir(out, 0o755))
				return []string{"-o", out, fixture.WriteDocx(t, dir, "a.docx", "мама")}
			},
			want: exitError,
			msg:  "taken",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, stdout, stderr := runCLI(t, tt.setup(t, t.TempDir())...)
			assert.Equal(t, tt.want, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestRunHelpDescribesBuiltinDictionary(t *testing.T) {
	isolate(t)
	code, stdout, _ := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "built-in dictionary is a small sample list")
	assert.Contains(t, stdout, "nagolos dict import")
}

func TestRunInvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NAGOLOS_STRESS_BACKEND", "telepathy")
	src := fixture.WriteDocx(t, t.TempDir(), "a.docx", "мама")

	code, _, stderr := runCLI(t, src)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "backend")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"not found", fmt.Errorf("%w: x.docx", source.ErrNotFound), exitInput},
		{"unsupported", fmt.Errorf("%w: \".txt\"", source.ErrUnsupportedFormat), exitInput},
		{"read", &source.ReadError{Path: "x.pdf", Format: types.FormatPDF, Err: errors.New("eof")}, exitError},
		{"transform", &pipeline.TransformError{Index: 3, Err: errors.New("boom")}, exitError},
		{"persist", &pipeline.PersistError{Path: "out.docx", Err: os.ErrPermission}, exitError},
		{"other", errors.New("usage"), exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "nagolos dev\n", stdout)
}
