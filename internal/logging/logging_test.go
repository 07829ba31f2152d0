// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewHasComponent(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("pipeline").Info("hello")

	assert.Contains(t, buf.String(), "component=pipeline")
	assert.Contains(t, buf.String(), "hello")
}

func TestInitFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"level=INFO", "component=fmt"}},
		{"", []string{"level=INFO", "component=fmt"}},
		{"json", []string{`"level":"INFO"`, `"component":"fmt"`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer
			Init(slog.LevelInfo, tt.format, &buf)

			New("fmt").Info("check")

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestInitLevelGating(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	logger := New("gate")
	logger.Info("suppressed")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "shown")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(true))
	assert.Equal(t, slog.LevelInfo, Level(false))
}
