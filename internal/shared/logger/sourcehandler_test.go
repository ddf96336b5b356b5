package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		minLevel   slog.Level
		wantSource bool
	}{
		{name: "info below warn threshold", level: slog.LevelInfo, minLevel: slog.LevelWarn, wantSource: false},
		{name: "warn at threshold", level: slog.LevelWarn, minLevel: slog.LevelWarn, wantSource: true},
		{name: "error above threshold", level: slog.LevelError, minLevel: slog.LevelWarn, wantSource: true},
		{name: "debug threshold shows info", level: slog.LevelInfo, minLevel: slog.LevelDebug, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewSourceHandler(base, tt.minLevel))

			log.Log(context.Background(), tt.level, "test message")

			assert.Equal(t, tt.wantSource, strings.Contains(buf.String(), "source="), buf.String())
		})
	}
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewSourceHandler(base, slog.LevelError)).With("actor_id", "staff-1").WithGroup("consent")

	log.Info("token read", "status", "pending")

	out := buf.String()
	assert.Contains(t, out, "actor_id=staff-1")
	assert.Contains(t, out, "consent.status=pending")
	assert.NotContains(t, out, "source=")
}

func TestSourceHandler_RespectsBaseLevel(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewSourceHandler(base, slog.LevelWarn)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
