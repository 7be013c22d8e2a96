package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := NewContext(context.Background(), l)

	FromContext(ctx).Info("tool call", "name", "distance")
	out := buf.String()
	if !strings.Contains(out, "tool call") || !strings.Contains(out, "name=distance") {
		t.Errorf("log output = %q", out)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("missing logger should fall back to slog.Default")
	}
}
