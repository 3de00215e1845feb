package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info must be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"service":"weighttrack"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty", false)

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"message":"debug"`) || !strings.Contains(out, `"message":"info"`) {
		t.Errorf("expected info fallback, got %s", out)
	}
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", true).Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected console output, got %s", buf.String())
	}
}
