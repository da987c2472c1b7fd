package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFor_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := For("runner")
	logger.Info().Msg("spawned")

	out := buf.String()
	if !strings.Contains(out, "component=runner") {
		t.Errorf("expected component field in output, got %q", out)
	}
	if !strings.Contains(out, "spawned") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestInit_DebugLevel(t *testing.T) {
	Init(true)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", zerolog.GlobalLevel())
	}

	Init(false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %s", zerolog.GlobalLevel())
	}
}
