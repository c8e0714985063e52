package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewEmptyPathIsNop(t *testing.T) {
	log, closer, err := New("", "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer.Close()
	if log.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %s", log.GetLevel())
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskpad.log")
	log, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug().Str("op", "list").Msg("task store request")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"op":"list"`) || !strings.Contains(string(raw), `"level":"debug"`) {
		t.Fatalf("unexpected log content: %s", raw)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zerolog.WarnLevel)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected filtered output: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("blank level: %s %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWriterLeavesGlobalsAlone(t *testing.T) {
	before := zerolog.TimeFieldFormat
	var buf bytes.Buffer
	log := NewWriter(&buf, zerolog.InfoLevel)
	log.Info().Msg("x")
	if zerolog.TimeFieldFormat != before {
		t.Fatalf("time field format changed to %q", zerolog.TimeFieldFormat)
	}
	if !strings.Contains(buf.String(), `"time":`) {
		t.Fatalf("expected timestamp in output: %s", buf.String())
	}
}
