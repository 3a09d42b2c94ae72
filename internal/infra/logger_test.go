package infra

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	logger.Debug().Msg("hidden")
	logger.Info().Int64("project_id", 7).Msg("allocation pass")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "allocation pass" {
		t.Fatalf("unexpected message %#v", entry["message"])
	}
	if entry["service"] != "fundledger" {
		t.Fatalf("unexpected service field %#v", entry["service"])
	}
}

func TestNewLoggerDevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development")

	logger.Debug().Msg("visible")

	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}
