package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	cfg := Config{Level: "info", Format: "json", ServiceName: "doofi-test", Version: "1.0.0", Environment: "test", Frontend: "discord"}
	InitLoggerWithWriter(cfg, &buf)

	Info("mining started", "player_id", 7, "duration_minutes", 60)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry["service"] != "doofi-test" {
		t.Errorf("Expected service=doofi-test, got %v", entry["service"])
	}
	if entry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", entry["environment"])
	}
	if entry["frontend"] != "discord" {
		t.Errorf("Expected frontend=discord, got %v", entry["frontend"])
	}
	if entry["msg"] != "mining started" {
		t.Errorf("Expected msg='mining started', got %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", entry["level"])
	}
	if entry["player_id"] != float64(7) {
		t.Errorf("Expected player_id=7, got %v", entry["player_id"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "warn", Format: "text", ServiceName: "doofi-test"}, &buf)

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")

	if got := GetRequestID(ctx); got != "test-req-123" {
		t.Errorf("Expected request_id=test-req-123, got %s", got)
	}

	if log := FromContext(ctx); log == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" {
		t.Fatal("Expected generated request id")
	}
	if GetRequestID(ctx) != id {
		t.Errorf("Expected context to carry %s", id)
	}

	again, same := EnsureRequestID(ctx)
	if same != id || GetRequestID(again) != id {
		t.Errorf("Expected existing id %s to be kept, got %s", id, same)
	}
}

func TestConfigParsing(t *testing.T) {
	levels := map[string]string{"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO", "loud": "INFO"}
	for in, want := range levels {
		if got := (Config{Level: in}).LogLevel().String(); got != want {
			t.Errorf("LogLevel(%q) = %s, want %s", in, got, want)
		}
	}

	if !(Config{Format: "JSON"}).IsJSON() || (Config{Format: "text"}).IsJSON() {
		t.Error("IsJSON should match json case-insensitively")
	}

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Format: "text"}, &buf)
	Info("no frontend")
	if strings.Contains(buf.String(), "frontend=") {
		t.Errorf("empty frontend should be omitted: %q", buf.String())
	}
}
