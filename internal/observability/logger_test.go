package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigure_JSONWithWorkflowID(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info", "json")
	t.Cleanup(func() { Configure(&bytes.Buffer{}, "warn", "text") })

	ctx := WithWorkflowID(context.Background(), "wf-1")
	LoggerFromContext(ctx).Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["workflow_id"] != "wf-1" {
		t.Errorf("workflow_id = %v, want wf-1", entry["workflow_id"])
	}
}

func TestConfigure_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "error", "text")
	t.Cleanup(func() { Configure(&bytes.Buffer{}, "warn", "text") })

	Logger().Info("dropped")
	Logger().Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message logged at error level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error message missing: %q", out)
	}
}
