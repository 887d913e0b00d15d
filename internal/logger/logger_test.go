package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConfigureRejectsBadInput(t *testing.T) {
	if err := Configure("loud", "console"); err == nil {
		t.Error("Expected error for unknown level")
	}
	if err := Configure("info", "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	if err := Configure("debug", "json"); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("extracted rows", "sheet", "竞品-且慢", "count", 3)
	Error("write failed", errors.New("disk full"), "path", "out.docx")

	out := buf.String()
	for _, want := range []string{`"message":"extracted rows"`, `"sheet":"竞品-且慢"`, `"count":3`, `"error":"disk full"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %s, got %s", want, out)
		}
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	if err := Configure("warn", "json"); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("hidden too")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("Expected warn to be logged, got %s", out)
	}
}
