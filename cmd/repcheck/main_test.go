package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
)

func TestReport(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", "0\n"},
		{"   ", "0\n"},
		{"hello hello hello hello", "1\n"},
		{"the cat chased the mouse and the cat", "5\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := report(&buf, tt.text, false); err != nil {
			t.Fatalf("report(%q) error: %v", tt.text, err)
		}
		if buf.String() != tt.want {
			t.Errorf("report(%q) = %q, want %q", tt.text, buf.String(), tt.want)
		}
	}
}

func TestReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report(&buf, "the cat chased the mouse and the cat", true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var resp models.RepetitionResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.LongestRun != 5 || resp.WindowStart != 1 || resp.WindowEnd != 6 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestReportAll_OneLinePerArgument(t *testing.T) {
	var buf bytes.Buffer
	args := []string{"hello hello", "the cat chased the mouse and the cat", ""}

	if err := reportAll(&buf, args, false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if buf.String() != "1\n5\n0\n" {
		t.Errorf("reportAll() = %q, want %q", buf.String(), "1\n5\n0\n")
	}
}
