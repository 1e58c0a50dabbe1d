package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/oboe/internal/models"
)

func sampleResults() []*models.SearchResult {
	return []*models.SearchResult{
		{
			ID:       "7d0c6cc1-41ab-4de0-b326-4b4c9e928ba5",
			UserID:   "U1",
			Content:  "the cat sat on the mat",
			Source:   "notes.txt",
			Distance: 0.1234,
			Created:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:       "a2f1b9ce-0a7e-47b3-9c51-72cf6ab01f21",
			UserID:   "U2",
			Content:  strings.Repeat("long ", 100),
			Distance: 0.5,
			Created:  time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResults(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Found 2 results") {
		t.Errorf("missing count line: %s", out)
	}
	if !strings.Contains(out, "the cat sat on the mat") {
		t.Error("missing content")
	}
	if !strings.Contains(out, "Source: notes.txt") {
		t.Error("missing source line")
	}
	if !strings.Contains(out, "...") {
		t.Error("long content should be truncated")
	}
}

func TestWriteSearchResults_json(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResults(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded []models.SearchResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].UserID != "U1" {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"shorter than limit", "short", 10, "short"},
		{"at limit", "exact", 5, "exact"},
		{"over limit", "truncated", 4, "trun..."},
		{"zero limit returns unchanged", "text", 0, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
