// Package cli provides output helpers for the Oboe command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/oboe/internal/models"
)

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, results []*models.SearchResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		writeSearchResultsText(w, results)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, results []*models.SearchResult) {
	fmt.Fprintf(w, "\nFound %d results\n\n", len(results))
	for _, result := range results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "ID: %s | User: %s | Distance: %.4f\n", result.ID, result.UserID, result.Distance)
		if result.Source != "" {
			fmt.Fprintf(w, "Source: %s\n", result.Source)
		}
		fmt.Fprintf(w, "Created: %s\n", result.Created.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(w, "\n%s\n\n", Truncate(result.Content, 200))
	}
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
