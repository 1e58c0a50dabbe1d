package models

import "time"

// SearchResult is a single similarity hit: the stored record plus its
// cosine distance from the query vector (lower = more similar).
type SearchResult struct {
	ID       string                 `json:"id"`
	UserID   string                 `json:"user_id"`
	Content  string                 `json:"content"`
	Source   string                 `json:"source,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Distance float64                `json:"distance"`
	Created  time.Time              `json:"created"`
}
