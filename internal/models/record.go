// Package models defines core data structures for content records, search queries, and results.
package models

import "time"

const (
	// MaxUserIDLength is the maximum length of a user identifier.
	MaxUserIDLength = 9
	// MaxSourceLength is the maximum length of a source tag.
	MaxSourceLength = 255
)

// ContentRecord is the persisted unit: original text, its embedding,
// ownership and provenance tags, and free-form metadata.
// Records are immutable once created; the only mutation is deletion.
type ContentRecord struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Content   string                 `json:"content"`
	Embedding []float32              `json:"-"`
	Source    string                 `json:"source,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Created   time.Time              `json:"created"`
}

// AddContentInput is the request body for creating a content record.
// The embedding is always derived server-side and never accepted from the caller.
type AddContentInput struct {
	UserID   string                 `json:"user_id"`
	Content  string                 `json:"content"`
	Source   string                 `json:"source,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks field constraints. Returns a *ValidationError listing
// every invalid field, or nil when the input is acceptable.
func (in *AddContentInput) Validate() error {
	ve := &ValidationError{}
	if in.UserID == "" {
		ve.Add("user_id", "is required")
	} else if len(in.UserID) > MaxUserIDLength {
		ve.Addf("user_id", "must be at most %d characters", MaxUserIDLength)
	}
	if in.Content == "" {
		ve.Add("content", "cannot be empty")
	}
	if len(in.Source) > MaxSourceLength {
		ve.Addf("source", "must be at most %d characters", MaxSourceLength)
	}
	return ve.OrNil()
}

// AddContentResponse is the creation acknowledgment. The embedding is omitted.
type AddContentResponse struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// DeleteResponse acknowledges a successful deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HealthResponse reports service and store liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
