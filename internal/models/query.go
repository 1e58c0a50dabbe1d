package models

import "time"

// SearchQuery represents a similarity-search request with optional filters.
type SearchQuery struct {
	Query             string   `json:"query"`
	Limit             int      `json:"limit,omitempty"`
	UserID            string   `json:"user_id,omitempty"`
	Source            string   `json:"source,omitempty"`
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`
	CreatedAfter      string   `json:"created_after,omitempty"`
	CreatedBefore     string   `json:"created_before,omitempty"`

	// Parsed timestamp bounds, populated by Validate.
	AfterTime  *time.Time `json:"-"`
	BeforeTime *time.Time `json:"-"`
}

// Validate checks the query fields and normalizes defaults: limit falls back
// to 10 when unset, the distance threshold falls back to defaultThreshold,
// and the timestamp bounds are parsed from RFC 3339. Returns a
// *ValidationError listing every invalid field.
func (q *SearchQuery) Validate(defaultThreshold float64) error {
	ve := &ValidationError{}
	if q.Query == "" {
		ve.Add("query", "cannot be empty")
	}
	if q.Limit == 0 {
		q.Limit = 10
	} else if q.Limit < 1 || q.Limit > 100 {
		ve.Add("limit", "must be between 1 and 100")
	}
	if len(q.UserID) > MaxUserIDLength {
		ve.Addf("user_id", "must be at most %d characters", MaxUserIDLength)
	}
	if len(q.Source) > MaxSourceLength {
		ve.Addf("source", "must be at most %d characters", MaxSourceLength)
	}
	if q.DistanceThreshold == nil {
		t := defaultThreshold
		q.DistanceThreshold = &t
	} else if *q.DistanceThreshold < 0 || *q.DistanceThreshold > 2 {
		ve.Add("distance_threshold", "must be between 0 and 2")
	}
	if q.CreatedAfter != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedAfter)
		if err != nil {
			ve.Add("created_after", "must be an RFC 3339 timestamp")
		} else {
			q.AfterTime = &t
		}
	}
	if q.CreatedBefore != "" {
		t, err := time.Parse(time.RFC3339, q.CreatedBefore)
		if err != nil {
			ve.Add("created_before", "must be an RFC 3339 timestamp")
		} else {
			q.BeforeTime = &t
		}
	}
	return ve.OrNil()
}
