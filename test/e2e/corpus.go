// Package e2e exercises the full HTTP API against a large corpus.
package e2e

import (
	"fmt"

	"github.com/hyperjump/oboe/internal/models"
)

// ContentItem is one corpus entry to ingest through POST /content.
type ContentItem struct {
	UserID   string
	Content  string
	Source   string
	Metadata map[string]interface{}
}

// QueryTestCase queries with the exact text of one corpus item and expects
// that item to come back as the closest hit.
type QueryTestCase struct {
	Query       string
	Description string
}

// Corpus holds content items and query test cases.
type Corpus struct {
	Items        []ContentItem
	TestCases    []QueryTestCase
	TotalItems   int
	TotalQueries int
}

var corpusUsers = []string{"alice", "bob", "carol", "dave", "erin"}

var corpusSources = []string{"notes.md", "wiki", "chat", "email", ""}

// BuildCorpus returns 100 content items with distinct text and one query
// test case per topic sentence.
func BuildCorpus() *Corpus {
	items := buildItems(100)
	cases := buildQueryTestCases(items)
	return &Corpus{
		Items:        items,
		TestCases:    cases,
		TotalItems:   len(items),
		TotalQueries: len(cases),
	}
}

func buildItems(n int) []ContentItem {
	topics := []string{
		"The quarterly revenue report shows a steady increase in subscription income.",
		"Postgres connection pooling keeps latency flat under bursty load.",
		"The onboarding checklist covers laptop setup, accounts, and first tasks.",
		"Cosine distance ranks nearest neighbors for semantic retrieval.",
		"The staging cluster runs one replica of every service for smoke testing.",
		"Team standup moved to 9:30 to accommodate the new timezone spread.",
		"Vector indexes trade exactness for query speed at high dimensions.",
		"The incident on Tuesday was caused by an expired TLS certificate.",
		"Customer feedback highlights confusion around the export button.",
		"Batch embedding jobs run nightly and backfill missing vectors.",
		"The deploy pipeline gates on unit tests and a staging smoke check.",
		"Redis sessions expire after thirty minutes of inactivity.",
		"The design review approved the new settings page layout.",
		"Rate limiting is enforced per API key at one hundred requests a minute.",
		"The migration to the new billing provider completes next sprint.",
		"Structured logs include request id, user id, and latency fields.",
		"The mobile app crash rate dropped after the memory leak fix.",
		"Weekly backups are verified by restoring into a scratch database.",
		"The search relevance experiment improved click-through by four percent.",
		"On-call handoff notes live in the shared runbook document.",
		"Feature flags allow rolling the new editor out to ten percent of users.",
		"The contract renewal meeting with the vendor is set for Thursday.",
		"Embedding dimensions are fixed at model load and validated on write.",
		"The cache hit ratio improved after tuning the eviction policy.",
		"Sprint retrospective action items are tracked in the team board.",
		"Database schema changes require a reversible migration script.",
		"The marketing site redesign launches alongside the product update.",
		"Health checks probe the database before reporting ready.",
		"User research sessions are scheduled for the first week of October.",
		"The cost dashboard breaks cloud spend down by service and team.",
		"Access reviews run quarterly and revoke stale permissions.",
		"The API gateway terminates TLS and forwards client metadata.",
		"Load tests simulate ten thousand concurrent search requests.",
		"The documentation portal now supports versioned API references.",
		"Alert thresholds were retuned to cut pager noise in half.",
		"The data retention policy purges raw events after ninety days.",
		"Graceful shutdown drains in-flight requests before exit.",
		"The partnership announcement is embargoed until Monday morning.",
		"Query filters combine user, source, and time range restrictions.",
		"The hiring plan adds two backend engineers in the next quarter.",
		"Secrets rotate automatically through the vault integration.",
		"The A/B test framework assigns variants by stable user hash.",
		"Content ingestion validates length limits before encoding.",
		"The legacy exporter is deprecated and will be removed in March.",
		"Error budgets guide the balance between features and reliability.",
		"The workshop covered profiling CPU and memory in production.",
		"Duplicate submissions are kept as separate records with their own ids.",
		"The translation pipeline supports twelve languages at launch.",
		"Audit events record every deletion with actor and timestamp.",
		"The roadmap review pushed the analytics module to next year.",
	}

	out := make([]ContentItem, 0, n)
	for i := 0; i < n; i++ {
		text := topics[i%len(topics)]
		if i >= len(topics) {
			text = fmt.Sprintf("%s (note %d)", text, i+1)
		}
		item := ContentItem{
			UserID:  corpusUsers[i%len(corpusUsers)],
			Content: text,
			Source:  corpusSources[i%len(corpusSources)],
			Metadata: map[string]interface{}{
				"topic": fmt.Sprintf("topic-%02d", i%len(topics)),
			},
		}
		out = append(out, item)
	}
	return out
}

func buildQueryTestCases(items []ContentItem) []QueryTestCase {
	seen := make(map[string]bool)
	var cases []QueryTestCase
	for i, item := range items {
		if seen[item.Content] {
			continue
		}
		seen[item.Content] = true
		cases = append(cases, QueryTestCase{
			Query:       item.Content,
			Description: fmt.Sprintf("item %03d is the closest hit for its own text", i+1),
		})
	}
	return cases
}

// ToInputs converts corpus items to API request bodies.
func (c *Corpus) ToInputs() []models.AddContentInput {
	out := make([]models.AddContentInput, len(c.Items))
	for i, item := range c.Items {
		out[i] = models.AddContentInput{
			UserID:   item.UserID,
			Content:  item.Content,
			Source:   item.Source,
			Metadata: item.Metadata,
		}
	}
	return out
}
