package e2e

import (
	"testing"
)

func TestBuildCorpus_Returns100Items(t *testing.T) {
	c := BuildCorpus()
	if c.TotalItems != 100 {
		t.Errorf("expected 100 items, got %d", c.TotalItems)
	}
	if len(c.Items) != 100 {
		t.Errorf("expected len(Items)=100, got %d", len(c.Items))
	}
}

func TestBuildCorpus_ContentsAreUnique(t *testing.T) {
	c := BuildCorpus()
	seen := make(map[string]int)
	for i, item := range c.Items {
		if prev, dup := seen[item.Content]; dup {
			t.Errorf("item %d repeats content of item %d: %q", i, prev, item.Content)
		}
		seen[item.Content] = i
	}
}

func TestBuildCorpus_ItemsAreValidInputs(t *testing.T) {
	c := BuildCorpus()
	for i, input := range c.ToInputs() {
		if err := input.Validate(); err != nil {
			t.Errorf("item %d is not a valid input: %v", i, err)
		}
	}
}

func TestBuildCorpus_QueryTestCasesMatchOneItem(t *testing.T) {
	c := BuildCorpus()
	if c.TotalQueries == 0 {
		t.Fatal("expected at least one query test case")
	}
	byContent := make(map[string]int)
	for _, item := range c.Items {
		byContent[item.Content]++
	}
	for i, tc := range c.TestCases {
		if tc.Query == "" {
			t.Errorf("test case %d: empty query", i)
			continue
		}
		if n := byContent[tc.Query]; n != 1 {
			t.Errorf("test case %d: query matches %d items, want exactly 1", i, n)
		}
	}
}
