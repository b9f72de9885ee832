package feed

import "testing"

func TestAC230_Exclusions_KnownCategoryIndex(t *testing.T) {
	e := NewExclusions(DefaultCategoryIndexes)

	if !e.Excluded("api-gateway/higress") {
		t.Error("api-gateway/higress is a category index and should be excluded")
	}
	if e.Excluded("api-gateway/higress/install") {
		t.Error("articles below a category index should stay in the feed")
	}
}

func TestAC230_Exclusions_PrefixAndSuffixRules(t *testing.T) {
	e := NewExclusions()
	cases := map[string]bool{
		"index":            true,
		"indexing-in-rust": true,
		"about":            true,
		"about-this-site":  true,
		"guides/index":     true,
		"guides/reindex":   false,
		"guides/about":     false,
		"ai/deepagents":    false,
		"ai":               false,
	}
	for id, want := range cases {
		if got := e.Excluded(id); got != want {
			t.Errorf("Excluded(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestAC231_Exclusions_MergesListsAndTrimsSlashes(t *testing.T) {
	e := NewExclusions([]string{"/ai/", ""}, []string{"dev-tools", "ai"})

	if e.Len() != 2 {
		t.Errorf("expected 2 category indexes, got %d", e.Len())
	}
	if !e.Excluded("ai") || !e.Excluded("dev-tools") {
		t.Error("merged categories should be excluded")
	}
}
