package feed

import "strings"

// DefaultCategoryIndexes are the category landing pages of the original
// site. They are merged with the ones derived from the sidebar.
var DefaultCategoryIndexes = []string{
	"ai",
	"api-gateway",
	"dev-tools",
	"system-programming",
	"api-gateway/higress",
	"api-gateway/kong",
	"dev-tools/dotenvx",
	"system-programming/rust",
	"dev-tools/tools",
}

// Exclusions decides which documents are structural pages rather than posts.
type Exclusions struct {
	categories map[string]struct{}
}

// NewExclusions builds an exclusion set from one or more category index lists.
func NewExclusions(categoryIndexes ...[]string) *Exclusions {
	e := &Exclusions{categories: make(map[string]struct{})}
	for _, list := range categoryIndexes {
		for _, id := range list {
			if id = strings.Trim(id, "/"); id != "" {
				e.categories[id] = struct{}{}
			}
		}
	}
	return e
}

// Excluded reports whether the document id must not appear in the feed.
func (e *Exclusions) Excluded(id string) bool {
	switch {
	case strings.HasPrefix(id, "index"),
		strings.HasPrefix(id, "about"),
		strings.HasSuffix(id, "/index"):
		return true
	}
	_, ok := e.categories[id]
	return ok
}

// Len returns the number of category indexes in the set.
func (e *Exclusions) Len() int { return len(e.categories) }
