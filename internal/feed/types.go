// Package feed assembles the site's RSS feed from the docs collection.
//
// This package enables docfeed to:
// - Drop home, about and category index pages from the feed
// - Resolve each entry's publish date through a chain of sources
// - Order entries newest first with undated entries last
// - Serialize the result as RSS 2.0
package feed

import "time"

// Entry is one item of the generated feed.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Link        string    `json:"link"`
	PubDate     time.Time `json:"pub_date"`
	// Dated is false when PubDate is the generation time rather than a
	// date found in the document.
	Dated bool `json:"dated"`
}

// Options holds channel-level feed settings.
type Options struct {
	Title       string
	Description string
	SiteURL     string
	Language    string
	Limit       int
}
