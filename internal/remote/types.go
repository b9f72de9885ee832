// Package remote fetches a deployed site feed so it can be compared with the
// locally generated one.
package remote

import "time"

// Item is one entry of a fetched feed.
type Item struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
}

// Feed is a fetched feed.
type Feed struct {
	Title    string
	Link     string
	Language string
	Items    []Item
}
