package feed

import (
	"fmt"

	"github.com/gorilla/feeds"
)

// ContentType is the media type of the rendered feed.
const ContentType = "application/xml; charset=utf-8"

// Render serializes entries as an RSS 2.0 document.
func (a *Assembler) Render(entries []Entry) ([]byte, error) {
	f := &feeds.Feed{
		Title:       a.opts.Title,
		Link:        &feeds.Link{Href: a.opts.SiteURL},
		Description: a.opts.Description,
		Items:       make([]*feeds.Item, 0, len(entries)),
	}

	for _, e := range entries {
		if e.Dated && e.PubDate.After(f.Updated) {
			f.Updated = e.PubDate
		}
		f.Items = append(f.Items, &feeds.Item{
			Title:       e.Title,
			Link:        &feeds.Link{Href: e.Link},
			Description: e.Description,
			Id:          e.Link,
			Created:     e.PubDate,
		})
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = a.opts.Language

	out, err := feeds.ToXML(rss)
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return []byte(out), nil
}
