package feed

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/docfeed/internal/content"
)

// DefaultLanguage is the channel language of the site.
const DefaultLanguage = "zh-CN"

// Assembler turns a collection snapshot into feed entries and XML.
type Assembler struct {
	opts       Options
	exclusions *Exclusions
	sources    []DateSource
	clock      func() time.Time
	log        *zap.SugaredLogger
}

// Option configures the Assembler.
type Option func(*Assembler)

// WithClock sets the time source used for undated entries.
func WithClock(clock func() time.Time) Option {
	return func(a *Assembler) { a.clock = clock }
}

// WithLogger sets the logger for recoverable failures.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Assembler) { a.log = log }
}

// WithExclusions replaces the default exclusion set.
func WithExclusions(e *Exclusions) Option {
	return func(a *Assembler) { a.exclusions = e }
}

// WithDateSources sets the ordered date sources tried before the clock.
func WithDateSources(sources ...DateSource) Option {
	return func(a *Assembler) { a.sources = sources }
}

// New creates an Assembler. Without options it excludes the default category
// indexes and reads dates from document metadata only.
func New(opts Options, options ...Option) *Assembler {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	a := &Assembler{
		opts:       opts,
		exclusions: NewExclusions(DefaultCategoryIndexes),
		sources:    []DateSource{MetadataSource{}},
		clock:      time.Now,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Build filters docs, resolves dates and returns entries newest first.
// Entries without a date from any source keep their input order after all
// dated entries.
func (a *Assembler) Build(ctx context.Context, docs []content.Document) ([]Entry, error) {
	chain := NewDateChain(a.clock, a.log, a.sources...)

	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.exclusions.Excluded(doc.ID) {
			continue
		}

		pubDate, dated := chain.Resolve(ctx, doc)
		path := "/" + doc.ID + "/"
		entries = append(entries, Entry{
			ID:          doc.ID,
			Title:       doc.Data.Title,
			Description: doc.Data.Description,
			Path:        path,
			Link:        joinURL(a.opts.SiteURL, path),
			PubDate:     pubDate.UTC(),
			Dated:       dated,
		})
	}

	sortEntries(entries)

	if a.opts.Limit > 0 && len(entries) > a.opts.Limit {
		entries = entries[:a.opts.Limit]
	}
	a.log.Debugw("feed entries built", "documents", len(docs), "entries", len(entries))
	return entries, nil
}

// Generate builds and renders the feed in one call.
func (a *Assembler) Generate(ctx context.Context, docs []content.Document) ([]byte, error) {
	entries, err := a.Build(ctx, docs)
	if err != nil {
		return nil, err
	}
	return a.Render(entries)
}

// sortEntries orders dated entries newest first, then undated ones.
// The sort is stable so equal dates keep input order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Dated && b.Dated:
			return a.PubDate.After(b.PubDate)
		case a.Dated:
			return true
		default:
			return false
		}
	})
}

func joinURL(site, path string) string {
	return strings.TrimRight(site, "/") + path
}
