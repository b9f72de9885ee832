// Package site wires the content store, sidebar and feed assembler for one
// configured site.
package site

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/docfeed/internal/config"
	"github.com/gauthierbraillon/docfeed/internal/content"
	"github.com/gauthierbraillon/docfeed/internal/feed"
	"github.com/gauthierbraillon/docfeed/internal/navigation"
)

// Service generates the feed for a site. Each call reloads the store and
// works on that fresh snapshot.
type Service struct {
	cfg   config.Config
	store *content.Store
	clock func() time.Time
	log   *zap.SugaredLogger
}

// Option configures the Service.
type Option func(*Service)

// WithClock sets the time used for undated entries.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a Service over an already loaded store.
func New(cfg config.Config, store *content.Store, opts ...Option) *Service {
	s := &Service{cfg: cfg, store: store, clock: time.Now, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the content directory named by cfg and returns a Service.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Service, error) {
	store, err := content.Open(ctx, cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	return New(cfg, store, opts...), nil
}

// Config returns the site configuration.
func (s *Service) Config() config.Config { return s.cfg }

// Store returns the content store.
func (s *Service) Store() *content.Store { return s.store }

// Exclusions returns the category indexes for the given snapshot: the
// configured list merged with the ones implied by the sidebar.
func (s *Service) Exclusions(docs []content.Document) *feed.Exclusions {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return feed.NewExclusions(s.cfg.Feed.Exclude, navigation.CategoryIndexes(s.cfg.Sidebar, ids))
}

// Assembler returns a feed assembler for the given snapshot.
func (s *Service) Assembler(docs []content.Document) *feed.Assembler {
	sources := []feed.DateSource{feed.MetadataSource{}}
	if s.cfg.Feed.ReadThrough {
		sources = []feed.DateSource{
			feed.NewReadThroughSource(s.store, s.store.Loader()),
			feed.MetadataSource{},
		}
	}
	return feed.New(s.cfg.FeedOptions(),
		feed.WithClock(s.clock),
		feed.WithLogger(s.log),
		feed.WithExclusions(s.Exclusions(docs)),
		feed.WithDateSources(sources...),
	)
}

// snapshot re-reads the content directory so added and deleted documents
// show up in the next feed.
func (s *Service) snapshot(ctx context.Context) ([]content.Document, error) {
	if err := s.store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload content: %w", err)
	}
	return s.store.Documents(), nil
}

// Entries builds the ordered feed entries.
func (s *Service) Entries(ctx context.Context) ([]feed.Entry, error) {
	docs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Assembler(docs).Build(ctx, docs)
}

// Generate renders the feed XML.
func (s *Service) Generate(ctx context.Context) ([]byte, error) {
	docs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.Assembler(docs).Generate(ctx, docs)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("feed generated", "documents", len(docs), "bytes", len(out))
	return out, nil
}
