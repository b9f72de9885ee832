package feed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/docfeed/internal/content"
)

// DateSource looks up a document's publish date. ok is false when the
// source has no date for the document.
type DateSource interface {
	Name() string
	PublishDate(ctx context.Context, doc content.Document) (t time.Time, ok bool, err error)
}

// MetadataSource reads the date from the loaded collection snapshot.
type MetadataSource struct{}

// Name implements DateSource.
func (MetadataSource) Name() string { return "metadata" }

// PublishDate implements DateSource.
func (MetadataSource) PublishDate(_ context.Context, doc content.Document) (time.Time, bool, error) {
	t, ok := doc.Data.Published()
	return t, ok, nil
}

// PathResolver maps a document id to its backing file.
type PathResolver interface {
	SourcePath(id string) (string, error)
}

// FrontmatterParser parses the front matter of a file.
type FrontmatterParser interface {
	ParseFile(path string) (content.Frontmatter, error)
}

// ReadThroughSource re-reads the document's file so the date reflects the
// file on disk even when the collection snapshot is stale.
type ReadThroughSource struct {
	resolver PathResolver
	parser   FrontmatterParser
}

// NewReadThroughSource creates a read-through source. A nil resolver falls
// back to the document's own SourcePath.
func NewReadThroughSource(resolver PathResolver, parser FrontmatterParser) *ReadThroughSource {
	if parser == nil {
		parser = content.NewLoader()
	}
	return &ReadThroughSource{resolver: resolver, parser: parser}
}

// Name implements DateSource.
func (*ReadThroughSource) Name() string { return "read-through" }

// PublishDate implements DateSource.
func (s *ReadThroughSource) PublishDate(ctx context.Context, doc content.Document) (time.Time, bool, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, false, err
	}

	path := doc.SourcePath
	if s.resolver != nil {
		p, err := s.resolver.SourcePath(doc.ID)
		if err != nil {
			return time.Time{}, false, err
		}
		path = p
	}
	if path == "" {
		return time.Time{}, false, fmt.Errorf("no source file for %s", doc.ID)
	}

	data, err := s.parser.ParseFile(path)
	if err != nil {
		return time.Time{}, false, err
	}
	t, ok := data.Published()
	return t, ok, nil
}

// DateChain tries each source in order and falls back to the clock.
type DateChain struct {
	sources []DateSource
	clock   func() time.Time
	log     *zap.SugaredLogger
}

// NewDateChain creates a chain over sources.
func NewDateChain(clock func() time.Time, log *zap.SugaredLogger, sources ...DateSource) *DateChain {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DateChain{sources: sources, clock: clock, log: log}
}

// Resolve returns the first date any source yields. Source errors are
// logged and skipped. dated is false when the clock supplied the date.
func (c *DateChain) Resolve(ctx context.Context, doc content.Document) (t time.Time, dated bool) {
	for _, src := range c.sources {
		t, ok, err := src.PublishDate(ctx, doc)
		if err != nil {
			c.log.Warnw("date source failed, falling back",
				"id", doc.ID, "source", src.Name(), "error", err)
			continue
		}
		if ok {
			return t, true
		}
	}
	return c.clock(), false
}
