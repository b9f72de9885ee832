package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

const (
	defaultFeedPath = "/rss.xml"
	defaultMaxSize  = 10 << 20
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithFeedPath overrides the path appended to site URLs.
func WithFeedPath(path string) ClientOption {
	return func(c *Client) {
		c.feedPath = path
	}
}

// WithMaxSize caps the number of bytes read from a feed response.
func WithMaxSize(n int64) ClientOption {
	return func(c *Client) {
		c.maxSize = n
	}
}

// Client fetches RSS feeds from deployed sites.
type Client struct {
	httpClient HTTPClient
	feedPath   string
	maxSize    int64
	parser     *gofeed.Parser
}

// NewClient creates a new feed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		feedPath:   defaultFeedPath,
		maxSize:    defaultMaxSize,
		parser:     gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FeedURL returns the feed location for a site. URLs that already end in
// .xml are used as is.
func (c *Client) FeedURL(siteURL string) string {
	if strings.HasSuffix(siteURL, ".xml") {
		return siteURL
	}
	return strings.TrimRight(siteURL, "/") + c.feedPath
}

// Fetch downloads and parses the feed of siteURL.
func (c *Client) Fetch(ctx context.Context, siteURL string) (*Feed, error) {
	feedURL := c.FeedURL(siteURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d for %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	if int64(len(body)) > c.maxSize {
		return nil, fmt.Errorf("feed at %s exceeds %d bytes", feedURL, c.maxSize)
	}

	return c.parse(string(body))
}

func (c *Client) parse(data string) (*Feed, error) {
	parsed, err := c.parser.ParseString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	out := &Feed{
		Title:    parsed.Title,
		Link:     parsed.Link,
		Language: parsed.Language,
		Items:    make([]Item, 0, len(parsed.Items)),
	}
	for _, it := range parsed.Items {
		item := Item{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
		}
		if it.PublishedParsed != nil {
			item.Published = *it.PublishedParsed
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
