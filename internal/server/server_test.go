// Package server tests document the HTTP behaviour of the feed endpoint.
//
// Test requirements (this file serves as documentation):
// - GET /rss.xml returns the generated XML with an XML content type
// - Every request regenerates the feed
// - Generation failures return 500 without a partial body
// - Non GET/HEAD methods are rejected
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubGenerator struct {
	calls int
	body  string
	err   error
}

func (g *stubGenerator) Generate(ctx context.Context) ([]byte, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return []byte(g.body), nil
}

func TestAC700_Server_ServesFeed(t *testing.T) {
	gen := &stubGenerator{body: "<rss></rss>"}
	srv := New(gen, "/rss.xml", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "xml") {
		t.Errorf("expected XML content type, got %q", ct)
	}
	if rec.Body.String() != "<rss></rss>" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestAC701_Server_RegeneratesOnEveryRequest(t *testing.T) {
	gen := &stubGenerator{body: "<rss/>"}
	srv := New(gen, "/rss.xml", nil)

	for i := 0; i < 3; i++ {
		srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rss.xml", nil))
	}
	if gen.calls != 3 {
		t.Errorf("expected 3 generations, got %d", gen.calls)
	}
}

func TestAC702_Server_ReportsGenerationFailure(t *testing.T) {
	srv := New(&stubGenerator{err: errors.New("content store unavailable")}, "/rss.xml", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rss.xml", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "content store") {
		t.Error("internal error details should not leak to readers")
	}
}

func TestAC703_Server_RejectsOtherMethods(t *testing.T) {
	srv := New(&stubGenerator{body: "<rss/>"}, "/rss.xml", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rss.xml", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestAC703_Server_HeadHasNoBody(t *testing.T) {
	srv := New(&stubGenerator{body: "<rss/>"}, "/rss.xml", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/rss.xml", nil))

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("HEAD should return 200 without body, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAC704_Server_HealthAndNotFound(t *testing.T) {
	srv := New(&stubGenerator{}, "/rss.xml", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health check should return ok, got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed.xml", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path should 404, got %d", rec.Code)
	}
}

func TestAC705_Server_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	srv := New(&stubGenerator{body: "<rss/>"}, "/rss.xml", nil)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/rss.xml")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "<rss/>" {
		t.Errorf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve should return nil after cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
