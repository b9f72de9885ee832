package content

import (
	"context"
	"fmt"
	"sync"
)

// Store keeps the last loaded snapshot of the collection. The snapshot is
// not refreshed when files change on disk until Reload is called.
type Store struct {
	mu     sync.RWMutex
	dir    string
	loader *Loader
	docs   []Document
	byID   map[string]int
}

// NewStore creates an empty store for dir.
func NewStore(dir string, loader *Loader) *Store {
	if loader == nil {
		loader = NewLoader()
	}
	return &Store{dir: dir, loader: loader, docs: []Document{}, byID: map[string]int{}}
}

// Open creates a store and loads it once.
func Open(ctx context.Context, dir string) (*Store, error) {
	s := NewStore(dir, nil)
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the content directory.
func (s *Store) Dir() string { return s.dir }

// Reload re-reads the content directory and swaps the snapshot.
func (s *Store) Reload(ctx context.Context) error {
	docs, err := s.loader.Load(ctx, s.dir)
	if err != nil {
		return err
	}
	byID := make(map[string]int, len(docs))
	for i, d := range docs {
		byID[d.ID] = i
	}

	s.mu.Lock()
	s.docs = docs
	s.byID = byID
	s.mu.Unlock()
	return nil
}

// Documents returns a copy of the current snapshot.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// SourcePath resolves the backing file of a document.
func (s *Store) SourcePath(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.docs[i].SourcePath, nil
}

// Loader returns the loader used for parsing.
func (s *Store) Loader() *Loader { return s.loader }
