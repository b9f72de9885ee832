package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a document id is not part of the collection.
var ErrNotFound = errors.New("document not found")

var extensions = map[string]bool{".md": true, ".mdx": true}

// Loader reads documents from a content directory.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a Loader with schema validation enabled.
func NewLoader() *Loader {
	return &Loader{validate: validator.New()}
}

// Load walks dir and returns every document ordered by id.
// A document with missing or invalid front matter fails the whole load.
func (l *Loader) Load(ctx context.Context, dir string) ([]Document, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content directory: %w", err)
	}

	var docs []Document
	seen := make(map[string]string)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, err := l.ParseFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		id := data.Slug
		if id == "" {
			id = IDFromPath(rel)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate document id %q: %s and %s", id, prev, path)
		}
		seen[id] = path

		docs = append(docs, Document{ID: id, Data: data, SourcePath: path})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to load content from %s: %w", dir, walkErr)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

// ParseFile reads and validates the front matter of a single file.
func (l *Loader) ParseFile(path string) (Frontmatter, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the content walk or the store index
	if err != nil {
		return Frontmatter{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var data Frontmatter
	if _, err := frontmatter.MustParse(bytes.NewReader(raw), &data); err != nil {
		return Frontmatter{}, fmt.Errorf("failed to parse front matter in %s: %w", path, err)
	}
	if err := l.validate.Struct(data); err != nil {
		return Frontmatter{}, fmt.Errorf("invalid front matter in %s: %w", path, err)
	}
	if data.Author == "" {
		data.Author = DefaultAuthor
	}
	return data, nil
}

// IDFromPath turns a path relative to the content root into a document id.
// "ai/guide.md" becomes "ai/guide", "ai/index.md" becomes "ai" and the
// root "index.md" stays "index".
func IDFromPath(rel string) string {
	id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	id = strings.ToLower(id)
	if dir, ok := strings.CutSuffix(id, "/index"); ok && dir != "" {
		return dir
	}
	return id
}
