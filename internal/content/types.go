// Package content loads the site's documentation collection from Markdown
// files with YAML front matter.
package content

import (
	"fmt"
	"strings"
	"time"
)

// DefaultAuthor is used when a document does not name one.
const DefaultAuthor = "wilson-x"

// Document is one entry of the docs collection.
type Document struct {
	ID         string
	Data       Frontmatter
	SourcePath string
}

// Frontmatter is the validated metadata block of a document.
type Frontmatter struct {
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description"`
	PubDate     *Date    `yaml:"pubDate"`
	UpdatedDate *Date    `yaml:"updatedDate"`
	Author      string   `yaml:"author"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags" validate:"omitempty,dive,required"`
	Keywords    []string `yaml:"keywords" validate:"omitempty,dive,required"`
	Image       string   `yaml:"image"`
	Excerpt     string   `yaml:"excerpt"`
	Canonical   string   `yaml:"canonical" validate:"omitempty,url"`
}

// Published returns the publish date and whether one was set.
func (f Frontmatter) Published() (time.Time, bool) {
	if f.PubDate == nil || f.PubDate.IsZero() {
		return time.Time{}, false
	}
	return f.PubDate.Time, true
}

// Date accepts YAML timestamps as well as quoted date strings.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalYAML coerces a scalar into a date.
func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := ParseDate(v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("invalid date value %v", raw)
	}
}

// ParseDate parses the date formats accepted in front matter.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}
