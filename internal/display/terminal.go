// Package display provides terminal output formatting for docfeed.
package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gauthierbraillon/docfeed/internal/feed"
)

const (
	dateLayout     = "2006-01-02"
	undatedMarker  = "(undated)  "
	maxDescription = 120
)

// TerminalFormatter formats feed entries for terminal display.
type TerminalFormatter struct {
	// ShowDescription adds the truncated description under each entry.
	ShowDescription bool
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatEntry formats a single entry for display.
func (f *TerminalFormatter) FormatEntry(e feed.Entry) string {
	var lines []string

	// Header: date  Title
	lines = append(lines, f.FormatDate(e)+e.Title)

	if f.ShowDescription && e.Description != "" {
		lines = append(lines, "  "+f.TruncateText(e.Description, maxDescription))
	}

	link := e.Link
	if link == "" {
		link = e.Path
	}
	if link != "" {
		lines = append(lines, "  "+link)
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatFeed formats multiple entries for display.
func (f *TerminalFormatter) FormatFeed(entries []feed.Entry) string {
	if len(entries) == 0 {
		return "No entries.\n"
	}

	formatted := make([]string, 0, len(entries))
	for _, e := range entries {
		formatted = append(formatted, f.FormatEntry(e))
	}
	return strings.Join(formatted, "\n")
}

// FormatDate returns the fixed-width date column.
func (f *TerminalFormatter) FormatDate(e feed.Entry) string {
	if !e.Dated {
		return undatedMarker
	}
	return e.PubDate.Format(dateLayout) + "  "
}

// FormatSummary returns a one-line count of dated and undated entries.
func (f *TerminalFormatter) FormatSummary(entries []feed.Entry) string {
	undated := 0
	for _, e := range entries {
		if !e.Dated {
			undated++
		}
	}
	return fmt.Sprintf("%d entries (%d undated)\n", len(entries), undated)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
