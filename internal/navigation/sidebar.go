// Package navigation models the site sidebar and derives the category index
// pages it implies.
package navigation

import (
	"sort"
	"strings"
)

// Link is a manual sidebar entry.
type Link struct {
	Label string `yaml:"label"`
	Link  string `yaml:"link"`
}

// Autogenerate lists every document under Directory.
type Autogenerate struct {
	Directory string `yaml:"directory"`
}

// Group is a labelled sidebar section.
type Group struct {
	Label        string        `yaml:"label"`
	Items        []Link        `yaml:"items,omitempty"`
	Autogenerate *Autogenerate `yaml:"autogenerate,omitempty"`
}

// Sidebar is the ordered list of sidebar groups.
type Sidebar []Group

// Directories returns the autogenerated directories in sidebar order.
func (s Sidebar) Directories() []string {
	var dirs []string
	for _, g := range s {
		if g.Autogenerate == nil {
			continue
		}
		if dir := strings.Trim(g.Autogenerate.Directory, "/"); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// CategoryIndexes returns the ids of the category landing pages implied by
// the sidebar: every autogenerated directory plus every directory below it
// that holds documents. For "api-gateway/higress/install" under the
// "api-gateway" group this yields "api-gateway" and "api-gateway/higress".
func CategoryIndexes(sidebar Sidebar, ids []string) []string {
	set := make(map[string]struct{})
	for _, dir := range sidebar.Directories() {
		set[dir] = struct{}{}
		prefix := dir + "/"
		for _, id := range ids {
			if !strings.HasPrefix(id, prefix) {
				continue
			}
			parts := strings.Split(id, "/")
			for i := len(strings.Split(dir, "/")) + 1; i < len(parts); i++ {
				set[strings.Join(parts[:i], "/")] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Default returns the sidebar of the original site.
func Default() Sidebar {
	return Sidebar{
		{Label: "首页", Items: []Link{{Label: "欢迎", Link: "/"}}},
		{Label: "AI 与 LLM", Autogenerate: &Autogenerate{Directory: "ai"}},
		{Label: "API 网关", Autogenerate: &Autogenerate{Directory: "api-gateway"}},
		{Label: "开发工具", Autogenerate: &Autogenerate{Directory: "dev-tools"}},
		{Label: "系统编程", Autogenerate: &Autogenerate{Directory: "system-programming"}},
		{Label: "关于", Items: []Link{{Label: "关于我", Link: "/about"}}},
	}
}
