package navigation

import (
	"reflect"
	"testing"
)

func TestAC150_CategoryIndexes_IncludesAutogeneratedDirectories(t *testing.T) {
	got := CategoryIndexes(Default(), nil)
	want := []string{"ai", "api-gateway", "dev-tools", "system-programming"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAC150_CategoryIndexes_IncludesNestedDirectoriesWithDocuments(t *testing.T) {
	ids := []string{
		"ai/deepagents-usage-guide",
		"api-gateway/higress/install",
		"api-gateway/kong/plugins/rate-limit",
		"dev-tools/dotenvx/intro",
		"system-programming/rust/ownership",
		"about",
		"misc/other/page",
	}

	got := CategoryIndexes(Default(), ids)
	want := []string{
		"ai",
		"api-gateway",
		"api-gateway/higress",
		"api-gateway/kong",
		"api-gateway/kong/plugins",
		"dev-tools",
		"dev-tools/dotenvx",
		"system-programming",
		"system-programming/rust",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAC151_CategoryIndexes_IgnoresManualGroups(t *testing.T) {
	sidebar := Sidebar{{Label: "About", Items: []Link{{Label: "Me", Link: "/about"}}}}

	got := CategoryIndexes(sidebar, []string{"about/me"})
	if len(got) != 0 {
		t.Errorf("manual groups should not imply category pages, got %v", got)
	}
}

func TestSidebar_DirectoriesTrimsSlashes(t *testing.T) {
	sidebar := Sidebar{{Label: "X", Autogenerate: &Autogenerate{Directory: "/guides/"}}}

	if got := sidebar.Directories(); !reflect.DeepEqual(got, []string{"guides"}) {
		t.Errorf("expected [guides], got %v", got)
	}
}
