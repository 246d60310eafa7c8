// Package route maps application routes onto workspace tab descriptors.
package route

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/tabwell/internal/domain/entity"
)

// Reuse scopes for route families. All views of one family share a group
// key so navigation keeps at most one auto-titled tab per scope.
const (
	GroupResources  = "/resources"
	GroupPackages   = "/packages"
	GroupOperations = "/operations"
)

// Page describes a static route's tab defaults.
type Page struct {
	Title     string
	Closeable bool
}

// DefaultPages returns the built-in static route table. Entries map exact
// normalized paths to tab defaults; a hit produces a page tab whose group
// key is the path itself.
func DefaultPages() map[string]Page {
	return map[string]Page{
		"/":           {Title: "Dashboard", Closeable: false},
		"/resources":  {Title: "Resources", Closeable: true},
		"/console":    {Title: "Console", Closeable: true},
		"/settings":   {Title: "Settings", Closeable: true},
		"/logs":       {Title: "Logs", Closeable: true},
		"/metadata":   {Title: "Capability Statement", Closeable: true},
		"/packages":   {Title: "Packages", Closeable: true},
		"/operations": {Title: "Operations", Closeable: true},
	}
}

// Options carries per-resolution overrides.
type Options struct {
	// TitleOverride, when non-empty, always wins over the computed title.
	TitleOverride string
}

// Resolver turns normalized pathnames into candidate tabs. The id generator
// and clock are injected so resolution stays deterministic under test.
type Resolver struct {
	pages map[string]Page
	newID func() string
	now   func() time.Time
}

// NewResolver creates a resolver over the given static page table. A nil
// table falls back to DefaultPages; nil newID/now fall back to defaults.
func NewResolver(pages map[string]Page, newID func() string, now func() time.Time) *Resolver {
	if pages == nil {
		pages = DefaultPages()
	}
	if newID == nil {
		newID = NewTabID
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{pages: pages, newID: newID, now: now}
}

// Normalize strips trailing slashes from a pathname. Root stays "/".
func Normalize(pathname string) string {
	if pathname == "" {
		return "/"
	}
	trimmed := strings.TrimRight(pathname, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// Resolve maps a pathname (plus optional title override) to a candidate
// tab, or nil if the path has no tab representation. Every produced tab
// carries a fresh id and creation timestamp and is not custom-titled.
func (r *Resolver) Resolve(pathname string, opts Options) *entity.Tab {
	path := Normalize(pathname)

	if page, ok := r.pages[path]; ok {
		return r.newTab(opts.TitleOverride, page.Title, path, entity.TabKindPage, page.Closeable, path)
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case segments[0] == "resources" && len(segments) == 3:
		title := fmt.Sprintf("%s/%s", decodeSegment(segments[1]), decodeSegment(segments[2]))
		return r.newTab(opts.TitleOverride, title, path, entity.TabKindResource, true, GroupResources)

	case segments[0] == "resources" && len(segments) == 2:
		title := fmt.Sprintf("Resources: %s", decodeSegment(segments[1]))
		return r.newTab(opts.TitleOverride, title, path, entity.TabKindPage, true, GroupResources)

	case segments[0] == "packages" && len(segments) == 3:
		title := fmt.Sprintf("Package: %s@%s", decodeSegment(segments[1]), decodeSegment(segments[2]))
		return r.newTab(opts.TitleOverride, title, path, entity.TabKindPage, true, GroupPackages)

	case segments[0] == "operations" && len(segments) == 2:
		title := fmt.Sprintf("Operation: %s", decodeSegment(segments[1]))
		return r.newTab(opts.TitleOverride, title, path, entity.TabKindPage, true, GroupOperations)
	}

	// Unmapped paths open no tab.
	return nil
}

// NewResourceTab synthesizes a resource tab directly from a type+id pair,
// bypassing path resolution. Used by the explicit open-resource action.
func (r *Resolver) NewResourceTab(resourceType, resourceID string) *entity.Tab {
	path := fmt.Sprintf("/resources/%s/%s", url.PathEscape(resourceType), url.PathEscape(resourceID))
	title := fmt.Sprintf("%s/%s", resourceType, resourceID)
	return r.newTab("", title, path, entity.TabKindResource, true, GroupResources)
}

func (r *Resolver) newTab(override, title, path string, kind entity.TabKind, closeable bool, groupKey string) *entity.Tab {
	if override != "" {
		title = override
	}
	return &entity.Tab{
		ID:        entity.TabID(r.newID()),
		Title:     title,
		Path:      path,
		Kind:      kind,
		Closeable: closeable,
		GroupKey:  groupKey,
		CreatedAt: r.now(),
	}
}

// decodeSegment percent-decodes a path segment. Decoding never fails the
// resolution: a malformed escape falls back to the raw segment.
func decodeSegment(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}
