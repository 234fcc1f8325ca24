// Package cdn turns spine items into fetchable image URLs.
package cdn

import (
	"net/url"
	"strings"

	"github.com/ytget/comic-reader/internal/model"
)

// Resolver maps a page to the location its image is fetched from
type Resolver interface {
	Resolve(page *model.Page, index int) string
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(page *model.Page, index int) string

// Resolve implements Resolver
func (f ResolverFunc) Resolve(page *model.Page, index int) string {
	return f(page, index)
}

// Base resolves relative hrefs against a base URL and passes absolute ones through
type Base struct {
	base *url.URL
}

// NewBase creates a resolver for the given base. Filesystem directories are
// turned into file URLs.
func NewBase(base string) (*Base, error) {
	if base != "" && !strings.Contains(base, "://") {
		base = "file://" + toSlash(base)
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Path != "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Base{base: u}, nil
}

// Resolve implements Resolver
func (b *Base) Resolve(page *model.Page, index int) string {
	ref, err := url.Parse(page.Href)
	if err != nil {
		return page.Href
	}
	if ref.IsAbs() || b.base.String() == "" {
		return ref.String()
	}
	return b.base.ResolveReference(ref).String()
}

func toSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
