// Package blob keeps transient in-memory objects addressable by "blob:" URLs,
// the equivalent of object URLs handed to display elements. Every URL must be
// revoked once it is no longer displayed.
package blob

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Scheme prefixes every URL created by a Store
const Scheme = "blob:"

// Object is the payload behind a blob URL
type Object struct {
	Data      []byte
	MediaType string
}

// Store registers objects and hands out URLs for them
type Store struct {
	items *cache.Cache
}

// NewStore creates a store. A positive ttl expires URLs that were never
// revoked; zero keeps them until Revoke.
func NewStore(ttl time.Duration) *Store {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl / 2
	}
	return &Store{items: cache.New(expiration, cleanup)}
}

// Create registers data and returns its URL
func (s *Store) Create(data []byte, mediaType string) string {
	url := Scheme + uuid.NewString()
	s.items.Set(url, &Object{Data: data, MediaType: mediaType}, cache.DefaultExpiration)
	return url
}

// Open returns the object behind a URL
func (s *Store) Open(url string) (*Object, error) {
	if !IsBlobURL(url) {
		return nil, fmt.Errorf("not a blob url: %s", url)
	}
	v, found := s.items.Get(url)
	if !found {
		return nil, fmt.Errorf("blob not found or revoked: %s", url)
	}
	return v.(*Object), nil
}

// Revoke releases a URL. It reports whether the URL was live, so revoking
// twice is harmless.
func (s *Store) Revoke(url string) bool {
	if _, found := s.items.Get(url); !found {
		return false
	}
	s.items.Delete(url)
	return true
}

// Len returns the number of live URLs
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// IsBlobURL reports whether url was produced by a Store
func IsBlobURL(url string) bool {
	return strings.HasPrefix(url, Scheme)
}
