package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/comic-reader/internal/model"
)

// Timeout constants
const (
	DefaultManifestTimeout = 30 * time.Second
)

// Reading progression values
const (
	ProgressionRTL = "rtl"
	ProgressionTTB = "ttb"
)

// Manifest size limit
const (
	MaxManifestBytes = 8 << 20
)

// ErrEmptySpine is returned for manifests without pages
var ErrEmptySpine = errors.New("manifest has no pages")

// manifest mirrors the JSON document of a publication
type manifest struct {
	Metadata struct {
		Identifier         string `json:"identifier"`
		Title              string `json:"title"`
		ReadingProgression string `json:"readingProgression"`
		Presentation       struct {
			Shift *bool `json:"shift"`
		} `json:"presentation"`
	} `json:"metadata"`
	ReadingOrder []*model.Page `json:"readingOrder"`
	Series       *model.Series `json:"series"`
}

// Manifest is a parsed publication together with its context
type Manifest struct {
	Publication *model.Publication
	Series      *model.Series
	// BaseURL is the location relative hrefs resolve against
	BaseURL string
	// TopToBottom is set when the publication asks for vertical scrolling
	TopToBottom bool
}

// ManifestParserService reads publication manifests
type ManifestParserService struct {
	client  *http.Client
	timeout time.Duration
}

// NewManifestParserService creates a new manifest parser service
func NewManifestParserService() *ManifestParserService {
	return &ManifestParserService{
		client:  http.DefaultClient,
		timeout: DefaultManifestTimeout,
	}
}

// SetTimeout sets the timeout for remote manifests
func (m *ManifestParserService) SetTimeout(timeout time.Duration) {
	m.timeout = timeout
}

// ParseManifest loads a manifest from a file path or an http(s) URL
func (m *ManifestParserService) ParseManifest(ctx context.Context, location string) (*Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var (
		data []byte
		base string
		err  error
	)
	if isRemote(location) {
		data, err = m.fetch(ctx, location)
		base = baseOf(location)
	} else {
		data, err = os.ReadFile(location)
		base = filepath.Dir(location) + string(filepath.Separator)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", location, err)
	}

	parsed, err := Parse(data)
	if err != nil {
		return nil, err
	}
	parsed.BaseURL = base
	return parsed, nil
}

// Parse decodes manifest JSON
func Parse(data []byte) (*Manifest, error) {
	var doc manifest
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(doc.ReadingOrder) == 0 {
		return nil, ErrEmptySpine
	}

	shift := true
	if doc.Metadata.Presentation.Shift != nil {
		shift = *doc.Metadata.Presentation.Shift
	}

	pub := &model.Publication{
		ID:    doc.Metadata.Identifier,
		Title: doc.Metadata.Title,
		RTL:   doc.Metadata.ReadingProgression == ProgressionRTL,
		Shift: shift,
		Spine: doc.ReadingOrder,
	}
	if doc.Series != nil {
		pub.Series = doc.Series.ID
		if doc.Series.Current == "" {
			doc.Series.Current = pub.ID
		}
	}

	return &Manifest{
		Publication: pub,
		Series:      doc.Series,
		TopToBottom: doc.Metadata.ReadingProgression == ProgressionTTB,
	}, nil
}

func (m *ManifestParserService) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/webpub+json,application/json;q=0.9")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxManifestBytes))
}

// Resolve returns the location of a document referenced by the manifest
func (m *Manifest) Resolve(href string) string {
	if href == "" || isRemote(href) || filepath.IsAbs(href) {
		return href
	}
	if isRemote(m.BaseURL) {
		base, err := url.Parse(m.BaseURL)
		if err != nil {
			return href
		}
		ref, err := url.Parse(href)
		if err != nil {
			return href
		}
		return base.ResolveReference(ref).String()
	}
	return filepath.Join(m.BaseURL, filepath.FromSlash(href))
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// baseOf returns the directory URL of a remote manifest
func baseOf(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	u.RawQuery = ""
	u.Fragment = ""
	if i := strings.LastIndex(u.Path, "/"); i >= 0 {
		u.Path = u.Path[:i+1]
	}
	return u.String()
}
