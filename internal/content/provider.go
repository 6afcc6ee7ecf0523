package content

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/validation"
)

//go:embed schema/content.schema.json
var schemaFS embed.FS

var schemas = validation.NewSchemaValidator(schemaFS)

// Provider hands out the current content tables. It never fails: when the
// remote source is unreachable or invalid it falls back to the last good
// tables, then to Defaults.
type Provider interface {
	Tables(ctx context.Context) *Tables
}

// Source fetches raw tables from somewhere
type Source interface {
	Fetch(ctx context.Context) (*Tables, error)
}

// HTTPSource loads tables from a JSON endpoint
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates a source with a bounded request timeout
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch performs one GET and decodes the body
func (s *HTTPSource) Fetch(ctx context.Context) (*Tables, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content service returned %d", resp.StatusCode)
	}
	return decode(io.LimitReader(resp.Body, MaxPayloadBytes))
}

// FileSource loads tables from a JSON file on disk
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file
func (s *FileSource) Fetch(_ context.Context) (*Tables, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	defer f.Close()
	return decode(f)
}

// decode checks the document shape against the embedded schema before
// binding it, so a malformed remote file is reported by path
func decode(r io.Reader) (*Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	if err := schemas.ValidateBytes(data, SchemaName); err != nil {
		return nil, err
	}
	var t Tables
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	return &t, nil
}

type staticProvider struct {
	tables *Tables
}

// NewStaticProvider always returns t
func NewStaticProvider(t *Tables) Provider {
	return &staticProvider{tables: t}
}

func (p *staticProvider) Tables(_ context.Context) *Tables {
	return p.tables
}

// CachedProvider fronts a Source with an expiring cache
type CachedProvider struct {
	source   Source
	cache    *expirable.LRU[string, *Tables]
	defaults *Tables

	mu       sync.Mutex
	lastGood *Tables
}

// NewCachedProvider caches fetched tables for ttl. A nil source serves Defaults.
func NewCachedProvider(source Source, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		source:   source,
		cache:    expirable.NewLRU[string, *Tables](1, nil, ttl),
		defaults: Defaults(),
	}
}

// Tables returns cached tables or refreshes them from the source
func (p *CachedProvider) Tables(ctx context.Context) *Tables {
	if t, ok := p.cache.Get(cacheKey); ok {
		return t
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.cache.Get(cacheKey); ok {
		return t
	}
	if p.source == nil {
		return p.defaults
	}

	t, err := p.source.Fetch(ctx)
	if err == nil {
		err = Validate(t)
	}
	if err != nil {
		fallback := p.defaults
		if p.lastGood != nil {
			fallback = p.lastGood
		}
		logger.FromContext(ctx).Warn(LogMsgContentFallback, "error", err, "version", fallback.Version)
		// Cache the fallback too so a dead source is not hammered on every call
		p.cache.Add(cacheKey, fallback)
		return fallback
	}

	logger.FromContext(ctx).Info(LogMsgContentRefreshed, "version", t.Version)
	p.lastGood = t
	p.cache.Add(cacheKey, t)
	return t
}

// Invalidate drops the cached tables so the next call refetches
func (p *CachedProvider) Invalidate() {
	p.cache.Purge()
}
