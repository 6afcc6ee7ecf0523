package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/QuestForge_Go/internal/config"
	"github.com/osse101/QuestForge_Go/internal/content"
)

// Content is the configured content provider. Cache is nil when the built-in
// tables are served, since there is nothing to reload.
type Content struct {
	Provider content.Provider
	Cache    *content.CachedProvider
}

// InitializeContent selects the content source: CONTENT_URL first, then
// CONTENT_FILE, then the built-in defaults. Remote and file sources are cached
// for CONTENT_CACHE_TTL and fall back to the last good tables on failure.
func InitializeContent(ctx context.Context, cfg *config.Config) *Content {
	var source content.Source
	var origin string
	switch {
	case cfg.ContentURL != "":
		source = content.NewHTTPSource(cfg.ContentURL, ContentFetchTimeout)
		origin = cfg.ContentURL
	case cfg.ContentFile != "":
		source = &content.FileSource{Path: cfg.ContentFile}
		origin = cfg.ContentFile
	}

	c := &Content{}
	if source == nil {
		c.Provider = content.NewStaticProvider(content.Defaults())
		origin = "defaults"
	} else {
		c.Cache = content.NewCachedProvider(source, cfg.ContentCacheTTL)
		c.Provider = c.Cache
	}

	tables := c.Provider.Tables(ctx)
	slog.Info(LogMsgContentLoaded,
		"source", origin,
		"missions", len(tables.Missions),
		"dungeons", len(tables.Dungeons),
		"achievements", len(tables.Achievements))
	return c
}
