package resolverimpl

import (
	"net/url"
	"path"
	"strings"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	apperrors "github.com/orgball2608/story-viewer/pkg/errors"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Tables mediaresolver.Tables
	Logger logger.Logger
}

type ResolverImpl struct {
	Tables mediaresolver.Tables
	Logger logger.Logger
}

func New(opts Opts) *ResolverImpl {
	return &ResolverImpl{
		Tables: opts.Tables,
		Logger: opts.Logger,
	}
}

var _ mediaresolver.Client = (*ResolverImpl)(nil)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".m4v":  {},
	".mov":  {},
	".webm": {},
	".avi":  {},
	".mkv":  {},
}

// Resolve maps a raw URL to a renderable asset. It never fails: empty,
// malformed, and known-broken inputs all degrade to a content-matched
// replacement or the category's static fallback.
func (r *ResolverImpl) Resolve(rawURL string, category mediaresolver.Category) domain.ResolvedAsset {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return r.fallback(category)
	}

	for _, pattern := range r.Tables.BrokenPatterns {
		if !strings.Contains(trimmed, pattern) {
			continue
		}
		if replacement, ok := r.keywordMatch(trimmed); ok {
			return replacement
		}
		return r.fallback(category)
	}

	if !isRenderableURL(trimmed) {
		return r.fallback(category)
	}

	return domain.ResolvedAsset{
		Kind: r.Classify(trimmed),
		URL:  trimmed,
	}
}

// Classify reports whether a URL points at video or image content.
// Default is image.
func (r *ResolverImpl) Classify(rawURL string) domain.MediaKind {
	lowered := strings.ToLower(rawURL)

	ext := path.Ext(lowered)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if _, ok := videoExtensions[ext]; ok {
		return domain.MediaKindVideo
	}

	if strings.Contains(lowered, "video") || strings.Contains(lowered, ".mp4") {
		return domain.MediaKindVideo
	}

	return domain.MediaKindImage
}

func (r *ResolverImpl) keywordMatch(rawURL string) (domain.ResolvedAsset, bool) {
	lowered := strings.ToLower(rawURL)
	for _, ka := range r.Tables.KeywordAssets {
		if strings.Contains(lowered, ka.Keyword) {
			return ka.Asset, true
		}
	}
	return domain.ResolvedAsset{}, false
}

func (r *ResolverImpl) fallback(category mediaresolver.Category) domain.ResolvedAsset {
	asset, ok := r.Tables.Fallbacks[category]
	if !ok {
		// Should be unreachable: every category ships a static
		// fallback. Indicates a configuration gap, so it is the one
		// failure worth logging.
		r.Logger.Error("No fallback configured for category",
			"category", string(category), "error", apperrors.ErrAssetResolution)
		return domain.ResolvedAsset{
			Kind: domain.MediaKindImage,
			URL:  "/assets/fallbacks/placeholder.jpg",
		}
	}
	return asset
}

// isRenderableURL accepts well-formed absolute http(s) URLs and the
// relative-path prefixes the frontend serves directly.
func isRenderableURL(rawURL string) bool {
	for _, prefix := range []string{"/", "./", "../"} {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
