package resolverimpl

import (
	"testing"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func newResolver(t *testing.T) *ResolverImpl {
	t.Helper()
	return New(Opts{
		Tables: mediaresolver.DefaultTables("/assets/fallbacks"),
		Logger: nopLogger{},
	})
}

func TestResolveEmptyReturnsCategoryFallback(t *testing.T) {
	r := newResolver(t)

	for _, category := range []mediaresolver.Category{
		mediaresolver.CategoryUser,
		mediaresolver.CategoryProduct,
		mediaresolver.CategoryPost,
		mediaresolver.CategoryStory,
	} {
		t.Run(string(category), func(t *testing.T) {
			for _, raw := range []string{"", "   ", "\t\n"} {
				asset := r.Resolve(raw, category)
				require.NotEmpty(t, asset.URL)
				assert.Equal(t, r.Tables.Fallbacks[category], asset)
			}
		})
	}
}

func TestResolveBrokenUploadPathMatchesKeyword(t *testing.T) {
	r := newResolver(t)

	asset := r.Resolve("/uploads/stories/images/summer-collection-01.jpg", mediaresolver.CategoryStory)

	assert.Equal(t, "/assets/fallbacks/stories/summer-collection.jpg", asset.URL)
	assert.Equal(t, domain.MediaKindImage, asset.Kind)
}

func TestResolveBrokenPatternWithoutKeywordUsesFallback(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"dead upload path", "/uploads/misc/zz-93132.jpg"},
		{"dead video host", "https://assets.mixkit.co/videos/preview/mixkit-1190.mp4"},
		{"localhost origin", "http://localhost:3000/media/clip.mp4"},
		{"loopback origin", "http://127.0.0.1/img.png"},
		{"file origin", "file:///home/u/pic.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := r.Resolve(tt.raw, mediaresolver.CategoryPost)
			assert.Equal(t, r.Tables.Fallbacks[mediaresolver.CategoryPost], asset)
		})
	}
}

func TestResolveWellFormedURLPassesThrough(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		raw  string
		kind domain.MediaKind
	}{
		{"https://cdn.shoply.social/stories/abc.jpg", domain.MediaKindImage},
		{"https://cdn.shoply.social/stories/abc.mp4", domain.MediaKindVideo},
		{"/static/stories/look.jpg", domain.MediaKindImage},
		{"./relative/clip.webm", domain.MediaKindVideo},
		{"../up/one.png", domain.MediaKindImage},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			asset := r.Resolve(tt.raw, mediaresolver.CategoryStory)
			assert.Equal(t, tt.raw, asset.URL)
			assert.Equal(t, tt.kind, asset.Kind)
		})
	}
}

func TestResolveMalformedURLUsesFallback(t *testing.T) {
	r := newResolver(t)

	for _, raw := range []string{
		"not a url at all",
		"ftp://example.com/clip.mp4",
		"https://",
		"javascript:alert(1)",
	} {
		t.Run(raw, func(t *testing.T) {
			asset := r.Resolve(raw, mediaresolver.CategoryUser)
			assert.Equal(t, r.Tables.Fallbacks[mediaresolver.CategoryUser], asset)
		})
	}
}

// Fallback totality: any input, any category, always a non-empty asset.
func TestResolveTotality(t *testing.T) {
	r := newResolver(t)

	inputs := []string{
		"", " ", "\x00garbage", "http://localhost/x", "/uploads/a/b.png",
		"https://ok.example/media.mp4", "::::", "1234567890",
	}

	for _, category := range []mediaresolver.Category{
		mediaresolver.CategoryUser,
		mediaresolver.CategoryProduct,
		mediaresolver.CategoryPost,
		mediaresolver.CategoryStory,
		mediaresolver.Category("unknown"),
	} {
		for _, raw := range inputs {
			asset := r.Resolve(raw, category)
			require.NotEmpty(t, asset.URL, "resolve(%q, %q)", raw, category)
			require.NotEmpty(t, asset.Kind)
		}
	}
}

func TestClassify(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		raw  string
		want domain.MediaKind
	}{
		{"https://cdn.example/a.mp4", domain.MediaKindVideo},
		{"https://cdn.example/a.MP4?sig=abc", domain.MediaKindVideo},
		{"https://cdn.example/a.webm", domain.MediaKindVideo},
		{"https://cdn.example/videos/a", domain.MediaKindVideo},
		{"https://cdn.example/a.jpg", domain.MediaKindImage},
		{"https://cdn.example/a.png", domain.MediaKindImage},
		{"", domain.MediaKindImage},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.raw))
		})
	}
}
