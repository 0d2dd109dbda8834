package mediaresolver

import (
	"github.com/orgball2608/story-viewer/internal/domain"
)

// Category selects which static fallback covers an unusable URL.
type Category string

const (
	CategoryUser    Category = "user"
	CategoryProduct Category = "product"
	CategoryPost    Category = "post"
	CategoryStory   Category = "story"
)

//go:generate go run go.uber.org/mock/mockgen -source=mediaresolver.go -destination=mocks/mock.go

// Client resolves raw URLs into safe, renderable asset references.
// Resolution is total: it never fails, it degrades to a fallback.
type Client interface {
	Resolve(rawURL string, category Category) domain.ResolvedAsset
	Classify(rawURL string) domain.MediaKind
}

// KeywordAsset maps a topical keyword found in a broken URL to a
// content-matched replacement.
type KeywordAsset struct {
	Keyword string
	Asset   domain.ResolvedAsset
}

// Tables is the injected static configuration the resolver works from.
// The surrounding application supplies the fallback paths; the resolver
// computes nothing here.
type Tables struct {
	// Fallbacks must cover every category. A missing entry is a
	// configuration gap, logged as an asset resolution failure.
	Fallbacks map[Category]domain.ResolvedAsset

	// BrokenPatterns are substrings of URLs known to be dead, tested
	// in order.
	BrokenPatterns []string

	// KeywordAssets are scanned in order against a broken URL before
	// giving up and using the category fallback.
	KeywordAssets []KeywordAsset
}

// DefaultTables returns the fallback configuration shipped with the
// application, rooted at fallbackDir.
func DefaultTables(fallbackDir string) Tables {
	image := func(path string) domain.ResolvedAsset {
		return domain.ResolvedAsset{Kind: domain.MediaKindImage, URL: fallbackDir + path}
	}

	return Tables{
		Fallbacks: map[Category]domain.ResolvedAsset{
			CategoryUser:    image("/users/avatar-placeholder.png"),
			CategoryProduct: image("/products/product-placeholder.jpg"),
			CategoryPost:    image("/posts/post-placeholder.jpg"),
			CategoryStory:   image("/stories/story-placeholder.jpg"),
		},
		BrokenPatterns: []string{
			"/uploads/",
			"assets.mixkit.co",
			"localhost",
			"127.0.0.1",
			"file://",
		},
		KeywordAssets: []KeywordAsset{
			{Keyword: "summer-collection", Asset: image("/stories/summer-collection.jpg")},
			{Keyword: "new-arrival", Asset: image("/stories/new-arrivals.jpg")},
			{Keyword: "sale", Asset: image("/stories/flash-sale.jpg")},
			{Keyword: "sneaker", Asset: image("/products/sneakers.jpg")},
			{Keyword: "watch", Asset: image("/products/watches.jpg")},
			{Keyword: "denim", Asset: image("/products/denim.jpg")},
			{Keyword: "avatar", Asset: image("/users/avatar-placeholder.png")},
		},
	}
}
