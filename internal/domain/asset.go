package domain

// ResolvedAsset is a safe, renderable asset reference produced by the
// media resolver. It is recomputed on demand and never persisted;
// fallback decisions are cheap pure functions of the URL string.
type ResolvedAsset struct {
	Kind         MediaKind
	URL          string
	ThumbnailURL string
}
