package domain

// MediaKind distinguishes the two playable media types.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Media describes the asset behind a story. DurationSeconds is the
// declared default; for video it is provisional until the media
// element reports the authoritative duration after load.
type Media struct {
	Kind            MediaKind
	URL             string
	ThumbnailURL    string
	DurationSeconds float64
}

// ProductTag pins a product reference onto the story at a normalized
// position, both axes in [0,100].
type ProductTag struct {
	ProductID string
	X         float64
	Y         float64
}

type Story struct {
	ID          string
	Media       Media
	Caption     string
	ProductTags []ProductTag
	Viewed      bool
}

// User is the owner reference carried by a story group.
type User struct {
	ID        string
	Username  string
	AvatarURL string
}

// StoryGroup is one user's active stories, navigated as a unit.
// Immutable once hydrated for the duration of a viewing session.
type StoryGroup struct {
	ID      string
	Owner   User
	Stories []Story
}

// HasUnviewed reports whether any story in the group is still unseen.
func (g StoryGroup) HasUnviewed() bool {
	for _, s := range g.Stories {
		if !s.Viewed {
			return true
		}
	}
	return false
}
