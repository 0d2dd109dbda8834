package mediaplayer

import (
	"context"

	"github.com/orgball2608/story-viewer/internal/domain"
)

// EventKind enumerates the signals a media element reports back.
type EventKind string

const (
	// EventReady fires once the asset is decoded and renderable. For
	// video, DurationSeconds carries the element's authoritative
	// duration when it is known at ready time (0 when it is not).
	EventReady EventKind = "ready"
	// EventDuration fires when a video element reports its duration
	// after it was unknown at ready time.
	EventDuration EventKind = "duration"
	// EventEnded fires when native playback reaches the end of the
	// media. Only video elements produce it.
	EventEnded EventKind = "ended"
	// EventFailed fires when the asset cannot be loaded at all.
	EventFailed EventKind = "failed"
)

// Event is one signal from the media element. Generation ties it to
// the Load call that produced it so stale events from a superseded
// story can be discarded.
type Event struct {
	Kind            EventKind
	Generation      string
	DurationSeconds float64
	Err             error
}

//go:generate go run go.uber.org/mock/mockgen -source=mediaplayer.go -destination=mocks/mock.go

// Player adapts a native media element (video decode, image display)
// behind a uniform load/pause/resume/stop surface. Load never blocks
// and never fails directly; outcomes arrive on Events.
type Player interface {
	Load(ctx context.Context, asset domain.ResolvedAsset, declaredSeconds float64, generation string)
	Pause()
	Resume()
	Stop()
	Events() <-chan Event
}
