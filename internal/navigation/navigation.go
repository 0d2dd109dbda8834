package navigation

import (
	"github.com/orgball2608/story-viewer/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=navigation.go -destination=mocks/mock.go -package=mocks

// Client applies commands to the timeline and scheduler, handling
// cross-group transitions. Falling off the end of the timeline closes
// the viewer; retreating at the very first story is a no-op.
type Client interface {
	// Open starts playback at pos (the initial jump when the viewer
	// opens).
	Open(pos domain.Position)
	Apply(cmd domain.Command)
	Close()
	CurrentPosition() domain.Position
	Closed() bool
}
