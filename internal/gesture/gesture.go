// Package gesture classifies raw pointer and keyboard input into the
// engine's command vocabulary. It holds in-progress gesture state only;
// it never touches timeline or playback state, so a synthetic pointer
// sequence fully determines the commands it emits.
package gesture

import (
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
)

// Key is the abstract keyboard vocabulary the recognizer understands.
// The presentation layer maps its native key events onto these.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyEscape
	KeySpace
)

// Size is the viewport in pixels (or cells); tap zones and drag commit
// distances are relative to it.
type Size struct {
	Width  float64
	Height float64
}

// PointerSample is one timestamped pointer observation.
type PointerSample struct {
	X  float64
	Y  float64
	At time.Time
}

type Config struct {
	// HoldThreshold is how long a press must last, without turning
	// into a drag, before it pauses playback.
	HoldThreshold time.Duration
	// TapMaxMovement is the movement slop (px) before a press stops
	// being a tap and becomes a speculative drag.
	TapMaxMovement float64
	// DragCommitFraction of the viewport width a drag must cover on
	// release to commit to navigation.
	DragCommitFraction float64
	// DragCommitVelocity (px/ms) commits a shorter but fast drag.
	DragCommitVelocity float64
}

func DefaultConfig() Config {
	return Config{
		HoldThreshold:      180 * time.Millisecond,
		TapMaxMovement:     10,
		DragCommitFraction: 0.5,
		DragCommitVelocity: 0.65,
	}
}

// TranslateKey maps a key press to a command. KeySpace toggles based
// on the caller's current pause state.
func TranslateKey(k Key, paused bool) (domain.Command, bool) {
	switch k {
	case KeyLeft:
		return domain.Retreat(), true
	case KeyRight:
		return domain.Advance(), true
	case KeyEscape:
		return domain.Close(), true
	case KeySpace:
		if paused {
			return domain.Resume(), true
		}
		return domain.Pause(), true
	}
	return domain.Command{}, false
}
