package scheduler

import (
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
)

// State is the scheduler's lifecycle for the active story.
//
//	Loading → Playing ⇄ Paused → Transitioning → (next Start)
//	any state → Closed
type State string

const (
	// StateIdle is the gap between Cancel and the next Start.
	StateIdle State = "idle"
	// StateLoading covers the bounded wait for the asset's ready signal.
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	// StateTransitioning is the brief, non-interruptible state while
	// the active story is being swapped.
	StateTransitioning State = "transitioning"
	StateClosed        State = "closed"
)

// Options are the timing knobs of the playback clock.
type Options struct {
	// VideoGraceMs bounds how late a video element may report its
	// authoritative duration; later reports are ignored so the
	// progress bar never re-stretches mid-story.
	VideoGraceMs float64
	// LoadTimeoutMs bounds the Loading state; on expiry the engine
	// forces an advance rather than stalling on a dead asset.
	LoadTimeoutMs float64
	// ImageDurationSeconds is the declared-duration default applied
	// when a story carries none.
	ImageDurationSeconds float64
}

func DefaultOptions() Options {
	return Options{
		VideoGraceMs:         2500,
		LoadTimeoutMs:        8000,
		ImageDurationSeconds: 5,
	}
}

// Snapshot is the scheduler's externally visible state, recomputed on
// demand. Nothing outside the scheduler mutates playback state.
type Snapshot struct {
	State               State
	Position            domain.Position
	Story               domain.Story
	Asset               domain.ResolvedAsset
	ElapsedMs           float64
	EffectiveDurationMs float64
	Paused              bool
}

// ElapsedFraction is elapsed over effective duration, clamped to [0,1].
func (s Snapshot) ElapsedFraction() float64 {
	if s.EffectiveDurationMs <= 0 {
		return 0
	}
	f := s.ElapsedMs / s.EffectiveDurationMs
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

//go:generate go run go.uber.org/mock/mockgen -source=scheduler.go -destination=mocks/mock.go

// Client owns the "currently active story" concept and its clock. All
// playback state is mutated only through these methods.
type Client interface {
	// Start activates the story at pos: cancels whatever was active,
	// resolves the asset and enters Loading until the media signals
	// ready.
	Start(pos domain.Position)
	// Tick is the single clock-driving function, invoked at a fixed
	// cadence by the presentation loop. No-op while paused or closed.
	Tick(deltaMs float64)
	// HandleMediaEvent feeds a media element signal back into the
	// state machine. Events from superseded generations are ignored.
	HandleMediaEvent(ev mediaplayer.Event)
	Pause()
	Resume()
	// Cancel tears down the active story's timer registration and
	// invalidates in-flight media callbacks. Idempotent; guaranteed
	// to complete before the next Start begins.
	Cancel()
	// Close cancels and enters the terminal Closed state.
	Close()
	Snapshot() Snapshot
	// OnAdvance registers the callback fired when the active story's
	// time budget is exhausted (or its media ends or fails).
	OnAdvance(fn func())
}
