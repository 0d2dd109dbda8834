package schedulerimpl

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	"github.com/orgball2608/story-viewer/internal/scheduler"
	"github.com/orgball2608/story-viewer/internal/timeline"
	apperrors "github.com/orgball2608/story-viewer/pkg/errors"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Timeline *timeline.Timeline
	Resolver mediaresolver.Client
	Player   mediaplayer.Player
	Options  scheduler.Options
	Logger   logger.Logger
}

type SchedulerImpl struct {
	Timeline *timeline.Timeline
	Resolver mediaresolver.Client
	Player   mediaplayer.Player
	Options  scheduler.Options
	Logger   logger.Logger

	mu sync.Mutex

	state    scheduler.State
	position domain.Position
	story    domain.Story
	asset    domain.ResolvedAsset
	paused   bool

	elapsedMs   float64
	loadingMs   float64
	effectiveMs float64
	// authoritative flips once a video element has reported its real
	// duration; after that the declared value is never consulted again.
	authoritative bool

	// generation ties in-flight media callbacks to the Start that
	// issued them. Cancel rotates it, so stale callbacks resolve into
	// nothing instead of double-advancing.
	generation string
	loadCancel context.CancelFunc

	onAdvance func()
}

func New(opts Opts) *SchedulerImpl {
	return &SchedulerImpl{
		Timeline: opts.Timeline,
		Resolver: opts.Resolver,
		Player:   opts.Player,
		Options:  opts.Options,
		Logger:   opts.Logger,
		state:    scheduler.StateIdle,
		position: domain.Closed,
	}
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

func (s *SchedulerImpl) OnAdvance(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAdvance = fn
}

func (s *SchedulerImpl) Start(pos domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == scheduler.StateClosed {
		s.Logger.Warn("Start ignored on closed scheduler", "group", pos.Group, "story", pos.Story)
		return
	}

	s.cancelLocked()

	story, ok := s.Timeline.Story(pos)
	if !ok {
		s.Logger.Warn("Start ignored for out-of-bounds position", "group", pos.Group, "story", pos.Story)
		return
	}

	s.position = pos
	s.story = story
	s.asset = s.Resolver.Resolve(story.Media.URL, mediaresolver.CategoryStory)
	s.paused = false
	s.elapsedMs = 0
	s.loadingMs = 0
	s.authoritative = false
	s.effectiveMs = s.declaredMs(story)
	s.generation = uuid.NewString()
	s.state = scheduler.StateLoading

	ctx, cancel := context.WithCancel(context.Background())
	s.loadCancel = cancel
	s.Player.Load(ctx, s.asset, story.Media.DurationSeconds, s.generation)

	s.Logger.Debug("Story activated",
		"group", pos.Group,
		"story", pos.Story,
		"kind", string(s.asset.Kind),
		"declared_ms", s.effectiveMs,
	)
}

// Tick advances the playback clock by deltaMs. It is the only place
// elapsed time moves, which keeps it monotonic while not paused.
func (s *SchedulerImpl) Tick(deltaMs float64) {
	s.mu.Lock()

	if deltaMs < 0 || s.paused {
		s.mu.Unlock()
		return
	}

	switch s.state {
	case scheduler.StateLoading:
		s.loadingMs += deltaMs
		if s.loadingMs >= s.Options.LoadTimeoutMs {
			s.Logger.Warn("Media load timed out, forcing advance",
				"group", s.position.Group, "story", s.position.Story,
				"url", s.asset.URL, "error", apperrors.ErrMediaLoadTimeout)
			s.advanceLocked()
			return
		}
	case scheduler.StatePlaying:
		s.elapsedMs += deltaMs
		if s.elapsedMs >= s.effectiveMs {
			s.advanceLocked()
			return
		}
	}

	s.mu.Unlock()
}

func (s *SchedulerImpl) HandleMediaEvent(ev mediaplayer.Event) {
	s.mu.Lock()

	if ev.Generation != s.generation || s.state == scheduler.StateClosed {
		s.Logger.Debug("Ignoring stale media event", "kind", string(ev.Kind))
		s.mu.Unlock()
		return
	}

	switch ev.Kind {
	case mediaplayer.EventReady:
		if s.state != scheduler.StateLoading {
			s.mu.Unlock()
			return
		}
		if s.asset.Kind == domain.MediaKindVideo && ev.DurationSeconds > 0 {
			s.effectiveMs = ev.DurationSeconds * 1000
			s.authoritative = true
		}
		s.state = scheduler.StatePlaying
		s.elapsedMs = 0
		if s.paused && s.asset.Kind == domain.MediaKindVideo {
			s.Player.Pause()
		}

	case mediaplayer.EventDuration:
		if s.asset.Kind != domain.MediaKindVideo || s.authoritative || ev.DurationSeconds <= 0 {
			s.mu.Unlock()
			return
		}
		if s.elapsedMs > s.Options.VideoGraceMs {
			// Too late: the progress bar is already committed to the
			// declared length.
			s.Logger.Debug("Ignoring late duration report",
				"elapsed_ms", s.elapsedMs, "reported_s", ev.DurationSeconds)
			s.mu.Unlock()
			return
		}
		s.effectiveMs = ev.DurationSeconds * 1000
		s.authoritative = true

	case mediaplayer.EventEnded:
		if s.state == scheduler.StatePlaying {
			s.advanceLocked()
			return
		}

	case mediaplayer.EventFailed:
		s.Logger.Warn("Media failed to load, substituting fallback and advancing",
			"url", s.asset.URL, "error", ev.Err)
		s.asset = s.Resolver.Resolve("", mediaresolver.CategoryStory)
		s.advanceLocked()
		return
	}

	s.mu.Unlock()
}

func (s *SchedulerImpl) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == scheduler.StateClosed || s.paused {
		return
	}
	s.paused = true
	if s.asset.Kind == domain.MediaKindVideo {
		s.Player.Pause()
	}
}

func (s *SchedulerImpl) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == scheduler.StateClosed || !s.paused {
		return
	}
	s.paused = false
	if s.asset.Kind == domain.MediaKindVideo {
		s.Player.Resume()
	}
}

func (s *SchedulerImpl) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *SchedulerImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.state = scheduler.StateClosed
	s.position = domain.Closed
}

func (s *SchedulerImpl) Snapshot() scheduler.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state == scheduler.StatePlaying && s.paused {
		state = scheduler.StatePaused
	}

	return scheduler.Snapshot{
		State:               state,
		Position:            s.position,
		Story:               s.story,
		Asset:               s.asset,
		ElapsedMs:           s.elapsedMs,
		EffectiveDurationMs: s.effectiveMs,
		Paused:              s.paused,
	}
}

// cancelLocked tears down the active story: it rotates the generation
// so in-flight callbacks die, cancels the pending load and stops the
// media element. Safe to call repeatedly.
func (s *SchedulerImpl) cancelLocked() {
	s.generation = ""
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}
	s.Player.Stop()
	if s.state != scheduler.StateClosed {
		s.state = scheduler.StateIdle
	}
}

// advanceLocked hands the position change to the navigation layer. It
// must be entered holding the lock and leaves it released: the
// callback re-enters the scheduler through Cancel/Start/Close.
func (s *SchedulerImpl) advanceLocked() {
	s.state = scheduler.StateTransitioning
	s.generation = ""
	fn := s.onAdvance
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (s *SchedulerImpl) declaredMs(story domain.Story) float64 {
	if story.Media.DurationSeconds > 0 {
		return story.Media.DurationSeconds * 1000
	}
	return s.Options.ImageDurationSeconds * 1000
}
