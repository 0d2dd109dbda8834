package navigationimpl

import (
	"context"
	"sync"
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/navigation"
	"github.com/orgball2608/story-viewer/internal/prefetch"
	"github.com/orgball2608/story-viewer/internal/repositories/viewed"
	"github.com/orgball2608/story-viewer/internal/scheduler"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Timeline   *timeline.Timeline
	Scheduler  scheduler.Client
	ViewedRepo viewed.Repository
	Prefetch   prefetch.Client
	Config     *config.Config
	Logger     logger.Logger
}

type NavigationImpl struct {
	Timeline   *timeline.Timeline
	Scheduler  scheduler.Client
	ViewedRepo viewed.Repository
	Prefetch   prefetch.Client
	Logger     logger.Logger

	prefetchCount int

	mu       sync.Mutex
	position domain.Position
	closed   bool
}

func New(opts Opts) *NavigationImpl {
	n := &NavigationImpl{
		Timeline:      opts.Timeline,
		Scheduler:     opts.Scheduler,
		ViewedRepo:    opts.ViewedRepo,
		Prefetch:      opts.Prefetch,
		Logger:        opts.Logger,
		prefetchCount: opts.Config.Prefetch.Count,
		position:      domain.Closed,
	}
	// The scheduler reports an exhausted time budget the same way a
	// tap does: through a single advance path.
	opts.Scheduler.OnAdvance(func() {
		n.Apply(domain.Advance())
	})
	return n
}

var _ navigation.Client = (*NavigationImpl)(nil)

func (n *NavigationImpl) Open(pos domain.Position) {
	if !n.Timeline.Valid(pos) {
		n.Logger.Warn("Open ignored for out-of-bounds position", "group", pos.Group, "story", pos.Story)
		return
	}
	n.startAt(pos)
}

func (n *NavigationImpl) Apply(cmd domain.Command) {
	if n.Closed() {
		return
	}

	switch cmd.Kind {
	case domain.CommandAdvance:
		n.mu.Lock()
		pos := n.position
		n.mu.Unlock()

		// Nothing is showing before Open; the sentinel position must
		// not be mistaken for the end of the timeline.
		if pos.IsClosed() {
			return
		}

		next, ok := n.Timeline.Next(pos)
		if !ok {
			// Fell off the end of the last group.
			n.Close()
			return
		}
		n.startAt(next)

	case domain.CommandRetreat:
		n.mu.Lock()
		pos := n.position
		n.mu.Unlock()

		if pos.IsClosed() {
			return
		}

		prev, ok := n.Timeline.Prev(pos)
		if !ok {
			// Already at the very first story; stay put.
			return
		}
		n.startAt(prev)

	case domain.CommandJump:
		if !n.Timeline.Valid(cmd.Target) {
			n.Logger.Debug("Jump rejected, out of bounds",
				"group", cmd.Target.Group, "story", cmd.Target.Story)
			return
		}
		n.startAt(cmd.Target)

	case domain.CommandPause:
		n.Scheduler.Pause()

	case domain.CommandResume:
		n.Scheduler.Resume()

	case domain.CommandClose:
		n.Close()
	}
}

func (n *NavigationImpl) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.position = domain.Closed
	n.mu.Unlock()

	n.Scheduler.Close()
}

func (n *NavigationImpl) CurrentPosition() domain.Position {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

func (n *NavigationImpl) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

// startAt is the single cancel-then-start sequence every navigation
// path funnels through.
func (n *NavigationImpl) startAt(pos domain.Position) {
	n.Scheduler.Cancel()

	n.mu.Lock()
	n.position = pos
	n.mu.Unlock()

	n.Scheduler.Start(pos)
	n.markViewed(pos)
	n.Prefetch.WarmUpcoming(context.Background(), n.Timeline, pos, n.prefetchCount)
}

func (n *NavigationImpl) markViewed(pos domain.Position) {
	story, ok := n.Timeline.Story(pos)
	if !ok {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := n.ViewedRepo.MarkViewed(ctx, story.ID, time.Now()); err != nil {
			n.Logger.Warn("Failed to record viewed story", "story_id", story.ID, "error", err)
		}
	}()
}
