package headless

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

// readyLatency stands in for decode/buffering time. Kept short but
// nonzero so the Loading state is observable in the terminal build.
const readyLatency = 30 * time.Millisecond

type Opts struct {
	fx.In

	Logger logger.Logger
	Clock  clockwork.Clock
}

// Player is the terminal build's media element: it cannot decode
// pixels, so it synthesizes the element's signals. Images and videos
// become ready after a short latency; video duration is reported as
// the declared value (there is no real decoder to disagree with it).
// End-of-playback is left to the scheduler's clock.
type Player struct {
	logger logger.Logger
	clock  clockwork.Clock
	events chan mediaplayer.Event
}

func New(opts Opts) *Player {
	return &Player{
		logger: opts.Logger,
		clock:  opts.Clock,
		events: make(chan mediaplayer.Event, 16),
	}
}

var _ mediaplayer.Player = (*Player)(nil)

func (p *Player) Load(ctx context.Context, asset domain.ResolvedAsset, declaredSeconds float64, generation string) {
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(readyLatency):
		}

		ev := mediaplayer.Event{
			Kind:       mediaplayer.EventReady,
			Generation: generation,
		}
		if asset.Kind == domain.MediaKindVideo {
			ev.DurationSeconds = declaredSeconds
		}
		p.emit(ev)
	}()
}

func (p *Player) Pause()  {}
func (p *Player) Resume() {}

func (p *Player) Stop() {}

func (p *Player) Events() <-chan mediaplayer.Event {
	return p.events
}

func (p *Player) emit(ev mediaplayer.Event) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("Dropping media event, channel full", "kind", string(ev.Kind))
	}
}
