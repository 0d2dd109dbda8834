package gesture

import (
	"math"
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
)

// Recognizer turns a Begin/Move/Poll/End pointer sequence into
// commands. A drag is speculative until release: below the commit
// thresholds it produces no navigation, only a snap-back.
type Recognizer struct {
	cfg      Config
	viewport Size

	pressed    bool
	dragging   bool
	holdPaused bool
	start      PointerSample
	last       PointerSample
}

func NewRecognizer(cfg Config, viewport Size) *Recognizer {
	return &Recognizer{cfg: cfg, viewport: viewport}
}

// SetViewport updates the viewport the zones and thresholds are
// computed against (window resize).
func (r *Recognizer) SetViewport(viewport Size) {
	r.viewport = viewport
}

// Begin starts tracking a press. Any gesture already in flight is
// discarded.
func (r *Recognizer) Begin(s PointerSample) []domain.Command {
	r.pressed = true
	r.dragging = false
	r.holdPaused = false
	r.start = s
	r.last = s
	return nil
}

// Move feeds pointer motion. Crossing the movement slop turns the
// press into a drag.
func (r *Recognizer) Move(s PointerSample) []domain.Command {
	if !r.pressed {
		return nil
	}
	r.last = s
	if !r.dragging && math.Abs(s.X-r.start.X) > r.cfg.TapMaxMovement {
		r.dragging = true
	}
	return nil
}

// Poll is called on every presentation tick; it emits pause once a
// press has been held past the threshold without becoming a drag.
func (r *Recognizer) Poll(now time.Time) []domain.Command {
	if !r.pressed || r.dragging || r.holdPaused {
		return nil
	}
	if now.Sub(r.start.At) < r.cfg.HoldThreshold {
		return nil
	}
	r.holdPaused = true
	return []domain.Command{domain.Pause()}
}

// End releases the press and classifies the whole gesture.
func (r *Recognizer) End(s PointerSample) []domain.Command {
	if !r.pressed {
		return nil
	}
	r.pressed = false
	r.last = s

	var commands []domain.Command
	if r.holdPaused {
		// Resume only because the pause was gesture-induced; a manual
		// pause stays put.
		commands = append(commands, domain.Resume())
		r.holdPaused = false
	}

	if r.dragging {
		r.dragging = false
		if cmd, ok := r.classifyDrag(s); ok {
			commands = append(commands, cmd)
		}
		// Below threshold: snap back, no navigation.
		return commands
	}

	if s.At.Sub(r.start.At) < r.cfg.HoldThreshold {
		commands = append(commands, r.classifyTap())
	}
	return commands
}

// Offset is the live horizontal drag displacement, for the
// presentation layer's snap-back animation.
func (r *Recognizer) Offset() float64 {
	if !r.pressed || !r.dragging {
		return 0
	}
	return r.last.X - r.start.X
}

func (r *Recognizer) Dragging() bool {
	return r.pressed && r.dragging
}

func (r *Recognizer) classifyDrag(s PointerSample) (domain.Command, bool) {
	dx := s.X - r.start.X
	distance := math.Abs(dx)

	committed := false
	if r.viewport.Width > 0 && distance >= r.cfg.DragCommitFraction*r.viewport.Width {
		committed = true
	}
	if elapsed := s.At.Sub(r.start.At); elapsed > 0 {
		velocity := distance / float64(elapsed.Milliseconds())
		if elapsed.Milliseconds() > 0 && velocity >= r.cfg.DragCommitVelocity {
			committed = true
		}
	}
	if !committed {
		return domain.Command{}, false
	}

	// Dragging left pulls the next story in; right pulls the previous.
	if dx < 0 {
		return domain.Advance(), true
	}
	return domain.Retreat(), true
}

func (r *Recognizer) classifyTap() domain.Command {
	if r.viewport.Width > 0 && r.start.X < r.viewport.Width/3 {
		return domain.Retreat()
	}
	return domain.Advance()
}
