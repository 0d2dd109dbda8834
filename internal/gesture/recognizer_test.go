package gesture

import (
	"testing"
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func sample(x float64, offset time.Duration) PointerSample {
	return PointerSample{X: x, Y: 400, At: t0.Add(offset)}
}

func newRec() *Recognizer {
	return NewRecognizer(DefaultConfig(), Size{Width: 1000, Height: 800})
}

func kinds(commands []domain.Command) []domain.CommandKind {
	out := make([]domain.CommandKind, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.Kind)
	}
	return out
}

func TestTapZones(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want domain.CommandKind
	}{
		{"left third retreats", 100, domain.CommandRetreat},
		{"just inside left third", 332, domain.CommandRetreat},
		{"middle advances", 500, domain.CommandAdvance},
		{"right edge advances", 990, domain.CommandAdvance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRec()
			r.Begin(sample(tt.x, 0))
			commands := r.End(sample(tt.x, 80*time.Millisecond))
			require.Len(t, commands, 1)
			assert.Equal(t, tt.want, commands[0].Kind)
		})
	}
}

func TestHoldPausesThenReleaseResumes(t *testing.T) {
	r := newRec()
	r.Begin(sample(500, 0))

	// Before the threshold nothing happens.
	assert.Empty(t, r.Poll(t0.Add(100*time.Millisecond)))

	commands := r.Poll(t0.Add(200 * time.Millisecond))
	require.Equal(t, []domain.CommandKind{domain.CommandPause}, kinds(commands))

	// Pause fires once, not on every tick.
	assert.Empty(t, r.Poll(t0.Add(250*time.Millisecond)))

	commands = r.End(sample(500, 300*time.Millisecond))
	assert.Equal(t, []domain.CommandKind{domain.CommandResume}, kinds(commands),
		"a hold release resumes and must not navigate")
}

func TestDragReleasedBelowThresholdSnapsBack(t *testing.T) {
	r := newRec()
	r.Begin(sample(800, 0))
	r.Move(sample(600, 300*time.Millisecond))

	// Released at 40% of viewport width, slowly: no navigation.
	commands := r.End(sample(400, 900*time.Millisecond))
	assert.Empty(t, commands)
	assert.False(t, r.Dragging())
	assert.Equal(t, 0.0, r.Offset())
}

func TestDragPastDistanceThresholdCommits(t *testing.T) {
	r := newRec()
	r.Begin(sample(900, 0))
	r.Move(sample(500, 400*time.Millisecond))

	commands := r.End(sample(350, 900*time.Millisecond)) // 55% leftward
	assert.Equal(t, []domain.CommandKind{domain.CommandAdvance}, kinds(commands))
}

func TestFastShortDragCommitsOnVelocity(t *testing.T) {
	r := newRec()
	r.Begin(sample(500, 0))
	r.Move(sample(560, 40*time.Millisecond))

	// 120px in 120ms = 1.0 px/ms, above the 0.65 commit velocity.
	commands := r.End(sample(620, 120*time.Millisecond))
	assert.Equal(t, []domain.CommandKind{domain.CommandRetreat}, kinds(commands))
}

func TestDragAbortsHoldPauseAndStillResumes(t *testing.T) {
	r := newRec()
	r.Begin(sample(500, 0))

	require.NotEmpty(t, r.Poll(t0.Add(200*time.Millisecond)))

	// Movement after the hold started: the gesture becomes a drag.
	r.Move(sample(460, 250*time.Millisecond))
	assert.Empty(t, r.Poll(t0.Add(300*time.Millisecond)))

	commands := r.End(sample(450, 400*time.Millisecond))
	assert.Equal(t, []domain.CommandKind{domain.CommandResume}, kinds(commands),
		"gesture-induced pause must lift on release even when the drag does not commit")
}

func TestOffsetTracksLiveDrag(t *testing.T) {
	r := newRec()
	r.Begin(sample(500, 0))
	assert.Equal(t, 0.0, r.Offset())

	r.Move(sample(430, 100*time.Millisecond))
	assert.True(t, r.Dragging())
	assert.Equal(t, -70.0, r.Offset())
}

func TestSmallJitterStaysATap(t *testing.T) {
	r := newRec()
	r.Begin(sample(500, 0))
	r.Move(sample(505, 30*time.Millisecond)) // within slop

	commands := r.End(sample(505, 90*time.Millisecond))
	assert.Equal(t, []domain.CommandKind{domain.CommandAdvance}, kinds(commands))
}

func TestEndWithoutBeginIsNoOp(t *testing.T) {
	r := newRec()
	assert.Empty(t, r.End(sample(500, 0)))
	assert.Empty(t, r.Move(sample(500, 0)))
	assert.Empty(t, r.Poll(t0))
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		paused bool
		want   domain.CommandKind
		ok     bool
	}{
		{"left retreats", KeyLeft, false, domain.CommandRetreat, true},
		{"right advances", KeyRight, false, domain.CommandAdvance, true},
		{"escape closes", KeyEscape, false, domain.CommandClose, true},
		{"space pauses", KeySpace, false, domain.CommandPause, true},
		{"space resumes when paused", KeySpace, true, domain.CommandResume, true},
		{"unknown key", Key(99), false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := TranslateKey(tt.key, tt.paused)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, cmd.Kind)
			}
		})
	}
}
