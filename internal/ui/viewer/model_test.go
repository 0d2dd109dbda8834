package viewer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
	"github.com/orgball2608/story-viewer/internal/scheduler"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeNav struct {
	opened   []domain.Position
	applied  []domain.Command
	position domain.Position
	closed   bool
}

func (f *fakeNav) Open(pos domain.Position) {
	f.opened = append(f.opened, pos)
	f.position = pos
}

func (f *fakeNav) Apply(cmd domain.Command) {
	f.applied = append(f.applied, cmd)
	if cmd.Kind == domain.CommandClose {
		f.closed = true
		f.position = domain.Closed
	}
}

func (f *fakeNav) Close() { f.closed = true }

func (f *fakeNav) CurrentPosition() domain.Position { return f.position }

func (f *fakeNav) Closed() bool { return f.closed }

type fakeSched struct {
	ticks    []float64
	events   []mediaplayer.Event
	snapshot scheduler.Snapshot
}

func (f *fakeSched) Start(domain.Position) {}

func (f *fakeSched) Tick(deltaMs float64) { f.ticks = append(f.ticks, deltaMs) }

func (f *fakeSched) HandleMediaEvent(ev mediaplayer.Event) { f.events = append(f.events, ev) }

func (f *fakeSched) Pause()  {}
func (f *fakeSched) Resume() {}
func (f *fakeSched) Cancel() {}
func (f *fakeSched) Close()  {}

func (f *fakeSched) Snapshot() scheduler.Snapshot { return f.snapshot }

func (f *fakeSched) OnAdvance(func()) {}

type chanPlayer struct {
	events chan mediaplayer.Event
}

func (p *chanPlayer) Load(context.Context, domain.ResolvedAsset, float64, string) {}

func (p *chanPlayer) Pause()  {}
func (p *chanPlayer) Resume() {}
func (p *chanPlayer) Stop()   {}

func (p *chanPlayer) Events() <-chan mediaplayer.Event { return p.events }

var _ mediaplayer.Player = (*chanPlayer)(nil)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Playback.TickMs = 50
	cfg.Gesture.HoldThresholdMs = 180
	cfg.Gesture.DragCommitFraction = 0.5
	cfg.Gesture.DragCommitVelocity = 0.65
	return cfg
}

func viewerGroups(counts ...int) []domain.StoryGroup {
	groups := make([]domain.StoryGroup, 0, len(counts))
	for gi, n := range counts {
		g := domain.StoryGroup{
			ID:    string(rune('a' + gi)),
			Owner: domain.User{Username: "owner-" + string(rune('a'+gi))},
		}
		for si := 0; si < n; si++ {
			g.Stories = append(g.Stories, domain.Story{
				ID: g.ID + string(rune('0'+si)),
				Media: domain.Media{
					Kind:            domain.MediaKindImage,
					URL:             "https://cdn.shoply.social/s.jpg",
					DurationSeconds: 5,
				},
			})
		}
		groups = append(groups, g)
	}
	return groups
}

type fixture struct {
	model Model
	nav   *fakeNav
	sched *fakeSched
}

func newFixture(t *testing.T, counts ...int) *fixture {
	t.Helper()

	nav := &fakeNav{position: domain.Position{Group: 0, Story: 0}}
	sched := &fakeSched{}
	m := New(Opts{
		Timeline:   timeline.New(viewerGroups(counts...)),
		Navigation: nav,
		Scheduler:  sched,
		Player:     &chanPlayer{events: make(chan mediaplayer.Event, 1)},
		Refresher:  nil,
		Config:     testConfig(),
		Logger:     nopLogger{},
	})
	m.width = 80
	m.height = 24
	return &fixture{model: m, nav: nav, sched: sched}
}

func TestKeysTranslateToCommands(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want domain.CommandKind
	}{
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, domain.CommandAdvance},
		{"l", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, domain.CommandAdvance},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, domain.CommandRetreat},
		{"h", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}, domain.CommandRetreat},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, domain.CommandClose},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, domain.CommandClose},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 2, 1)
			f.model.Update(tc.msg)
			require.Len(t, f.nav.applied, 1)
			assert.Equal(t, tc.want, f.nav.applied[0].Kind)
		})
	}
}

func TestSpaceTogglesByPauseState(t *testing.T) {
	f := newFixture(t, 1)
	space := tea.KeyMsg{Type: tea.KeySpace}

	f.model.Update(space)
	require.Len(t, f.nav.applied, 1)
	assert.Equal(t, domain.CommandPause, f.nav.applied[0].Kind)

	f.sched.snapshot.Paused = true
	f.model.Update(space)
	require.Len(t, f.nav.applied, 2)
	assert.Equal(t, domain.CommandResume, f.nav.applied[1].Kind)
}

func TestDigitJumpsToGroup(t *testing.T) {
	f := newFixture(t, 2, 3)

	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.Len(t, f.nav.applied, 1)
	assert.Equal(t, domain.CommandJump, f.nav.applied[0].Kind)
	assert.Equal(t, domain.Position{Group: 1, Story: 0}, f.nav.applied[0].Target)

	// Digit beyond the last group emits nothing.
	f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	assert.Len(t, f.nav.applied, 1)
}

func TestTickDrivesSchedulerClock(t *testing.T) {
	f := newFixture(t, 1)
	base := time.Now()
	f.model.lastTick = base

	next, cmd := f.model.onTick(base.Add(50 * time.Millisecond))

	require.Len(t, f.sched.ticks, 1)
	assert.InDelta(t, 50, f.sched.ticks[0], 0.001)
	assert.NotNil(t, cmd, "tick must re-arm the frame clock")
	assert.IsType(t, Model{}, next)
}

func TestQuitsOnceNavigationCloses(t *testing.T) {
	f := newFixture(t, 1)
	f.nav.closed = true
	f.model.lastTick = time.Now()

	_, cmd := f.model.onTick(time.Now())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMouseTapAdvancesOnRightTwoThirds(t *testing.T) {
	f := newFixture(t, 2)

	f.model.Update(tea.MouseMsg{X: 60, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.model.Update(tea.MouseMsg{X: 60, Y: 10, Action: tea.MouseActionRelease})

	require.Len(t, f.nav.applied, 1)
	assert.Equal(t, domain.CommandAdvance, f.nav.applied[0].Kind)
}

func TestMouseTapRetreatsOnLeftThird(t *testing.T) {
	f := newFixture(t, 2)

	f.model.Update(tea.MouseMsg{X: 5, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.model.Update(tea.MouseMsg{X: 5, Y: 10, Action: tea.MouseActionRelease})

	require.Len(t, f.nav.applied, 1)
	assert.Equal(t, domain.CommandRetreat, f.nav.applied[0].Kind)
}

func TestMediaEventsForwardToScheduler(t *testing.T) {
	f := newFixture(t, 1)

	_, cmd := f.model.Update(mediaEventMsg(mediaplayer.Event{Kind: mediaplayer.EventReady, Generation: "g1"}))

	require.Len(t, f.sched.events, 1)
	assert.Equal(t, mediaplayer.EventReady, f.sched.events[0].Kind)
	assert.NotNil(t, cmd, "must re-arm the media event wait")
}

func TestEmptyTimelineQuitsOnAnyKey(t *testing.T) {
	nav := &fakeNav{position: domain.Closed}
	m := New(Opts{
		Timeline:   timeline.New(nil),
		Navigation: nav,
		Scheduler:  &fakeSched{},
		Player:     &chanPlayer{events: make(chan mediaplayer.Event, 1)},
		Config:     testConfig(),
		Logger:     nopLogger{},
	})
	m.width = 80

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Contains(t, m.View(), "No stories")
}

func TestTimelineRefreshSwapsWhenPositionSurvives(t *testing.T) {
	f := newFixture(t, 2)
	f.nav.position = domain.Position{Group: 0, Story: 1}

	fresh := timeline.New(viewerGroups(2, 1))
	f.model.Update(timelineMsg(fresh))

	assert.Equal(t, 2, f.model.tl.Len())
}

func TestTimelineRefreshDroppedWhenPositionVanishes(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.nav.position = domain.Position{Group: 1, Story: 1}

	fresh := timeline.New(viewerGroups(1))
	f.model.Update(timelineMsg(fresh))

	assert.Equal(t, 2, f.model.tl.Len(), "shrunken timeline must not orphan the active position")
}

func TestInitOpensAtFirstUnviewed(t *testing.T) {
	groups := viewerGroups(3)
	groups[0].Stories[0].Viewed = true

	nav := &fakeNav{}
	m := New(Opts{
		Timeline:   timeline.New(groups),
		Navigation: nav,
		Scheduler:  &fakeSched{},
		Player:     &chanPlayer{events: make(chan mediaplayer.Event, 1)},
		Config:     testConfig(),
		Logger:     nopLogger{},
	})

	m.Init()

	require.Len(t, nav.opened, 1)
	assert.Equal(t, domain.Position{Group: 0, Story: 1}, nav.opened[0])
}

func TestViewShowsOwnerAndCounter(t *testing.T) {
	f := newFixture(t, 3)
	f.nav.position = domain.Position{Group: 0, Story: 1}
	f.sched.snapshot = scheduler.Snapshot{
		State:               scheduler.StatePlaying,
		Story:               domain.Story{Media: domain.Media{Kind: domain.MediaKindImage}, Caption: "summer drop"},
		Asset:               domain.ResolvedAsset{URL: "https://cdn.shoply.social/s.jpg"},
		ElapsedMs:           2500,
		EffectiveDurationMs: 5000,
	}

	out := f.model.View()
	assert.Contains(t, out, "@owner-a")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "summer drop")
}
