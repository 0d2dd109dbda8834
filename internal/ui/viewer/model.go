// Package viewer is the terminal presentation of a viewing session. It
// owns the frame clock: every tick drains into the playback scheduler
// and the gesture recognizer, and everything drawn is recomputed from
// their snapshots. No playback state lives here.
package viewer

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/gesture"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
	"github.com/orgball2608/story-viewer/internal/navigation"
	"github.com/orgball2608/story-viewer/internal/refresher"
	"github.com/orgball2608/story-viewer/internal/scheduler"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

type tickMsg time.Time

type mediaEventMsg mediaplayer.Event

type timelineMsg *timeline.Timeline

type Opts struct {
	fx.In

	Timeline   *timeline.Timeline
	Navigation navigation.Client
	Scheduler  scheduler.Client
	Player     mediaplayer.Player
	Refresher  refresher.Client
	Config     *config.Config
	Logger     logger.Logger
}

type Model struct {
	tl     *timeline.Timeline
	nav    navigation.Client
	sched  scheduler.Client
	player mediaplayer.Player
	fresh  refresher.Client
	cfg    *config.Config
	log    logger.Logger

	rec    *gesture.Recognizer
	prog   progress.Model
	styles Styles

	// Drag offset animated back to rest with spring physics.
	spring    harmonica.Spring
	springPos float64
	springVel float64

	width    int
	height   int
	lastTick time.Time
}

func New(opts Opts) Model {
	gcfg := gesture.Config{
		HoldThreshold:      time.Duration(opts.Config.Gesture.HoldThresholdMs) * time.Millisecond,
		TapMaxMovement:     gesture.DefaultConfig().TapMaxMovement,
		DragCommitFraction: opts.Config.Gesture.DragCommitFraction,
		DragCommitVelocity: opts.Config.Gesture.DragCommitVelocity,
	}

	return Model{
		tl:     opts.Timeline,
		nav:    opts.Navigation,
		sched:  opts.Scheduler,
		player: opts.Player,
		fresh:  opts.Refresher,
		cfg:    opts.Config,
		log:    opts.Logger,
		rec:    gesture.NewRecognizer(gcfg, gesture.Size{Width: 80, Height: 24}),
		prog: progress.New(
			progress.WithGradient("#AF87FF", "#FFFFFF"),
			progress.WithoutPercentage(),
		),
		styles:   DefaultStyles(),
		spring:   harmonica.NewSpring(harmonica.FPS(60), 8.0, 0.9),
		lastTick: time.Now(),
	}
}

func (m Model) tickInterval() time.Duration {
	return time.Duration(m.cfg.Playback.TickMs) * time.Millisecond
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitMediaEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.player.Events()
		if !ok {
			return nil
		}
		return mediaEventMsg(ev)
	}
}

func (m Model) waitTimelineUpdate() tea.Cmd {
	if m.fresh == nil {
		return nil
	}
	return func() tea.Msg {
		tl, ok := <-m.fresh.Updates()
		if !ok {
			return nil
		}
		return timelineMsg(tl)
	}
}

// Init opens the session at the first group, skipping to its first
// unseen story, then starts the frame clock.
func (m Model) Init() tea.Cmd {
	if !m.tl.Empty() {
		m.nav.Open(domain.Position{Group: 0, Story: m.tl.FirstUnviewed(0)})
	}
	return tea.Batch(m.tick(), m.waitMediaEvent(), m.waitTimelineUpdate())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rec.SetViewport(gesture.Size{Width: float64(msg.Width), Height: float64(msg.Height)})
		m.prog.Width = segmentWidth(msg.Width, m.storiesInActiveGroup())
		return m, nil

	case tickMsg:
		return m.onTick(time.Time(msg))

	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.MouseMsg:
		return m.onMouse(msg)

	case mediaEventMsg:
		m.sched.HandleMediaEvent(mediaplayer.Event(msg))
		if m.nav.Closed() {
			return m, tea.Quit
		}
		return m, m.waitMediaEvent()

	case timelineMsg:
		m.onTimelineUpdate((*timeline.Timeline)(msg))
		return m, m.waitTimelineUpdate()
	}

	return m, nil
}

func (m Model) onTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := now.Sub(m.lastTick)
	if delta < 0 {
		delta = 0
	}
	m.lastTick = now

	m.sched.Tick(float64(delta) / float64(time.Millisecond))
	m.applyAll(m.rec.Poll(now))

	// While dragging the offset follows the pointer; after release it
	// springs back to rest.
	target := m.rec.Offset()
	m.springPos, m.springVel = m.spring.Update(m.springPos, m.springVel, target)

	if m.nav.Closed() {
		return m, tea.Quit
	}
	return m, m.tick()
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tl.Empty() {
		return m, tea.Quit
	}

	key := msg.String()

	if k, ok := translateKeyName(key); ok {
		paused := m.sched.Snapshot().Paused
		if cmd, ok := gesture.TranslateKey(k, paused); ok {
			m.nav.Apply(cmd)
		}
		if m.nav.Closed() {
			return m, tea.Quit
		}
		return m, nil
	}

	// Digits jump straight to the n-th group, opening at its first
	// unseen story.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		group := int(key[0] - '1')
		if group < m.tl.Len() {
			m.nav.Apply(domain.Jump(domain.Position{
				Group: group,
				Story: m.tl.FirstUnviewed(group),
			}))
		}
	}
	return m, nil
}

func translateKeyName(name string) (gesture.Key, bool) {
	switch name {
	case "left", "h":
		return gesture.KeyLeft, true
	case "right", "l":
		return gesture.KeyRight, true
	case "esc", "q", "ctrl+c":
		return gesture.KeyEscape, true
	case " ":
		return gesture.KeySpace, true
	}
	return 0, false
}

func (m Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	sample := gesture.PointerSample{
		X:  float64(msg.X),
		Y:  float64(msg.Y),
		At: time.Now(),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.applyAll(m.rec.Begin(sample))
		}
	case tea.MouseActionMotion:
		m.applyAll(m.rec.Move(sample))
	case tea.MouseActionRelease:
		m.applyAll(m.rec.End(sample))
	}

	if m.nav.Closed() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) applyAll(cmds []domain.Command) {
	for _, cmd := range cmds {
		m.nav.Apply(cmd)
	}
}

// onTimelineUpdate swaps in a refreshed timeline when the active
// position survives the swap; otherwise the current one is kept and
// the refresh is dropped.
func (m Model) onTimelineUpdate(fresh *timeline.Timeline) {
	if fresh == nil || fresh.Empty() {
		return
	}
	pos := m.nav.CurrentPosition()
	if !pos.IsClosed() && !fresh.Valid(pos) {
		m.log.Info("Refreshed timeline dropped, active position no longer exists",
			"group", pos.Group, "story", pos.Story)
		return
	}
	m.tl.Replace(fresh)
	m.log.Info("Timeline refreshed mid-session", "groups", m.tl.Len())
}

func (m Model) storiesInActiveGroup() int {
	pos := m.nav.CurrentPosition()
	if pos.IsClosed() {
		return 0
	}
	return m.tl.StoriesIn(pos.Group)
}
