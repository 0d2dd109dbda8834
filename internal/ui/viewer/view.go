package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/progress"
	"github.com/orgball2608/story-viewer/internal/scheduler"
)

const minSegmentWidth = 3

func segmentWidth(total, segments int) int {
	if segments <= 0 {
		return 0
	}
	w := (total - segments + 1) / segments
	if w < minSegmentWidth {
		w = minSegmentWidth
	}
	return w
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initialising..."
	}

	if m.tl.Empty() {
		return m.styles.Empty.Render("No stories to show right now.\n\nPress any key to leave.")
	}

	pos := m.nav.CurrentPosition()
	if pos.IsClosed() {
		return ""
	}

	snap := m.sched.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderStrip(pos, snap))
	b.WriteString("\n")
	b.WriteString(m.renderHeader(pos))
	b.WriteString("\n\n")
	b.WriteString(m.renderMedia(snap))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("←/→ navigate · hold/space pause · 1-9 jump · esc close"))
	return b.String()
}

// renderStrip draws one segment per story in the active group; the
// active segment fills in lockstep with the playback clock.
func (m Model) renderStrip(pos domain.Position, snap scheduler.Snapshot) string {
	n := m.tl.StoriesIn(pos.Group)
	segments := progress.Render(n, pos.Story, snap.ElapsedFraction())
	if segments == nil {
		return ""
	}

	segW := segmentWidth(m.width, n)
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg.State {
		case progress.SegmentActive:
			parts = append(parts, m.prog.ViewAs(seg.Fill/100))
		case progress.SegmentCompleted:
			parts = append(parts, m.styles.SegFull.Render(strings.Repeat("─", segW)))
		default:
			parts = append(parts, m.styles.SegEmpty.Render(strings.Repeat("─", segW)))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderHeader(pos domain.Position) string {
	group, ok := m.tl.Group(pos.Group)
	if !ok {
		return ""
	}

	handle := group.Owner.Username
	if handle == "" {
		handle = group.ID
	}

	counter := fmt.Sprintf("%d/%d · group %d/%d",
		pos.Story+1, m.tl.StoriesIn(pos.Group), pos.Group+1, m.tl.Len())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Handle.Render("@"+handle),
		m.styles.Header.Render("  "+counter),
	)
}

func (m Model) renderMedia(snap scheduler.Snapshot) string {
	var b strings.Builder

	switch snap.State {
	case scheduler.StateLoading:
		b.WriteString("⋯ loading\n")
	case scheduler.StateTransitioning:
		b.WriteString("⋯\n")
	default:
		if snap.Story.Media.Kind == domain.MediaKindVideo {
			b.WriteString(fmt.Sprintf("▶ video · %.0fs\n", snap.EffectiveDurationMs/1000))
		} else {
			b.WriteString("🖼 image\n")
		}
	}
	b.WriteString(snap.Asset.URL)

	if snap.Story.Caption != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Caption.Render(snap.Story.Caption))
	}

	for _, tag := range snap.Story.ProductTags {
		b.WriteString("\n")
		b.WriteString(m.styles.Tag.Render(
			fmt.Sprintf("🛍 %s (%.0f%%, %.0f%%)", tag.ProductID, tag.X, tag.Y)))
	}

	if snap.Paused {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Paused.Render("⏸ paused"))
	}

	box := m.styles.Media.Render(b.String())

	// The in-flight drag (and its snap-back) shifts the card.
	if shift := int(m.springPos / 4); shift > 0 {
		box = lipgloss.NewStyle().MarginLeft(shift).Render(box)
	}
	return box
}
