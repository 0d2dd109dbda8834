package timeline

import (
	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/samber/lo"
)

const defaultDurationSeconds = 5

// Timeline is the hydrated model of one viewing session:
// an ordered list of story groups, each an ordered list of stories.
// Every method is a pure function of the list and the given position,
// which keeps the scheduler and navigation logic testable without any
// timer or rendering dependency.
type Timeline struct {
	groups []domain.StoryGroup
}

// New sanitizes and freezes the fetched groups. Groups without stories
// are dropped; declared durations are clamped to a positive default;
// product tag positions are clamped into [0,100].
func New(groups []domain.StoryGroup) *Timeline {
	sanitized := make([]domain.StoryGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Stories) == 0 {
			continue
		}
		g.Stories = lo.Map(g.Stories, func(s domain.Story, _ int) domain.Story {
			if s.Media.DurationSeconds <= 0 {
				s.Media.DurationSeconds = defaultDurationSeconds
			}
			s.ProductTags = lo.Map(s.ProductTags, func(t domain.ProductTag, _ int) domain.ProductTag {
				t.X = clamp(t.X, 0, 100)
				t.Y = clamp(t.Y, 0, 100)
				return t
			})
			return s
		})
		sanitized = append(sanitized, g)
	}
	return &Timeline{groups: sanitized}
}

// Replace swaps in another timeline's groups. Callers must only do
// this from the goroutine that drives navigation and playback, and
// only when the active position stays valid.
func (t *Timeline) Replace(other *Timeline) {
	t.groups = other.groups
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

// Empty reports a timeline with no playable stories: the "no stories"
// terminal state the viewer presents after a source fetch failure.
func (t *Timeline) Empty() bool {
	return len(t.groups) == 0
}

func (t *Timeline) Len() int {
	return len(t.groups)
}

func (t *Timeline) Groups() []domain.StoryGroup {
	return t.groups
}

func (t *Timeline) Group(i int) (domain.StoryGroup, bool) {
	if i < 0 || i >= len(t.groups) {
		return domain.StoryGroup{}, false
	}
	return t.groups[i], true
}

// StoriesIn returns the story count of group i, 0 when out of range.
func (t *Timeline) StoriesIn(i int) int {
	if i < 0 || i >= len(t.groups) {
		return 0
	}
	return len(t.groups[i].Stories)
}

func (t *Timeline) Story(pos domain.Position) (domain.Story, bool) {
	if !t.Valid(pos) {
		return domain.Story{}, false
	}
	return t.groups[pos.Group].Stories[pos.Story], true
}

// Valid bounds-checks a position against the nested list.
func (t *Timeline) Valid(pos domain.Position) bool {
	if pos.Group < 0 || pos.Group >= len(t.groups) {
		return false
	}
	return pos.Story >= 0 && pos.Story < len(t.groups[pos.Group].Stories)
}

// Next returns the position after pos: the next story in the current
// group, else the first story of the next group. ok is false at the
// end of the timeline.
func (t *Timeline) Next(pos domain.Position) (domain.Position, bool) {
	if !t.Valid(pos) {
		return domain.Position{}, false
	}
	if pos.Story+1 < len(t.groups[pos.Group].Stories) {
		return domain.Position{Group: pos.Group, Story: pos.Story + 1}, true
	}
	if pos.Group+1 < len(t.groups) {
		return domain.Position{Group: pos.Group + 1, Story: 0}, true
	}
	return domain.Position{}, false
}

// Prev returns the position before pos. Backing out of a group's first
// story lands on the previous group's last story. ok is false at the
// very first story of the first group.
func (t *Timeline) Prev(pos domain.Position) (domain.Position, bool) {
	if !t.Valid(pos) {
		return domain.Position{}, false
	}
	if pos.Story > 0 {
		return domain.Position{Group: pos.Group, Story: pos.Story - 1}, true
	}
	if pos.Group > 0 {
		prevGroup := pos.Group - 1
		return domain.Position{
			Group: prevGroup,
			Story: len(t.groups[prevGroup].Stories) - 1,
		}, true
	}
	return domain.Position{}, false
}

// FirstUnviewed returns the index of the first unviewed story in group
// i, or 0 when everything has been seen.
func (t *Timeline) FirstUnviewed(i int) int {
	group, ok := t.Group(i)
	if !ok {
		return 0
	}
	_, idx, found := lo.FindIndexOf(group.Stories, func(s domain.Story) bool {
		return !s.Viewed
	})
	if !found {
		return 0
	}
	return idx
}
