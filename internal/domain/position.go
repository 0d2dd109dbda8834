package domain

// Position is the (group, story) coordinate currently being shown.
// It is the single source of truth for "what is showing"; progress and
// pause state are derived relative to it.
type Position struct {
	Group int
	Story int
}

// Closed is the sentinel position of a closed viewer.
var Closed = Position{Group: -1, Story: -1}

func (p Position) IsClosed() bool {
	return p.Group < 0 || p.Story < 0
}
