// Package progress derives the per-segment fill states for the
// progress bar strip. Pure: recomputed from scheduler output on every
// tick, no internal state.
package progress

type SegmentState string

const (
	SegmentCompleted SegmentState = "completed"
	SegmentActive    SegmentState = "active"
	SegmentPending   SegmentState = "pending"
)

// Segment is one strip entry; Fill is a percentage in [0,100].
type Segment struct {
	State SegmentState
	Fill  float64
}

// Render maps {story index, elapsed fraction} onto the strip for a
// group of timelineLength stories: everything before currentIndex is
// full, the active segment fills with elapsedFraction, the rest are
// empty.
func Render(timelineLength, currentIndex int, elapsedFraction float64) []Segment {
	if timelineLength <= 0 {
		return nil
	}

	if elapsedFraction < 0 {
		elapsedFraction = 0
	}
	if elapsedFraction > 1 {
		elapsedFraction = 1
	}

	segments := make([]Segment, timelineLength)
	for i := range segments {
		switch {
		case i < currentIndex:
			segments[i] = Segment{State: SegmentCompleted, Fill: 100}
		case i == currentIndex:
			segments[i] = Segment{State: SegmentActive, Fill: elapsedFraction * 100}
		default:
			segments[i] = Segment{State: SegmentPending, Fill: 0}
		}
	}
	return segments
}
