package refresher

import (
	"context"

	"github.com/orgball2608/story-viewer/internal/timeline"
)

//go:generate go run go.uber.org/mock/mockgen -source=refresher.go -destination=mocks/mock.go -package=mocks

// Client runs the background jobs of a viewing session: periodic
// re-fetch of the active story groups and cleanup of expired viewed
// records. Fresh timelines land on Updates for the UI to swap in
// between stories.
type Client interface {
	ScheduleGroupRefresh(ctx context.Context) error
	ScheduleViewedCleanup(ctx context.Context) error
	Updates() <-chan *timeline.Timeline
}
