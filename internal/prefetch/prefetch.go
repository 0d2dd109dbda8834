package prefetch

import (
	"context"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/timeline"
)

//go:generate go run go.uber.org/mock/mockgen -source=prefetch.go -destination=mocks/mock.go -package=mocks

// Client warms the assets of upcoming stories so advancing rarely
// lands on a cold cache. Best effort: failures are logged, never
// surfaced.
type Client interface {
	WarmUpcoming(ctx context.Context, tl *timeline.Timeline, from domain.Position, count int)
	Release()
}
