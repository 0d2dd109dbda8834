package storysource

import (
	"context"

	"github.com/orgball2608/story-viewer/internal/domain"
	apperrors "github.com/orgball2608/story-viewer/pkg/errors"
)

// Source failures fold into the shared failure taxonomy so callers can
// test with apperrors.IsNotFound / apperrors.IsSourceFetch.
var ErrNotFound = apperrors.ErrNotFound
var ErrUnavailable = apperrors.ErrSourceFetch

//go:generate go run go.uber.org/mock/mockgen -source=storysource.go -destination=mocks/mock.go -package=mocks

// Source fetches story groups for a viewing session. Implementations
// must return groups already filtered to non-expired, active stories;
// the engine performs no expiry filtering of its own.
type Source interface {
	FetchActiveGroups(ctx context.Context) ([]domain.StoryGroup, error)
	FetchGroupForUser(ctx context.Context, userID string) (domain.StoryGroup, error)
}
