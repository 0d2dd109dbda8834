package timeline

import (
	"context"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/repositories/viewed"
	"github.com/orgball2608/story-viewer/internal/storysource"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"github.com/samber/lo"
)

// Hydrate fetches the active story groups and stamps each story with
// its locally-recorded viewed flag. A source failure degrades to an
// empty timeline so the viewer can render its "no stories" state
// instead of crashing the session.
func Hydrate(ctx context.Context, source storysource.Source, repo viewed.Repository, log logger.Logger) *Timeline {
	groups, err := source.FetchActiveGroups(ctx)
	if err != nil {
		log.Error("Failed to fetch active story groups", "error", err)
		return New(nil)
	}

	ids := make([]string, 0)
	for _, g := range groups {
		ids = append(ids, lo.Map(g.Stories, func(s domain.Story, _ int) string {
			return s.ID
		})...)
	}

	seen, err := repo.FilterViewed(ctx, ids)
	if err != nil {
		// Viewed history is a convenience; without it every story
		// simply counts as unseen.
		log.Warn("Failed to load viewed history", "error", err)
		seen = map[string]bool{}
	}

	for gi := range groups {
		for si := range groups[gi].Stories {
			groups[gi].Stories[si].Viewed = seen[groups[gi].Stories[si].ID]
		}
	}

	return New(groups)
}
