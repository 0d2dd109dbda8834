package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	"github.com/orgball2608/story-viewer/internal/storysource"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"github.com/orgball2608/story-viewer/pkg/retry"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Resolver mediaresolver.Client
}

// HTTPSource fetches story groups from the platform's JSON API. The
// API guarantees expiry filtering server-side.
type HTTPSource struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	logger   logger.Logger
	resolver mediaresolver.Client
}

func New(opts Opts) *HTTPSource {
	return &HTTPSource{
		baseURL: opts.Config.Source.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(opts.Config.Source.TimeoutSeconds) * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Limit(opts.Config.Source.RequestsPerSecond), opts.Config.Source.Burst),
		logger:   opts.Logger,
		resolver: opts.Resolver,
	}
}

var _ storysource.Source = (*HTTPSource)(nil)

type storyGroupDTO struct {
	ID    string `json:"id"`
	Owner struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
	Stories []storyDTO `json:"stories"`
}

type storyDTO struct {
	ID              string          `json:"id"`
	MediaURL        string          `json:"media_url"`
	ThumbnailURL    string          `json:"thumbnail_url"`
	MediaType       string          `json:"media_type"`
	DurationSeconds float64         `json:"duration_seconds"`
	Caption         string          `json:"caption"`
	ProductTags     []productTagDTO `json:"product_tags"`
}

type productTagDTO struct {
	ProductID string  `json:"product_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

func (s *HTTPSource) FetchActiveGroups(ctx context.Context) ([]domain.StoryGroup, error) {
	var dtos []storyGroupDTO
	if err := s.getJSON(ctx, "/stories/active", &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", storysource.ErrUnavailable, err)
	}

	return lo.Map(dtos, func(dto storyGroupDTO, _ int) domain.StoryGroup {
		return s.toDomain(dto)
	}), nil
}

func (s *HTTPSource) FetchGroupForUser(ctx context.Context, userID string) (domain.StoryGroup, error) {
	var dto storyGroupDTO
	path := "/stories/users/" + url.PathEscape(userID)
	if err := s.getJSON(ctx, path, &dto); err != nil {
		return domain.StoryGroup{}, fmt.Errorf("%w: %v", storysource.ErrUnavailable, err)
	}
	if dto.ID == "" {
		return domain.StoryGroup{}, storysource.ErrNotFound
	}
	return s.toDomain(dto), nil
}

func (s *HTTPSource) getJSON(ctx context.Context, path string, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return retry.Do(ctx, s.logger, "story_source_fetch", operation, retry.DefaultConfig())
}

func (s *HTTPSource) toDomain(dto storyGroupDTO) domain.StoryGroup {
	return domain.StoryGroup{
		ID: dto.ID,
		Owner: domain.User{
			ID:        dto.Owner.ID,
			Username:  dto.Owner.Username,
			AvatarURL: dto.Owner.AvatarURL,
		},
		Stories: lo.Map(dto.Stories, func(story storyDTO, _ int) domain.Story {
			kind := domain.MediaKind(story.MediaType)
			if kind != domain.MediaKindImage && kind != domain.MediaKindVideo {
				kind = s.resolver.Classify(story.MediaURL)
			}
			tags := lo.Map(story.ProductTags, func(tag productTagDTO, _ int) domain.ProductTag {
				return domain.ProductTag{ProductID: tag.ProductID, X: tag.X, Y: tag.Y}
			})
			return domain.Story{
				ID:      story.ID,
				Caption: story.Caption,
				Media: domain.Media{
					Kind:            kind,
					URL:             story.MediaURL,
					ThumbnailURL:    story.ThumbnailURL,
					DurationSeconds: story.DurationSeconds,
				},
				ProductTags: tags,
			}
		}),
	}
}
