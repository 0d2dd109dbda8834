package prefetchimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/orgball2608/story-viewer/internal/domain"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	"github.com/orgball2608/story-viewer/internal/prefetch"
	"github.com/orgball2608/story-viewer/internal/ratelimit"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"github.com/orgball2608/story-viewer/pkg/retry"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Resolver mediaresolver.Client
}

type PrefetchImpl struct {
	Logger   logger.Logger
	Resolver mediaresolver.Client

	pool     *ants.Pool
	limiter  ratelimit.Limiter
	client   *http.Client
	retryCfg retry.Config

	mu     sync.Mutex
	warmed map[string]struct{}
}

func New(opts Opts) (*PrefetchImpl, error) {
	pool, err := ants.NewPool(opts.Config.Prefetch.Workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create prefetch pool: %w", err)
	}

	return &PrefetchImpl{
		Logger:   opts.Logger,
		Resolver: opts.Resolver,
		pool:     pool,
		limiter:  ratelimit.NewInMemoryLimiter(4, time.Second, 8),
		client:   &http.Client{Timeout: 15 * time.Second},
		retryCfg: retry.DefaultConfig(),
		warmed:   make(map[string]struct{}),
	}, nil
}

var _ prefetch.Client = (*PrefetchImpl)(nil)

// WarmUpcoming schedules fetches for the next count stories after
// from. Relative and fallback asset paths are skipped; only remote
// URLs need warming.
func (p *PrefetchImpl) WarmUpcoming(ctx context.Context, tl *timeline.Timeline, from domain.Position, count int) {
	pos := from
	for i := 0; i < count; i++ {
		next, ok := tl.Next(pos)
		if !ok {
			return
		}
		pos = next

		story, ok := tl.Story(pos)
		if !ok {
			return
		}

		asset := p.Resolver.Resolve(story.Media.URL, mediaresolver.CategoryStory)
		p.warm(ctx, asset.URL)
		if asset.ThumbnailURL != "" {
			p.warm(ctx, asset.ThumbnailURL)
		}
	}
}

// Release shuts the worker pool down; pending jobs are abandoned.
func (p *PrefetchImpl) Release() {
	p.pool.Release()
}

func (p *PrefetchImpl) warm(ctx context.Context, rawURL string) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return
	}

	p.mu.Lock()
	if _, done := p.warmed[rawURL]; done {
		p.mu.Unlock()
		return
	}
	p.warmed[rawURL] = struct{}{}
	p.mu.Unlock()

	host := parsed.Host
	err = p.pool.Submit(func() {
		if ctx.Err() != nil {
			return
		}
		if !p.limiter.Allow(host) {
			p.Logger.Debug("Prefetch skipped by rate limit", "host", host)
			p.forget(rawURL)
			return
		}

		operation := func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return err
			}
			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
			// Drain so the connection can be reused; the OS page
			// cache and any CDN edge do the actual warming.
			_, err = io.Copy(io.Discard, resp.Body)
			return err
		}

		if err := retry.Do(ctx, p.Logger, "prefetch_asset", operation, p.retryCfg); err != nil {
			p.Logger.Debug("Prefetch failed", "url", rawURL, "error", err)
			p.forget(rawURL)
		}
	})
	if err != nil {
		p.Logger.Debug("Failed to submit prefetch job", "url", rawURL, "error", err)
		p.forget(rawURL)
	}
}

func (p *PrefetchImpl) forget(rawURL string) {
	p.mu.Lock()
	delete(p.warmed, rawURL)
	p.mu.Unlock()
}
