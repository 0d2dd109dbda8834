package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/story-viewer/internal/db"
	"github.com/orgball2608/story-viewer/internal/mediaplayer"
	"github.com/orgball2608/story-viewer/internal/mediaplayer/headless"
	"github.com/orgball2608/story-viewer/internal/mediaresolver"
	"github.com/orgball2608/story-viewer/internal/mediaresolver/resolverimpl"
	_ "github.com/orgball2608/story-viewer/internal/migrations"
	"github.com/orgball2608/story-viewer/internal/navigation"
	"github.com/orgball2608/story-viewer/internal/navigation/navigationimpl"
	"github.com/orgball2608/story-viewer/internal/prefetch"
	"github.com/orgball2608/story-viewer/internal/prefetch/prefetchimpl"
	"github.com/orgball2608/story-viewer/internal/refresher"
	"github.com/orgball2608/story-viewer/internal/refresher/refresherimpl"
	"github.com/orgball2608/story-viewer/internal/repositories/viewed"
	"github.com/orgball2608/story-viewer/internal/scheduler"
	"github.com/orgball2608/story-viewer/internal/scheduler/schedulerimpl"
	"github.com/orgball2608/story-viewer/internal/storysource"
	"github.com/orgball2608/story-viewer/internal/storysource/httpsource"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/internal/ui/viewer"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		db.New,
		clockwork.NewRealClock,
		func(cfg *config.Config) mediaresolver.Tables {
			return mediaresolver.DefaultTables(cfg.Assets.FallbackDir)
		},
		func(cfg *config.Config) scheduler.Options {
			return scheduler.Options{
				VideoGraceMs:         cfg.Playback.VideoGraceMs,
				LoadTimeoutMs:        cfg.Playback.LoadTimeoutMs,
				ImageDurationSeconds: cfg.Playback.ImageDurationSeconds,
			}
		},
	),
	fx.Provide(
		fx.Annotate(
			resolverimpl.New,
			fx.As(new(mediaresolver.Client)),
		), fx.Annotate(
			httpsource.New,
			fx.As(new(storysource.Source)),
		), fx.Annotate(
			headless.New,
			fx.As(new(mediaplayer.Player)),
		), fx.Annotate(
			schedulerimpl.New,
			fx.As(new(scheduler.Client)),
		), fx.Annotate(
			prefetchimpl.New,
			fx.As(new(prefetch.Client)),
		), fx.Annotate(
			navigationimpl.New,
			fx.As(new(navigation.Client)),
		), fx.Annotate(
			refresherimpl.New,
			fx.As(new(refresher.Client)),
		),
	),
	viewed.Module,
	fx.Provide(
		func(source storysource.Source, repo viewed.Repository, log logger.Logger) *timeline.Timeline {
			return timeline.Hydrate(context.Background(), source, repo, log)
		},
		viewer.New,
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger,
	model viewer.Model, fresh refresher.Client, pre prefetch.Client) {

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	var program *tea.Program

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := fresh.ScheduleGroupRefresh(jobCtx); err != nil {
				log.Error("Failed to schedule group refresh", "error", err)
			}
			if err := fresh.ScheduleViewedCleanup(jobCtx); err != nil {
				log.Error("Failed to schedule viewed cleanup", "error", err)
			}

			program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			go func() {
				if _, err := program.Run(); err != nil {
					log.Error("Viewer exited with error", "error", err)
				}
				// UI exit (close gesture, escape, last story) ends the
				// process.
				if err := shutdowner.Shutdown(); err != nil {
					log.Error("Failed to trigger shutdown", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancelJobs()
			if program != nil {
				program.Quit()
			}
			pre.Release()
			return nil
		},
	})
}
