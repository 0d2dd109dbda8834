package refresherimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/story-viewer/internal/refresher"
	"github.com/orgball2608/story-viewer/internal/repositories/viewed"
	"github.com/orgball2608/story-viewer/internal/storysource"
	"github.com/orgball2608/story-viewer/internal/timeline"
	"github.com/orgball2608/story-viewer/pkg/config"
	"github.com/orgball2608/story-viewer/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Source     storysource.Source
	ViewedRepo viewed.Repository
	Logger     logger.Logger
	Config     *config.Config
}

type RefresherImpl struct {
	Source     storysource.Source
	ViewedRepo viewed.Repository
	Logger     logger.Logger
	Config     *config.Config

	updates chan *timeline.Timeline
}

func New(opts Opts) *RefresherImpl {
	return &RefresherImpl{
		Source:     opts.Source,
		ViewedRepo: opts.ViewedRepo,
		Logger:     opts.Logger,
		Config:     opts.Config,
		updates:    make(chan *timeline.Timeline, 1),
	}
}

var _ refresher.Client = (*RefresherImpl)(nil)

func (r *RefresherImpl) Updates() <-chan *timeline.Timeline {
	return r.updates
}

// ScheduleGroupRefresh re-fetches the active story groups on an
// interval so a long-lived viewer picks up stories posted after it
// opened and drops ones that expired mid-session.
func (r *RefresherImpl) ScheduleGroupRefresh(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create refresh scheduler: %w", err)
	}

	interval := time.Duration(r.Config.Refresher.Minutes) * time.Minute

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				r.Logger.Info("Context cancelled, stopping group refresh job")
				return
			}

			taskCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			r.refreshOnce(taskCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule group refresh: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		r.Logger.Info("Stopping group refresh scheduler")
		if err := scheduler.Shutdown(); err != nil {
			r.Logger.Error("Failed to shut down refresh scheduler", "error", err)
		}
	}()

	return nil
}

// refreshOnce re-hydrates the timeline and publishes it for the UI.
func (r *RefresherImpl) refreshOnce(ctx context.Context) {
	r.Logger.Info("Refreshing active story groups")
	tl := timeline.Hydrate(ctx, r.Source, r.ViewedRepo, r.Logger)
	if tl.Empty() {
		r.Logger.Info("Refresh produced no story groups, keeping current timeline")
		return
	}
	r.publish(tl)
	r.Logger.Info("Published refreshed timeline", "groups", tl.Len())
}

// publish hands the timeline to the UI. A stale pending update is
// worthless once a newer one exists; replace it instead of queueing
// behind it.
func (r *RefresherImpl) publish(tl *timeline.Timeline) {
	select {
	case r.updates <- tl:
	default:
		select {
		case <-r.updates:
		default:
		}
		r.updates <- tl
	}
}

// ScheduleViewedCleanup sets up a daily job to clean up old records from the viewed_stories table
func (r *RefresherImpl) ScheduleViewedCleanup(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	// Run at 3:00 AM every day. Stories expire within 24 hours, so
	// anything older than two days can never be shown again.
	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				r.Logger.Info("Context cancelled, stopping viewed cleanup job")
				return
			}

			r.Logger.Info("Starting scheduled viewed history cleanup")

			cleanupCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			const cleanupDuration = 48 * time.Hour

			rowsDeleted, err := r.ViewedRepo.CleanupOldRecords(cleanupCtx, cleanupDuration)
			if err != nil {
				r.Logger.Error("Failed to clean up old viewed records", "error", err)
				return
			}

			r.Logger.Info("Viewed history cleanup completed", "rows_deleted", rowsDeleted)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule viewed cleanup: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		r.Logger.Info("Stopping viewed cleanup scheduler")
		if err := scheduler.Shutdown(); err != nil {
			r.Logger.Error("Failed to shut down cleanup scheduler", "error", err)
		}
	}()

	return nil
}
