package app

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// startJobs schedules the periodic maintenance jobs. The returned scheduler is
// already running.
func (app *Application) startJobs() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(app.config.Jobs.TokenCleanupInterval),
		gocron.NewTask(app.purgeExpiredTokens),
		gocron.WithName("purge expired tokens"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()

	return scheduler, nil
}

func (app *Application) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := app.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		app.logger.Error("failed to purge expired tokens", "error", err)
		return
	}

	app.logger.Info("purged expired tokens", "count", deleted)
}
