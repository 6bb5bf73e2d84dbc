package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/serviceperiod"

	"github.com/robfig/cron/v3"
)

// ServiceAutocloseJob closes a forgotten open service period on a nightly
// schedule. It reuses the regular close command, so the sweep of live
// orders and the stats freeze behave exactly as a manual close.
type ServiceAutocloseJob struct {
	handler commands.CloseServiceCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewServiceAutocloseJob creates the autoclose job with a standard 5-field
// cron spec, e.g. "0 4 * * *" for four in the morning.
func NewServiceAutocloseJob(
	handler commands.CloseServiceCommandHandler,
	spec string,
	logger *slog.Logger,
) *ServiceAutocloseJob {
	return &ServiceAutocloseJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(),
		logger:  logger.With("component", "service_autoclose_job"),
	}
}

// Start schedules the autoclose run.
func (j *ServiceAutocloseJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		if err := j.handler.Handle(ctx, commands.NewCloseServiceCommand()); err != nil {
			// No open period means the staff already closed the day.
			if errors.Is(err, serviceperiod.ErrNoServiceOpen) {
				return
			}
			j.logger.ErrorContext(ctx, "Service autoclose job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Service period closed automatically")
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Service autoclose job started", "spec", j.spec)
	return nil
}

// Stop stops the autoclose job.
func (j *ServiceAutocloseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Service autoclose job stopped")
}
