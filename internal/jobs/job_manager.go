package jobs

import (
	"fmt"
	"log/slog"

	"mealroute/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	routePlanningJob *RoutePlanningJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	planRoutesHandler commands.PlanRoutesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		routePlanningJob: NewRoutePlanningJob(planRoutesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.routePlanningJob.Start(); err != nil {
		return fmt.Errorf("failed to start route planning job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.routePlanningJob.Stop()
}
