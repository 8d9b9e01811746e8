package jobs

import (
	"context"
	"errors"
	"log/slog"

	"mealroute/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RoutePlanningJob manages the scheduled planning of delivery routes.
// Runs every minute to turn READY orders into per-branch delivery tours.
type RoutePlanningJob struct {
	handler commands.PlanRoutesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRoutePlanningJob creates a new job for planning delivery routes.
// Uses PlanRoutesCommandHandler to run a full planning pass every minute.
func NewRoutePlanningJob(handler commands.PlanRoutesCommandHandler, logger *slog.Logger) *RoutePlanningJob {
	return &RoutePlanningJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "route_planning_job"),
	}
}

// Start begins the route planning job to run every minute.
func (j *RoutePlanningJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewPlanRoutesCommand()

		routes, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// An empty pass is a normal outcome, not a system issue.
			if !errors.Is(err, commands.ErrNoReadyOrders) {
				j.logger.ErrorContext(ctx, "Route planning job failed", "error", err)
			}
			return
		}

		for _, route := range routes {
			j.logger.InfoContext(ctx, "Route planned",
				"restaurantId", route.RestaurantID.String(),
				"branchId", route.BranchID.String(),
				"orders", len(route.OrderIDs),
				"stops", len(route.Stops),
				"distanceKm", route.DistanceKm,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route planning job started (running every minute)")
	return nil
}

// Stop stops the route planning job.
func (j *RoutePlanningJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route planning job stopped")
}
