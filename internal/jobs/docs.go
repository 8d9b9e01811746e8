// Package jobs provides scheduled background tasks for the routing core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the meal routing service needs.
//
// # Available Jobs
//
// 1. RoutePlanningJob - Runs every minute to group READY orders per branch
// and approximate a delivery route for each group.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(planRoutesHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The planning job treats an empty planning pass (no READY orders) as a
// normal outcome and stays silent; every other error is logged.
package jobs
