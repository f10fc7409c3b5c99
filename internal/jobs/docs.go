// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
// The service is request driven, so jobs only observe state:
//
//   - BacklogReportJob logs order counts per lifecycle state
//
// # Usage
//
//	jobManager := jobs.NewJobManager(backlogHandler, "0 */5 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables the job.
package jobs
