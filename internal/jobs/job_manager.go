package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	backlogReportJob *BacklogReportJob
	logger           *slog.Logger
}

// NewJobManager wires the jobs. An empty backlogSchedule disables the backlog report.
func NewJobManager(backlog BacklogReader, backlogSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{logger: logger}
	if backlogSchedule != "" {
		jm.backlogReportJob = NewBacklogReportJob(backlog, backlogSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.backlogReportJob == nil {
		jm.logger.Info("Backlog report job disabled")
		return nil
	}

	if err := jm.backlogReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start backlog report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.backlogReportJob != nil {
		jm.backlogReportJob.Stop()
	}
}
