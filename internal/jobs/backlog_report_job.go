package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/queries"
)

// BacklogReader is implemented by queries.GetBacklogQueryHandler.
type BacklogReader interface {
	Handle(ctx context.Context, query queries.GetBacklogQuery) (queries.GetBacklogQueryResponse, error)
}

// BacklogReportJob periodically logs how many orders wait for a courier and how many
// are on the way. It never writes to the store.
type BacklogReportJob struct {
	reader   BacklogReader
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBacklogReportJob creates the job. schedule is a six-field cron spec with seconds.
func NewBacklogReportJob(reader BacklogReader, schedule string, logger *slog.Logger) *BacklogReportJob {
	return &BacklogReportJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "backlog_report_job"),
	}
}

// Start schedules the report. An invalid schedule is returned as an error.
func (j *BacklogReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog report job started", "schedule", j.schedule)
	return nil
}

// Run produces a single report.
func (j *BacklogReportJob) Run(ctx context.Context) {
	backlog, err := j.reader.Handle(ctx, queries.NewGetBacklogQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Backlog report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order backlog",
		"unassigned", backlog.Unassigned,
		"in_flight", backlog.InFlight,
		"completed", backlog.Completed,
	)
}

// Stop waits for a running report to finish.
func (j *BacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Backlog report job stopped")
}
