package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
)

type MockBacklogReader struct{ mock.Mock }

func (m *MockBacklogReader) Handle(ctx context.Context, query queries.GetBacklogQuery) (queries.GetBacklogQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetBacklogQueryResponse), args.Error(1)
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestBacklogReportJob_Run_LogsCounts(t *testing.T) {
	var buf bytes.Buffer
	reader := new(MockBacklogReader)
	reader.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetBacklogQueryResponse{Unassigned: 4, InFlight: 2, Completed: 9}, nil).Once()

	jobs.NewBacklogReportJob(reader, "@every 1m", newLogger(&buf)).Run(t.Context())

	out := buf.String()
	assert.Contains(t, out, `"component":"backlog_report_job"`)
	assert.Contains(t, out, `"unassigned":4`)
	assert.Contains(t, out, `"in_flight":2`)
	assert.Contains(t, out, `"completed":9`)
	reader.AssertExpectations(t)
}

func TestBacklogReportJob_Run_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	reader := new(MockBacklogReader)
	reader.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetBacklogQueryResponse{}, errors.New("connection refused")).Once()

	jobs.NewBacklogReportJob(reader, "@every 1m", newLogger(&buf)).Run(t.Context())

	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestBacklogReportJob_Start_InvalidSchedule(t *testing.T) {
	var buf bytes.Buffer
	job := jobs.NewBacklogReportJob(new(MockBacklogReader), "every now and then", newLogger(&buf))

	require.Error(t, job.Start())
}

func TestJobManager_EmptyScheduleDisablesBacklogReport(t *testing.T) {
	var buf bytes.Buffer
	reader := new(MockBacklogReader)
	jm := jobs.NewJobManager(reader, "", newLogger(&buf))

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Contains(t, buf.String(), "Backlog report job disabled")
	reader.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestJobManager_StartAndStop(t *testing.T) {
	var buf bytes.Buffer
	jm := jobs.NewJobManager(new(MockBacklogReader), "0 0 3 * * *", newLogger(&buf))

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Contains(t, buf.String(), "Backlog report job started")
	assert.Contains(t, buf.String(), "Backlog report job stopped")
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	var buf bytes.Buffer
	jm := jobs.NewJobManager(new(MockBacklogReader), "61 * * * * *", newLogger(&buf))

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start backlog report job")
}
