package scheduler

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  atomic.Int32
	report *domain.Report
	err    error
	block  chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) (*domain.Report, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
		}
	}
	return f.report, f.err
}

func newTestScheduler(runner Runner, schedule string) *Scheduler {
	return New(context.Background(), &config.Config{Schedule: schedule, RunTimeout: 5}, runner, slog.Default())
}

func TestRunNowRecordsLastRun(t *testing.T) {
	runner := &fakeRunner{report: &domain.Report{New: true}}
	s := newTestScheduler(runner, "@every 1h")

	_, ok := s.LastRun()
	assert.False(t, ok)

	report, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.True(t, report.New)

	status, ok := s.LastRun()
	require.True(t, ok)
	assert.True(t, status.Report.New)
	assert.Empty(t, status.Error)
}

func TestRunNowRecordsError(t *testing.T) {
	runner := &fakeRunner{report: &domain.Report{}, err: stderrors.New("feed down")}
	s := newTestScheduler(runner, "@every 1h")

	_, err := s.RunNow(context.Background())
	require.Error(t, err)

	status, ok := s.LastRun()
	require.True(t, ok)
	assert.Equal(t, "feed down", status.Error)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := newTestScheduler(&fakeRunner{}, "not a cron spec")
	assert.Error(t, s.Start())
}

func TestScheduledRunsDoNotOverlap(t *testing.T) {
	runner := &fakeRunner{report: &domain.Report{}, block: make(chan struct{})}
	s := newTestScheduler(runner, "@every 1s")

	require.NoError(t, s.Start())

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	// Further ticks are skipped while the first run is blocked.
	time.Sleep(2200 * time.Millisecond)
	assert.Equal(t, int32(1), runner.calls.Load())

	close(runner.block)
	s.Stop()
}
