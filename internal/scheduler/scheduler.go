package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/reshetovitsme/bump-notifier/internal/modules/notifier/domain"
	"github.com/reshetovitsme/bump-notifier/internal/shared/config"
	"github.com/robfig/cron/v3"
	"github.com/samber/oops"
)

// Runner performs one notifier run
type Runner interface {
	Run(ctx context.Context) (*domain.Report, error)
}

// Status is the outcome of the most recent run
type Status struct {
	Report *domain.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type Scheduler struct {
	ctx     context.Context
	cron    *cron.Cron
	spec    string
	timeout time.Duration
	runner  Runner
	log     *slog.Logger

	mu   sync.RWMutex
	last *Status
}

func New(ctx context.Context, cfg *config.Config, runner Runner, log *slog.Logger) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: log})),
	)

	return &Scheduler{
		ctx:     ctx,
		cron:    c,
		spec:    cfg.Schedule,
		timeout: cfg.RunTimeoutDuration(),
		runner:  runner,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		return oops.With("schedule", s.spec, "context", "failed to schedule notifier run").Wrap(err)
	}

	s.cron.Start()

	s.log.InfoContext(s.ctx, "Scheduler started",
		"schedule", s.spec,
		"runTimeout", s.timeout)

	return nil
}

// Stop stops scheduling new runs and waits for a running one to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	_, _ = s.RunNow(ctx)
}

// RunNow performs a run immediately and records its outcome.
func (s *Scheduler) RunNow(ctx context.Context) (*domain.Report, error) {
	report, err := s.runner.Run(ctx)

	status := &Status{Report: report}
	if err != nil {
		status.Error = err.Error()
		s.log.ErrorContext(ctx, "Notifier run failed",
			"error", err)
	}

	if report != nil {
		s.log.InfoContext(ctx, "Notifier run finished",
			"new", report.New,
			"bootstrapped", report.Bootstrapped,
			"sent", report.Sent(),
			"skipped", report.Skipped(),
			"failed", report.Failed(),
			"duration", report.FinishedAt.Sub(report.StartedAt))
	}

	s.mu.Lock()
	s.last = status
	s.mu.Unlock()

	return report, err
}

// LastRun returns the outcome of the most recent run, if any.
func (s *Scheduler) LastRun() (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return Status{}, false
	}
	return *s.last, true
}

// cronLogger routes cron's own messages to slog
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
