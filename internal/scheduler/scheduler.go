// Package scheduler runs named background jobs on fixed intervals. It is an
// explicit object constructed once at process start; the tick source is
// injectable so firing logic can be tested without wall-clock waiting.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a periodic unit of work. Run must honor ctx cancellation and return
// promptly once the context is done.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// tickerFunc returns a tick channel for the given interval plus a stop
// function. Production uses time.Ticker; tests inject their own channel.
type tickerFunc func(d time.Duration) (<-chan time.Time, func())

// Scheduler owns its tick handlers and runs each registered job on its own
// goroutine until the context is cancelled.
type Scheduler struct {
	mu        sync.Mutex
	jobs      []Job
	newTicker tickerFunc
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// New creates a Scheduler backed by time.Ticker.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		logger: logger,
	}
}

// NewWithTicker creates a Scheduler with a custom tick source.
func NewWithTicker(logger *slog.Logger, newTicker func(d time.Duration) (<-chan time.Time, func())) *Scheduler {
	return &Scheduler{
		newTicker: newTicker,
		logger:    logger,
	}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

// Start launches one goroutine per registered job and returns immediately.
// Jobs run until ctx is cancelled; a failing run is logged and the job waits
// for its next tick.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
	s.logger.Info("Scheduler started", slog.Int("jobs", len(jobs)))
}

// Wait blocks until all job goroutines have exited after cancellation.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticks, stop := s.newTicker(job.Interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			s.runJob(ctx, job)
		}
	}
}

// runJob executes one tick of a job. Each tick runs to completion; there is no
// mid-flight cancellation beyond what the job itself takes from ctx.
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("Scheduled job failed",
			slog.String("job", job.Name),
			slog.String("error", err.Error()),
		)
		return
	}
	s.logger.Info("Scheduled job completed",
		slog.String("job", job.Name),
		slog.Duration("took", time.Since(start)),
	)
}
