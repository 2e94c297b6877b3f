package maintenance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

var (
	// ErrUnknownJob is returned by RunNow for names no job was registered under.
	ErrUnknownJob = errors.New("unknown maintenance job")

	// ErrInvalidJob is returned by NewScheduler for jobs without a name or a run function.
	ErrInvalidJob = errors.New("invalid maintenance job")

	// ErrDuplicateJob is returned by NewScheduler when two jobs share a name.
	ErrDuplicateJob = errors.New("duplicate maintenance job")

	// ErrAlreadyStarted is returned by Start when the scheduler is running.
	ErrAlreadyStarted = errors.New("scheduler already started")
)

// RunFunc runs one pass of a sweep.
type RunFunc func(ctx context.Context) (shell.HandlerResult, error)

// Job is a sweep that runs once a day at a wall-clock time.
type Job struct {
	Name string
	At   string // "HH:MM", 24h clock
	Run  RunFunc
}

// SweepRunner adapts a sweep handler, observable or not, into a RunFunc that always sends the same command.
func SweepRunner[C shell.Command, R shell.Result](handler shell.CoreCommandHandler[C, R], command C) RunFunc {
	return func(ctx context.Context) (shell.HandlerResult, error) {
		result, err := handler.Handle(ctx, command)

		return result.Outcome(), err
	}
}

type scheduledJob struct {
	name string
	at   TimeOfDay
	run  RunFunc
	mu   sync.Mutex
}

// Scheduler triggers its jobs daily, each from its own goroutine.
type Scheduler struct {
	jobs             []*scheduledJob
	byName           map[string]*scheduledJob
	location         *time.Location
	clock            circulation.Clock
	after            func(time.Duration) <-chan time.Time
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option defines a functional option for configuring a Scheduler.
type Option func(*Scheduler) error

// WithLocation sets the time zone the job times are interpreted in. The default is UTC.
func WithLocation(location *time.Location) Option {
	return func(s *Scheduler) error {
		if location == nil {
			return errors.New("location must not be nil")
		}

		s.location = location
		return nil
	}
}

// WithClock sets the source of "now" used to compute the next run.
func WithClock(clock circulation.Clock) Option {
	return func(s *Scheduler) error {
		s.clock = clock
		return nil
	}
}

// WithLogger sets the logger for scheduling decisions and job outcomes.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Scheduler) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(s *Scheduler) error {
		s.contextualLogger = logger
		return nil
	}
}

// NewScheduler validates the jobs and creates a stopped Scheduler.
func NewScheduler(jobs []Job, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		byName:   make(map[string]*scheduledJob, len(jobs)),
		location: time.UTC,
		clock:    circulation.SystemClock{},
		after:    time.After,
	}

	for _, job := range jobs {
		if job.Name == "" || job.Run == nil {
			return nil, errors.Join(ErrInvalidJob, errors.New("a job needs a name and a run function"))
		}

		if _, exists := s.byName[job.Name]; exists {
			return nil, errors.Join(ErrDuplicateJob, errors.New(job.Name))
		}

		at, err := ParseTimeOfDay(job.At)
		if err != nil {
			return nil, errors.Join(ErrInvalidJob, err)
		}

		scheduled := &scheduledJob{name: job.Name, at: at, run: job.Run}
		s.jobs = append(s.jobs, scheduled)
		s.byName[job.Name] = scheduled
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Jobs returns the job names in registration order.
func (s *Scheduler) Jobs() []string {
	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.name)
	}

	return names
}

// Start launches one goroutine per job. They run until ctx is canceled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}

	return nil
}

// Stop cancels all job goroutines and waits for them, including a run in progress.
// Stopping a scheduler that was never started is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	s.wg.Wait()
}

// RunNow runs the named job synchronously. It waits for a scheduled run of the same job to finish first.
func (s *Scheduler) RunNow(ctx context.Context, name string) (shell.HandlerResult, error) {
	job, ok := s.byName[name]
	if !ok {
		return shell.HandlerResult{}, errors.Join(ErrUnknownJob, errors.New(name))
	}

	return s.execute(ctx, job)
}

func (s *Scheduler) loop(ctx context.Context, job *scheduledJob) {
	defer s.wg.Done()

	for {
		now := s.clock.Now()
		next := job.at.NextRun(now, s.location)
		s.logDebug(ctx, logMsgJobScheduled, logAttrJob, job.name, logAttrNextRun, next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return
		case <-s.after(next.Sub(now)):
			_, _ = s.execute(ctx, job) // outcome is logged
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job *scheduledJob) (shell.HandlerResult, error) {
	job.mu.Lock()
	defer job.mu.Unlock()

	start := time.Now()
	result, err := job.run(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logError(ctx, logMsgJobFailed, err,
			logAttrJob, job.name, logAttrDurationMS, shell.ToMilliseconds(duration))

		return result, err
	}

	s.logInfo(ctx, logMsgJobCompleted,
		logAttrJob, job.name,
		logAttrDurationMS, shell.ToMilliseconds(duration),
		logAttrIdempotent, result.Idempotent,
		logAttrMessage, result.Message,
	)

	return result, nil
}
