package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-converter/internal/logging"
	"github.com/ytget/yt-converter/internal/model"
)

// JobIDPrefix prefixes every generated job ID
const JobIDPrefix = "job-"

// Service errors
var (
	ErrJobActive    = errors.New("a download is already running")
	ErrJobNotFound  = errors.New("job not found")
	ErrJobNotActive = errors.New("job is not running")
)

// activeJob is the single running job and the handle that stops it
type activeJob struct {
	job    *model.Job
	cancel context.CancelFunc
}

// Service runs at most one downloader job at a time and keeps a history
type Service struct {
	toolPath   string
	toolArgs   []string
	extraArgs  []string
	runnerOpts []RunnerOption

	jobs      map[string]*model.Job
	order     []string
	active    *activeJob
	jobsMutex sync.RWMutex

	onUpdate func(model.Job) // callback for UI updates
	logger   zerolog.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithRunnerOptions passes options to every runner the service creates
func WithRunnerOptions(opts ...RunnerOption) ServiceOption {
	return func(s *Service) { s.runnerOpts = append(s.runnerOpts, opts...) }
}

// WithExtraArgs adds downloader options to every command, ahead of the URL
func WithExtraArgs(args ...string) ServiceOption {
	return func(s *Service) { s.extraArgs = append(s.extraArgs, args...) }
}

// NewService creates a new download service for the given downloader binary
func NewService(toolPath string, opts ...ServiceOption) *Service {
	s := &Service{
		toolPath: toolPath,
		jobs:     make(map[string]*model.Job),
		logger:   logging.For("download"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(model.Job)) {
	s.jobsMutex.Lock()
	s.onUpdate = callback
	s.jobsMutex.Unlock()
}

// SetTool configures the downloader binary and any leading arguments
func (s *Service) SetTool(path string, prefixArgs ...string) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.toolPath = path
	s.toolArgs = append([]string(nil), prefixArgs...)
}

// Submit validates req, starts its process and returns a snapshot of the new
// job with the channel its events arrive on. It is refused with ErrJobActive
// while another job is running.
func (s *Service) Submit(ctx context.Context, req model.DownloadRequest) (model.Job, <-chan model.Event, error) {
	req = req.Normalized()

	s.jobsMutex.Lock()
	if s.active != nil {
		s.jobsMutex.Unlock()
		return model.Job{}, nil, ErrJobActive
	}

	cmd, err := BuildCommand(s.toolPath, req)
	if err != nil {
		s.jobsMutex.Unlock()
		return model.Job{}, nil, err
	}
	cmd = cmd.WithArgs(s.extraArgs...).WithPrefix(s.toolArgs...)

	job := model.NewJob(generateJobID(), req, cmd.String())
	runCtx, cancel := context.WithCancel(ctx)
	opts := append([]RunnerOption{WithJobID(job.ID)}, s.runnerOpts...)
	runner := NewRunner(cmd, opts...)

	job.StartedAt = time.Now()
	events, err := runner.Start(runCtx)
	if err != nil {
		cancel()
		job.State = model.JobStateCompleted
		job.LastError = err.Error()
		job.FinishedAt = time.Now()
		s.store(job)
		snapshot := *job
		s.jobsMutex.Unlock()
		s.notifyUpdate(snapshot)
		return snapshot, nil, err
	}

	job.State = model.JobStateRunning
	s.store(job)
	s.active = &activeJob{job: job, cancel: cancel}
	snapshot := *job
	s.jobsMutex.Unlock()

	s.logger.Info().Str("op", "download/submit").Str("job", job.ID).Msgf("Started: %s", job.Command)
	s.notifyUpdate(snapshot)

	out := make(chan model.Event, DefaultEventBuffer)
	go s.forward(job, events, out, cancel)
	return snapshot, out, nil
}

// forward folds events into the job record and passes them on. The job
// stops being active before its Completed event is delivered.
func (s *Service) forward(job *model.Job, events <-chan model.Event, out chan<- model.Event, cancel context.CancelFunc) {
	defer close(out)
	defer cancel()

	for ev := range events {
		s.jobsMutex.Lock()
		job.Apply(ev)
		if ev.Kind == model.EventCompleted && s.active != nil && s.active.job == job {
			s.active = nil
		}
		snapshot := *job
		s.jobsMutex.Unlock()

		if ev.Kind == model.EventCompleted {
			s.logger.Info().Str("op", "download/complete").Str("job", job.ID).
				Str("state", snapshot.State.String()).Int("exit_code", ev.ExitCode).Msg("Job finished")
		}
		s.notifyUpdate(snapshot)
		out <- ev
	}
}

// Cancel terminates the running job's process
func (s *Service) Cancel(id string) error {
	s.jobsMutex.Lock()
	job, exists := s.jobs[id]
	if !exists {
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if s.active == nil || s.active.job != job || !job.State.IsActive() {
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotActive, job.State)
	}
	job.State = model.JobStateCancelled
	cancel := s.active.cancel
	snapshot := *job
	s.jobsMutex.Unlock()

	s.logger.Info().Str("op", "download/cancel").Str("job", id).Msg("Cancelling job")
	cancel()
	s.notifyUpdate(snapshot)
	return nil
}

// Shutdown cancels the running job, if any
func (s *Service) Shutdown() {
	s.jobsMutex.RLock()
	active := s.active
	s.jobsMutex.RUnlock()
	if active != nil {
		_ = s.Cancel(active.job.ID)
	}
}

// Active returns the running job
func (s *Service) Active() (model.Job, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	if s.active == nil {
		return model.Job{}, false
	}
	return *s.active.job, true
}

// Get returns a job by ID
func (s *Service) Get(id string) (model.Job, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	if !exists {
		return model.Job{}, false
	}
	return *job, true
}

// Jobs returns every job submitted so far, newest first
func (s *Service) Jobs() []model.Job {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	jobs := make([]model.Job, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		jobs = append(jobs, *s.jobs[s.order[i]])
	}
	return jobs
}

// store records a job; caller holds jobsMutex
func (s *Service) store(job *model.Job) {
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(job model.Job) {
	s.jobsMutex.RLock()
	callback := s.onUpdate
	s.jobsMutex.RUnlock()
	if callback != nil {
		callback(job)
	}
}

// generateJobID generates a unique, time ordered job ID using UUID v7
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
