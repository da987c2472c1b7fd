package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-converter/internal/logging"
	"github.com/ytget/yt-converter/internal/model"
)

// Runner constants
const (
	DefaultEventBuffer = 64
	DefaultWaitDelay   = 2 * time.Second
	MaxLineSize        = 1024 * 1024
)

// ErrAlreadyStarted is returned when Start is called on a runner that left Idle
var ErrAlreadyStarted = errors.New("runner already started")

// Runner executes one Command and reports its output as events
type Runner struct {
	cmd        Command
	jobID      string
	env        []string
	bufferSize int
	logger     zerolog.Logger

	mu    sync.Mutex
	state model.JobState
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithJobID tags every emitted event with id
func WithJobID(id string) RunnerOption {
	return func(r *Runner) { r.jobID = id }
}

// WithEnv appends KEY=VALUE pairs to the child environment
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) { r.env = append(r.env, env...) }
}

// WithEventBuffer sets the capacity of the event channel
func WithEventBuffer(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.bufferSize = n
		}
	}
}

// NewRunner creates an idle runner for cmd
func NewRunner(cmd Command, opts ...RunnerOption) *Runner {
	r := &Runner{
		cmd:        cmd,
		bufferSize: DefaultEventBuffer,
		state:      model.JobStateIdle,
		logger:     logging.For("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state
func (r *Runner) State() model.JobState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(state model.JobState) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}

// Start spawns the process and returns the event channel. The channel must be
// drained: it yields every Status and Progress event, then exactly one
// Completed event, then it is closed. Cancelling ctx kills the process.
func (r *Runner) Start(ctx context.Context) (<-chan model.Event, error) {
	r.mu.Lock()
	if r.state != model.JobStateIdle {
		r.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	r.state = model.JobStateRunning
	r.mu.Unlock()

	cmd := exec.CommandContext(ctx, r.cmd.Path, r.cmd.Args...)
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	// Bounds the wait when a grandchild keeps the pipe open after a kill
	cmd.WaitDelay = DefaultWaitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	r.logger.Debug().Str("op", "runner/start").Str("job", r.jobID).Msgf("Executing: %s", r.cmd.String())
	if err := cmd.Start(); err != nil {
		pw.Close()
		r.setState(model.JobStateCompleted)
		r.logger.Error().Str("op", "runner/start").Str("job", r.jobID).Err(err).Msg("Error starting downloader")
		return nil, fmt.Errorf("failed to start %s: %w", r.cmd.Path, err)
	}

	events := make(chan model.Event, r.bufferSize)
	go r.run(ctx, cmd, pr, pw, events)
	return events, nil
}

// run reads the merged stream while waiting for the process, then sends Completed
func (r *Runner) run(ctx context.Context, cmd *exec.Cmd, pr *io.PipeReader, pw *io.PipeWriter, events chan<- model.Event) {
	defer close(events)

	var waitErr error
	var g errgroup.Group
	g.Go(func() error {
		waitErr = cmd.Wait()
		return pw.Close()
	})
	g.Go(func() error {
		return r.readOutput(pr, events)
	})
	readErr := g.Wait()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	// A cancel that lands after a clean exit does not turn it into a failure
	err := waitErr
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	} else if err == nil && readErr != nil {
		err = readErr
	}

	log := r.logger.Info()
	if err != nil {
		log = r.logger.Warn().Err(err)
	}
	log.Str("op", "runner/wait").Str("job", r.jobID).Int("exit_code", exitCode).Msg("Downloader exited")

	r.setState(model.JobStateCompleted)
	events <- model.CompletedEvent(r.jobID, exitCode, err)
}

// readOutput turns each non-empty line into a Status event and, when it
// carries a percentage, a Progress event.
func (r *Runner) readOutput(pr *io.PipeReader, events chan<- model.Event) error {
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	scanner.Split(ScanLinesOrCR)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		events <- model.StatusEvent(r.jobID, line)
		if percent, ok := ParseProgress(line); ok {
			events <- model.ProgressEvent(r.jobID, percent)
		}
	}

	if err := scanner.Err(); err != nil {
		// Keep the writer unblocked so the process can still be reaped
		_, _ = io.Copy(io.Discard, pr)
		return fmt.Errorf("read output: %w", err)
	}
	return nil
}
