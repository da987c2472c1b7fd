package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Job represents one run of the external downloader
type Job struct {
	ID         string
	Request    DownloadRequest
	Command    string // display form of the invocation
	State      JobState
	Percent    int       // 0 to 100, latest progress seen
	LastLine   string    // latest status line
	ExitCode   int       // -1 until the exit is observed
	LastError  string    // start or wait error if any
	StartedAt  time.Time // when the process was spawned
	FinishedAt time.Time // when the exit was observed
}

// NewJob creates an idle job for a request
func NewJob(id string, req DownloadRequest, command string) *Job {
	return &Job{
		ID:       id,
		Request:  req,
		Command:  command,
		State:    JobStateIdle,
		ExitCode: -1,
	}
}

// Apply folds an event into the job record
func (j *Job) Apply(ev Event) {
	switch ev.Kind {
	case EventStatus:
		j.LastLine = ev.Line
	case EventProgress:
		j.Percent = ev.Percent
	case EventCompleted:
		j.ExitCode = ev.ExitCode
		if ev.Err != nil {
			j.LastError = ev.Err.Error()
		}
		switch {
		case errors.Is(ev.Err, context.Canceled):
			j.State = JobStateCancelled
		case j.State != JobStateCancelled:
			j.State = JobStateCompleted
		}
		if ev.Succeeded() {
			j.Percent = 100
		}
		j.FinishedAt = time.Now()
	}
}

// Succeeded reports whether the job finished with a clean exit
func (j *Job) Succeeded() bool {
	return j.State == JobStateCompleted && j.ExitCode == 0 && j.LastError == ""
}

// GetElapsedString returns the run time formatted as hh:mm:ss or mm:ss, or "—" if not started
func (j *Job) GetElapsedString() string {
	if j.StartedAt.IsZero() {
		return "—"
	}
	end := j.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}

	total := int(end.Sub(j.StartedAt).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns a short label for the job: the URL without scheme
func (j *Job) GetDisplayTitle() string {
	title := strings.TrimSpace(j.Request.URL)
	title = strings.TrimPrefix(title, "https://")
	title = strings.TrimPrefix(title, "http://")
	return strings.TrimPrefix(title, "www.")
}
