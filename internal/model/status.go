package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// JobStateIdle means the job has been built but its process is not running yet
	JobStateIdle JobState = "Idle"

	// JobStateRunning means the downloader process is alive and streaming output
	JobStateRunning JobState = "Running"

	// JobStateCompleted means the process exited and its exit was observed
	JobStateCompleted JobState = "Completed"

	// JobStateCancelled means the process was terminated on request
	JobStateCancelled JobState = "Cancelled"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true while the job owns a live process
func (js JobState) IsActive() bool {
	return js == JobStateRunning
}

// IsFinished returns true if the job has reached a terminal state (completed or cancelled)
func (js JobState) IsFinished() bool {
	return js == JobStateCompleted || js == JobStateCancelled
}
