package model

// EventKind distinguishes the three notifications a job emits
type EventKind int

const (
	// EventStatus carries one trimmed line of tool output
	EventStatus EventKind = iota

	// EventProgress carries a percentage extracted from a line
	EventProgress

	// EventCompleted is sent exactly once, after every other event of the job
	EventCompleted
)

// String returns a short name for logs
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Event is a single notification from a running job
type Event struct {
	Kind     EventKind
	JobID    string
	Line     string // EventStatus
	Percent  int    // EventProgress, 0 to 100
	ExitCode int    // EventCompleted, -1 if the process did not exit normally
	Err      error  // EventCompleted, start or wait error if any
}

// StatusEvent builds an EventStatus
func StatusEvent(jobID, line string) Event {
	return Event{Kind: EventStatus, JobID: jobID, Line: line}
}

// ProgressEvent builds an EventProgress
func ProgressEvent(jobID string, percent int) Event {
	return Event{Kind: EventProgress, JobID: jobID, Percent: percent}
}

// CompletedEvent builds an EventCompleted
func CompletedEvent(jobID string, exitCode int, err error) Event {
	return Event{Kind: EventCompleted, JobID: jobID, ExitCode: exitCode, Err: err}
}

// Succeeded reports whether a completed event describes a clean exit
func (e Event) Succeeded() bool {
	return e.Kind == EventCompleted && e.ExitCode == 0 && e.Err == nil
}
