package download

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ytget/yt-converter/internal/model"
)

const eventTimeout = 15 * time.Second

// collect drains events until the channel closes
func collect(t *testing.T, events <-chan model.Event) []model.Event {
	t.Helper()
	var out []model.Event
	deadline := time.After(eventTimeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			t.Fatalf("timed out waiting for events, got %d so far", len(out))
			return out
		}
	}
}

func kinds(events []model.Event, kind model.EventKind) []model.Event {
	var out []model.Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestRunner_LinesThenSingleCompleted(t *testing.T) {
	for _, exitCode := range []int{0, 3} {
		t.Run(fmt.Sprintf("exit %d", exitCode), func(t *testing.T) {
			const n = 5
			runner := NewRunner(helperCommand(fmt.Sprintf("fake://lines?n=%d&exit=%d", n, exitCode)),
				WithEnv(helperEnv), WithJobID("job-test"))

			events, err := runner.Start(context.Background())
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			got := collect(t, events)

			statuses := kinds(got, model.EventStatus)
			if len(statuses) != n {
				t.Fatalf("expected %d status events, got %d: %+v", n, len(statuses), got)
			}
			for i, ev := range statuses {
				if want := fmt.Sprintf("line %d", i+1); ev.Line != want {
					t.Errorf("status %d: expected %q, got %q", i, want, ev.Line)
				}
				if ev.JobID != "job-test" {
					t.Errorf("expected job id on event, got %q", ev.JobID)
				}
			}

			completed := kinds(got, model.EventCompleted)
			if len(completed) != 1 {
				t.Fatalf("expected exactly one completed event, got %d", len(completed))
			}
			if got[len(got)-1].Kind != model.EventCompleted {
				t.Errorf("completed must be the last event, got %s", got[len(got)-1].Kind)
			}
			if completed[0].ExitCode != exitCode {
				t.Errorf("expected exit code %d, got %d", exitCode, completed[0].ExitCode)
			}
			if completed[0].Succeeded() != (exitCode == 0) {
				t.Errorf("Succeeded() = %v for exit code %d", completed[0].Succeeded(), exitCode)
			}
			if len(kinds(got, model.EventProgress)) != 0 {
				t.Error("lines without percentages must not produce progress events")
			}
			if runner.State() != model.JobStateCompleted {
				t.Errorf("expected runner state Completed, got %s", runner.State())
			}
		})
	}
}

func TestRunner_ProgressFromCarriageReturns(t *testing.T) {
	runner := NewRunner(helperCommand("fake://progress"), WithEnv(helperEnv))

	events, err := runner.Start(context.Background())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	got := collect(t, events)

	progress := kinds(got, model.EventProgress)
	var percents []int
	for _, ev := range progress {
		percents = append(percents, ev.Percent)
	}
	expected := []int{0, 45, 100}
	if fmt.Sprint(percents) != fmt.Sprint(expected) {
		t.Errorf("expected progress %v, got %v", expected, percents)
	}

	// every progress event follows the status event of the same line
	for i, ev := range got {
		if ev.Kind == model.EventProgress {
			if i == 0 || got[i-1].Kind != model.EventStatus {
				t.Errorf("progress event at %d is not preceded by its status line", i)
			}
		}
	}

	statuses := kinds(got, model.EventStatus)
	if len(statuses) != 6 {
		t.Errorf("expected 6 status lines, got %d", len(statuses))
	}
	if !got[len(got)-1].Succeeded() {
		t.Errorf("expected clean exit, got %+v", got[len(got)-1])
	}
}

func TestRunner_CancelKillsProcess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := NewRunner(helperCommand("fake://sleep"), WithEnv(helperEnv))
	events, err := runner.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Kind != model.EventStatus || ev.Line != "started" {
			t.Fatalf("expected started status, got %+v", ev)
		}
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for first line")
	}

	cancel()
	got := collect(t, events)
	if len(got) != 1 || got[0].Kind != model.EventCompleted {
		t.Fatalf("expected a single completed event after cancel, got %+v", got)
	}
	if got[0].Succeeded() {
		t.Error("cancelled job must not report success")
	}
	if !errors.Is(got[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", got[0].Err)
	}
}

func TestRunner_CancelAfterCleanExitKeepsSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unbuffered channel holds the reader on its first line while the process exits
	runner := NewRunner(helperCommand("fake://lines?n=1&exit=0"),
		WithEnv(helperEnv), WithEventBuffer(0), WithJobID("job-test"))
	events, err := runner.Start(ctx)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	time.Sleep(time.Second)
	cancel()

	got := collect(t, events)
	if len(got) == 0 {
		t.Fatal("expected events")
	}
	last := got[len(got)-1]
	if last.Kind != model.EventCompleted {
		t.Fatalf("expected completed event last, got %+v", last)
	}
	if last.ExitCode != 0 || last.Err != nil {
		t.Errorf("expected clean exit to survive a late cancel, got code %d err %v", last.ExitCode, last.Err)
	}
	if !last.Succeeded() {
		t.Error("expected success")
	}
}

func TestRunner_StartTwice(t *testing.T) {
	runner := NewRunner(helperCommand("fake://lines?n=1&exit=0"), WithEnv(helperEnv))

	events, err := runner.Start(context.Background())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := runner.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
	collect(t, events)
}

func TestRunner_MissingBinary(t *testing.T) {
	runner := NewRunner(Command{Path: "/nonexistent/yt-dlp-missing", Args: []string{"--version"}})

	events, err := runner.Start(context.Background())
	if err == nil {
		t.Fatal("expected start error for missing binary")
	}
	if events != nil {
		t.Error("expected no event channel when the process cannot start")
	}
	if runner.State() != model.JobStateCompleted {
		t.Errorf("expected state Completed after failed start, got %s", runner.State())
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	runner := NewRunner(Command{Path: "yt-dlp"})

	if runner.State() != model.JobStateIdle {
		t.Errorf("expected Idle, got %s", runner.State())
	}
	if runner.bufferSize != DefaultEventBuffer {
		t.Errorf("expected buffer %d, got %d", DefaultEventBuffer, runner.bufferSize)
	}

	unbuffered := NewRunner(Command{Path: "yt-dlp"}, WithEventBuffer(0))
	if unbuffered.bufferSize != 0 {
		t.Errorf("expected buffer 0, got %d", unbuffered.bufferSize)
	}
}
