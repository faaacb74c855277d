package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-viewer/internal/usecase"
)

// SpinnerProgressReporter shows load progress for the fetch command as a
// spinner with the stages of the current load
type SpinnerProgressReporter struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     os.Stderr,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Stage {
	case "checking":
		// a new load starts with the code check
		r.stages = nil
		r.startStage(event.Stage)
	case "fetching":
		if len(r.stages) == 0 || r.stages[len(r.stages)-1].Stage != "checking" {
			r.stages = nil
		}
		r.startStage(event.Stage)
	case "failed":
		r.endStage("failed")
	case "complete":
		r.endStage("completed")
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display() + "  " + color.New(color.Faint).Sprint(event.Message)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Stage == "complete" {
		fmt.Fprintf(r.out, "%s %s\n", r.display(), event.Message)
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printMessage(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printMessage(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) printMessage(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) startStage(stage string) {
	r.endStage("completed")
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: time.Now(),
		Status:    "running",
	})
}

func (r *SpinnerProgressReporter) endStage(status string) {
	if len(r.stages) == 0 {
		return
	}
	last := &r.stages[len(r.stages)-1]
	if last.Status != "running" {
		return
	}
	last.EndTime = time.Now()
	last.Status = status
}

// display renders the stages of the current load
func (r *SpinnerProgressReporter) display() string {
	var display string

	for i, stage := range r.stages {
		var stageName string
		switch stage.Stage {
		case "checking":
			stageName = "Checking"
		case "fetching":
			stageName = "Fetching"
		default:
			continue
		}

		var icon string
		var stageColor *color.Color
		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		case "failed":
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(stageName), duration)
	}

	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
