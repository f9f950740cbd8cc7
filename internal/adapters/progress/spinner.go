package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// SpinnerSink renders deployment progress as a spinner on stderr
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

// stages shown in the spinner suffix, in order
var trackedStages = map[usecase.ExecutionStage]bool{
	usecase.StageSimulating:   true,
	usecase.StageBroadcasting: true,
	usecase.StageConfirming:   true,
	usecase.StageCompleted:    true,
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.advance(event)

	if event.Spinner {
		r.spinner.Suffix = " " + r.suffix()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Stage == usecase.StageCompleted {
		color.New(color.FgGreen).Fprintf(r.out, "✓ %s\n", event.Message)
		return
	}
	if event.Message != "" {
		color.New(color.Faint).Fprintln(r.out, event.Message)
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message and stops the spinner
func (r *SpinnerSink) Error(message string) {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	color.New(color.FgRed).Fprintln(r.out, "✗ "+message)
}

func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

// advance closes the running stage when a new one begins
func (r *SpinnerSink) advance(event usecase.ProgressEvent) {
	now := time.Now()
	if n := len(r.stages); n > 0 && r.stages[n-1].Stage == event.Stage {
		r.stages[n-1].Message = event.Message
		return
	}
	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() {
		r.stages[n-1].EndTime = now
	}
	r.stages = append(r.stages, stageInfo{
		Stage:     event.Stage,
		StartTime: now,
		Message:   event.Message,
	})
}

func (r *SpinnerSink) suffix() string {
	var parts []string
	for _, stage := range r.stages {
		if !trackedStages[stage.Stage] {
			continue
		}
		if stage.EndTime.IsZero() {
			parts = append(parts, fmt.Sprintf("● %s", color.New(color.FgYellow).Sprint(stage.Message)))
			continue
		}
		parts = append(parts, fmt.Sprintf("✓ %s (%s)",
			color.New(color.FgGreen).Sprint(stage.Stage),
			stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond),
		))
	}
	return strings.Join(parts, " → ")
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
