// Package controller provides output adapters for displaying test runs.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "minitest.dev/runner/internal/model"
)

// Reporter receives the structured events of a class run in the order the
// engine produces them.
type Reporter interface {
	ClassHeader(ctx context.Context, class string)
	StructuralErrors(ctx context.Context, class string, errs []m.StructuralError)
	MethodHeader(ctx context.Context, class, method string)
	TestOutcome(ctx context.Context, outcome m.Outcome)
	// Description reports a class description when method is empty.
	Description(ctx context.Context, class, method, text string)
	ClassSummary(ctx context.Context, summary m.Summary)
}

// Sink is a Reporter that is also told about classes stopped by a fatal abort.
type Sink interface {
	Reporter
	FatalAbort(ctx context.Context, class, test, reason string)
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeView
)

const defaultFieldWidth = 48

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode       StartMode
	plain      bool
	fieldWidth int
}

func newStartConfig(options []StartOption) StartConfig {
	config := StartConfig{mode: ModeRun, fieldWidth: defaultFieldWidth}
	for _, option := range options {
		option(&config)
	}

	return config
}

// WithRunMode sets the UI to live test execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to replay a recorded run.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithPlainOutput disables colours and text attributes.
func WithPlainOutput(plain bool) StartOption {
	return func(c *StartConfig) {
		c.plain = plain
	}
}

// WithFieldWidth sets the width of the label column. Values below 1 keep the default.
func WithFieldWidth(width int) StartOption {
	return func(c *StartConfig) {
		if width > 0 {
			c.fieldWidth = width
		}
	}
}

// UI defines the interface for displaying test runs.
// Implementations can use different output methods (simple text, styled console, etc).
type UI interface {
	Sink
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayPlan(ctx context.Context, plans []m.ClassPlan) error
	DisplayRunSummary(ctx context.Context, report m.RunReport)
}

// NewUI returns a styled console UI on terminals and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewConsoleUI(cmd.OutOrStdout(), true)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
