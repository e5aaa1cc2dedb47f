package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"minitest.dev/runner/internal/adapter"
	"minitest.dev/runner/internal/controller"
	"minitest.dev/runner/internal/metrics"
	m "minitest.dev/runner/internal/model"
	"minitest.dev/runner/pkg/minitest"
)

// ErrTestsFailed is returned by Run when a test failed or a class was aborted.
var ErrTestsFailed = errors.New("tests failed")

// RunArgs contains the arguments for running every provided test class.
type RunArgs struct {
	Output     m.Path
	Plain      bool
	FieldWidth int
	Metrics    bool
}

// ListArgs contains the arguments for listing execution plans.
type ListArgs struct {
	Plain      bool
	FieldWidth int
}

// ViewArgs contains the arguments for replaying the last recorded run.
type ViewArgs struct {
	Output     m.Path
	Plain      bool
	FieldWidth int
}

// Workflow drives the runner commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ModuleProvider
	adapter.ReportStore
	controller.UI

	metrics metrics.Recorder
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	provider adapter.ModuleProvider,
	reportStore adapter.ReportStore,
	ui controller.UI,
	recorder metrics.Recorder,
) Workflow {
	if recorder == nil {
		recorder = metrics.NewNopRecorder()
	}

	return &workflow{
		ModuleProvider: provider,
		ReportStore:    reportStore,
		UI:             ui,
		metrics:        recorder,
	}
}

// Run classifies and runs every provided class in order. A fatal abort stops
// only its own class. The run is journaled and its report saved to args.Output.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	classes, err := w.Classes(ctx)
	if err != nil {
		return fmt.Errorf("get test classes: %w", err)
	}

	report := m.RunReport{ID: uuid.NewString(), StartedAt: time.Now()}

	journal, err := w.CreateJournal(args.Output, report.ID)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}

	defer func() {
		if err := journal.Close(); err != nil {
			slog.Error("Failed to close journal", "path", journal.Path(), "error", err)
		}
	}()

	report.Journal = filepath.Base(journal.Path())

	if err := w.Start(ctx, controller.WithRunMode(),
		controller.WithPlainOutput(args.Plain), controller.WithFieldWidth(args.FieldWidth)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	recorder := controller.NewRecorder(journal)

	sinks := []controller.Sink{w.UI, recorder}
	if args.Metrics {
		sinks = append(sinks, w.metrics)
	}

	sink := controller.Tee(sinks...)

	slog.Info("starting run", "run_id", report.ID, "classes", len(classes))

	for _, class := range classes {
		report.Classes = append(report.Classes, w.runClass(ctx, class, sink))
	}

	report.Duration = time.Since(report.StartedAt)

	if err := recorder.Err(); err != nil {
		slog.Warn("journal is incomplete", "run_id", report.ID, "error", err)
	}

	w.DisplayRunSummary(ctx, report)
	w.Wait(ctx)

	if err := w.SaveReport(args.Output, report); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	if args.Metrics {
		w.metrics.RecordRun(report)

		if err := w.metrics.WriteTextfile(filepath.Join(string(args.Output), metrics.TextfileName)); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	considered, passed := report.Totals()
	slog.Info("finished run", "run_id", report.ID, "considered", considered, "passed", passed,
		"aborted", report.Aborted(), "duration", report.Duration)

	if !report.OK() {
		return ErrTestsFailed
	}

	return nil
}

func (w *workflow) runClass(ctx context.Context, class minitest.Class, sink controller.Sink) m.ClassReport {
	desc := Classify(class)
	counter := &invalidRowCounter{Sink: sink}

	summary, err := NewEngine(desc, counter).RunAllTests(ctx)

	result := m.ClassReport{
		Summary:          summary,
		InvalidRows:      counter.invalid,
		StructuralErrors: desc.StructuralErrors(),
	}

	if err == nil {
		return result
	}

	result.Aborted = true

	var abort *FatalAbort
	if !errors.As(err, &abort) {
		slog.Error("Test class stopped", "class", desc.Name, "error", err)
		sink.FatalAbort(ctx, desc.Name, "", err.Error())
		result.AbortReason = err.Error()

		return result
	}

	slog.Error("Test class aborted", "class", abort.Class, "phase", abort.Phase, "test", abort.Test, "error", abort)
	sink.FatalAbort(ctx, abort.Class, abort.Test, abort.Reason())
	result.AbortReason = abort.Reason()

	return result
}

// invalidRowCounter counts rejected data rows on their way to the sink.
type invalidRowCounter struct {
	controller.Sink

	invalid int
}

func (c *invalidRowCounter) TestOutcome(ctx context.Context, outcome m.Outcome) {
	if outcome.Kind == m.InvalidDataRow {
		c.invalid++
	}

	c.Sink.TestOutcome(ctx, outcome)
}

// List shows the execution plan of every provided class without running anything.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	classes, err := w.Classes(ctx)
	if err != nil {
		return fmt.Errorf("get test classes: %w", err)
	}

	plans := make([]m.ClassPlan, 0, len(classes))
	for _, class := range classes {
		plans = append(plans, Classify(class).Plan())
	}

	if err := w.Start(ctx, controller.WithPlainOutput(args.Plain), controller.WithFieldWidth(args.FieldWidth)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayPlan(ctx, plans); err != nil {
		return fmt.Errorf("display plan: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// View replays the journal of the last saved run and shows its summary.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Output)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	journal, err := w.OpenJournal(args.Output, report.Journal)
	if err != nil {
		return fmt.Errorf("open journal of run %s: %w", report.ID, err)
	}

	defer func() {
		if err := journal.Close(); err != nil {
			slog.Error("Failed to close journal", "path", journal.Path(), "error", err)
		}
	}()

	if err := w.Start(ctx, controller.WithViewMode(),
		controller.WithPlainOutput(args.Plain), controller.WithFieldWidth(args.FieldWidth)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := controller.Replay(ctx, journal, w.UI); err != nil {
		return fmt.Errorf("replay run %s: %w", report.ID, err)
	}

	w.DisplayRunSummary(ctx, report)
	w.Wait(ctx)

	return nil
}
