package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	m "minitest.dev/runner/internal/model"
)

// EventWriter stores reporter events.
type EventWriter interface {
	Append(event m.Event) error
}

// EventSource iterates stored reporter events in order.
type EventSource interface {
	Range(f func(index uint64, event m.Event) error) error
}

// Recorder is a Sink that appends every event to a journal so the run can be
// replayed later. Write failures are logged and collected in Err.
type Recorder struct {
	journal EventWriter
	errs    []error
}

// NewRecorder creates a Recorder writing to journal.
func NewRecorder(journal EventWriter) *Recorder {
	return &Recorder{journal: journal}
}

// Err returns the write failures seen so far.
func (r *Recorder) Err() error {
	return errors.Join(r.errs...)
}

func (r *Recorder) record(event m.Event) {
	if err := r.journal.Append(event); err != nil {
		slog.Error("Failed to record event", "type", event.Type, "class", event.Class, "error", err)
		r.errs = append(r.errs, err)
	}
}

// ClassHeader implements Reporter.
func (r *Recorder) ClassHeader(_ context.Context, class string) {
	r.record(m.Event{Type: m.EventClassHeader, Class: class})
}

// StructuralErrors implements Reporter.
func (r *Recorder) StructuralErrors(_ context.Context, class string, errs []m.StructuralError) {
	r.record(m.Event{Type: m.EventStructuralErrors, Class: class, Errors: errs})
}

// MethodHeader implements Reporter.
func (r *Recorder) MethodHeader(_ context.Context, class, method string) {
	r.record(m.Event{Type: m.EventMethodHeader, Class: class, Method: method})
}

// TestOutcome implements Reporter.
func (r *Recorder) TestOutcome(_ context.Context, outcome m.Outcome) {
	r.record(m.Event{Type: m.EventTestOutcome, Class: outcome.Class, Method: outcome.Method, Outcome: outcome})
}

// Description implements Reporter.
func (r *Recorder) Description(_ context.Context, class, method, text string) {
	r.record(m.Event{Type: m.EventDescription, Class: class, Method: method, Text: text})
}

// ClassSummary implements Reporter.
func (r *Recorder) ClassSummary(_ context.Context, summary m.Summary) {
	r.record(m.Event{Type: m.EventClassSummary, Class: summary.Class, Summary: summary})
}

// FatalAbort implements Sink.
func (r *Recorder) FatalAbort(_ context.Context, class, test, reason string) {
	r.record(m.Event{Type: m.EventFatalAbort, Class: class, Method: test, Text: reason})
}

// Replay feeds the events of source to sink in their recorded order.
func Replay(ctx context.Context, source EventSource, sink Sink) error {
	return source.Range(func(index uint64, event m.Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch event.Type {
		case m.EventClassHeader:
			sink.ClassHeader(ctx, event.Class)
		case m.EventStructuralErrors:
			sink.StructuralErrors(ctx, event.Class, event.Errors)
		case m.EventMethodHeader:
			sink.MethodHeader(ctx, event.Class, event.Method)
		case m.EventTestOutcome:
			sink.TestOutcome(ctx, event.Outcome)
		case m.EventDescription:
			sink.Description(ctx, event.Class, event.Method, event.Text)
		case m.EventClassSummary:
			sink.ClassSummary(ctx, event.Summary)
		case m.EventFatalAbort:
			sink.FatalAbort(ctx, event.Class, event.Method, event.Text)
		default:
			return fmt.Errorf("unknown event type %d at index %d", event.Type, index)
		}

		return nil
	})
}

type teeSink []Sink

// Tee returns a Sink forwarding every event to all sinks in order.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

func (t teeSink) ClassHeader(ctx context.Context, class string) {
	for _, sink := range t {
		sink.ClassHeader(ctx, class)
	}
}

func (t teeSink) StructuralErrors(ctx context.Context, class string, errs []m.StructuralError) {
	for _, sink := range t {
		sink.StructuralErrors(ctx, class, errs)
	}
}

func (t teeSink) MethodHeader(ctx context.Context, class, method string) {
	for _, sink := range t {
		sink.MethodHeader(ctx, class, method)
	}
}

func (t teeSink) TestOutcome(ctx context.Context, outcome m.Outcome) {
	for _, sink := range t {
		sink.TestOutcome(ctx, outcome)
	}
}

func (t teeSink) Description(ctx context.Context, class, method, text string) {
	for _, sink := range t {
		sink.Description(ctx, class, method, text)
	}
}

func (t teeSink) ClassSummary(ctx context.Context, summary m.Summary) {
	for _, sink := range t {
		sink.ClassSummary(ctx, summary)
	}
}

func (t teeSink) FatalAbort(ctx context.Context, class, test, reason string) {
	for _, sink := range t {
		sink.FatalAbort(ctx, class, test, reason)
	}
}
