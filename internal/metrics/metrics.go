// Package metrics counts test outcomes with Prometheus collectors and writes
// them to a node exporter textfile after a run.
package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"minitest.dev/runner/internal/controller"
	m "minitest.dev/runner/internal/model"
)

const (
	// MetricsNamespace prefixes every metric name.
	MetricsNamespace = "minitest"
	// TextfileName is the file written into the output directory.
	TextfileName = "metrics.prom"
)

// Recorder is a Sink that counts what it is told and can persist the counts.
type Recorder interface {
	controller.Sink
	RecordRun(report m.RunReport)
	WriteTextfile(path string) error
}

type collector struct {
	registry *prometheus.Registry

	outcomesTotal         *prometheus.CounterVec
	classesTotal          prometheus.Counter
	classAbortsTotal      *prometheus.CounterVec
	structuralErrorsTotal *prometheus.CounterVec
	runTests              *prometheus.GaugeVec
	runDuration           prometheus.Gauge
	runSuccess            prometheus.Gauge
}

// NewRecorder creates a Recorder backed by its own registry.
func NewRecorder() Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &collector{
		registry: registry,
		outcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "outcomes_total",
			Help:      "Count of test outcomes",
		}, []string{
			"class",
			"kind",
		}),
		classesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "classes_total",
			Help:      "Number of test classes started",
		}),
		classAbortsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "class_aborts_total",
			Help:      "Count of test classes stopped by a fatal abort",
		}, []string{
			"class",
		}),
		structuralErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "structural_errors_total",
			Help:      "Count of structural errors found while classifying",
		}, []string{
			"class",
		}),
		runTests: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_run_tests",
			Help:      "Tests of the last run by result",
		}, []string{
			"result",
		}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		runSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_run_success",
			Help:      "1 when every test of the last run passed and no class aborted",
		}),
	}
}

func (c *collector) ClassHeader(context.Context, string) {
	c.classesTotal.Inc()
}

func (c *collector) StructuralErrors(_ context.Context, class string, errs []m.StructuralError) {
	c.structuralErrorsTotal.WithLabelValues(class).Add(float64(len(errs)))
}

func (c *collector) MethodHeader(context.Context, string, string) {}

func (c *collector) TestOutcome(_ context.Context, outcome m.Outcome) {
	c.outcomesTotal.WithLabelValues(outcome.Class, outcome.Kind.String()).Inc()
}

func (c *collector) Description(context.Context, string, string, string) {}

func (c *collector) ClassSummary(context.Context, m.Summary) {}

func (c *collector) FatalAbort(_ context.Context, class, _, _ string) {
	c.classAbortsTotal.WithLabelValues(class).Inc()
}

// RecordRun sets the gauges describing a finished run.
func (c *collector) RecordRun(report m.RunReport) {
	considered, passed := report.Totals()

	c.runTests.WithLabelValues("passed").Set(float64(passed))
	c.runTests.WithLabelValues("failed").Set(float64(considered - passed))
	c.runDuration.Set(report.Duration.Seconds())

	success := 0.0
	if report.OK() {
		success = 1
	}

	c.runSuccess.Set(success)

	slog.Debug("recorded run metrics", "run_id", report.ID, "considered", considered, "passed", passed)
}

// WriteTextfile writes every collected metric to path in the text exposition format.
func (c *collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		slog.Error("Failed to write metrics", "path", path, "error", err)
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}

type nopRecorder struct{}

// NewNopRecorder returns a Recorder that discards everything.
func NewNopRecorder() Recorder {
	return nopRecorder{}
}

func (nopRecorder) ClassHeader(context.Context, string) {}
func (nopRecorder) StructuralErrors(context.Context, string, []m.StructuralError) {}
func (nopRecorder) MethodHeader(context.Context, string, string) {}
func (nopRecorder) TestOutcome(context.Context, m.Outcome) {}
func (nopRecorder) Description(context.Context, string, string, string) {}
func (nopRecorder) ClassSummary(context.Context, m.Summary) {}
func (nopRecorder) FatalAbort(context.Context, string, string, string) {}
func (nopRecorder) RecordRun(m.RunReport) {}
func (nopRecorder) WriteTextfile(string) error { return nil }
