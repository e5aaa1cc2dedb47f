package domain

import (
	"cmp"
	"context"
	"log/slog"
	"reflect"

	"minitest.dev/runner/internal/controller"
	m "minitest.dev/runner/internal/model"
)

// Engine runs the tests of one classified class and reports every step.
type Engine struct {
	class    *ClassDescriptor
	reporter controller.Reporter
	summary  m.Summary
}

// NewEngine creates an Engine for class reporting to reporter.
func NewEngine(class *ClassDescriptor, reporter controller.Reporter) *Engine {
	return &Engine{class: class, reporter: reporter}
}

// RunAllTests runs simple tests, then parameterized tests, each wrapped by the
// setup and teardown chains. A failing setup or teardown, or a class that
// cannot be constructed, stops the class with a *FatalAbort; the summary
// returned alongside counts the outcomes reached before it.
func (e *Engine) RunAllTests(ctx context.Context) (m.Summary, error) {
	e.summary = m.Summary{Class: e.class.Name}

	e.class.Construct()

	e.reporter.ClassHeader(ctx, e.class.Name)

	for _, text := range e.class.Descriptions {
		e.reporter.Description(ctx, e.class.Name, "", text)
	}

	if errs := e.class.StructuralErrors(); len(errs) > 0 {
		e.reporter.StructuralErrors(ctx, e.class.Name, errs)
	}

	instance, ok := e.class.Instance()
	if !ok {
		return e.summary, &FatalAbort{
			Class:   e.class.Name,
			Phase:   PhaseConstruct,
			Message: e.class.Name,
			Cause:   e.class.constructErr,
		}
	}

	slog.Info("running test class", "class", e.class.Name,
		"tests", len(e.class.SimpleTests), "parameterized", len(e.class.ParameterizedTests))

	for _, test := range e.class.SimpleTests {
		if err := e.runWrapped(ctx, instance, test, test.Name, m.NoRow, nil); err != nil {
			return e.summary, err
		}
	}

	for _, test := range e.class.ParameterizedTests {
		if err := e.runParameterized(ctx, instance, test); err != nil {
			return e.summary, err
		}
	}

	e.reporter.ClassSummary(ctx, e.summary)

	return e.summary, nil
}

func (e *Engine) runParameterized(ctx context.Context, instance reflect.Value, test *MethodDescriptor) error {
	e.reporter.MethodHeader(ctx, e.class.Name, test.Name)

	valid := make([]int, 0, len(test.Rows))

	for i, row := range test.Rows {
		err := matchRow(test.Params, row.Values)
		if err == nil {
			valid = append(valid, i)

			continue
		}

		slog.Debug("invalid data row", "class", e.class.Name, "method", test.Name, "row", i, "error", err)

		e.reporter.TestOutcome(ctx, m.Outcome{
			Class:   e.class.Name,
			Method:  test.Name,
			Label:   cmp.Or(row.Description, test.Name),
			Row:     i,
			Kind:    m.InvalidDataRow,
			Message: err.Error(),
		})
	}

	// Invalid rows are all reported before any valid row runs.
	for _, i := range valid {
		row := test.Rows[i]
		label := cmp.Or(row.Description, test.Name)

		if err := e.runWrapped(ctx, instance, test, label, i, argumentValues(test.Params, row.Values)); err != nil {
			return err
		}
	}

	e.describe(ctx, test)

	return nil
}

// runWrapped runs the setup chain, one invocation of test and the teardown chain.
// Descriptions of simple tests are reported between the outcome and the teardowns.
func (e *Engine) runWrapped(
	ctx context.Context,
	instance reflect.Value,
	test *MethodDescriptor,
	label string,
	row int,
	args []reflect.Value,
) error {
	if err := e.runChain(e.class.Setups, PhaseSetup, instance, test); err != nil {
		return err
	}

	outcome := m.Outcome{
		Class:  e.class.Name,
		Method: test.Name,
		Label:  label,
		Row:    row,
		Kind:   m.Passed,
	}

	if signal := invoke(test.fn, append([]reflect.Value{instance}, args...)); signal != nil {
		outcome.Kind = m.Failed
		outcome.Message = signal.Error()
	}

	e.summary.TotalConsidered++
	if outcome.Kind == m.Passed {
		e.summary.TotalPassed++
	}

	e.reporter.TestOutcome(ctx, outcome)

	if row == m.NoRow {
		e.describe(ctx, test)
	}

	return e.runChain(e.class.Teardowns, PhaseTeardown, instance, test)
}

func (e *Engine) runChain(chain []*MethodDescriptor, phase AbortPhase, instance reflect.Value, test *MethodDescriptor) error {
	for _, method := range chain {
		signal := invoke(method.fn, []reflect.Value{instance})
		if signal == nil {
			continue
		}

		return &FatalAbort{
			Class:       e.class.Name,
			Phase:       phase,
			ChainMethod: method.Name,
			Test:        test.Name,
			Message:     signal.Error(),
			Cause:       signal,
		}
	}

	return nil
}

func (e *Engine) describe(ctx context.Context, test *MethodDescriptor) {
	for _, text := range test.Descriptions {
		e.reporter.Description(ctx, e.class.Name, test.Name, text)
	}
}
