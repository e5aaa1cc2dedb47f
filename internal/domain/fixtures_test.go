package domain

import (
	"context"
	"errors"

	"minitest.dev/runner/internal/controller"
	m "minitest.dev/runner/internal/model"
	"minitest.dev/runner/pkg/minitest"
	"minitest.dev/runner/pkg/minitest/assert"
)

// memJournal keeps recorded events in memory.
type memJournal struct {
	events []m.Event
}

func (j *memJournal) Append(event m.Event) error {
	j.events = append(j.events, event)
	return nil
}

// recordingUI is a controller.UI that records every event it receives.
type recordingUI struct {
	*controller.Recorder

	journal   *memJournal
	starts    int
	waits     int
	closes    int
	plans     []m.ClassPlan
	summaries []m.RunReport
}

func newRecordingUI() *recordingUI {
	journal := &memJournal{}
	return &recordingUI{Recorder: controller.NewRecorder(journal), journal: journal}
}

func (u *recordingUI) Start(ctx context.Context, _ ...controller.StartOption) error {
	u.starts++
	return ctx.Err()
}

func (u *recordingUI) Close(context.Context) { u.closes++ }

func (u *recordingUI) Wait(context.Context) { u.waits++ }

func (u *recordingUI) DisplayPlan(_ context.Context, plans []m.ClassPlan) error {
	u.plans = append(u.plans, plans...)
	return nil
}

func (u *recordingUI) DisplayRunSummary(_ context.Context, report m.RunReport) {
	u.summaries = append(u.summaries, report)
}

func (u *recordingUI) events() []m.Event {
	return u.journal.events
}

func (u *recordingUI) types() []m.EventType {
	types := make([]m.EventType, 0, len(u.journal.events))
	for _, event := range u.journal.events {
		types = append(types, event.Type)
	}

	return types
}

func (u *recordingUI) outcomes() []m.Outcome {
	var outcomes []m.Outcome

	for _, event := range u.journal.events {
		if event.Type == m.EventTestOutcome {
			outcomes = append(outcomes, event.Outcome)
		}
	}

	return outcomes
}

var errDatabaseDown = errors.New("database unavailable")

type notFoundError struct{ user string }

func (e *notFoundError) Error() string { return "user " + e.user + " not found" }

// calcTests is a class whose methods record their invocations.
type calcTests struct {
	calls        []string
	failSetup    bool
	failTeardown bool
}

func (c *calcTests) record(call string) { c.calls = append(c.calls, call) }

func (c *calcTests) Before() {
	c.record("setup")

	if c.failSetup {
		panic(errDatabaseDown)
	}
}

func (c *calcTests) After() {
	c.record("teardown")

	if c.failTeardown {
		assert.Fail("cleanup failed")
	}
}

func (c *calcTests) A() { c.record("A") }

func (c *calcTests) B() { c.record("B") }

func (c *calcTests) Equal() {
	c.record("Equal")
	assert.AreEqual(5, 6)
}

func (c *calcTests) Explode() {
	c.record("Explode")

	var values []int

	_ = values[3]
}

func (c *calcTests) Lookup() {
	c.record("Lookup")
	assert.ThrowsException[*notFoundError](func() error { return &notFoundError{user: "superuser"} })
}

func (c *calcTests) LookupWrongKind() {
	c.record("LookupWrongKind")
	assert.ThrowsException[*notFoundError](func() error { return errDatabaseDown })
}

func (c *calcTests) Echo(text string) {
	c.record("Echo:" + text)
}

func (c *calcTests) Pointer(value *int) {
	if value == nil {
		c.record("Pointer:nil")
		return
	}

	c.record("Pointer:set")
}

func (c *calcTests) Sum(a, b, want int) {
	c.record("Sum")
	assert.AreEqual(want, a+b)
}

func (c *calcTests) Answer() int { return 42 }

func (c *calcTests) WithArg(int) {}

func (c *calcTests) Helper() {}

type otherTests struct{}

func (o *otherTests) Foreign() {}

func newCalc(instance *calcTests) func() (*calcTests, error) {
	return func() (*calcTests, error) {
		return instance, nil
	}
}

func calcClass(instance *calcTests, markers ...minitest.Marker) *minitest.ClassBuilder[calcTests] {
	return minitest.NewClass(newCalc(instance), append([]minitest.Marker{minitest.TestClass()}, markers...)...)
}
