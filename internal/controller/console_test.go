package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "minitest.dev/runner/internal/model"
)

func startConsole(t *testing.T, options ...StartOption) (*ConsoleUI, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	ui := NewConsoleUI(&buf, false)
	require.NoError(t, ui.Start(context.Background(), append([]StartOption{WithPlainOutput(true)}, options...)...))

	return ui, &buf
}

func lines(output string) []string {
	return strings.Split(strings.TrimRight(output, "\n"), "\n")
}

func TestConsoleUI_TestOutcomeColumns(t *testing.T) {
	ui, buf := startConsole(t, WithFieldWidth(20))
	ctx := context.Background()

	ui.TestOutcome(ctx, m.Outcome{Label: "Add", Row: m.NoRow, Kind: m.Passed})
	ui.TestOutcome(ctx, m.Outcome{Label: "row", Row: 0, Kind: m.Failed, Message: "Expected: <5>. Actual: <6>."})

	got := lines(buf.String())
	require.Len(t, got, 3)
	assert.Equal(t, "Add"+strings.Repeat(" ", 18)+"PASSED", strings.TrimRight(got[0], " "))
	assert.Equal(t, " - row"+strings.Repeat(" ", 15)+"FAILED", strings.TrimRight(got[1], " "))
	assert.Equal(t, "    Expected: <5>. Actual: <6>.", strings.TrimRight(got[2], " "))
}

func TestConsoleUI_DescriptionHangingIndent(t *testing.T) {
	ui, buf := startConsole(t, WithFieldWidth(10))

	ui.Description(context.Background(), "CalcTests", "Add", "one two three four five six")

	got := lines(buf.String())
	require.Greater(t, len(got), 1)
	assert.True(t, strings.HasPrefix(got[0], descriptionMarker+"one"), got[0])

	for _, line := range got[1:] {
		assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", len(descriptionMarker))), "hanging indent: %q", line)
	}
}

func TestConsoleUI_ClassFlow(t *testing.T) {
	ui, buf := startConsole(t)
	ctx := context.Background()

	ui.ClassHeader(ctx, "CalcTests")
	ui.Description(ctx, "CalcTests", "", "calculator")
	ui.StructuralErrors(ctx, "CalcTests", []m.StructuralError{{Class: "CalcTests", Method: "Answer", Message: "Invalid return type - expected: none, found: (int)"}})
	ui.MethodHeader(ctx, "CalcTests", "Echo")
	ui.ClassSummary(ctx, m.Summary{Class: "CalcTests", TotalConsidered: 4, TotalPassed: 3})
	ui.FatalAbort(ctx, "Broken", "A", "a teardown method (After) threw an exception")

	output := buf.String()
	for _, want := range []string{
		"CalcTests",
		"calculator",
		"1 structural error(s):",
		"Invalid return type",
		"Echo",
		"Passed 3 of 4",
		"CRITICAL ==> a teardown method (After) threw an exception",
		"Faulty Test Class: Broken",
		"Faulty Test: A",
	} {
		assert.Contains(t, output, want)
	}

	assert.NotContains(t, output, "\x1b[", "plain output has no escape sequences")
}

func TestConsoleUI_DisplayPlanAndSummary(t *testing.T) {
	ui, buf := startConsole(t)
	ctx := context.Background()

	require.NoError(t, ui.DisplayPlan(ctx, []m.ClassPlan{{
		Class:   "CalcTests",
		Methods: []m.PlannedMethod{{Name: "Echo", Kind: m.ParameterizedTest, Priority: 2, Rows: 3}},
	}}))
	ui.DisplayRunSummary(ctx, m.RunReport{
		ID:      "run-42",
		Classes: []m.ClassReport{{Summary: m.Summary{Class: "CalcTests", TotalConsidered: 3, TotalPassed: 1}}},
	})

	output := buf.String()
	assert.Contains(t, output, " - Echo")
	assert.Contains(t, output, "parameterized test, priority 2, 3 row(s)")
	assert.Contains(t, output, "Run run-42  FAILED")
	assert.Contains(t, output, "Tests: 3  Passed: 1  Failed: 2")
}

func TestConsoleUI_ViewModeWithoutPagerWritesDirectly(t *testing.T) {
	ui, buf := startConsole(t, WithViewMode())
	ctx := context.Background()

	ui.ClassHeader(ctx, "CalcTests")
	ui.Wait(ctx)
	ui.Close(ctx)

	assert.Contains(t, buf.String(), "CalcTests")
}

func TestConsoleUI_ViewModeBuffersForPager(t *testing.T) {
	var buf bytes.Buffer

	ui := NewConsoleUI(&buf, true)
	require.NoError(t, ui.Start(context.Background(), WithViewMode(), WithPlainOutput(true)))

	ui.ClassHeader(context.Background(), "CalcTests")
	assert.Empty(t, buf.String())

	ui.Close(context.Background())
	assert.Nil(t, ui.buffer)
}

func TestStartConfig(t *testing.T) {
	config := newStartConfig(nil)
	assert.Equal(t, ModeRun, config.mode)
	assert.Equal(t, defaultFieldWidth, config.fieldWidth)
	assert.False(t, config.plain)

	config = newStartConfig([]StartOption{WithViewMode(), WithPlainOutput(true), WithFieldWidth(0)})
	assert.Equal(t, ModeView, config.mode)
	assert.True(t, config.plain)
	assert.Equal(t, defaultFieldWidth, config.fieldWidth)

	config = newStartConfig([]StartOption{WithViewMode(), WithRunMode(), WithFieldWidth(20)})
	assert.Equal(t, ModeRun, config.mode)
	assert.Equal(t, 20, config.fieldWidth)
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
}
