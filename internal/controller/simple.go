package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "minitest.dev/runner/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// ClassHeader prints the name of the class about to run.
func (s *SimpleUI) ClassHeader(ctx context.Context, class string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n== %s ==\n", class)
}

// StructuralErrors lists the defects found in a class.
func (s *SimpleUI) StructuralErrors(ctx context.Context, class string, errs []m.StructuralError) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Structural errors in %s:\n", class)

	for _, structural := range errs {
		s.printf("  - %s\n", structural.Error())
	}
}

// MethodHeader prints the parameterized test whose rows follow.
func (s *SimpleUI) MethodHeader(ctx context.Context, _ string, method string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", method)
}

// TestOutcome prints one outcome line and the failure message, if any.
func (s *SimpleUI) TestOutcome(ctx context.Context, outcome m.Outcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	indent := ""
	if outcome.Row != m.NoRow {
		indent = " - "
	}

	s.printf("%s%s: %s\n", indent, outcome.Label, outcome.Kind)

	if outcome.Message != "" {
		s.printf("    %s\n", outcome.Message)
	}
}

// Description prints a class or method description.
func (s *SimpleUI) Description(ctx context.Context, _ string, method, text string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if method == "" {
		s.printf("%s\n", text)
		return
	}

	s.printf("  =>  %s\n", text)
}

// ClassSummary prints the counts of one class.
func (s *SimpleUI) ClassSummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s: %d/%d passed\n", summary.Class, summary.TotalPassed, summary.TotalConsidered)
}

// FatalAbort prints why a class was stopped.
func (s *SimpleUI) FatalAbort(ctx context.Context, class, test, reason string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("CRITICAL ==> %s\n", reason)
	s.printf("Faulty Test Class: %s\n", class)

	if test != "" {
		s.printf("Faulty Test: %s\n", test)
	}
}

// DisplayPlan prints the execution plan of every class.
func (s *SimpleUI) DisplayPlan(ctx context.Context, plans []m.ClassPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(plans))

	for _, plan := range plans {
		for _, structural := range plan.Errors {
			s.printf("%s: %s\n", plan.Class, structural.Error())
		}
	}

	return nil
}

// DisplayRunSummary prints a table with the results of every class.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(report))
}

func renderPlanTable(plans []m.ClassPlan) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "Method", "Kind", "Priority", "Rows"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoMergeCells(true)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	methods := 0

	for _, plan := range plans {
		for _, method := range plan.Methods {
			rows := ""
			if method.Kind == m.ParameterizedTest {
				rows = strconv.Itoa(method.Rows)
			}

			table.Append([]string{plan.Class, method.Name, method.Kind.String(), strconv.Itoa(method.Priority), rows})

			methods++
		}
	}

	table.SetFooter([]string{fmt.Sprintf("Classes %d", len(plans)), fmt.Sprintf("Methods %d", methods), "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func renderSummaryTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "Considered", "Passed", "Failed", "Invalid rows", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for _, class := range report.Classes {
		table.Append([]string{
			class.Class,
			strconv.Itoa(class.TotalConsidered),
			strconv.Itoa(class.TotalPassed),
			strconv.Itoa(class.Failed()),
			strconv.Itoa(class.InvalidRows),
			classStatus(class),
		})
	}

	considered, passed := report.Totals()
	table.SetFooter([]string{
		fmt.Sprintf("Total Classes %d", len(report.Classes)),
		strconv.Itoa(considered),
		strconv.Itoa(passed),
		strconv.Itoa(considered - passed),
		"",
		runStatus(report),
	})

	table.Render()

	return tableBuffer.String()
}

func classStatus(class m.ClassReport) string {
	switch {
	case class.Aborted:
		return statusAborted
	case class.Failed() > 0:
		return statusFailed
	default:
		return statusOK
	}
}

func runStatus(report m.RunReport) string {
	if report.OK() {
		return statusOK
	}

	return statusFailed
}

const (
	statusOK      = "OK"
	statusFailed  = "FAILED"
	statusAborted = "ABORTED"
)

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
