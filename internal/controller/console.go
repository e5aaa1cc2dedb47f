package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	m "minitest.dev/runner/internal/model"
)

const (
	descriptionMarker = "  =>  "
	rowMarker         = " - "
	messageIndent     = 4
)

type consoleStyles struct {
	class    lipgloss.Style
	method   lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	passed   lipgloss.Style
	failed   lipgloss.Style
	invalid  lipgloss.Style
	critical lipgloss.Style
	box      lipgloss.Style
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		class:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		method:   r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("244")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("214")),
		passed:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failed:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		invalid:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		critical: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// ConsoleUI renders a run with lipgloss styles. In view mode on a terminal it
// collects the output and shows it in a pager when Wait is called.
type ConsoleUI struct {
	output   io.Writer
	pageable bool

	renderer *lipgloss.Renderer
	styles   consoleStyles
	config   StartConfig
	buffer   *bytes.Buffer
}

// NewConsoleUI creates a ConsoleUI writing to output. pageable allows view
// mode to open the interactive pager.
func NewConsoleUI(output io.Writer, pageable bool) *ConsoleUI {
	ui := &ConsoleUI{output: output, pageable: pageable}
	ui.configure(newStartConfig(nil))

	return ui
}

func (c *ConsoleUI) configure(config StartConfig) {
	c.config = config
	c.renderer = lipgloss.NewRenderer(c.output)

	if config.plain {
		c.renderer.SetColorProfile(termenv.Ascii)
	}

	c.styles = newConsoleStyles(c.renderer)
	c.buffer = nil

	if config.mode == ModeView && c.pageable {
		c.buffer = &bytes.Buffer{}
	}
}

// Start applies the options for the coming run or replay.
func (c *ConsoleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.configure(newStartConfig(options))

	return nil
}

// Close finalizes the UI.
func (c *ConsoleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.buffer = nil
}

// Wait shows the collected replay in a pager until the user quits it.
func (c *ConsoleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	if c.buffer == nil {
		return
	}

	content := c.buffer.String()
	c.buffer = nil

	if err := RunPager(ctx, c.output, "minitest report", content); err != nil {
		_, _ = fmt.Fprint(c.output, content)
	}
}

// ClassHeader prints the name of the class about to run.
func (c *ConsoleUI) ClassHeader(ctx context.Context, class string) {
	if err := ctx.Err(); err != nil {
		return
	}

	rule := strings.Repeat("─", max(c.config.fieldWidth, len(class)))
	c.println("")
	c.println(c.styles.class.Render(class))
	c.println(c.styles.muted.Render(rule))
}

// StructuralErrors lists the defects found in a class.
func (c *ConsoleUI) StructuralErrors(ctx context.Context, _ string, errs []m.StructuralError) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.println(c.styles.warning.Render(fmt.Sprintf("%d structural error(s):", len(errs))))

	for _, structural := range errs {
		c.println(c.wrap(rowMarker, structural.Error(), c.styles.warning))
	}
}

// MethodHeader prints the parameterized test whose rows follow.
func (c *ConsoleUI) MethodHeader(ctx context.Context, _ string, method string) {
	if err := ctx.Err(); err != nil {
		return
	}

	c.println(c.styles.method.Render(method))
}

// TestOutcome prints a label column followed by the outcome.
func (c *ConsoleUI) TestOutcome(ctx context.Context, outcome m.Outcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	label := outcome.Label
	if outcome.Row != m.NoRow {
		label = rowMarker + label
	}

	column := c.renderer.NewStyle().Width(c.config.fieldWidth).Render(label)
	c.println(lipgloss.JoinHorizontal(lipgloss.Top, column, " ", c.kindStyle(outcome.Kind).Render(outcome.Kind.String())))

	if outcome.Message != "" {
		c.println(c.wrap(strings.Repeat(" ", messageIndent), outcome.Message, c.styles.muted))
	}
}

func (c *ConsoleUI) kindStyle(kind m.OutcomeKind) lipgloss.Style {
	switch kind {
	case m.Passed:
		return c.styles.passed
	case m.InvalidDataRow:
		return c.styles.invalid
	default:
		return c.styles.failed
	}
}

// Description prints a class or method description with a hanging indent.
func (c *ConsoleUI) Description(ctx context.Context, _ string, method, text string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if method == "" {
		c.println(c.styles.muted.Render(text))
		return
	}

	c.println(c.wrap(descriptionMarker, text, c.styles.muted))
}

// ClassSummary prints the counts of one class in a box.
func (c *ConsoleUI) ClassSummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	status := c.styles.passed
	if summary.Failed() > 0 {
		status = c.styles.failed
	}

	text := fmt.Sprintf("Passed %s of %d", status.Render(strconv.Itoa(summary.TotalPassed)), summary.TotalConsidered)
	c.println(c.styles.box.BorderForeground(status.GetForeground()).Render(text))
}

// FatalAbort prints why a class was stopped.
func (c *ConsoleUI) FatalAbort(ctx context.Context, class, test, reason string) {
	if err := ctx.Err(); err != nil {
		return
	}

	lines := []string{
		c.styles.critical.Render("CRITICAL ==> ") + reason,
		"Faulty Test Class: " + class,
	}
	if test != "" {
		lines = append(lines, "Faulty Test: "+test)
	}

	c.println(c.styles.box.BorderForeground(c.styles.critical.GetForeground()).Render(strings.Join(lines, "\n")))
}

// DisplayPlan prints every class with its runnable methods in execution order.
func (c *ConsoleUI) DisplayPlan(ctx context.Context, plans []m.ClassPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, plan := range plans {
		c.println(c.styles.class.Render(plan.Class))

		for _, method := range plan.Methods {
			detail := fmt.Sprintf("%s, priority %d", method.Kind, method.Priority)
			if method.Kind == m.ParameterizedTest {
				detail += fmt.Sprintf(", %d row(s)", method.Rows)
			}

			column := c.renderer.NewStyle().Width(c.config.fieldWidth).Render(rowMarker + method.Name)
			c.println(lipgloss.JoinHorizontal(lipgloss.Top, column, " ", c.styles.muted.Render(detail)))
		}

		for _, structural := range plan.Errors {
			c.println(c.wrap(rowMarker, structural.Error(), c.styles.warning))
		}
	}

	return nil
}

// DisplayRunSummary prints the totals of a run in a box.
func (c *ConsoleUI) DisplayRunSummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	considered, passed := report.Totals()

	status := c.styles.passed.Render(statusOK)
	if !report.OK() {
		status = c.styles.failed.Render(statusFailed)
	}

	lines := []string{
		fmt.Sprintf("Run %s  %s", report.ID, status),
		fmt.Sprintf("Classes: %d  Aborted: %d", len(report.Classes), report.Aborted()),
		fmt.Sprintf("Tests: %d  Passed: %d  Failed: %d", considered, passed, considered-passed),
		fmt.Sprintf("Duration: %s", report.Duration),
	}

	c.println("")
	c.println(c.styles.box.Render(strings.Join(lines, "\n")))
}

// wrap renders text after prefix, wrapping it to the label column with a hanging indent.
func (c *ConsoleUI) wrap(prefix, text string, style lipgloss.Style) string {
	width := max(c.config.fieldWidth*2-len(prefix), 1)
	body := style.Width(width).Render(text)

	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, body)
}

func (c *ConsoleUI) println(text string) {
	if c.buffer != nil {
		_, _ = fmt.Fprintln(c.buffer, text)
		return
	}

	_, _ = fmt.Fprintln(c.output, text)
}
