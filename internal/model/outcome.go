package model

// OutcomeKind classifies a single invocation.
type OutcomeKind int

const (
	// Passed means no signal escaped the test body.
	Passed OutcomeKind = iota
	// Failed means an assertion failure or another panic escaped the test body.
	Failed
	// InvalidDataRow means the row did not match the method parameters and was not run.
	InvalidDataRow
)

func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	case InvalidDataRow:
		return "INVALID DATA ROW"
	default:
		return "UNKNOWN"
	}
}

// NoRow is the row index of outcomes of simple tests.
const NoRow = -1

// Outcome is the result of one test invocation or one rejected data row.
type Outcome struct {
	Class  string
	Method string
	// Label is the row description when there is one, otherwise the method name.
	Label   string
	Row     int
	Kind    OutcomeKind
	Message string
}

// Summary aggregates the outcomes of one class.
type Summary struct {
	Class           string `yaml:"class"`
	TotalConsidered int    `yaml:"total_considered"`
	TotalPassed     int    `yaml:"total_passed"`
}

// Failed returns the number of considered tests that did not pass.
func (s Summary) Failed() int {
	return s.TotalConsidered - s.TotalPassed
}
