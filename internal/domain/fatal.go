package domain

import "fmt"

// AbortPhase names the step in which a class run was aborted.
type AbortPhase string

// Abort phases.
const (
	PhaseConstruct AbortPhase = "construct"
	PhaseSetup     AbortPhase = "setup"
	PhaseTeardown  AbortPhase = "teardown"
)

// FatalAbort stops the remaining work of one class. It is returned by
// Engine.RunAllTests and must not stop other classes.
type FatalAbort struct {
	Class string
	Phase AbortPhase
	// ChainMethod is the setup or teardown method that raised.
	ChainMethod string
	// Test is the test that was being wrapped, if any.
	Test    string
	Message string
	Cause   error
}

// Reason describes why the class was aborted.
func (f *FatalAbort) Reason() string {
	switch f.Phase {
	case PhaseConstruct:
		return "no usable constructor found for class: " + f.Message
	case PhaseSetup:
		return fmt.Sprintf("a setup method (%s) threw an exception: %s", f.ChainMethod, f.Message)
	case PhaseTeardown:
		return fmt.Sprintf("a teardown method (%s) threw an exception: %s", f.ChainMethod, f.Message)
	default:
		return f.Message
	}
}

func (f *FatalAbort) Error() string {
	test := f.Test
	if test == "" {
		test = "<none>"
	}

	return fmt.Sprintf("class %s aborted at test %s: %s", f.Class, test, f.Reason())
}

func (f *FatalAbort) Unwrap() error {
	return f.Cause
}
