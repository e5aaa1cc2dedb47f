// Package assert provides the assertions used inside minitest test methods.
//
// A violated assertion panics with a *Failure. The runner recovers it at the
// invocation boundary and reports the test as failed with the failure message.
// A satisfied assertion has no effect.
package assert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	testifyassert "github.com/stretchr/testify/assert"
)

// Failure is the signal raised by a violated assertion.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

func raise(text string, message []string) {
	if extra := strings.Join(message, " "); extra != "" {
		text += " " + extra
	}

	panic(&Failure{Message: text})
}

// IsTrue fails when condition is false.
func IsTrue(condition bool, message ...string) {
	if !condition {
		raise("Condition expected to be true. Found to be false.", message)
	}
}

// IsFalse fails when condition is true.
func IsFalse(condition bool, message ...string) {
	if condition {
		raise("Condition expected to be false. Found to be true.", message)
	}
}

// Fail fails unconditionally.
func Fail(message ...string) {
	raise("Unconditional assertion fail.", message)
}

// AreEqual fails when expected and actual differ.
func AreEqual[T any](expected, actual T, message ...string) {
	if equal(expected, actual) {
		return
	}

	text := fmt.Sprintf("Expected: <%s>. Actual: <%s>.", render(expected), render(actual))
	if diff := diffText(expected, actual); diff != "" {
		text += "\n" + diff
	}

	raise(text, message)
}

// AreNotEqual fails when notExpected and actual are equal.
func AreNotEqual[T any](notExpected, actual T, message ...string) {
	if !equal(notExpected, actual) {
		return
	}

	raise(fmt.Sprintf("Expected any value except: <%s>. Actual: <%s>.", render(notExpected), render(actual)), message)
}

// ThrowsException runs action and fails unless it raises a signal of kind E.
// A signal is either a non-nil error returned by action or a value it panics
// with; its kind is the dynamic type of that value and must equal E exactly.
func ThrowsException[E any](action func() error, message ...string) {
	expected := reflect.TypeFor[E]()

	signal := capture(action)
	if signal == nil {
		raise(fmt.Sprintf("Expected exception of kind <%s> but none was thrown.", expected), message)
	}

	if actual := reflect.TypeOf(signal); actual != expected {
		raise(fmt.Sprintf("Expected exception of kind <%s>. Actual exception kind <%s>.", expected, actual), message)
	}
}

func capture(action func() error) (signal any) {
	defer func() {
		if r := recover(); r != nil {
			signal = r
		}
	}()

	if err := action(); err != nil {
		return err
	}

	return nil
}

type equaler[T any] interface {
	Equal(other T) bool
}

func equal[T any](expected, actual T) bool {
	expectedNil, actualNil := isNil(expected), isNil(actual)
	if expectedNil || actualNil {
		return expectedNil && actualNil
	}

	if eq, ok := any(expected).(equaler[T]); ok {
		return eq.Equal(actual)
	}

	return testifyassert.ObjectsAreEqual(expected, actual)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

func render(value any) string {
	if isNil(value) {
		return "nil"
	}

	return fmt.Sprintf("%v", value)
}

// diffText returns a unified diff for multi-line string mismatches.
func diffText(expected, actual any) string {
	e, ok := expected.(string)
	if !ok {
		return ""
	}

	a, ok := actual.(string)
	if !ok || (!strings.Contains(e, "\n") && !strings.Contains(a, "\n")) {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(e),
		B:        difflib.SplitLines(a),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	if err != nil {
		return ""
	}

	return diff
}
