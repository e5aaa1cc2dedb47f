// Package minitest is the authoring API of the minitest framework.
//
// Test classes are ordinary Go types. A class is registered together with a
// constructor and a list of markers; each method is registered as a method
// expression (for example (*MyTests).Login) with its own markers:
//
//	minitest.Register(
//		minitest.NewClass(newMyTests, minitest.TestClass()).
//			Method("Setup", (*MyTests).Setup, minitest.Setup()).
//			Method("Login", (*MyTests).Login, minitest.TestMethod(), minitest.Priority(1)).
//			Method("Hash", (*MyTests).Hash, minitest.TestMethod(),
//				minitest.DataRow("secret").WithDescription("plain secret")).
//			Build(),
//	)
//
// Markers only describe shape; the runner validates them when it classifies a class.
package minitest

import "fmt"

// MarkerKind identifies one entry of the marker vocabulary.
type MarkerKind int

// Marker vocabulary.
const (
	MarkerTestClass MarkerKind = iota
	MarkerTestMethod
	MarkerSetup
	MarkerTeardown
	MarkerPriority
	MarkerDataRow
	MarkerDescription
)

// Target is a set of places a marker may be attached to.
type Target uint8

// Marker targets.
const (
	TargetClass Target = 1 << iota
	TargetMethod
)

type markerShape struct {
	name       string
	targets    Target
	repeatable bool
}

var vocabulary = map[MarkerKind]markerShape{
	MarkerTestClass:   {name: "TestClass", targets: TargetClass},
	MarkerTestMethod:  {name: "TestMethod", targets: TargetMethod},
	MarkerSetup:       {name: "Setup", targets: TargetMethod},
	MarkerTeardown:    {name: "Teardown", targets: TargetMethod},
	MarkerPriority:    {name: "Priority", targets: TargetMethod},
	MarkerDataRow:     {name: "DataRow", targets: TargetMethod, repeatable: true},
	MarkerDescription: {name: "Description", targets: TargetClass | TargetMethod, repeatable: true},
}

func (k MarkerKind) String() string {
	if shape, ok := vocabulary[k]; ok {
		return shape.name
	}

	return fmt.Sprintf("MarkerKind(%d)", int(k))
}

// Targets reports where markers of this kind may be attached.
func (k MarkerKind) Targets() Target {
	return vocabulary[k].targets
}

// Repeatable reports whether the marker may appear more than once on one target.
func (k MarkerKind) Repeatable() bool {
	return vocabulary[k].repeatable
}

// AllowedOn reports whether the marker kind may be attached to target.
func (k MarkerKind) AllowedOn(target Target) bool {
	return k.Targets()&target != 0
}

func (t Target) String() string {
	switch t {
	case TargetClass:
		return "class"
	case TargetMethod:
		return "method"
	case TargetClass | TargetMethod:
		return "class or method"
	default:
		return "nothing"
	}
}

// DataRowCase is one argument tuple for a parameterized test.
type DataRowCase struct {
	Values      []any
	Description string
}

// Marker is a declarative tag attached to a class or a method.
type Marker struct {
	Kind     MarkerKind
	Priority int
	Row      DataRowCase
	Text     string
}

// TestClass marks a class whose tests should be run.
func TestClass() Marker { return Marker{Kind: MarkerTestClass} }

// TestMethod marks a method as a test.
func TestMethod() Marker { return Marker{Kind: MarkerTestMethod} }

// Setup marks a method that runs before every test of its class.
func Setup() Marker { return Marker{Kind: MarkerSetup} }

// Teardown marks a method that runs after every test of its class.
func Teardown() Marker { return Marker{Kind: MarkerTeardown} }

// Priority orders a method within its category. Lower runs first; the default is 0.
func Priority(n int) Marker { return Marker{Kind: MarkerPriority, Priority: n} }

// DataRow attaches one argument tuple to a parameterized test.
// A nil value stands for an absent argument.
func DataRow(values ...any) Marker {
	return Marker{Kind: MarkerDataRow, Row: DataRowCase{Values: values}}
}

// Description attaches human readable text to a class or a method.
func Description(text string) Marker { return Marker{Kind: MarkerDescription, Text: text} }

// WithDescription sets the description of a DataRow marker. It returns other
// markers unchanged.
func (m Marker) WithDescription(text string) Marker {
	if m.Kind == MarkerDataRow {
		m.Row.Description = text
	}

	return m
}

func (m Marker) String() string {
	switch m.Kind {
	case MarkerPriority:
		return fmt.Sprintf("Priority(%d)", m.Priority)
	case MarkerDataRow:
		return fmt.Sprintf("DataRow(%v)", m.Row.Values)
	case MarkerDescription:
		return fmt.Sprintf("Description(%q)", m.Text)
	default:
		return m.Kind.String()
	}
}
