package model

// MethodKind is the category a classified method belongs to.
type MethodKind int

const (
	// SimpleTest is a test method without data rows.
	SimpleTest MethodKind = iota
	// ParameterizedTest is a test method with one or more data rows.
	ParameterizedTest
	// Setup runs before every test of its class.
	Setup
	// Teardown runs after every test of its class.
	Teardown
)

func (k MethodKind) String() string {
	switch k {
	case SimpleTest:
		return "test"
	case ParameterizedTest:
		return "parameterized test"
	case Setup:
		return "setup"
	case Teardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// StructuralError is a defect found while classifying a class.
type StructuralError struct {
	Class string `yaml:"class"`
	// Method is empty when the defect concerns the class itself.
	Method  string `yaml:"method,omitempty"`
	Message string `yaml:"message"`
	// Cause is the message of the error that was caught, if any.
	Cause string `yaml:"cause,omitempty"`
}

func (e StructuralError) Error() string {
	text := e.Message
	if e.Method != "" {
		text += " (method " + e.Method + ")"
	}

	if e.Cause != "" {
		text += ": " + e.Cause
	}

	return text
}

// PlannedMethod describes a runnable method in execution order.
type PlannedMethod struct {
	Name     string
	Kind     MethodKind
	Priority int
	Rows     int
}

// ClassPlan is the ordered execution plan of one class.
type ClassPlan struct {
	Class   string
	Methods []PlannedMethod
	Errors  []StructuralError
}
