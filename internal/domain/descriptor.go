package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	m "minitest.dev/runner/internal/model"
	"minitest.dev/runner/pkg/minitest"
)

// ErrNoConstructor is the cause recorded for classes registered without a constructor.
var ErrNoConstructor = errors.New("no usable parameterless constructor")

// MethodDescriptor is a classified method of a test class.
type MethodDescriptor struct {
	Name         string
	Kind         m.MethodKind
	Priority     int
	Descriptions []string
	// Rows holds the data rows of a parameterized test in declaration order.
	Rows   []minitest.DataRowCase
	Params []ParamType

	fn reflect.Value
}

// ClassDescriptor is the classified form of a test class. It is built once by
// Classify and owns the instance shared by every invocation.
type ClassDescriptor struct {
	Name         string
	Descriptions []string

	SimpleTests        []*MethodDescriptor
	ParameterizedTests []*MethodDescriptor
	Setups             []*MethodDescriptor
	Teardowns          []*MethodDescriptor

	class        minitest.Class
	errors       []m.StructuralError
	constructed  bool
	constructErr error
	instance     reflect.Value
}

// StructuralErrors returns the defects recorded while classifying and constructing the class.
func (c *ClassDescriptor) StructuralErrors() []m.StructuralError {
	return append([]m.StructuralError(nil), c.errors...)
}

func (c *ClassDescriptor) addError(method, message string, cause error) {
	structural := m.StructuralError{Class: c.Name, Method: method, Message: message}
	if cause != nil {
		structural.Cause = cause.Error()
	}

	slog.Debug("structural error", "class", c.Name, "method", method, "message", message, "cause", structural.Cause)

	c.errors = append(c.errors, structural)
}

// Construct creates the shared instance using the class constructor. Only the
// first call constructs; later calls report the first result.
func (c *ClassDescriptor) Construct() bool {
	if c.constructed {
		return c.instance.IsValid()
	}

	c.constructed = true

	instance, err := construct(c.class)
	if err != nil {
		c.constructErr = err
		c.addError("", "Cannot create an instance of the test class", err)
		slog.Error("Failed to construct test class", "class", c.Name, "error", err)

		return false
	}

	c.instance = reflect.ValueOf(instance)

	return true
}

// Instance returns the shared instance once Construct has succeeded.
func (c *ClassDescriptor) Instance() (reflect.Value, bool) {
	return c.instance, c.instance.IsValid()
}

func construct(class minitest.Class) (instance any, err error) {
	if class.New == nil {
		return nil, ErrNoConstructor
	}

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = fmt.Errorf("constructor panicked: %w", signalOf(r))
		}
	}()

	instance, err = class.New()
	if err != nil {
		return nil, err
	}

	if class.Receiver != nil && reflect.TypeOf(instance) != class.Receiver {
		return nil, fmt.Errorf("constructor returned %T, expected %s", instance, class.Receiver)
	}

	return instance, nil
}

// Plan returns the runnable methods in execution order together with the structural errors.
func (c *ClassDescriptor) Plan() m.ClassPlan {
	plan := m.ClassPlan{Class: c.Name, Errors: c.StructuralErrors()}

	for _, group := range [][]*MethodDescriptor{c.Setups, c.SimpleTests, c.ParameterizedTests, c.Teardowns} {
		for _, method := range group {
			plan.Methods = append(plan.Methods, m.PlannedMethod{
				Name:     method.Name,
				Kind:     method.Kind,
				Priority: method.Priority,
				Rows:     len(method.Rows),
			})
		}
	}

	return plan
}
