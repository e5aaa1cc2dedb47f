package domain

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	m "minitest.dev/runner/internal/model"
	"minitest.dev/runner/pkg/minitest"
)

// Classify builds the descriptor of class. It never fails: every defect is
// recorded as a structural error and classification of the other methods goes on.
func Classify(class minitest.Class) *ClassDescriptor {
	desc := &ClassDescriptor{Name: class.Name, class: class}

	desc.Descriptions = desc.checkMarkers("", class.Markers, minitest.TargetClass).descriptions

	for _, method := range class.Methods {
		desc.classifyMethod(method)
	}

	SortMethods(desc.SimpleTests)
	SortMethods(desc.ParameterizedTests)
	SortMethods(desc.Setups)
	SortMethods(desc.Teardowns)

	slog.Debug("classified test class",
		"class", desc.Name,
		"tests", len(desc.SimpleTests),
		"parameterized", len(desc.ParameterizedTests),
		"setups", len(desc.Setups),
		"teardowns", len(desc.Teardowns),
		"errors", len(desc.errors),
	)

	return desc
}

type markerSet struct {
	test         bool
	setup        bool
	teardown     bool
	priority     int
	rows         []minitest.DataRowCase
	descriptions []string
}

func (s markerSet) kindCount() int {
	count := 0

	for _, present := range []bool{s.test, s.setup, s.teardown} {
		if present {
			count++
		}
	}

	return count
}

// checkMarkers validates target and multiplicity of markers and folds them into a markerSet.
func (c *ClassDescriptor) checkMarkers(method string, markers []minitest.Marker, target minitest.Target) markerSet {
	var set markerSet

	seen := make(map[minitest.MarkerKind]bool)

	for _, marker := range markers {
		if !marker.Kind.AllowedOn(target) {
			c.addError(method, fmt.Sprintf("Invalid marker - %s cannot be set on a %s, only on a %s",
				marker.Kind, target, marker.Kind.Targets()), nil)

			continue
		}

		if seen[marker.Kind] && !marker.Kind.Repeatable() {
			c.addError(method, fmt.Sprintf("Invalid marker - %s can only be set once", marker.Kind), nil)
			continue
		}

		seen[marker.Kind] = true

		switch marker.Kind {
		case minitest.MarkerTestMethod:
			set.test = true
		case minitest.MarkerSetup:
			set.setup = true
		case minitest.MarkerTeardown:
			set.teardown = true
		case minitest.MarkerPriority:
			set.priority = marker.Priority
		case minitest.MarkerDataRow:
			set.rows = append(set.rows, marker.Row)
		case minitest.MarkerDescription:
			set.descriptions = append(set.descriptions, marker.Text)
		case minitest.MarkerTestClass:
		}
	}

	return set
}

func (c *ClassDescriptor) classifyMethod(method minitest.Method) {
	set := c.checkMarkers(method.Name, method.Markers, minitest.TargetMethod)

	switch set.kindCount() {
	case 0:
		slog.Debug("skipping method without test markers", "class", c.Name, "method", method.Name)
		return
	case 1:
	default:
		c.addError(method.Name, "Invalid marker - TestMethod, Setup and Teardown are mutually exclusive", nil)
		return
	}

	fn := reflect.ValueOf(method.Func)
	if err := c.checkSignature(fn); err != nil {
		c.addError(method.Name, "Invalid method - "+err.Error(), nil)
		return
	}

	desc := &MethodDescriptor{
		Name:         method.Name,
		Priority:     set.priority,
		Descriptions: set.descriptions,
		fn:           fn,
	}

	switch {
	case set.setup:
		desc.Kind = m.Setup
	case set.teardown:
		desc.Kind = m.Teardown
	case len(set.rows) > 0:
		desc.Kind = m.ParameterizedTest
		desc.Rows = set.rows
	default:
		desc.Kind = m.SimpleTest
	}

	fnType := fn.Type()
	for i := 1; i < fnType.NumIn(); i++ {
		desc.Params = append(desc.Params, paramTypeOf(fnType.In(i)))
	}

	if !c.validate(desc, fnType, len(set.rows) > 0) {
		return
	}

	switch desc.Kind {
	case m.SimpleTest:
		c.SimpleTests = append(c.SimpleTests, desc)
	case m.ParameterizedTest:
		c.ParameterizedTests = append(c.ParameterizedTests, desc)
	case m.Setup:
		c.Setups = append(c.Setups, desc)
	case m.Teardown:
		c.Teardowns = append(c.Teardowns, desc)
	}
}

// checkSignature makes sure fn can be invoked on the class instance.
func (c *ClassDescriptor) checkSignature(fn reflect.Value) error {
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return fmt.Errorf("expected a method expression, found: %v", fn.Kind())
	}

	fnType := fn.Type()
	if fnType.NumIn() == 0 {
		return fmt.Errorf("expected receiver %s, found none", c.class.Receiver)
	}

	if c.class.Receiver != nil && fnType.In(0) != c.class.Receiver {
		return fmt.Errorf("expected receiver %s, found: %s", c.class.Receiver, fnType.In(0))
	}

	if fnType.IsVariadic() {
		return fmt.Errorf("variadic parameters are not supported")
	}

	return nil
}

// validate records return type, arity and marker defects. It reports whether
// the method stays runnable in its category.
func (c *ClassDescriptor) validate(desc *MethodDescriptor, fnType reflect.Type, hasRows bool) bool {
	runnable := true

	if fnType.NumOut() != 0 {
		outs := make([]string, 0, fnType.NumOut())
		for i := range fnType.NumOut() {
			outs = append(outs, fnType.Out(i).String())
		}

		c.addError(desc.Name, fmt.Sprintf("Invalid return type - expected: none, found: (%s)", strings.Join(outs, ", ")), nil)

		runnable = false
	}

	params := len(desc.Params)

	switch desc.Kind {
	case m.ParameterizedTest:
		if params < 1 {
			c.addError(desc.Name, fmt.Sprintf("Invalid argument count - expected: > 0, found: %d", params), nil)
		}
	default:
		if params != 0 {
			c.addError(desc.Name, fmt.Sprintf("Invalid argument count - expected: 0, found: %d", params), nil)

			runnable = false
		}
	}

	if (desc.Kind == m.Setup || desc.Kind == m.Teardown) && hasRows {
		c.addError(desc.Name, fmt.Sprintf("Invalid marker - %s cannot be set on %s methods", minitest.MarkerDataRow, desc.Kind), nil)
	}

	return runnable
}
