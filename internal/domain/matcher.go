package domain

import (
	"fmt"
	"reflect"
)

// ParamCategory tells whether a parameter type can hold an absent value.
type ParamCategory int

const (
	// ValueOnly parameters cannot hold nil: numbers, strings, booleans, structs, arrays.
	ValueOnly ParamCategory = iota
	// ReferenceLike parameters can hold nil: pointers, interfaces, slices, maps, channels, funcs.
	ReferenceLike
)

func (c ParamCategory) String() string {
	if c == ReferenceLike {
		return "reference-like"
	}

	return "value-only"
}

// ParamType describes a declared parameter of a parameterized test.
type ParamType struct {
	Category ParamCategory
	Type     reflect.Type
}

func paramTypeOf(t reflect.Type) ParamType {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ParamType{Category: ReferenceLike, Type: t}
	default:
		return ParamType{Category: ValueOnly, Type: t}
	}
}

// MatchArgument reports whether arg may be passed for param. A nil arg is an
// absent value. Value-only parameters accept any assignable runtime type;
// reference-like parameters accept only their exact type.
func MatchArgument(param ParamType, arg any) bool {
	if arg == nil {
		return param.Category == ReferenceLike
	}

	argType := reflect.TypeOf(arg)

	if param.Category == ValueOnly {
		return argType.AssignableTo(param.Type)
	}

	return argType == param.Type
}

// matchRow checks a data row against the declared parameters position by position.
func matchRow(params []ParamType, values []any) error {
	if len(params) != len(values) {
		return fmt.Errorf("expected %d argument(s), found %d", len(params), len(values))
	}

	for i, param := range params {
		if MatchArgument(param, values[i]) {
			continue
		}

		if values[i] == nil {
			return fmt.Errorf("argument %d: nil cannot be passed as %s", i+1, param.Type)
		}

		return fmt.Errorf("argument %d: %T cannot be passed as %s", i+1, values[i], param.Type)
	}

	return nil
}

// MatchRow reports whether values can be passed for params.
func MatchRow(params []ParamType, values []any) bool {
	return matchRow(params, values) == nil
}

func argumentValues(params []ParamType, values []any) []reflect.Value {
	args := make([]reflect.Value, len(values))

	for i, value := range values {
		if value == nil {
			args[i] = reflect.Zero(params[i].Type)
			continue
		}

		args[i] = reflect.ValueOf(value)
	}

	return args
}
