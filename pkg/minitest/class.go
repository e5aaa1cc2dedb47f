package minitest

import (
	"errors"
	"reflect"
)

// ErrNilInstance is returned by a class constructor wrapper when the user
// constructor reports success but hands back a nil instance.
var ErrNilInstance = errors.New("constructor returned a nil instance")

// Method is a registered method of a test class.
type Method struct {
	Name string
	// Func is a method expression such as (*T).Name. Its first parameter is
	// the class instance.
	Func    any
	Markers []Marker
}

// Class is a registered test class.
type Class struct {
	Name string
	// Receiver is the type every method expression must accept first.
	Receiver reflect.Type
	// New builds the shared instance. It is nil when the class has no usable
	// constructor.
	New     func() (any, error)
	Markers []Marker
	Methods []Method
}

// HasMarker reports whether the class carries at least one marker of kind.
func (c Class) HasMarker(kind MarkerKind) bool {
	for _, marker := range c.Markers {
		if marker.Kind == kind {
			return true
		}
	}

	return false
}

// ClassBuilder registers the methods of a test class of type T.
type ClassBuilder[T any] struct {
	class Class
}

// NewClass starts the registration of a test class of type T. The class is
// named after T; ctor may be nil for a class that cannot be constructed.
func NewClass[T any](ctor func() (*T, error), markers ...Marker) *ClassBuilder[T] {
	class := Class{
		Name:     reflect.TypeFor[T]().String(),
		Receiver: reflect.TypeFor[*T](),
		Markers:  append([]Marker(nil), markers...),
	}

	if ctor != nil {
		class.New = func() (any, error) {
			instance, err := ctor()
			if err != nil {
				return nil, err
			}

			if instance == nil {
				return nil, ErrNilInstance
			}

			return instance, nil
		}
	}

	return &ClassBuilder[T]{class: class}
}

// Named overrides the class name derived from T.
func (b *ClassBuilder[T]) Named(name string) *ClassBuilder[T] {
	b.class.Name = name
	return b
}

// Method registers fn, normally a method expression of *T, under name.
func (b *ClassBuilder[T]) Method(name string, fn any, markers ...Marker) *ClassBuilder[T] {
	b.class.Methods = append(b.class.Methods, Method{
		Name:    name,
		Func:    fn,
		Markers: append([]Marker(nil), markers...),
	})

	return b
}

// Build returns the registered class.
func (b *ClassBuilder[T]) Build() Class {
	class := b.class
	class.Markers = append([]Marker(nil), b.class.Markers...)
	class.Methods = append([]Method(nil), b.class.Methods...)

	return class
}

// Zero returns a constructor that allocates a zero T.
func Zero[T any]() func() (*T, error) {
	return func() (*T, error) {
		return new(T), nil
	}
}
