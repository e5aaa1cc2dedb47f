package minitest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleTests struct{ ready bool }

func (s *sampleTests) Check() {}

func TestNewClass(t *testing.T) {
	class := NewClass(Zero[sampleTests](), TestClass(), Description("sample")).
		Method("Check", (*sampleTests).Check, TestMethod(), Priority(1)).
		Build()

	assert.Equal(t, "minitest.sampleTests", class.Name)
	assert.Equal(t, reflect.TypeFor[*sampleTests](), class.Receiver)
	assert.True(t, class.HasMarker(MarkerTestClass))
	assert.False(t, class.HasMarker(MarkerSetup))

	require.Len(t, class.Methods, 1)
	assert.Equal(t, "Check", class.Methods[0].Name)
	assert.Equal(t, []Marker{TestMethod(), Priority(1)}, class.Methods[0].Markers)

	require.NotNil(t, class.New)

	instance, err := class.New()
	require.NoError(t, err)
	assert.IsType(t, &sampleTests{}, instance)
}

func TestNewClass_Named(t *testing.T) {
	class := NewClass(Zero[sampleTests]()).Named("Renamed").Build()
	assert.Equal(t, "Renamed", class.Name)
}

func TestNewClass_Constructor(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("nil constructor", func(t *testing.T) {
		assert.Nil(t, NewClass[sampleTests](nil).Build().New)
	})

	t.Run("error", func(t *testing.T) {
		class := NewClass(func() (*sampleTests, error) { return nil, errBoom }).Build()

		_, err := class.New()
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("nil instance", func(t *testing.T) {
		class := NewClass(func() (*sampleTests, error) { return nil, nil }).Build()

		instance, err := class.New()
		require.ErrorIs(t, err, ErrNilInstance)
		assert.Nil(t, instance)
	})

	t.Run("fresh instance per call", func(t *testing.T) {
		class := NewClass(Zero[sampleTests]()).Build()

		first, err := class.New()
		require.NoError(t, err)
		first.(*sampleTests).ready = true

		second, err := class.New()
		require.NoError(t, err)
		assert.False(t, second.(*sampleTests).ready)
	})
}

func TestClassBuilder_BuildCopies(t *testing.T) {
	builder := NewClass(Zero[sampleTests](), TestClass()).Method("Check", (*sampleTests).Check)

	first := builder.Build()
	builder.Method("Other", (*sampleTests).Check)
	second := builder.Build()

	assert.Len(t, first.Methods, 1)
	assert.Len(t, second.Methods, 2)
}
