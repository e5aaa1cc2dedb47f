package minitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerKind_Vocabulary(t *testing.T) {
	tests := []struct {
		kind       MarkerKind
		name       string
		targets    Target
		repeatable bool
	}{
		{MarkerTestClass, "TestClass", TargetClass, false},
		{MarkerTestMethod, "TestMethod", TargetMethod, false},
		{MarkerSetup, "Setup", TargetMethod, false},
		{MarkerTeardown, "Teardown", TargetMethod, false},
		{MarkerPriority, "Priority", TargetMethod, false},
		{MarkerDataRow, "DataRow", TargetMethod, true},
		{MarkerDescription, "Description", TargetClass | TargetMethod, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.targets, tt.kind.Targets())
			assert.Equal(t, tt.repeatable, tt.kind.Repeatable())
		})
	}
}

func TestMarkerKind_AllowedOn(t *testing.T) {
	assert.True(t, MarkerTestClass.AllowedOn(TargetClass))
	assert.False(t, MarkerTestClass.AllowedOn(TargetMethod))
	assert.True(t, MarkerDescription.AllowedOn(TargetClass))
	assert.True(t, MarkerDescription.AllowedOn(TargetMethod))
	assert.False(t, MarkerPriority.AllowedOn(TargetClass))
	assert.False(t, MarkerKind(99).AllowedOn(TargetMethod))
	assert.Equal(t, "MarkerKind(99)", MarkerKind(99).String())
}

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "class", TargetClass.String())
	assert.Equal(t, "method", TargetMethod.String())
	assert.Equal(t, "class or method", (TargetClass | TargetMethod).String())
	assert.Equal(t, "nothing", Target(0).String())
}

func TestMarker_Constructors(t *testing.T) {
	assert.Equal(t, Marker{Kind: MarkerPriority, Priority: -3}, Priority(-3))
	assert.Equal(t, Marker{Kind: MarkerDescription, Text: "hello"}, Description("hello"))

	row := DataRow("a", nil, 3).WithDescription("mixed")
	assert.Equal(t, MarkerDataRow, row.Kind)
	assert.Equal(t, []any{"a", nil, 3}, row.Row.Values)
	assert.Equal(t, "mixed", row.Row.Description)

	assert.Equal(t, TestMethod(), TestMethod().WithDescription("ignored"))
}

func TestMarker_String(t *testing.T) {
	assert.Equal(t, "TestClass", TestClass().String())
	assert.Equal(t, "Priority(2)", Priority(2).String())
	assert.Equal(t, "DataRow([1 x])", DataRow(1, "x").String())
	assert.Equal(t, `Description("text")`, Description("text").String())
}
