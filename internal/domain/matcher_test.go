package domain

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair [2]int

type celsius float64

func TestParamTypeOf(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want ParamCategory
	}{
		{reflect.TypeFor[int](), ValueOnly},
		{reflect.TypeFor[string](), ValueOnly},
		{reflect.TypeFor[[2]int](), ValueOnly},
		{reflect.TypeFor[struct{ X int }](), ValueOnly},
		{reflect.TypeFor[*int](), ReferenceLike},
		{reflect.TypeFor[error](), ReferenceLike},
		{reflect.TypeFor[[]string](), ReferenceLike},
		{reflect.TypeFor[map[string]int](), ReferenceLike},
		{reflect.TypeFor[func()](), ReferenceLike},
		{reflect.TypeFor[chan int](), ReferenceLike},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			param := paramTypeOf(tt.typ)
			assert.Equal(t, tt.want, param.Category)
			assert.Equal(t, tt.typ, param.Type)
		})
	}
}

func TestMatchArgument(t *testing.T) {
	value := 3

	tests := []struct {
		name  string
		param reflect.Type
		arg   any
		want  bool
	}{
		{"value same type", reflect.TypeFor[int](), 7, true},
		{"value other type", reflect.TypeFor[string](), 7, false},
		{"value absent", reflect.TypeFor[int](), nil, false},
		{"value int to float", reflect.TypeFor[float64](), 7, false},
		{"value named to unnamed", reflect.TypeFor[[2]int](), pair{1, 2}, true},
		{"value unnamed to named", reflect.TypeFor[pair](), [2]int{1, 2}, true},
		{"value defined types differ", reflect.TypeFor[celsius](), 21.5, false},
		{"reference same type", reflect.TypeFor[*int](), &value, true},
		{"reference absent", reflect.TypeFor[*int](), nil, true},
		{"reference interface absent", reflect.TypeFor[error](), nil, true},
		{"reference interface needs exact type", reflect.TypeFor[error](), &notFoundError{}, false},
		{"reference any needs exact type", reflect.TypeFor[any](), 7, false},
		{"reference slice", reflect.TypeFor[[]string](), []string{"a"}, true},
		{"reference named slice differs", reflect.TypeFor[[]int](), pair{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchArgument(paramTypeOf(tt.param), tt.arg))
		})
	}
}

func TestMatchRow(t *testing.T) {
	params := []ParamType{
		paramTypeOf(reflect.TypeFor[string]()),
		paramTypeOf(reflect.TypeFor[*int]()),
	}

	assert.True(t, MatchRow(params, []any{"text", nil}))
	assert.False(t, MatchRow(params, []any{"text"}))
	assert.False(t, MatchRow(params, []any{"text", nil, 3}))

	err := matchRow(params, []any{3, nil})
	require.Error(t, err)
	assert.Equal(t, "argument 1: int cannot be passed as string", err.Error())

	err = matchRow(params[:1], []any{nil})
	require.Error(t, err)
	assert.Equal(t, "argument 1: nil cannot be passed as string", err.Error())

	err = matchRow(params, nil)
	require.Error(t, err)
	assert.Equal(t, "expected 2 argument(s), found 0", err.Error())
}

func TestArgumentValues(t *testing.T) {
	params := []ParamType{
		paramTypeOf(reflect.TypeFor[string]()),
		paramTypeOf(reflect.TypeFor[*int]()),
	}

	args := argumentValues(params, []any{"text", nil})
	require.Len(t, args, 2)
	assert.Equal(t, "text", args[0].Interface())
	assert.True(t, args[1].IsNil())
	assert.Equal(t, reflect.TypeFor[*int](), args[1].Type())
}
