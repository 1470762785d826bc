package object

import (
	"testing"

	"github.com/pontaoski/monkey/ast"
	"github.com/stretchr/testify/assert"
)

func TestInspect(t *testing.T) {
	cases := []struct {
		obj  Object
		want string
	}{
		{&Integer{Value: -12}, "-12"},
		{&Float{Value: 2}, "2.0"},
		{&Float{Value: 0.5}, "0.5"},
		{TRUE, "true"},
		{FALSE, "false"},
		{NULL, "null"},
		{&Char{Value: 'x'}, "'x'"},
		{&Char{Value: '\n'}, `'\n'`},
		{&String{Value: "hi \"there\""}, `"hi \"there\""`},
		{&Array{}, "[]"},
		{&Array{Elements: []Object{&Integer{Value: 1}, &String{Value: "a"}, NULL}}, `[1, "a", null]`},
		{&ReturnValue{Value: &Integer{Value: 3}}, "3"},
		{NewError("type mismatch: %s + %s", INTEGER_OBJ, BOOLEAN_OBJ), "ERROR: type mismatch: INTEGER + BOOLEAN"},
		{&Function{
			Parameters: []ast.Identifier{{Name: "x"}},
			Body: ast.BlockStatement{Statements: []ast.Statement{
				ast.ExpressionStatement{Expression: ast.Identifier{Name: "x"}},
			}},
		}, "fn(x) { x; }"},
	}

	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			assert.Equal(t, c.want, c.obj.Inspect())
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "hi", Display(&String{Value: "hi"}))
	assert.Equal(t, "x", Display(&Char{Value: 'x'}))
	assert.Equal(t, `["hi"]`, Display(&Array{Elements: []Object{&String{Value: "hi"}}}))
	assert.Equal(t, "1.5", Display(&Float{Value: 1.5}))
}

func TestTruthiness(t *testing.T) {
	assert.False(t, IsTruthy(NULL))
	assert.False(t, IsTruthy(FALSE))
	assert.True(t, IsTruthy(TRUE))
	assert.True(t, IsTruthy(&Integer{Value: 0}))
	assert.True(t, IsTruthy(&String{}))
	assert.True(t, IsTruthy(&Array{}))
}

func TestNativeBool(t *testing.T) {
	assert.Same(t, TRUE, NativeBool(true))
	assert.Same(t, FALSE, NativeBool(false))
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError(NewError("boom")))
	assert.False(t, IsError(NULL))
	assert.False(t, IsError(nil))
}

func TestEqual(t *testing.T) {
	fn := &Function{}
	arr := &Array{Elements: []Object{&Integer{Value: 1}}}

	cases := []struct {
		name string
		a, b Object
		want bool
	}{
		{"ints", &Integer{Value: 1}, &Integer{Value: 1}, true},
		{"different ints", &Integer{Value: 1}, &Integer{Value: 2}, false},
		{"int and float", &Integer{Value: 2}, &Float{Value: 2.0}, true},
		{"float and int", &Float{Value: 2.5}, &Integer{Value: 2}, false},
		{"bools", TRUE, NativeBool(true), true},
		{"chars", &Char{Value: 'a'}, &Char{Value: 'a'}, true},
		{"strings", &String{Value: "a"}, &String{Value: "a"}, true},
		{"string and char", &String{Value: "a"}, &Char{Value: 'a'}, false},
		{"nulls", NULL, &Null{}, true},
		{"null and false", NULL, FALSE, false},
		{"arrays", arr, &Array{Elements: []Object{&Float{Value: 1}}}, true},
		{"arrays of different length", arr, &Array{}, false},
		{"nested arrays", &Array{Elements: []Object{arr}}, &Array{Elements: []Object{&Array{Elements: []Object{&Integer{Value: 1}}}}}, true},
		{"same function", fn, fn, true},
		{"different functions", fn, &Function{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Equal(c.a, c.b))
			assert.Equal(t, c.want, Equal(c.b, c.a))
		})
	}
}

func TestEnvironment(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("a", &Integer{Value: 1})
	outer.Set("b", &Integer{Value: 2})

	inner := NewEnclosedEnvironment(outer)
	inner.Set("b", &Integer{Value: 20})
	inner.Set("c", &Integer{Value: 30})

	get := func(env *Environment, name string) Object {
		obj, ok := env.Get(name)
		if !ok {
			return nil
		}
		return obj
	}

	assert.Equal(t, &Integer{Value: 1}, get(inner, "a"))
	assert.Equal(t, &Integer{Value: 20}, get(inner, "b"))
	assert.Equal(t, &Integer{Value: 2}, get(outer, "b"))
	assert.Nil(t, get(outer, "c"))
	assert.Nil(t, get(inner, "missing"))
	assert.Same(t, outer, inner.Outer())
	assert.Nil(t, outer.Outer())

	outer.Set("a", &Integer{Value: 100})
	assert.Equal(t, &Integer{Value: 100}, get(inner, "a"), "inner scopes see later outer definitions")
}
