package builtin

import (
	"bytes"
	"math"
	"testing"

	"github.com/pontaoski/monkey/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	stdout, stderr bytes.Buffer
	exited         []int
}

func (r *recorder) host() *Host {
	return &Host{
		Stdout: &r.stdout,
		Stderr: &r.stderr,
		Exit:   func(code int) { r.exited = append(r.exited, code) },
	}
}

func call(t *testing.T, h *Host, name string, args ...object.Object) object.Object {
	t.Helper()

	obj, ok := Lookup(name)
	require.True(t, ok, "builtin %s", name)
	fn, ok := obj.(*Builtin)
	require.True(t, ok, "%s is not a function", name)
	return fn.Fn(h, args...)
}

func str(v string) object.Object { return &object.String{Value: v} }
func num(v int64) object.Object  { return &object.Integer{Value: v} }

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"append", "bool", "char", "eprint", "exit", "float", "int", "len", "pi", "print", "str",
	}, Names())
}

func TestPi(t *testing.T) {
	obj, ok := Lookup("pi")
	require.True(t, ok)
	assert.Equal(t, &object.Float{Value: math.Pi}, obj)
}

func TestPrint(t *testing.T) {
	var r recorder
	h := r.host()

	assert.Equal(t, object.NULL, call(t, h, "print", str("a"), num(1), &object.Char{Value: 'c'}, object.NULL))
	assert.Equal(t, object.NULL, call(t, h, "print"))
	assert.Equal(t, object.NULL, call(t, h, "eprint", &object.Array{Elements: []object.Object{str("x")}}))

	assert.Equal(t, "a 1 c null\n\n", r.stdout.String())
	assert.Equal(t, "[\"x\"]\n", r.stderr.String())
}

func TestExit(t *testing.T) {
	var r recorder
	h := r.host()

	assert.Equal(t, object.NULL, call(t, h, "exit", num(3)))
	assert.Equal(t, []int{3}, r.exited)

	assert.Equal(t, object.NewError("argument to `exit` not supported, got STRING"), call(t, h, "exit", str("x")))
	assert.Equal(t, object.NewError("wrong number of arguments to `exit`: got=0, want=1"), call(t, h, "exit"))
	assert.Equal(t, []int{3}, r.exited)
}

func TestBuiltins(t *testing.T) {
	h := DefaultHost()
	arr := &object.Array{Elements: []object.Object{num(1), num(2)}}

	cases := []struct {
		name string
		fn   string
		args []object.Object
		want object.Object
	}{
		{"len string", "len", []object.Object{str("hello")}, num(5)},
		{"len counts codepoints", "len", []object.Object{str("größe")}, num(5)},
		{"len array", "len", []object.Object{arr}, num(2)},
		{"len int", "len", []object.Object{num(1)}, object.NewError("argument to `len` not supported, got INTEGER")},
		{"len arity", "len", []object.Object{str("a"), str("b")}, object.NewError("wrong number of arguments to `len`: got=2, want=1")},

		{"append", "append", []object.Object{arr, str("x")}, &object.Array{Elements: []object.Object{num(1), num(2), str("x")}}},
		{"append non array", "append", []object.Object{num(1), num(2)}, object.NewError("first argument to `append` must be ARRAY, got INTEGER")},

		{"bool int", "bool", []object.Object{num(0)}, object.FALSE},
		{"bool string", "bool", []object.Object{str("x")}, object.TRUE},
		{"bool null", "bool", []object.Object{object.NULL}, object.FALSE},
		{"bool empty array", "bool", []object.Object{&object.Array{}}, object.FALSE},

		{"int float", "int", []object.Object{&object.Float{Value: -2.7}}, num(-2)},
		{"int bool", "int", []object.Object{object.TRUE}, num(1)},
		{"int char", "int", []object.Object{&object.Char{Value: 'a'}}, num(97)},
		{"int string", "int", []object.Object{str(" 42 ")}, num(42)},
		{"int bad string", "int", []object.Object{str("4x")}, object.NewError(`could not convert "4x" to INTEGER`)},
		{"int null", "int", []object.Object{object.NULL}, object.NewError("argument to `int` not supported, got NULL")},

		{"float int", "float", []object.Object{num(2)}, &object.Float{Value: 2}},
		{"float string", "float", []object.Object{str("1.25")}, &object.Float{Value: 1.25}},
		{"float bad string", "float", []object.Object{str("x")}, object.NewError(`could not convert "x" to FLOAT`)},

		{"char int", "char", []object.Object{num(65)}, &object.Char{Value: 'A'}},
		{"char string", "char", []object.Object{str("ß")}, &object.Char{Value: 'ß'}},
		{"char long string", "char", []object.Object{str("ab")}, object.NewError(`could not convert "ab" to CHAR`)},
		{"char out of range", "char", []object.Object{num(-1)}, object.NewError("codepoint -1 out of range")},
		{"char surrogate", "char", []object.Object{num(0xD800)}, object.NewError("codepoint 55296 out of range")},
		{"char above max", "char", []object.Object{num(0x110000)}, object.NewError("codepoint 1114112 out of range")},

		{"str int", "str", []object.Object{num(12)}, str("12")},
		{"str char", "str", []object.Object{&object.Char{Value: 'z'}}, str("z")},
		{"str array", "str", []object.Object{&object.Array{Elements: []object.Object{str("a")}}}, str(`["a"]`)},
		{"str float", "str", []object.Object{&object.Float{Value: 3}}, str("3.0")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, call(t, h, c.fn, c.args...))
		})
	}
}

func TestAppendDoesNotMutate(t *testing.T) {
	arr := &object.Array{Elements: make([]object.Object, 1, 8)}
	arr.Elements[0] = num(1)

	first := call(t, DefaultHost(), "append", arr, num(2)).(*object.Array)
	second := call(t, DefaultHost(), "append", arr, num(3)).(*object.Array)

	assert.Len(t, arr.Elements, 1)
	assert.Equal(t, num(2), first.Elements[1])
	assert.Equal(t, num(3), second.Elements[1])
}

func TestBuiltinObject(t *testing.T) {
	obj, ok := Lookup("len")
	require.True(t, ok)
	assert.Equal(t, object.BUILTIN_OBJ, obj.Type())
	assert.Equal(t, "builtin len", obj.Inspect())

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
