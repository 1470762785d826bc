package builtin

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pontaoski/monkey/object"
)

// Host is the output collaborator built-ins talk to.
type Host struct {
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)
}

// DefaultHost writes to the process streams and exits the process.
func DefaultHost() *Host {
	return &Host{Stdout: os.Stdout, Stderr: os.Stderr, Exit: os.Exit}
}

type Func func(h *Host, args ...object.Object) object.Object

type Builtin struct {
	Name string
	Fn   Func
}

func (b *Builtin) Type() object.ObjectType { return object.BUILTIN_OBJ }
func (b *Builtin) Inspect() string         { return "builtin " + b.Name }

// builtins is filled once at package initialization and only read after.
var builtins = map[string]object.Object{}

func register(name string, fn Func) {
	builtins[name] = &Builtin{Name: name, Fn: fn}
}

func init() {
	register("print", func(h *Host, args ...object.Object) object.Object {
		return write(h.Stdout, args)
	})
	register("eprint", func(h *Host, args ...object.Object) object.Object {
		return write(h.Stderr, args)
	})
	register("exit", exit)
	register("len", length)
	register("append", appendFn)
	register("bool", toBool)
	register("int", toInt)
	register("float", toFloat)
	register("char", toChar)
	register("str", toStr)

	builtins["pi"] = &object.Float{Value: math.Pi}
}

// Lookup finds a built-in function or constant by name.
func Lookup(name string) (object.Object, bool) {
	obj, ok := builtins[name]
	return obj, ok
}

// Names lists every built-in name in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func arity(name string, args []object.Object, want int) *object.Error {
	if len(args) != want {
		return object.NewError("wrong number of arguments to `%s`: got=%d, want=%d", name, len(args), want)
	}
	return nil
}

func unsupported(name string, arg object.Object) *object.Error {
	return object.NewError("argument to `%s` not supported, got %s", name, arg.Type())
}

func write(w io.Writer, args []object.Object) object.Object {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, object.Display(arg))
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
		return object.NewError("print failed: %s", err)
	}
	return object.NULL
}

func exit(h *Host, args ...object.Object) object.Object {
	if err := arity("exit", args, 1); err != nil {
		return err
	}
	code, ok := args[0].(*object.Integer)
	if !ok {
		return unsupported("exit", args[0])
	}
	h.Exit(int(code.Value))
	return object.NULL
}

func length(h *Host, args ...object.Object) object.Object {
	if err := arity("len", args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Runes()))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	}
	return unsupported("len", args[0])
}

func appendFn(h *Host, args ...object.Object) object.Object {
	if err := arity("append", args, 2); err != nil {
		return err
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.NewError("first argument to `append` must be ARRAY, got %s", args[0].Type())
	}
	elements := make([]object.Object, 0, len(arr.Elements)+1)
	elements = append(elements, arr.Elements...)
	return &object.Array{Elements: append(elements, args[1])}
}

func toBool(h *Host, args ...object.Object) object.Object {
	if err := arity("bool", args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *object.Boolean:
		return arg
	case *object.Integer:
		return object.NativeBool(arg.Value != 0)
	case *object.Float:
		return object.NativeBool(arg.Value != 0)
	case *object.String:
		return object.NativeBool(arg.Value != "")
	case *object.Array:
		return object.NativeBool(len(arg.Elements) != 0)
	case *object.Null:
		return object.FALSE
	}
	return unsupported("bool", args[0])
}

func toInt(h *Host, args ...object.Object) object.Object {
	if err := arity("int", args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *object.Integer:
		return arg
	case *object.Float:
		return &object.Integer{Value: int64(arg.Value)}
	case *object.Boolean:
		if arg.Value {
			return &object.Integer{Value: 1}
		}
		return &object.Integer{Value: 0}
	case *object.Char:
		return &object.Integer{Value: int64(arg.Value)}
	case *object.String:
		v, err := strconv.ParseInt(strings.TrimSpace(arg.Value), 10, 64)
		if err != nil {
			return object.NewError("could not convert %s to INTEGER", arg.Inspect())
		}
		return &object.Integer{Value: v}
	}
	return unsupported("int", args[0])
}

func toFloat(h *Host, args ...object.Object) object.Object {
	if err := arity("float", args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *object.Float:
		return arg
	case *object.Integer:
		return &object.Float{Value: float64(arg.Value)}
	case *object.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(arg.Value), 64)
		if err != nil {
			return object.NewError("could not convert %s to FLOAT", arg.Inspect())
		}
		return &object.Float{Value: v}
	}
	return unsupported("float", args[0])
}

func toChar(h *Host, args ...object.Object) object.Object {
	if err := arity("char", args, 1); err != nil {
		return err
	}
	switch arg := args[0].(type) {
	case *object.Char:
		return arg
	case *object.Integer:
		if arg.Value < 0 || arg.Value > utf8.MaxRune || !utf8.ValidRune(rune(arg.Value)) {
			return object.NewError("codepoint %d out of range", arg.Value)
		}
		return &object.Char{Value: rune(arg.Value)}
	case *object.String:
		runes := arg.Runes()
		if len(runes) != 1 {
			return object.NewError("could not convert %s to CHAR", arg.Inspect())
		}
		return &object.Char{Value: runes[0]}
	}
	return unsupported("char", args[0])
}

func toStr(h *Host, args ...object.Object) object.Object {
	if err := arity("str", args, 1); err != nil {
		return err
	}
	if s, ok := args[0].(*object.String); ok {
		return s
	}
	return &object.String{Value: object.Display(args[0])}
}
