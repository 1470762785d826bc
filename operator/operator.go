// Package operator holds the type-directed dispatch tables for unary and
// binary operators.
package operator

import (
	"math"
	"strings"

	"github.com/pontaoski/monkey/object"
)

type (
	prefixFunc func(object.Object) object.Object
	binaryFunc func(left, right object.Object) object.Object
)

type prefixKey struct {
	op      string
	operand object.ObjectType
}

type binaryKey struct {
	op          string
	left, right object.ObjectType
}

var prefixTable = map[prefixKey]prefixFunc{
	{"-", object.INTEGER_OBJ}: func(o object.Object) object.Object {
		return &object.Integer{Value: -o.(*object.Integer).Value}
	},
	{"-", object.FLOAT_OBJ}: func(o object.Object) object.Object {
		return &object.Float{Value: -o.(*object.Float).Value}
	},
}

// Prefix applies a unary operator. `!` negates truthiness and accepts any
// operand.
func Prefix(op string, right object.Object) object.Object {
	if op == "!" {
		return object.NativeBool(!object.IsTruthy(right))
	}
	if f, ok := prefixTable[prefixKey{op, right.Type()}]; ok {
		return f(right)
	}
	return object.NewError("unknown operator: %s%s", op, right.Type())
}

// Binary applies a binary operator. Equality is defined for every pair of
// values; everything else goes through the table after numeric promotion.
func Binary(op string, left, right object.Object) object.Object {
	switch op {
	case "==":
		return object.NativeBool(object.Equal(left, right))
	case "!=":
		return object.NativeBool(!object.Equal(left, right))
	}

	l, r := promote(left, right)
	if f, ok := binaryTable[binaryKey{op, l.Type(), r.Type()}]; ok {
		return f(l, r)
	}
	return Mismatch(op, left, right)
}

// Mismatch builds the error for an operator applied to unsupported operands.
func Mismatch(op string, left, right object.Object) *object.Error {
	if left.Type() != right.Type() {
		return object.NewError("type mismatch: %s %s %s", left.Type(), op, right.Type())
	}
	return object.NewError("unknown operator: %s %s %s", left.Type(), op, right.Type())
}

// promote turns the Integer side of a mixed Integer/Float pair into a Float.
func promote(left, right object.Object) (object.Object, object.Object) {
	switch l := left.(type) {
	case *object.Integer:
		if _, ok := right.(*object.Float); ok {
			return &object.Float{Value: float64(l.Value)}, right
		}
	case *object.Float:
		if r, ok := right.(*object.Integer); ok {
			return left, &object.Float{Value: float64(r.Value)}
		}
	}
	return left, right
}

func ints(f func(a, b int64) object.Object) binaryFunc {
	return func(l, r object.Object) object.Object {
		return f(l.(*object.Integer).Value, r.(*object.Integer).Value)
	}
}

func floats(f func(a, b float64) object.Object) binaryFunc {
	return func(l, r object.Object) object.Object {
		return f(l.(*object.Float).Value, r.(*object.Float).Value)
	}
}

func strs(f func(a, b string) object.Object) binaryFunc {
	return func(l, r object.Object) object.Object {
		return f(l.(*object.String).Value, r.(*object.String).Value)
	}
}

func chars(f func(a, b rune) object.Object) binaryFunc {
	return func(l, r object.Object) object.Object {
		return f(l.(*object.Char).Value, r.(*object.Char).Value)
	}
}

func bools(f func(a, b bool) bool) binaryFunc {
	return func(l, r object.Object) object.Object {
		return object.NativeBool(f(l.(*object.Boolean).Value, r.(*object.Boolean).Value))
	}
}

func integer(v int64) object.Object { return &object.Integer{Value: v} }
func float(v float64) object.Object { return &object.Float{Value: v} }

const errDivisionByZero = "division by zero"

// ipow raises base to a non-negative exponent, wrapping on overflow.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

var binaryTable = map[binaryKey]binaryFunc{
	{"+", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object { return integer(a + b) }),
	{"-", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object { return integer(a - b) }),
	{"*", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object { return integer(a * b) }),
	{"/", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object {
		if b == 0 {
			return object.NewError(errDivisionByZero)
		}
		return integer(a / b)
	}),
	{"%", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object {
		if b == 0 {
			return object.NewError(errDivisionByZero)
		}
		return integer(a % b)
	}),
	{"**", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object {
		if b < 0 {
			return float(math.Pow(float64(a), float64(b)))
		}
		return integer(ipow(a, b))
	}),
	{"<", object.INTEGER_OBJ, object.INTEGER_OBJ}:  ints(func(a, b int64) object.Object { return object.NativeBool(a < b) }),
	{">", object.INTEGER_OBJ, object.INTEGER_OBJ}:  ints(func(a, b int64) object.Object { return object.NativeBool(a > b) }),
	{"<=", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object { return object.NativeBool(a <= b) }),
	{">=", object.INTEGER_OBJ, object.INTEGER_OBJ}: ints(func(a, b int64) object.Object { return object.NativeBool(a >= b) }),

	{"+", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return float(a + b) }),
	{"-", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return float(a - b) }),
	{"*", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return float(a * b) }),
	{"/", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object {
		if b == 0 {
			return object.NewError(errDivisionByZero)
		}
		return float(a / b)
	}),
	{"%", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object {
		if b == 0 {
			return object.NewError(errDivisionByZero)
		}
		return float(math.Mod(a, b))
	}),
	{"**", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return float(math.Pow(a, b)) }),
	{"<", object.FLOAT_OBJ, object.FLOAT_OBJ}:  floats(func(a, b float64) object.Object { return object.NativeBool(a < b) }),
	{">", object.FLOAT_OBJ, object.FLOAT_OBJ}:  floats(func(a, b float64) object.Object { return object.NativeBool(a > b) }),
	{"<=", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return object.NativeBool(a <= b) }),
	{">=", object.FLOAT_OBJ, object.FLOAT_OBJ}: floats(func(a, b float64) object.Object { return object.NativeBool(a >= b) }),

	{"+", object.STRING_OBJ, object.STRING_OBJ}: strs(func(a, b string) object.Object {
		return &object.String{Value: a + b}
	}),
	{"<", object.STRING_OBJ, object.STRING_OBJ}:  strs(func(a, b string) object.Object { return object.NativeBool(strings.Compare(a, b) < 0) }),
	{">", object.STRING_OBJ, object.STRING_OBJ}:  strs(func(a, b string) object.Object { return object.NativeBool(strings.Compare(a, b) > 0) }),
	{"<=", object.STRING_OBJ, object.STRING_OBJ}: strs(func(a, b string) object.Object { return object.NativeBool(strings.Compare(a, b) <= 0) }),
	{">=", object.STRING_OBJ, object.STRING_OBJ}: strs(func(a, b string) object.Object { return object.NativeBool(strings.Compare(a, b) >= 0) }),

	{"<", object.CHAR_OBJ, object.CHAR_OBJ}:  chars(func(a, b rune) object.Object { return object.NativeBool(a < b) }),
	{">", object.CHAR_OBJ, object.CHAR_OBJ}:  chars(func(a, b rune) object.Object { return object.NativeBool(a > b) }),
	{"<=", object.CHAR_OBJ, object.CHAR_OBJ}: chars(func(a, b rune) object.Object { return object.NativeBool(a <= b) }),
	{">=", object.CHAR_OBJ, object.CHAR_OBJ}: chars(func(a, b rune) object.Object { return object.NativeBool(a >= b) }),

	{"&&", object.BOOLEAN_OBJ, object.BOOLEAN_OBJ}: bools(func(a, b bool) bool { return a && b }),
	{"||", object.BOOLEAN_OBJ, object.BOOLEAN_OBJ}: bools(func(a, b bool) bool { return a || b }),

	{"+", object.ARRAY_OBJ, object.ARRAY_OBJ}: concatArrays,
}

func concatArrays(l, r object.Object) object.Object {
	left, right := l.(*object.Array).Elements, r.(*object.Array).Elements
	elements := make([]object.Object, 0, len(left)+len(right))
	elements = append(elements, left...)
	elements = append(elements, right...)
	return &object.Array{Elements: elements}
}
