package evaluator

import (
	"bytes"
	"testing"

	"github.com/pontaoski/monkey/builtin"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string) object.Object {
	t.Helper()

	obj, _ := evalWithHost(t, src)
	return obj
}

func evalWithHost(t *testing.T, src string) (object.Object, *bytes.Buffer) {
	t.Helper()

	prog, err := parser.ParseString(src)
	require.NoError(t, err, "parsing %q", src)

	var out bytes.Buffer
	host := &builtin.Host{Stdout: &out, Stderr: &out, Exit: func(int) {}}
	return New(host).Eval(prog, object.NewEnvironment()), &out
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"integer", "5", "5"},
		{"negation", "-10", "-10"},
		{"arithmetic", "(5 + 10 * 2 + 15 / 3) * 2 + -10", "50"},
		{"power is right associative", "2 ** 3 ** 2", "512"},
		{"float promotion", "1 + 0.5", "1.5"},
		{"integer division", "7 / 2", "3"},
		{"remainder", "7 % 3", "1"},
		{"comparison", "1 < 2 == true", "true"},
		{"not", "!5", "false"},
		{"double not", "!!null", "false"},
		{"string concat", `"Hello" + " " + "World!"`, `"Hello World!"`},
		{"string compare", `"a" < "b"`, "true"},
		{"char literal", "'x'", "'x'"},
		{"null literal", "null", "null"},
		{"empty program", "", "null"},
		{"let yields null", "let a = 5;", "null"},
		{"let then use", "let a = 5; let b = a * 2; b + a", "15"},

		{"if true", "if (true) { 10 }", "10"},
		{"if false", "if (false) { 10 }", "null"},
		{"if truthy int", "if (1) { 10 }", "10"},
		{"if null", "if (null) { 1 } else { 2 }", "2"},
		{"if else", "if (1 > 2) { 10 } else { 20 }", "20"},
		{"else if", "let x = 5; if (x < 3) { 1 } else if (x < 10) { 2 } else { 3 }", "2"},
		{"if shares scope", "let x = 1; if (true) { let x = 2; }; x", "2"},
		{"block has its own scope", "let x = 1; { let x = 2; }; x", "1"},
		{"block sees outer", "let x = 1; { x + 1 }", "2"},

		{"return", "return 10; 9;", "10"},
		{"return in expression", "9; return 2 * 5; 9;", "10"},
		{"nested return", "if (10 > 1) { if (10 > 1) { return 10; } return 1; }", "10"},
		{"bare return", "return; 5", "null"},
		{"return from function", "let f = fn(x) { return x; x + 10; }; f(10)", "10"},
		{"return only leaves the function", "let f = fn() { return 1; }; f(); 2", "2"},

		{"function inspect", "fn(x) { x + 2; }", "fn(x) { (x + 2); }"},
		{"identity", "let identity = fn(x) { x; }; identity(5);", "5"},
		{"implicit return", "let add = fn(a, b) { a + b }; add(5, add(5, 5))", "15"},
		{"empty body", "fn() {}()", "null"},
		{"immediately invoked", "fn(x) { x * 2 }(4)", "8"},
		{"factorial", "let fact = fn(n) { if (n == 0) { 1 } else { n * fact(n - 1) } }; fact(5)", "120"},
		{"factorial of zero", "let fact = fn(n) { if (n == 0) { 1 } else { n * fact(n - 1) } }; fact(0)", "1"},
		{"closure", "let adder = fn(x) { fn(y) { x + y } }; let addTwo = adder(2); addTwo(3)", "5"},
		{"closure sees later bindings", "let f = fn() { later }; let later = 7; f()", "7"},
		{"higher order", "let twice = fn(f, x) { f(f(x)) }; twice(fn(x) { x * 3 }, 2)", "18"},
		{"parameters shadow", "let x = 1; let f = fn(x) { x }; f(2) + x", "3"},

		{"array literal", "[1, 2 * 2, 3 + 3]", "[1, 4, 6]"},
		{"index", "[1, 2, 3][0]", "1"},
		{"index expression", "let i = 0; [1][i]", "1"},
		{"index last", "let a = [1, 2, 3]; a[len(a) - 1]", "3"},
		{"index out of range", "[1, 2][5]", "null"},
		{"index negative", "[1, 2][-1]", "null"},
		{"string index", `"héllo"[1]`, "'é'"},
		{"string index out of range", `"abc"[3]`, "null"},
		{"array concat", "[1] + [2, 3]", "[1, 2, 3]"},
		{"array equality", "[1, [2]] == [1.0, [2]]", "true"},

		{"and short circuits", "false && undefined", "false"},
		{"or short circuits", "true || undefined", "true"},
		{"and evaluates right", "true && false", "false"},
		{"or evaluates right", "false || true", "true"},

		{"builtin", `len("four")`, "4"},
		{"builtin constant", "pi > 3.14 && pi < 3.15", "true"},
		{"builtin is a value", "let l = len; l([1, 2])", "2"},
		{"shadow builtin", "let len = fn(x) { 42 }; len([])", "42"},
		{"append", "let a = [1]; let b = append(a, 2); [a, b]", "[[1], [1, 2]]"},
		{"casts", `int("12") + int(2.9) + int('a')`, "111"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := eval(t, c.src)
			require.NotNil(t, got)
			assert.Equal(t, c.want, got.Inspect())
		})
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"type mismatch", "true + 1", "type mismatch: BOOLEAN + INTEGER"},
		{"type mismatch stops block", "5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"unknown operator", "true + false", "unknown operator: BOOLEAN + BOOLEAN"},
		{"unknown prefix", "-true", "unknown operator: -BOOLEAN"},
		{"string minus", `"a" - "b"`, "unknown operator: STRING - STRING"},
		{"nested error", "if (10 > 1) { if (10 > 1) { return true + false; } return 1; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"unknown identifier", "foobar", "identifier not found: foobar"},
		{"error in let", "let x = y; 5", "identifier not found: y"},
		{"error in return", "return -true; 1", "unknown operator: -BOOLEAN"},
		{"error in argument", "let f = fn(x) { x }; f(nope)", "identifier not found: nope"},
		{"error in array", "[1, nope, 3]", "identifier not found: nope"},
		{"error overrides return", "let f = fn() { return 1 + true; }; f()", "type mismatch: INTEGER + BOOLEAN"},
		{"error inside loop body", "let f = fn(n) { if (n == 0) { nope } else { f(n - 1) } }; f(3)", "identifier not found: nope"},
		{"too few arguments", "fn(a, b) { a }(1)", "wrong number of arguments: got=1, want=2"},
		{"too many arguments", "fn() { 1 }(1)", "wrong number of arguments: got=1, want=0"},
		{"not a function", "5(1)", "not a function: INTEGER"},
		{"not indexable", "5[0]", "index operator not supported: INTEGER[INTEGER]"},
		{"bad index", `[1]["a"]`, "index operator not supported: ARRAY[STRING]"},
		{"division by zero", "1 / 0", "division by zero"},
		{"and with non bool", "true && 1", "type mismatch: BOOLEAN && INTEGER"},
		{"or with non bool left", "1 || true", "type mismatch: INTEGER || BOOLEAN"},
		{"builtin error", "len(1)", "argument to `len` not supported, got INTEGER"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := eval(t, c.src)
			errObj, ok := got.(*object.Error)
			require.True(t, ok, "expected error, got %s", got.Inspect())
			assert.Equal(t, c.want, errObj.Message)
		})
	}
}

func TestClosureSharesDefiningEnvironment(t *testing.T) {
	in := New(nil)
	env := object.NewEnvironment()

	eval := func(src string) object.Object {
		prog, err := parser.ParseString(src)
		require.NoError(t, err)
		return in.Eval(prog, env)
	}

	eval("let get = fn() { counter };")
	assert.Equal(t, "identifier not found: counter", eval("get()").(*object.Error).Message)

	eval("let counter = 1;")
	assert.Equal(t, &object.Integer{Value: 1}, eval("get()"))

	eval("let counter = counter + 1;")
	assert.Equal(t, &object.Integer{Value: 2}, eval("get()"))
}

func TestClosuresAreIndependent(t *testing.T) {
	prog, err := parser.ParseString(`
		let newAdder = fn(base) {
			fn(n) { base + n }
		};
		let addOne = newAdder(1);
		let addTen = newAdder(10);
		[addOne(1), addTen(1), addOne(5)]
	`)
	require.NoError(t, err)

	got := New(nil).Eval(prog, object.NewEnvironment())
	assert.Equal(t, "[2, 11, 6]", got.Inspect())
}

func TestEnvironmentPersists(t *testing.T) {
	in := New(nil)
	env := object.NewEnvironment()

	for _, src := range []string{"let x = 2;", "let double = fn(n) { n * 2 };"} {
		prog, err := parser.ParseString(src)
		require.NoError(t, err)
		assert.Equal(t, object.NULL, in.Eval(prog, env))
	}

	prog, err := parser.ParseString("double(x)")
	require.NoError(t, err)
	assert.Equal(t, &object.Integer{Value: 4}, in.Eval(prog, env))

	_, ok := env.Get("double")
	assert.True(t, ok)
}

func TestPrint(t *testing.T) {
	got, out := evalWithHost(t, `print("sum:", 1 + 2, 'c'); eprint([1, "a"])`)

	assert.Equal(t, object.NULL, got)
	assert.Equal(t, "sum: 3 c\n[1, \"a\"]\n", out.String())
}

func TestExitUsesHost(t *testing.T) {
	prog, err := parser.ParseString("exit(4); 1")
	require.NoError(t, err)

	var codes []int
	host := &builtin.Host{Exit: func(code int) { codes = append(codes, code) }}
	New(host).Eval(prog, object.NewEnvironment())

	assert.Equal(t, []int{4}, codes)
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	_, out := evalWithHost(t, `
		let note = fn(x) { print(x); x };
		let f = fn(a, b, c) { a + b + c };
		f(note(1), note(2), note(3))
	`)
	assert.Equal(t, "1\n2\n3\n", out.String())
}

func TestShortCircuitSkipsSideEffects(t *testing.T) {
	_, out := evalWithHost(t, `
		let note = fn(x) { print(x); x };
		false && note(true);
		true || note(false);
		true && note(true);
	`)
	assert.Equal(t, "true\n", out.String())
}
