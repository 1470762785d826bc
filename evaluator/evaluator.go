package evaluator

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/builtin"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/operator"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/monkey", "evaluator")

// Interpreter walks ASTs. It keeps no state between programs besides the
// host that built-ins write to.
type Interpreter struct {
	host *builtin.Host
}

func New(host *builtin.Host) *Interpreter {
	if host == nil {
		host = builtin.DefaultHost()
	}
	return &Interpreter{host: host}
}

// Eval runs a program in env. A top-level `return` stops the program and
// yields its value; an Error result is returned as an *object.Error.
func (in *Interpreter) Eval(program ast.Program, env *object.Environment) object.Object {
	plog.Debugf("evaluating %d statement(s)", len(program.Statements))

	var result object.Object = object.NULL
	for _, stmt := range program.Statements {
		result = in.evalStatement(stmt, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		}
	}
	return result
}

func (in *Interpreter) evalStatement(stmt ast.Statement, env *object.Environment) object.Object {
	switch stmt := stmt.(type) {
	case ast.LetStatement:
		val := in.evalExpression(stmt.Value, env)
		if object.IsError(val) {
			return val
		}
		env.Set(stmt.Name.Name, val)
		return object.NULL
	case ast.ReturnStatement:
		if stmt.Value == nil {
			return &object.ReturnValue{Value: object.NULL}
		}
		val := in.evalExpression(stmt.Value, env)
		if object.IsError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}
	case ast.ExpressionStatement:
		return in.evalExpression(stmt.Expression, env)
	case ast.BlockStatement:
		return in.evalBlock(stmt, object.NewEnclosedEnvironment(env))
	}

	return object.NewError("unknown statement %T", stmt)
}

// evalBlock stops at the first ReturnValue or Error and hands it up
// unwrapped so enclosing blocks stop too.
func (in *Interpreter) evalBlock(block ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = object.NULL

	for _, stmt := range block.Statements {
		result = in.evalStatement(stmt, env)

		if rt := result.Type(); rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
			return result
		}
	}
	return result
}

func (in *Interpreter) evalExpression(expr ast.Expression, env *object.Environment) object.Object {
	switch expr := expr.(type) {
	case ast.IntegerLiteral:
		return &object.Integer{Value: expr.Value}
	case ast.FloatLiteral:
		return &object.Float{Value: expr.Value}
	case ast.StringLiteral:
		return &object.String{Value: expr.Value}
	case ast.CharLiteral:
		return &object.Char{Value: expr.Value}
	case ast.BooleanLiteral:
		return object.NativeBool(expr.Value)
	case ast.NullLiteral:
		return object.NULL
	case ast.Identifier:
		return in.evalIdentifier(expr, env)
	case ast.PrefixExpression:
		right := in.evalExpression(expr.Right, env)
		if object.IsError(right) {
			return right
		}
		return operator.Prefix(expr.Operator, right)
	case ast.InfixExpression:
		return in.evalInfix(expr, env)
	case ast.IfExpression:
		return in.evalIf(expr, env)
	case ast.FunctionLiteral:
		return &object.Function{Parameters: expr.Parameters, Body: expr.Body, Env: env}
	case ast.CallExpression:
		return in.evalCall(expr, env)
	case ast.ArrayLiteral:
		elements, errObj := in.evalExpressions(expr.Elements, env)
		if errObj != nil {
			return errObj
		}
		return &object.Array{Elements: elements}
	case ast.IndexExpression:
		return in.evalIndex(expr, env)
	}

	return object.NewError("unknown expression %T", expr)
}

func (in *Interpreter) evalIdentifier(ident ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(ident.Name); ok {
		return val
	}
	if val, ok := builtin.Lookup(ident.Name); ok {
		return val
	}
	return object.NewError("identifier not found: %s", ident.Name)
}

func (in *Interpreter) evalInfix(expr ast.InfixExpression, env *object.Environment) object.Object {
	left := in.evalExpression(expr.Left, env)
	if object.IsError(left) {
		return left
	}

	switch expr.Operator {
	case "&&", "||":
		return in.evalLogical(expr, left, env)
	}

	right := in.evalExpression(expr.Right, env)
	if object.IsError(right) {
		return right
	}
	return operator.Binary(expr.Operator, left, right)
}

// evalLogical short-circuits && and || once the left side decides the
// result; both sides must be booleans when they are evaluated.
func (in *Interpreter) evalLogical(expr ast.InfixExpression, left object.Object, env *object.Environment) object.Object {
	if b, ok := left.(*object.Boolean); ok {
		if (expr.Operator == "&&" && !b.Value) || (expr.Operator == "||" && b.Value) {
			return b
		}
	}

	right := in.evalExpression(expr.Right, env)
	if object.IsError(right) {
		return right
	}
	return operator.Binary(expr.Operator, left, right)
}

func (in *Interpreter) evalIf(expr ast.IfExpression, env *object.Environment) object.Object {
	cond := in.evalExpression(expr.Condition, env)
	if object.IsError(cond) {
		return cond
	}

	switch {
	case object.IsTruthy(cond):
		return in.evalBlock(expr.Consequence, env)
	case expr.Alternative != nil:
		return in.evalBlock(*expr.Alternative, env)
	}
	return object.NULL
}

func (in *Interpreter) evalExpressions(exprs []ast.Expression, env *object.Environment) ([]object.Object, object.Object) {
	result := make([]object.Object, 0, len(exprs))

	for _, e := range exprs {
		val := in.evalExpression(e, env)
		if object.IsError(val) {
			return nil, val
		}
		result = append(result, val)
	}
	return result, nil
}

func (in *Interpreter) evalCall(expr ast.CallExpression, env *object.Environment) object.Object {
	fn := in.evalExpression(expr.Function, env)
	if object.IsError(fn) {
		return fn
	}

	args, errObj := in.evalExpressions(expr.Arguments, env)
	if errObj != nil {
		return errObj
	}

	return in.apply(fn, args)
}

func (in *Interpreter) apply(fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Function:
		if len(args) != len(fn.Parameters) {
			return object.NewError("wrong number of arguments: got=%d, want=%d", len(args), len(fn.Parameters))
		}

		callEnv := object.NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			callEnv.Set(param.Name, args[i])
		}

		result := in.evalBlock(fn.Body, callEnv)
		if rv, ok := result.(*object.ReturnValue); ok {
			return rv.Value
		}
		return result
	case *builtin.Builtin:
		return fn.Fn(in.host, args...)
	}

	return object.NewError("not a function: %s", fn.Type())
}

func (in *Interpreter) evalIndex(expr ast.IndexExpression, env *object.Environment) object.Object {
	left := in.evalExpression(expr.Left, env)
	if object.IsError(left) {
		return left
	}
	index := in.evalExpression(expr.Index, env)
	if object.IsError(index) {
		return index
	}

	i, ok := index.(*object.Integer)
	if !ok {
		return indexError(left, index)
	}

	switch left := left.(type) {
	case *object.Array:
		if i.Value < 0 || i.Value >= int64(len(left.Elements)) {
			return object.NULL
		}
		return left.Elements[i.Value]
	case *object.String:
		runes := left.Runes()
		if i.Value < 0 || i.Value >= int64(len(runes)) {
			return object.NULL
		}
		return &object.Char{Value: runes[i.Value]}
	}
	return indexError(left, index)
}

func indexError(left, index object.Object) *object.Error {
	return object.NewError("index operator not supported: %s[%s]", left.Type(), index.Type())
}

