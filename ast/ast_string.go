package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the program in canonical form: every prefix and infix
// expression is parenthesized, so the output re-parses to the same tree.
func (p Program) String() string {
	var out []string
	for _, s := range p.Statements {
		out = append(out, StatementString(s))
	}
	return strings.Join(out, " ")
}

func StatementString(s Statement) string {
	switch v := s.(type) {
	case LetStatement:
		return fmt.Sprintf("let %s = %s;", v.Name.Name, ExpressionString(v.Value))
	case ReturnStatement:
		if v.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", ExpressionString(v.Value))
	case ExpressionStatement:
		return ExpressionString(v.Expression) + ";"
	case BlockStatement:
		return blockString(v)
	}

	panic(fmt.Sprintf("unhandled statement %T", s))
}

func blockString(b BlockStatement) string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	var out []string
	for _, s := range b.Statements {
		out = append(out, StatementString(s))
	}
	return "{ " + strings.Join(out, " ") + " }"
}

func expressionList(es []Expression) string {
	var out []string
	for _, e := range es {
		out = append(out, ExpressionString(e))
	}
	return strings.Join(out, ", ")
}

func ExpressionString(e Expression) string {
	switch v := e.(type) {
	case Identifier:
		return v.Name
	case IntegerLiteral:
		return strconv.FormatInt(v.Value, 10)
	case FloatLiteral:
		return FormatFloat(v.Value)
	case StringLiteral:
		return Quote(v.Value, '"')
	case CharLiteral:
		return Quote(string(v.Value), '\'')
	case BooleanLiteral:
		return strconv.FormatBool(v.Value)
	case NullLiteral:
		return "null"
	case PrefixExpression:
		return fmt.Sprintf("(%s%s)", v.Operator, ExpressionString(v.Right))
	case InfixExpression:
		return fmt.Sprintf("(%s %s %s)", ExpressionString(v.Left), v.Operator, ExpressionString(v.Right))
	case IfExpression:
		s := fmt.Sprintf("if %s %s", ExpressionString(v.Condition), blockString(v.Consequence))
		if v.Alternative != nil {
			s += " else " + blockString(*v.Alternative)
		}
		return s
	case FunctionLiteral:
		var params []string
		for _, p := range v.Parameters {
			params = append(params, p.Name)
		}
		return fmt.Sprintf("fn(%s) %s", strings.Join(params, ", "), blockString(v.Body))
	case CallExpression:
		return fmt.Sprintf("%s(%s)", ExpressionString(v.Function), expressionList(v.Arguments))
	case ArrayLiteral:
		return "[" + expressionList(v.Elements) + "]"
	case IndexExpression:
		return fmt.Sprintf("(%s[%s])", ExpressionString(v.Left), ExpressionString(v.Index))
	}

	panic(fmt.Sprintf("unhandled expression %T", e))
}

// FormatFloat always keeps a decimal point so the text lexes as a float.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// Quote wraps s in delim using only the escapes the lexer understands.
func Quote(s string, delim rune) string {
	var b strings.Builder
	b.WriteRune(delim)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		case delim:
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(delim)
	return b.String()
}
