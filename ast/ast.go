package ast

import "github.com/pontaoski/monkey/types"

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

type Program struct {
	Statements []Statement
}

type Identifier struct {
	Name string
	Pos  types.Span
}

type LetStatement struct {
	Name  Identifier
	Value Expression
	Pos   types.Span
}

// ReturnStatement has a nil Value for a bare `return;`.
type ReturnStatement struct {
	Value Expression
	Pos   types.Span
}

type ExpressionStatement struct {
	Expression Expression
}

type BlockStatement struct {
	Statements []Statement
	Pos        types.Span
}

type IntegerLiteral struct {
	Value int64
	Pos   types.Span
}

type FloatLiteral struct {
	Value float64
	Pos   types.Span
}

type StringLiteral struct {
	Value string
	Pos   types.Span
}

type CharLiteral struct {
	Value rune
	Pos   types.Span
}

type BooleanLiteral struct {
	Value bool
	Pos   types.Span
}

type NullLiteral struct {
	Pos types.Span
}

type PrefixExpression struct {
	Operator string
	Right    Expression
	Pos      types.Span
}

type InfixExpression struct {
	Left     Expression
	Operator string
	Right    Expression
	Pos      types.Span
}

// IfExpression has a nil Alternative when there is no else branch.
type IfExpression struct {
	Condition   Expression
	Consequence BlockStatement
	Alternative *BlockStatement
	Pos         types.Span
}

type FunctionLiteral struct {
	Parameters []Identifier
	Body       BlockStatement
	Pos        types.Span
}

type CallExpression struct {
	Function  Expression
	Arguments []Expression
	Pos       types.Span
}

type ArrayLiteral struct {
	Elements []Expression
	Pos      types.Span
}

type IndexExpression struct {
	Left  Expression
	Index Expression
	Pos   types.Span
}
