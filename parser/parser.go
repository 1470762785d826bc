package parser

import (
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/monkey", "parser")

const (
	_ int = iota
	LOWEST
	ASSIGN
	OR
	AND
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	POWER
	PREFIX
	CALL
)

var precedences = map[types.TokenKind]int{
	types.ASSIGN:          ASSIGN,
	types.PLUS_ASSIGN:     ASSIGN,
	types.MINUS_ASSIGN:    ASSIGN,
	types.ASTERISK_ASSIGN: ASSIGN,
	types.SLASH_ASSIGN:    ASSIGN,
	types.PERCENT_ASSIGN:  ASSIGN,
	types.OR:              OR,
	types.AND:             AND,
	types.EQ:              EQUALS,
	types.NOT_EQ:          EQUALS,
	types.LT:              LESSGREATER,
	types.GT:              LESSGREATER,
	types.LT_EQ:           LESSGREATER,
	types.GT_EQ:           LESSGREATER,
	types.PLUS:            SUM,
	types.MINUS:           SUM,
	types.ASTERISK:        PRODUCT,
	types.SLASH:           PRODUCT,
	types.PERCENT:         PRODUCT,
	types.POWER:           POWER,
	types.LPAREN:          CALL,
	types.LBRACKET:        CALL,
}

// rightAssociative operators parse their right operand one level lower.
var rightAssociative = map[types.TokenKind]bool{
	types.POWER: true,
}

type (
	prefixParseFn func(types.Token) ast.Expression
	infixParseFn  func(types.Token, ast.Expression) ast.Expression
)

type Parser struct {
	l      *lexer.Lexer
	errors errors.List

	prefixParseFns map[types.TokenKind]prefixParseFn
	infixParseFns  map[types.TokenKind]infixParseFn
}

func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[types.TokenKind]prefixParseFn{
		types.IDENT:    p.parseIdentifier,
		types.INT:      p.parseIntegerLiteral,
		types.FLOAT:    p.parseFloatLiteral,
		types.STRING:   p.parseStringLiteral,
		types.CHAR:     p.parseCharLiteral,
		types.TRUE:     p.parseBooleanLiteral,
		types.FALSE:    p.parseBooleanLiteral,
		types.NULL:     p.parseNullLiteral,
		types.MINUS:    p.parsePrefixExpression,
		types.BANG:     p.parsePrefixExpression,
		types.LPAREN:   p.parseGroupedExpression,
		types.IF:       p.parseIfExpression,
		types.FUNCTION: p.parseFunctionLiteral,
		types.LBRACKET: p.parseArrayLiteral,
	}

	p.infixParseFns = map[types.TokenKind]infixParseFn{
		types.LPAREN:   p.parseCallExpression,
		types.LBRACKET: p.parseIndexExpression,
	}
	for _, kind := range []types.TokenKind{
		types.PLUS, types.MINUS, types.ASTERISK, types.SLASH, types.PERCENT, types.POWER,
		types.EQ, types.NOT_EQ, types.LT, types.GT, types.LT_EQ, types.GT_EQ,
		types.AND, types.OR,
	} {
		p.infixParseFns[kind] = p.parseInfixExpression
	}

	return p
}

// ParseString parses an in-memory program.
func ParseString(src string) (ast.Program, error) {
	return NewParser(lexer.New(src)).Parse()
}

// Parse consumes the whole token stream. When any statement fails to
// parse the returned error is a non-empty errors.List and the program
// must not be evaluated.
func (p *Parser) Parse() (ast.Program, error) {
	var program ast.Program

	for !p.l.PeekIs(types.EOF) {
		if p.l.PeekIs(types.SEMICOLON) {
			p.l.Lex()
			continue
		}

		if stmt, ok := p.parseStatementRecovering(); ok {
			program.Statements = append(program.Statements, stmt)
		}
	}

	if err := p.l.Err(); err != nil {
		p.errors = append(p.errors, tracerr.Wrap(err))
	}

	if len(p.errors) > 0 {
		plog.Debugf("parse failed with %d error(s)", len(p.errors))
		return program, p.errors
	}
	return program, nil
}

// Errors returns the errors collected so far.
func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) parseStatementRecovering() (stmt ast.Statement, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rerr, isErr := r.(error)
			if !isErr {
				panic(r)
			}
			p.errors = append(p.errors, tracerr.Wrap(rerr))
			p.synchronize()
			stmt, ok = nil, false
		}
	}()

	return p.parseStatement(), true
}

// synchronize skips to just past the next semicolon so parsing can go on
// and report further errors.
func (p *Parser) synchronize() {
	if last := p.l.Last().Kind; last == types.SEMICOLON || last == types.EOF {
		return
	}
	for {
		tok := p.l.Lex()
		if tok.Kind == types.SEMICOLON || tok.Kind == types.EOF {
			return
		}
	}
}

func (p *Parser) skipSemicolon() {
	if p.l.PeekIs(types.SEMICOLON) {
		p.l.Lex()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.l.Peek().Kind {
	case types.LET:
		return p.parseLetStatement()
	case types.RETURN:
		return p.parseReturnStatement()
	case types.LBRACE:
		block := p.parseBlock()
		p.skipSemicolon()
		return block
	}

	stmt := ast.ExpressionStatement{Expression: p.parseExpression(LOWEST)}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseLetStatement() ast.Statement {
	let := p.l.LexExpecting(types.LET)
	name := p.l.LexExpecting(types.IDENT)
	p.l.LexExpecting(types.ASSIGN)

	value := p.parseExpression(LOWEST)
	p.skipSemicolon()

	return ast.LetStatement{
		Name:  ast.Identifier{Name: name.Literal, Pos: name.Location},
		Value: value,
		Pos:   types.Span{From: let.Location.From, To: name.Location.To},
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	ret := p.l.LexExpecting(types.RETURN)
	stmt := ast.ReturnStatement{Pos: ret.Location}

	if !p.l.PeekIs(types.SEMICOLON, types.RBRACE, types.EOF) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.skipSemicolon()

	return stmt
}

// parseBlock parses `{ ... }`, including both braces.
func (p *Parser) parseBlock() ast.BlockStatement {
	open := p.l.LexExpecting(types.LBRACE)
	block := ast.BlockStatement{Pos: open.Location}

	for !p.l.PeekIs(types.RBRACE, types.EOF) {
		if p.l.PeekIs(types.SEMICOLON) {
			p.l.Lex()
			continue
		}
		block.Statements = append(block.Statements, p.parseStatement())
	}
	closing := p.l.LexExpecting(types.RBRACE)
	block.Pos.To = closing.Location.To

	return block
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.l.Peek().Kind]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	tok := p.l.Lex()
	if tok.Kind == types.ILLEGAL {
		panic(errors.IllegalToken{Literal: tok.Literal, Location: tok.Location})
	}

	prefix, ok := p.prefixParseFns[tok.Kind]
	if !ok {
		panic(errors.NoPrefixRule{Got: tok.Kind, Literal: tok.Literal, Location: tok.Location})
	}
	left := prefix(tok)

	for !p.l.PeekIs(types.SEMICOLON) && precedence < p.peekPrecedence() {
		tok := p.l.Lex()
		infix, ok := p.infixParseFns[tok.Kind]
		if !ok {
			panic(errors.NoInfixRule{Got: tok.Kind, Literal: tok.Literal, Location: tok.Location})
		}
		left = infix(tok, left)
	}

	return left
}

func (p *Parser) parseIdentifier(tok types.Token) ast.Expression {
	return ast.Identifier{Name: tok.Literal, Pos: tok.Location}
}

func (p *Parser) parseIntegerLiteral(tok types.Token) ast.Expression {
	parsed, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		panic(errors.InvalidLiteral{Kind: tok.Kind, Literal: tok.Literal, Location: tok.Location, Err: err})
	}
	return ast.IntegerLiteral{Value: parsed, Pos: tok.Location}
}

func (p *Parser) parseFloatLiteral(tok types.Token) ast.Expression {
	parsed, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		panic(errors.InvalidLiteral{Kind: tok.Kind, Literal: tok.Literal, Location: tok.Location, Err: err})
	}
	return ast.FloatLiteral{Value: parsed, Pos: tok.Location}
}

func (p *Parser) parseStringLiteral(tok types.Token) ast.Expression {
	return ast.StringLiteral{Value: tok.Literal, Pos: tok.Location}
}

func (p *Parser) parseCharLiteral(tok types.Token) ast.Expression {
	r := []rune(tok.Literal)
	return ast.CharLiteral{Value: r[0], Pos: tok.Location}
}

func (p *Parser) parseBooleanLiteral(tok types.Token) ast.Expression {
	return ast.BooleanLiteral{Value: tok.Kind == types.TRUE, Pos: tok.Location}
}

func (p *Parser) parseNullLiteral(tok types.Token) ast.Expression {
	return ast.NullLiteral{Pos: tok.Location}
}

func (p *Parser) parsePrefixExpression(tok types.Token) ast.Expression {
	return ast.PrefixExpression{
		Operator: tok.Literal,
		Right:    p.parseExpression(PREFIX),
		Pos:      tok.Location,
	}
}

func (p *Parser) parseInfixExpression(tok types.Token, left ast.Expression) ast.Expression {
	precedence := precedences[tok.Kind]
	if rightAssociative[tok.Kind] {
		precedence--
	}

	return ast.InfixExpression{
		Left:     left,
		Operator: tok.Literal,
		Right:    p.parseExpression(precedence),
		Pos:      tok.Location,
	}
}

func (p *Parser) parseGroupedExpression(tok types.Token) ast.Expression {
	expr := p.parseExpression(LOWEST)
	p.l.LexExpecting(types.RPAREN)
	return expr
}

func (p *Parser) parseIfExpression(tok types.Token) ast.Expression {
	expr := ast.IfExpression{
		Condition:   p.parseExpression(LOWEST),
		Consequence: p.parseBlock(),
		Pos:         tok.Location,
	}

	if !p.l.PeekIs(types.ELSE) {
		return expr
	}
	p.l.Lex()

	if p.l.PeekIs(types.IF) {
		nested := p.l.Lex()
		inner := p.parseIfExpression(nested)
		expr.Alternative = &ast.BlockStatement{
			Statements: []ast.Statement{ast.ExpressionStatement{Expression: inner}},
			Pos:        nested.Location,
		}
		return expr
	}

	alt := p.parseBlock()
	expr.Alternative = &alt
	return expr
}

func (p *Parser) parseFunctionLiteral(tok types.Token) ast.Expression {
	fn := ast.FunctionLiteral{Pos: tok.Location}
	seen := map[string]bool{}

	p.l.LexExpecting(types.LPAREN)
	if !p.l.PeekIs(types.RPAREN) {
		for {
			param := p.l.LexExpecting(types.IDENT)
			if seen[param.Literal] {
				panic(errors.DuplicateParameter{Name: param.Literal, Location: param.Location})
			}
			seen[param.Literal] = true
			fn.Parameters = append(fn.Parameters, ast.Identifier{Name: param.Literal, Pos: param.Location})

			if p.l.PeekIs(types.RPAREN) {
				break
			}
			p.l.LexExpecting(types.COMMA)
		}
	}
	p.l.LexExpecting(types.RPAREN)

	fn.Body = p.parseBlock()
	return fn
}

// parseExpressionList is called past the opening delimiter.
func (p *Parser) parseExpressionList(end types.TokenKind) []ast.Expression {
	var list []ast.Expression

	if p.l.PeekIs(end) {
		p.l.Lex()
		return list
	}

	for {
		list = append(list, p.parseExpression(LOWEST))
		if !p.l.PeekIs(types.COMMA) {
			break
		}
		p.l.Lex()
	}
	p.l.LexExpecting(end)

	return list
}

func (p *Parser) parseArrayLiteral(tok types.Token) ast.Expression {
	return ast.ArrayLiteral{
		Elements: p.parseExpressionList(types.RBRACKET),
		Pos:      tok.Location,
	}
}

func (p *Parser) parseCallExpression(tok types.Token, function ast.Expression) ast.Expression {
	return ast.CallExpression{
		Function:  function,
		Arguments: p.parseExpressionList(types.RPAREN),
		Pos:       tok.Location,
	}
}

func (p *Parser) parseIndexExpression(tok types.Token, left ast.Expression) ast.Expression {
	index := p.parseExpression(LOWEST)
	p.l.LexExpecting(types.RBRACKET)

	return ast.IndexExpression{Left: left, Index: index, Pos: tok.Location}
}

// Describe renders parse errors one per line for drivers.
func Describe(err error) string {
	list, ok := err.(errors.List)
	if !ok {
		return err.Error()
	}

	var lines []string
	for _, e := range list {
		lines = append(lines, "\t"+tracerr.Unwrap(e).Error())
	}
	return strings.Join(lines, "\n")
}
