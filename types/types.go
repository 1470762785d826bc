package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	IDENT
	INT
	FLOAT
	STRING
	CHAR

	ASSIGN
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	POWER
	BANG

	EQ
	NOT_EQ
	LT
	GT
	LT_EQ
	GT_EQ
	AND
	OR

	PLUS_ASSIGN
	MINUS_ASSIGN
	ASTERISK_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN

	COMMA
	SEMICOLON
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET

	LET
	FUNCTION
	IF
	ELSE
	RETURN
	TRUE
	FALSE
	NULL
	LOOP
	CONTINUE
	BREAK
)

var kindNames = map[TokenKind]string{
	EOF:             "EOF",
	ILLEGAL:         "ILLEGAL",
	IDENT:           "IDENT",
	INT:             "INT",
	FLOAT:           "FLOAT",
	STRING:          "STRING",
	CHAR:            "CHAR",
	ASSIGN:          "=",
	PLUS:            "+",
	MINUS:           "-",
	ASTERISK:        "*",
	SLASH:           "/",
	PERCENT:         "%",
	POWER:           "**",
	BANG:            "!",
	EQ:              "==",
	NOT_EQ:          "!=",
	LT:              "<",
	GT:              ">",
	LT_EQ:           "<=",
	GT_EQ:           ">=",
	AND:             "&&",
	OR:              "||",
	PLUS_ASSIGN:     "+=",
	MINUS_ASSIGN:    "-=",
	ASTERISK_ASSIGN: "*=",
	SLASH_ASSIGN:    "/=",
	PERCENT_ASSIGN:  "%=",
	COMMA:           ",",
	SEMICOLON:       ";",
	COLON:           ":",
	LPAREN:          "(",
	RPAREN:          ")",
	LBRACE:          "{",
	RBRACE:          "}",
	LBRACKET:        "[",
	RBRACKET:        "]",
	LET:             "LET",
	FUNCTION:        "FUNCTION",
	IF:              "IF",
	ELSE:            "ELSE",
	RETURN:          "RETURN",
	TRUE:            "TRUE",
	FALSE:           "FALSE",
	NULL:            "NULL",
	LOOP:            "LOOP",
	CONTINUE:        "CONTINUE",
	BREAK:           "BREAK",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

var keywords = map[string]TokenKind{
	"let":      LET,
	"fn":       FUNCTION,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"loop":     LOOP,
	"continue": CONTINUE,
	"break":    BREAK,
}

// LookupIdent returns the keyword kind for ident, or IDENT.
func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Keywords lists the reserved words of the language.
func Keywords() []string {
	ret := make([]string, 0, len(keywords))
	for k := range keywords {
		ret = append(ret, k)
	}
	return ret
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Literal  string
	Location Span
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}
