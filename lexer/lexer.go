package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/types"
)

// Lexer turns source text into tokens on demand. A Lexer is not resumable
// once it reached EOF; lex the same text again with a new Lexer.
type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	peeked *types.Token
	last   types.Token
	err    error
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// New lexes an in-memory program.
func New(src string) *Lexer {
	return NewLexer(strings.NewReader(src), "")
}

// Err returns the first read error other than io.EOF. A read error ends
// the token stream as if the input had ended.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}
		return 0, false
	}

	l.pos.Column++
	return r, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) peekRune() (rune, bool) {
	r, ok := l.read()
	if ok {
		l.backup()
	}
	return r, ok
}

func (l *Lexer) kinded(t types.TokenKind, lit string) types.Token {
	return types.Token{
		Kind:     t,
		Literal:  lit,
		Location: types.SingleCharSpan(l.pos),
	}
}

func (l *Lexer) spanned(t types.TokenKind, lit string, from types.Position) types.Token {
	return types.Token{
		Kind:     t,
		Literal:  lit,
		Location: types.Span{From: from, To: l.pos},
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *Lexer) lexIdent(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if !otherChar(r) {
			l.backup()
			break
		}
		lit.WriteRune(r)
	}

	s := lit.String()
	return l.spanned(types.LookupIdent(s), s, from)
}

// lexNumber reads a run of digits and dots. One dot makes a float, more
// than one makes the whole run illegal.
func (l *Lexer) lexNumber(first rune, from types.Position) types.Token {
	var lit strings.Builder
	lit.WriteRune(first)
	dots := 0

	for {
		r, ok := l.read()
		if !ok {
			break
		}
		if !isDigit(r) && r != '.' {
			l.backup()
			break
		}
		if r == '.' {
			dots++
		}
		lit.WriteRune(r)
	}

	switch dots {
	case 0:
		return l.spanned(types.INT, lit.String(), from)
	case 1:
		return l.spanned(types.FLOAT, lit.String(), from)
	}
	return l.spanned(types.ILLEGAL, lit.String(), from)
}

func escaped(r rune) rune {
	switch r {
	case '0':
		return 0
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	return r
}

// lexString is called past the opening quote. An unterminated string
// becomes an ILLEGAL token holding everything read so far.
func (l *Lexer) lexString(from types.Position) types.Token {
	var lit strings.Builder

	for {
		r, ok := l.read()
		if !ok {
			return l.spanned(types.ILLEGAL, `"`+lit.String(), from)
		}

		switch r {
		case '"':
			return l.spanned(types.STRING, lit.String(), from)
		case '\\':
			next, ok := l.read()
			if !ok {
				return l.spanned(types.ILLEGAL, `"`+lit.String()+`\`, from)
			}
			lit.WriteRune(escaped(next))
		case '\n':
			lit.WriteRune(r)
			l.newline()
		default:
			lit.WriteRune(r)
		}
	}
}

func (l *Lexer) lexChar(from types.Position) types.Token {
	r, ok := l.read()
	if ok && r == '\n' {
		l.newline()
	}
	if !ok || r == '\'' || r == '\n' {
		return l.spanned(types.ILLEGAL, "'", from)
	}
	if r == '\\' {
		next, ok := l.read()
		if !ok {
			return l.spanned(types.ILLEGAL, `'\`, from)
		}
		r = escaped(next)
	}

	closing, ok := l.read()
	if !ok || closing != '\'' {
		if ok {
			l.backup()
		}
		return l.spanned(types.ILLEGAL, "'"+string(r), from)
	}
	return l.spanned(types.CHAR, string(r), from)
}

var pairs = map[string]types.TokenKind{
	"==": types.EQ,
	"!=": types.NOT_EQ,
	"<=": types.LT_EQ,
	">=": types.GT_EQ,
	"**": types.POWER,
	"&&": types.AND,
	"||": types.OR,
	"+=": types.PLUS_ASSIGN,
	"-=": types.MINUS_ASSIGN,
	"*=": types.ASTERISK_ASSIGN,
	"/=": types.SLASH_ASSIGN,
	"%=": types.PERCENT_ASSIGN,
}

var singles = map[rune]types.TokenKind{
	'=': types.ASSIGN,
	'+': types.PLUS,
	'-': types.MINUS,
	'*': types.ASTERISK,
	'/': types.SLASH,
	'%': types.PERCENT,
	'!': types.BANG,
	'<': types.LT,
	'>': types.GT,
	',': types.COMMA,
	';': types.SEMICOLON,
	':': types.COLON,
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'[': types.LBRACKET,
	']': types.RBRACKET,
}

func (l *Lexer) Peek() types.Token {
	if l.peeked != nil {
		return *l.peeked
	}

	tok := l.scan()
	l.peeked = &tok

	return tok
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

// LexExpecting consumes the next token and panics with a parse error if
// it is not one of k. The parser recovers these panics per statement.
func (l *Lexer) LexExpecting(k ...types.TokenKind) types.Token {
	token := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token
		}
	}

	if len(k) == 1 {
		panic(errors.ExpectedKindGotKind{
			Expected: k[0],
			Got:      token.Kind,
			Literal:  token.Literal,
			Location: token.Location,
		})
	}
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Literal:  token.Literal,
		Location: token.Location,
	})
}

// Last returns the most recently consumed token.
func (l *Lexer) Last() types.Token {
	return l.last
}

func (l *Lexer) Lex() types.Token {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		l.last = *l.peeked
		return l.last
	}

	l.last = l.scan()
	return l.last
}

func (l *Lexer) scan() types.Token {
	for {
		r, ok := l.read()
		if !ok {
			return l.kinded(types.EOF, "")
		}

		switch {
		case r == '\n':
			l.newline()
			continue
		case unicode.IsSpace(r):
			continue
		}

		from := l.pos

		if next, ok := l.peekRune(); ok {
			pair := string([]rune{r, next})
			if kind, ok := pairs[pair]; ok {
				l.read()
				return l.spanned(kind, pair, from)
			}
		}

		if kind, ok := singles[r]; ok {
			return l.kinded(kind, string(r))
		}

		switch {
		case isDigit(r):
			return l.lexNumber(r, from)
		case firstChar(r):
			return l.lexIdent(r, from)
		case r == '"':
			return l.lexString(from)
		case r == '\'':
			return l.lexChar(from)
		}

		return l.kinded(types.ILLEGAL, string(r))
	}
}

// Tokens drains the lexer, including the trailing EOF token.
func (l *Lexer) Tokens() (ret []types.Token) {
	for {
		t := l.Lex()
		ret = append(ret, t)
		if t.Kind == types.EOF {
			return
		}
	}
}
