package errors

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/pontaoski/monkey/types"
	"github.com/ztrue/tracerr"
)

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Literal  string
	Location types.Span
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got %s, expected %s. %s", describe(e.Got, e.Literal), e.Expected, e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Literal  string
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got %s, expected one of %s. %s", describe(e.Got, e.Literal), e.Expected, e.Location)
}

// NoPrefixRule is raised when a token cannot start an expression.
type NoPrefixRule struct {
	Got      types.TokenKind
	Literal  string
	Location types.Span
}

func (e NoPrefixRule) Error() string {
	return fmt.Sprintf("no prefix parse rule for %s. %s", describe(e.Got, e.Literal), e.Location)
}

// NoInfixRule is raised when a token binds as an operator but has no
// production, such as the reserved compound assignments.
type NoInfixRule struct {
	Got      types.TokenKind
	Literal  string
	Location types.Span
}

func (e NoInfixRule) Error() string {
	return fmt.Sprintf("no infix parse rule for %s. %s", describe(e.Got, e.Literal), e.Location)
}

type IllegalToken struct {
	Literal  string
	Location types.Span
}

func (e IllegalToken) Error() string {
	return fmt.Sprintf("illegal token %q. %s", e.Literal, e.Location)
}

type InvalidLiteral struct {
	Kind     types.TokenKind
	Literal  string
	Location types.Span
	Err      error
}

func (e InvalidLiteral) Error() string {
	return fmt.Sprintf("could not parse %q as %s: %s. %s", e.Literal, e.Kind, e.Err, e.Location)
}

func (e InvalidLiteral) Unwrap() error {
	return e.Err
}

type DuplicateParameter struct {
	Name     string
	Location types.Span
}

func (e DuplicateParameter) Error() string {
	return fmt.Sprintf("parameter %s specified more than once. %s", e.Name, e.Location)
}

func describe(kind types.TokenKind, lit string) string {
	switch kind {
	case types.EOF:
		return "end of input"
	case types.IDENT, types.INT, types.FLOAT, types.STRING, types.CHAR, types.ILLEGAL:
		return fmt.Sprintf("%s %q", kind, lit)
	}
	return fmt.Sprintf("%q", kind.String())
}

// List collects every error reported for one parse.
type List []error

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// IsIncomplete reports whether err was caused by input ending in the
// middle of a construct, meaning more input could make it parse. A List
// is incomplete only when none of its errors is final.
func IsIncomplete(err error) bool {
	var list List
	if goerrors.As(err, &list) {
		for _, e := range list {
			if !IsIncomplete(e) {
				return false
			}
		}
		return len(list) > 0
	}
	err = tracerr.Unwrap(err)

	var (
		expected    ExpectedKindGotKind
		expectedOne ExpectedOneOfKindGotKind
		noPrefix    NoPrefixRule
		illegal     IllegalToken
	)
	switch {
	case goerrors.As(err, &expected):
		return expected.Got == types.EOF
	case goerrors.As(err, &expectedOne):
		return expectedOne.Got == types.EOF
	case goerrors.As(err, &noPrefix):
		return noPrefix.Got == types.EOF
	case goerrors.As(err, &illegal):
		return unterminatedString(illegal.Literal)
	}
	return false
}

func unterminatedString(lit string) bool {
	return strings.HasPrefix(lit, `"`)
}
