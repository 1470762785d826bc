// Package repl runs the interactive read-evaluate-print loop. One input is
// read, evaluated and printed before the next prompt; bindings persist
// across inputs.
package repl

import (
	goerrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/pontaoski/monkey/builtin"
	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/evaluator"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/parser"
	"github.com/pontaoski/monkey/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/monkey", "repl")

// LineReader supplies one line of input per prompt. It returns io.EOF when
// input is exhausted and liner.ErrPromptAborted when the user cancels the
// current line.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// historian is implemented by readers that keep a history, like
// *liner.State.
type historian interface {
	AppendHistory(item string)
}

type Options struct {
	Prompt             string
	ContinuationPrompt string
	Color              bool
	EchoTokens         bool
}

type REPL struct {
	in   LineReader
	out  io.Writer
	opts Options

	interp *evaluator.Interpreter
	env    *object.Environment

	result  *color.Color
	failure *color.Color
}

func New(in LineReader, out io.Writer, host *builtin.Host, opts Options) *REPL {
	r := &REPL{
		in:      in,
		out:     out,
		opts:    opts,
		interp:  evaluator.New(host),
		env:     object.NewEnvironment(),
		result:  color.New(color.FgHiMagenta),
		failure: color.New(color.FgHiRed),
	}
	if opts.Color {
		r.result.EnableColor()
		r.failure.EnableColor()
	} else {
		r.result.DisableColor()
		r.failure.DisableColor()
	}
	return r
}

// Env is the environment shared by every input of this session.
func (r *REPL) Env() *object.Environment {
	return r.env
}

// Run loops until the reader reports io.EOF.
func (r *REPL) Run() error {
	for {
		src, err := r.read()
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return nil
		} else if goerrors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if err != nil {
			return err
		}

		if strings.TrimSpace(src) == "" {
			continue
		}
		if h, ok := r.in.(historian); ok {
			h.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}

		r.Eval(src)
	}
}

// read collects lines until they parse or fail for a reason other than
// running out of input.
func (r *REPL) read() (string, error) {
	var b strings.Builder

	for {
		prompt := r.opts.Prompt
		if b.Len() > 0 {
			prompt = r.opts.ContinuationPrompt
		}

		line, err := r.in.Prompt(prompt)
		if err == io.EOF && b.Len() > 0 {
			return b.String(), nil
		} else if err != nil {
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if strings.TrimSpace(b.String()) == "" {
			return "", nil
		}

		_, perr := parser.ParseString(b.String())
		if perr != nil && errors.IsIncomplete(perr) {
			plog.Debugf("input incomplete, asking for more")
			continue
		}
		return b.String(), nil
	}
}

// Eval runs one input against the session environment and prints the
// outcome.
func (r *REPL) Eval(src string) object.Object {
	if r.opts.EchoTokens {
		r.echoTokens(src)
	}

	program, err := parser.ParseString(src)
	if err != nil {
		r.failure.Fprintf(r.out, "parse errors:\n%s\n", parser.Describe(err))
		return nil
	}

	result := r.interp.Eval(program, r.env)
	if object.IsError(result) {
		r.failure.Fprintln(r.out, result.Inspect())
	} else {
		r.result.Fprintln(r.out, result.Inspect())
	}
	return result
}

func (r *REPL) echoTokens(src string) {
	var parts []string
	for _, tok := range lexer.New(src).Tokens() {
		if tok.Kind == types.EOF {
			break
		}
		parts = append(parts, tok.String())
	}
	fmt.Fprintf(r.out, "[%s]\n", strings.Join(parts, ", "))
}
