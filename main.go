package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/olekukonko/tablewriter"
	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/builtin"
	"github.com/pontaoski/monkey/config"
	"github.com/pontaoski/monkey/evaluator"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/parser"
	"github.com/pontaoski/monkey/reader"
	"github.com/pontaoski/monkey/repl"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/monkey", "main")

type settings struct {
	cfg   config.Config
	debug bool
	exit  func(code int)
}

func (s *settings) load(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}

	lvl, err := capnslog.ParseLevel(strings.ToUpper(cfg.LogLevel))
	if err != nil {
		return cli.Exit(fmt.Sprintf("unknown log level %q", cfg.LogLevel), 1)
	}
	s.debug = lvl >= capnslog.DEBUG
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(c.App.ErrWriter, s.debug))
	capnslog.SetGlobalLogLevel(lvl)

	color.NoColor = !cfg.Color
	s.cfg = cfg
	return nil
}

func (s *settings) host(c *cli.Context) *builtin.Host {
	return &builtin.Host{Stdout: c.App.Writer, Stderr: c.App.ErrWriter, Exit: s.exit}
}

func parse(c *cli.Context, src, name string) (ast.Program, error) {
	prog, err := parser.NewParser(lexer.NewLexer(strings.NewReader(src), name)).Parse()
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "%s\n%s\n", color.RedString("parse errors:"), parser.Describe(err))
		return prog, cli.Exit("", 1)
	}
	return prog, nil
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, exit func(int)) *cli.App {
	s := &settings{exit: exit}

	runRepl := func(c *cli.Context) error {
		term := repl.OpenTerminal(s.cfg.HistoryFile)
		defer term.Close()

		host := s.host(c)
		host.Exit = func(code int) {
			term.Close()
			s.exit(code)
		}

		r := repl.New(term, c.App.Writer, host, repl.Options{
			Prompt:             s.cfg.Prompt,
			ContinuationPrompt: s.cfg.ContinuationPrompt,
			Color:              s.cfg.Color,
			EchoTokens:         s.cfg.EchoTokens,
		})
		return r.Run()
	}

	return &cli.App{
		Name:      "monkey",
		Usage:     "monkey language interpreter",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultPath,
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output",
			},
		},
		Before: s.load,
		ExitErrHandler: func(c *cli.Context, err error) {
			if s.debug {
				tracerr.PrintSourceColor(err)
			}
		},
		Action: runRepl,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "start an interactive session",
				Action: runRepl,
			},
			{
				Name:      "run",
				Usage:     "run a program",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "eval",
						Aliases: []string{"e"},
						Usage:   "run `CODE` instead of a file and print its result",
					},
				},
				Action: func(c *cli.Context) error {
					src, name := c.String("eval"), "<eval>"
					if !c.IsSet("eval") {
						var err error
						src, name, err = reader.ReadSource(c.Args().First(), c.App.Reader)
						if err != nil {
							return err
						}
					}

					prog, err := parse(c, src, name)
					if err != nil {
						return err
					}

					result := evaluator.New(s.host(c)).Eval(prog, object.NewEnvironment())
					if object.IsError(result) {
						fmt.Fprintln(c.App.ErrWriter, color.RedString(result.Inspect()))
						return cli.Exit("", 1)
					}
					if c.IsSet("eval") {
						fmt.Fprintln(c.App.Writer, color.HiMagentaString(result.Inspect()))
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "[FILE|-]",
				Action: func(c *cli.Context) error {
					handle, name, err := reader.Open(c.Args().First(), c.App.Reader)
					if err != nil {
						return err
					}
					defer handle.Close()

					l := lexer.NewLexer(handle, name)
					table := tablewriter.NewWriter(c.App.Writer)
					table.SetHeader([]string{"Kind", "Literal", "Position"})
					for _, tok := range l.Tokens() {
						table.Append([]string{tok.Kind.String(), tok.Literal, tok.Location.From.String()})
					}
					table.Render()

					return tracerr.Wrap(l.Err())
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "canonical",
						Usage: "print the fully parenthesized source form",
					},
				},
				Action: func(c *cli.Context) error {
					src, name, err := reader.ReadSource(c.Args().First(), c.App.Reader)
					if err != nil {
						return err
					}

					prog, err := parse(c, src, name)
					if err != nil {
						return err
					}

					if c.Bool("canonical") {
						fmt.Fprintln(c.App.Writer, prog.String())
						return nil
					}
					repr.New(c.App.Writer, repr.Indent("  ")).Println(prog)
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "write a default configuration file",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					err := config.Default().Write(path)
					if err != nil {
						return cli.Exit(fmt.Sprintf("error creating %s: %s", path, err), 1)
					}
					plog.Infof("wrote %s", path)
					return nil
				},
			},
		},
	}
}

func main() {
	app := newApp(os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr(), os.Exit)

	err := app.Run(os.Args)
	if err == nil {
		return
	}
	if ec, ok := err.(cli.ExitCoder); ok {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(app.ErrWriter, msg)
		}
		os.Exit(ec.ExitCode())
	}
	fmt.Fprintf(app.ErrWriter, "monkey: %s\n", tracerr.Unwrap(err))
	os.Exit(1)
}
