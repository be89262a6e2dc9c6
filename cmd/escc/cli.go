package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/esclang/escc/internal/ast"
	"github.com/esclang/escc/internal/diag"
	"github.com/esclang/escc/internal/lexer"
	"github.com/esclang/escc/internal/lint"
	"github.com/esclang/escc/internal/parser"
)

const (
	exitOK      = 0
	exitCompile = 1
	exitUsage   = 2
)

type cliOptions struct {
	colorMode string
	keywords  string
	lisp      bool
}

// run wires the cobra command tree and executes it, returning the
// process exit code.
func run(stdout, stderr io.Writer, args []string) int {
	code := exitOK
	var opts cliOptions

	cmdRoot := &cobra.Command{
		Use:           "escc <file>",
		Short:         "compile an expression-language source file",
		Long:          "escc compiles a single expression-language source file, printing either\nthe parsed expression tree or diagnostics pinned to source locations.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			code = compile(stdout, opts, args, false)
		},
	}
	cmdRoot.PersistentFlags().StringVar(&opts.colorMode, "color", "auto", "colorize output: auto|always|never")
	cmdRoot.PersistentFlags().StringVar(&opts.keywords, "keywords", "en", "keyword language table")
	cmdRoot.Flags().BoolVar(&opts.lisp, "lisp", false, "print the tree with the structural pretty-printer")

	cmdTokens := &cobra.Command{
		Use:   "tokens <file>",
		Short: "dump the lexed token stream",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			code = compile(stdout, opts, args, true)
		},
	}
	cmdRoot.AddCommand(cmdTokens)

	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	cmdRoot.SetArgs(args)
	cmdRoot.SetOut(stdout)
	cmdRoot.SetErr(stderr)
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintf(stderr, "escc: %v\n", err)
		return exitUsage
	}
	return code
}

// compile drives one source file through the front end: read, lex,
// lint, parse, print. With tokensOnly it stops after lexing and dumps
// the stream.
func compile(stdout io.Writer, opts cliOptions, args []string, tokensOnly bool) int {
	color := colorEnabled(opts.colorMode, stdout)
	rep := diag.NewReporter(stdout, color)
	lexer.SetLanguage(opts.keywords)

	if len(args) != 1 {
		rep.FatalError("a filename must be provided")
		return exitCompile
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		rep.FatalError(fmt.Sprintf("%s: %v", args[0], err))
		return exitCompile
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		rep.FatalError(fmt.Sprintf("%s: no such file or directory", path))
		return exitCompile
	case err == nil && info.IsDir():
		rep.FatalError(fmt.Sprintf("%s: is a directory", path))
		return exitCompile
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			rep.FatalError(fmt.Sprintf("%s: insufficient permissions to read", path))
		} else {
			rep.FatalError(fmt.Sprintf("%s: %v", path, err))
		}
		return exitCompile
	}

	tokens := lexer.New(path, string(src), rep).Tokenize()
	if tokens == nil {
		return die(rep)
	}

	if tokensOnly {
		for _, tok := range tokens {
			fmt.Fprintln(stdout, tok)
		}
		return exitOK
	}

	lint.NewDefaultRunner().Run(tokens, rep)

	expr, err := parser.New(tokens, rep).Parse()
	if err != nil {
		return die(rep)
	}

	if opts.lisp {
		ast.Lispfmt(stdout, expr, color)
	} else {
		fmt.Fprintln(stdout, expr)
	}
	return exitOK
}

// die prints the abort summary after diagnostics have been reported.
func die(rep *diag.Reporter) int {
	if rep.ErrorCount() == 1 {
		rep.Info("compilation aborted due to this error.")
	} else {
		rep.Info(fmt.Sprintf("compilation aborted due to %d errors.", rep.ErrorCount()))
	}
	return exitCompile
}

func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
