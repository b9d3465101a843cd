package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/kuhi-lang/kuhi/internal/builtin"
	"github.com/kuhi-lang/kuhi/internal/config"
	"github.com/kuhi-lang/kuhi/internal/diag"
	"github.com/kuhi-lang/kuhi/internal/eval"
	"github.com/kuhi-lang/kuhi/internal/format"
	"github.com/kuhi-lang/kuhi/internal/lexer"
	"github.com/kuhi-lang/kuhi/internal/repl"
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		// No subcommand: interactive terminals get the REPL, pipes are
		// evaluated as a script.
		if isatty.IsTerminal(os.Stdin.Fd()) {
			os.Exit(cmdRepl())
		}
		os.Exit(cmdEvalStdin())
	}

	switch os.Args[1] {
	case "repl":
		os.Exit(cmdRepl())
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "version":
		fmt.Println(config.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", config.AppName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`%s %s

Usage:
  %s repl              Start the interactive session (default on a terminal)
  %s run <file>        Evaluate a script and print the final stack
  %s fmt <file>|-      Expand ASCII mnemonics to glyphs and print the result
  %s version           Print the version

`, config.AppName, config.Version, config.AppName, config.AppName, config.AppName, config.AppName)
}

func cmdRepl() int {
	cfg := config.Load()
	repl.Run(cfg, cfg.ColorEnabled(isatty.IsTerminal(os.Stdout.Fd())))
	return 0
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file>\n", config.AppName)
		return 2
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", config.AppName, args[0], err)
		return 1
	}
	return evalSource(string(src), args[0])
}

func cmdEvalStdin() int {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	return evalSource(string(src), "stdin")
}

// evalSource runs a whole script against an empty stack and prints the
// final stack or a diagnostic.
func evalSource(src, name string) int {
	expanded := format.Expand(src)
	rendered := strings.TrimSuffix(expanded, "\n")
	colored := config.Load().ColorEnabled(isatty.IsTerminal(os.Stdout.Fd()))

	toks, perr := lexer.Parse(expanded, lexer.NewCursor())
	if perr != nil {
		if serr, ok := perr.(*lexer.SyntaxError); ok {
			fail(diag.Render(rendered, name, serr.Span, diag.SyntaxHeader, serr.Error(), serr.Note()), colored)
		} else {
			fail(perr.Error(), colored)
		}
		return 1
	}

	stack, rerr := eval.New(builtin.NewTable()).Run(toks)
	if rerr != nil {
		fail(diag.Render(rendered, name, rerr.Span, diag.RuntimeHeader, rerr.Err.Message, rerr.Err.Note), colored)
		return 1
	}
	if out := repl.RenderStack(stack); out != "" {
		fmt.Println(out)
	}
	return 0
}

func fail(msg string, colored bool) {
	if colored {
		msg = red(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func cmdFmt(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt <file>|-\n", config.AppName)
		return 2
	}
	var src []byte
	var err error
	if args[0] == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	fmt.Print(format.Expand(string(src)))
	return 0
}
