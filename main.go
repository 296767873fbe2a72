// Command golox is a tree-walking interpreter for the Lox programming language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	"github.com/chzyer/readline"

	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/interpreter"
	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/parser"
	"github.com/golox-lang/golox/scanner"
)

var printAST = flag.Bool("ast", false, "Print the parsed AST instead of running it")

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: golox [script]\n\n")
	fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	switch len(flag.Args()) {
	case 0:
		if err := runREPL(); err != nil {
			log.Fatal(err)
		}
	case 1:
		if err := runFile(flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runFile reads name, runs it to completion, and exits non-zero if a parse or runtime error was
// reported during the run.
func runFile(name string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	sink := loxerr.New(os.Stderr)
	in := interpreter.New(os.Stdout, sink)
	runSource(string(src), sink, in)

	if sink.HadParseError() {
		os.Exit(65)
	}
	if sink.HadRuntimeError() {
		os.Exit(70)
	}
	return nil
}

// runREPL runs an interactive read-eval-print loop, reusing one interpreter (so that global
// variables, functions and classes persist across lines) but resetting the diagnostics sink's
// sticky flags between lines, so a bad line doesn't prevent the next one from running.
func runREPL() error {
	cfg := &readline.Config{Prompt: "> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".golox_history")
	} else {
		fmt.Fprintf(os.Stderr, "Can't get current user's home directory (%s). Command history will not be saved.\n", err)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("starting REPL: %s", err)
	}
	defer rl.Close()

	sink := loxerr.New(os.Stderr)
	in := interpreter.New(os.Stdout, sink)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading line: %s", err)
		}
		sink.Reset()
		runSource(line, sink, in)
	}
}

// runSource scans, parses, resolves and runs src. Errors at any stage are reported through sink
// rather than returned; running is skipped once a parse error has been reported.
func runSource(src string, sink *loxerr.Sink, in *interpreter.Interpreter) {
	tokens := scanner.New(src, sink).Scan()
	stmts := parser.New(tokens, sink).Parse()

	if *printAST {
		fmt.Print(ast.Sprint(stmts))
		return
	}

	if sink.HadParseError() {
		return
	}

	in.Run(stmts)
}
