package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/lorylang/lory/internal/config"
	"github.com/lorylang/lory/internal/interpreter"
)

// Run is the CLI entrypoint. Usage:
//
//	lory script.lory [args...]   run a script
//	lory -e "expression"         evaluate an expression
//	lory                         REPL on a terminal, stdin otherwise
func Run() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	args := os.Args[1:]

	if len(args) == 1 {
		switch args[0] {
		case "-v", "-version", "--version":
			fmt.Println("lory " + config.Version)
			return
		case "-h", "-help", "--help":
			printUsage(os.Stdout)
			return
		}
	}

	if len(args) >= 1 && (args[0] == "-e" || args[0] == "--eval") {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: -e requires an expression")
			os.Exit(1)
		}
		runSource(strings.Join(args[1:], " "), true)
		return
	}

	if len(args) >= 1 && !strings.HasPrefix(args[0], "-") {
		runFile(args[0])
		return
	}

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Unknown option: %s\n", args[0])
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		repl()
		return
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	runSource(string(source), false)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: lory [options] [script%s] [args...]

Options:
  -e <expr>    evaluate an expression and print its result
  -v           print the version
  -h           show this help

With no script and a terminal on stdin, an interactive session starts.
`, config.SourceFileExt)
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	interp := interpreter.New()
	interp.SetBaseDir(filepath.Dir(path))
	defer interp.CloseDatabases()

	if _, err := interp.Run(string(source)); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// runSource executes source in a fresh session. In eval mode the resulting
// value is printed, matching what -e users expect from a calculator-style
// invocation.
func runSource(source string, printResult bool) {
	interp := interpreter.New()
	defer interp.CloseDatabases()

	result, err := interp.Run(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	if printResult && result != nil && result != interpreter.NULL {
		fmt.Println(interp.Stringify(result))
	}
}

// repl runs a line-oriented interactive session. Declarations and values
// accumulate in one interpreter, so definitions survive across inputs.
// Lines that open a block (fn, if, loops, class bodies) buffer until their
// closing end.
func repl() {
	fmt.Printf("lory %s (interactive)\n", config.Version)
	fmt.Println(`Type "exit" to leave.`)

	interp := interpreter.New()
	defer interp.CloseDatabases()

	scanner := bufio.NewScanner(os.Stdin)
	var buffer []string
	depth := 0

	for {
		if depth > 0 {
			fmt.Print("... ")
		} else {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()

		if depth == 0 && strings.TrimSpace(line) == "exit" {
			return
		}

		buffer = append(buffer, line)
		depth += blockDelta(line)
		if depth > 0 {
			continue
		}
		depth = 0

		source := strings.Join(buffer, "\n")
		buffer = nil
		if strings.TrimSpace(source) == "" {
			continue
		}

		result, err := interp.Run(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			continue
		}
		if result != nil && result != interpreter.NULL {
			fmt.Println(interp.Stringify(result))
		}
	}
}

// blockDelta counts block openers and closers on a line so the REPL knows
// when a multi-line construct is complete. It is a heuristic: keywords
// inside string literals are ignored, comments are stripped.
func blockDelta(line string) int {
	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	delta := 0
	inString := false
	for _, field := range strings.Fields(line) {
		if inString || strings.HasPrefix(field, `"`) {
			quotes := strings.Count(field, `"`) - strings.Count(field, `\"`)
			if quotes%2 == 1 {
				inString = !inString
			}
			continue
		}
		switch field {
		case "fn", "if", "while", "for", "repeat", "try", "case", "class", "package", "lambda":
			delta++
		case "end":
			delta--
		}
	}
	return delta
}
