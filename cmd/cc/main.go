// Command cc drives the preprocess/lex/parse pipeline from a single
// input file (or stdin) and either dumps the resulting AST or renders
// the emitter's `.data` section contract.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stackvm-lang/cc/astdump"
	"github.com/stackvm-lang/cc/lexer"
	"github.com/stackvm-lang/cc/parser"
	"github.com/stackvm-lang/cc/preproc"
	"github.com/stackvm-lang/cc/surface"
)

const version = "0.1.0"

// multiFlag allows a flag to be specified multiple times (e.g. -I path1 -I path2).
type multiFlag []string

func (f *multiFlag) String() string { return strings.Join(*f, ", ") }
func (f *multiFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	outputFile := flag.String("o", "", "Output file (default: stdout)")
	dumpAST := flag.Bool("dump-ast", false, "Print the parsed AST instead of the data section")
	var includePaths multiFlag
	flag.Var(&includePaths, "I", "Include search path (repeatable)")
	var defines multiFlag
	flag.Var(&defines, "D", "Predefined symbol, NAME or NAME=VALUE (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cc - a C-subset front end for the stackvm toolchain\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.c | ->\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("cc version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputFile := args[0]

	defs := map[string]string{}
	for _, d := range defines {
		if idx := strings.Index(d, "="); idx >= 0 {
			defs[d[:idx]] = d[idx+1:]
		} else {
			defs[d] = ""
		}
	}

	expanded, err := preprocess(inputFile, includePaths, defs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preprocessor error: %s\n", err)
		os.Exit(1)
	}

	l := lexer.New(expanded)
	p := parser.New(l)
	tops, err := p.ParseTopLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	var output string
	if *dumpAST {
		output = astdump.Dump(tops)
	} else {
		ctx := p.Context()
		var b strings.Builder
		surface.EmitDataSection(&b, ctx.Strings, ctx.Flonums)
		output = b.String()
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing file: %s\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(output)
	}
}

// preprocess runs the textual preprocessor over the input, which may
// be a real file or "-" for stdin (stdin bypasses #include resolution
// relative to a source directory, only includePaths apply).
func preprocess(inputFile string, includePaths []string, defs map[string]string) (string, error) {
	pp := preproc.New(
		preproc.WithIncludePaths(includePaths),
		preproc.WithDefines(defs),
	)
	if inputFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return pp.ProcessSource(string(data))
	}
	return pp.ProcessFile(inputFile)
}
