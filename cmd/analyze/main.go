// Command analyze compiles one or more IEC 61131-3 Structured Text files
// into an XML, JSON, or Graphviz DOT analysis artifact: the parse tree,
// the per-state PDGs, and the extracted invariant templates.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"time"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/engine"
	"github.com/iec-st/pdganalyzer/internal/parser"
	"github.com/iec-st/pdganalyzer/internal/serialize"
)

var (
	pragmaRe = regexp.MustCompile(`^\s*\(\*\s*@(\w+)\s*:=\s*'(.*?)'\s*\*\)\s*$`)
	emptyRe  = regexp.MustCompile(`^\s*$`)
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	epas := fs.Bool("E", false, "enable EPAS pragma detection (e.g. nested comments)")
	output := fs.String("o", "", "output file; '-' or omitted writes to stdout")
	parseOnly := fs.Bool("p", false, "parse only; print the raw parse tree instead of an analysis artifact")
	pretty := fs.Bool("P", false, "pretty-print JSON output")
	format := fs.String("f", "xml", "output format: xml, json, or dot")
	if err := fs.Parse(args); err != nil {
		return 5
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	done := make(chan int, 1)
	go func() { done <- compile(fs.Args(), *epas, *output, *parseOnly, *pretty, *format) }()

	select {
	case code := <-done:
		if code == 0 {
			fmt.Fprintf(os.Stderr, "--- Finished in %.4f seconds ---\n", time.Since(start).Seconds())
		}
		return code
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "\nProcess interrupted by user.")
		return 1
	}
}

func compile(files []string, epas bool, output string, parseOnly, pretty bool, format string) int {
	source, err := readSources(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 5
	}

	skipper := commentSkipperFor(source, epas)
	label := firstFileLabel(files)

	if parseOnly {
		root, err := parser.Parse(source, label, parser.WithCommentPattern(skipper))
		if err != nil {
			return reportError(err)
		}
		if err := writeOutput(output, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, dumpNode(root))
			return err
		}); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 5
		}
		return 0
	}

	res, err := engine.Analyze(source, label, engine.WithCommentPattern(skipper))
	if err != nil {
		return reportError(err)
	}

	err = writeOutput(output, func(w io.Writer) error {
		switch format {
		case "json":
			doc := serialize.BuildDocument(res.Root, res.PDGs, res.Variables, res.Templates)
			var data []byte
			var err error
			if pretty {
				data, err = json.MarshalIndent(doc, "", "  ")
			} else {
				data, err = json.Marshal(doc)
			}
			if err != nil {
				return err
			}
			_, err = w.Write(append(data, '\n'))
			return err
		case "dot":
			return serialize.WriteDOT(w, res.PDGs)
		default:
			return serialize.WriteXML(w, res.Root, res.PDGs, res.Variables, res.Templates)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
		return 5
	}
	return 0
}

func reportError(err error) int {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		fmt.Fprintf(os.Stderr, "Error: Syntax Error during parsing: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
	}
	return 5
}

// commentSkipperFor mirrors the compiler's pragma scan: only lines before
// the first non-empty, non-pragma line are checked, and only the
// "NESTEDCOMMENTS" pragma changes anything. Without -E, pragmas are never
// scanned at all.
func commentSkipperFor(source string, epas bool) parser.CommentSkipper {
	if epas {
		for _, line := range strings.SplitAfter(source, "\n") {
			if emptyRe.MatchString(line) {
				continue
			}
			m := pragmaRe.FindStringSubmatch(line)
			if m == nil {
				break
			}
			if m[1] == "NESTEDCOMMENTS" && m[2] == "Yes" {
				return parser.NestedComment()
			}
		}
	}
	return parser.RegexComment(parser.DefaultCommentPattern)
}

func readSources(files []string) (string, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	var b strings.Builder
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		b.Write(data)
	}
	return b.String(), nil
}

func firstFileLabel(files []string) string {
	if len(files) == 0 {
		return "<stdin>"
	}
	return files[0]
}

func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

// dumpNode renders the parse tree the way the parse-only mode shows it: a
// parenthesized, tag-first listing close to the original tool's raw tuple
// repr.
func dumpNode(n ast.Node) string {
	switch v := n.(type) {
	case ast.Leaf:
		return fmt.Sprintf("%q", string(v))
	case *ast.Inner:
		parts := make([]string, 0, len(v.Children)+1)
		parts = append(parts, fmt.Sprintf("%q", v.Tag))
		for _, c := range v.Children {
			parts = append(parts, dumpNode(c))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}
