// Package parser interprets internal/grammar's rule table against IEC
// 61131-3 Structured Text source, producing the internal/ast tree that
// internal/pdg and internal/invariant walk.
//
// It ports the pyPEG engine from original_source/src/iec_st_compiler's
// parser.py: a single backtracking matcher driven entirely by the shape of
// each grammar.Expr value, with no rule getting its own hand-written
// recursive-descent function. Error localization works the same
// approximate way as the original: rather than tracking the position of
// whichever branch ultimately failed, the engine remembers the shortest
// remaining-text length observed across every successful match attempted
// during the whole parse, and reports whichever source line that length
// corresponds to.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/grammar"
)

// Option configures a Parse call.
type Option func(*config)

type config struct {
	comment CommentSkipper
	log     zerolog.Logger
}

// WithCommentPattern supplies the comment-skipping rule applied repeatedly
// at each skip point. A caller that wants no comment support at all should
// omit this option. Use RegexComment for a flat pattern or NestedComment
// for EPAS-style nested "(* ... *)" comments.
func WithCommentPattern(skipper CommentSkipper) Option {
	return func(c *config) { c.comment = skipper }
}

// WithLogger attaches a logger to the parse engine. Defaults to a no-op
// logger. The engine keeps the logger but emits no log events of its own.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// Parse consumes the entirety of source as a single IEC 61131-3
// translation unit and returns its parse tree. filename is used only to
// label any returned *SyntaxError.
func Parse(source, filename string, opts ...Option) (ast.Node, error) {
	cfg := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := newEngine(cfg.comment, cfg.log)
	text := skip(source, cfg.comment)

	nodes, rest, err := e.matchRule(text, grammar.Root(), nil)
	if err == nil && rest != "" {
		err = fail("trailing input")
	}
	if err != nil {
		return nil, localize(source, filename, e.restLength)
	}
	if len(nodes) != 1 {
		return nil, localize(source, filename, e.restLength)
	}
	return nodes[0], nil
}

func localize(source, filename string, restLength int) error {
	if restLength < 0 {
		restLength = 0
	}

	lines := splitKeepEnds(source)
	type offset struct {
		pos, line int
	}
	offsets := make([]offset, 0, len(lines))
	pos := 0
	for i, l := range lines {
		offsets = append(offsets, offset{pos, i + 1})
		pos += len(l)
	}
	textLen := pos
	parsed := textLen - restLength

	lineNo := 0
	for _, o := range offsets {
		if o.pos >= parsed {
			if o.pos == parsed {
				lineNo++
			}
			break
		}
		lineNo = o.line
	}
	if lineNo < 1 {
		lineNo = 1
	}

	plain := splitPlain(source)
	var text string
	if lineNo-1 >= 0 && lineNo-1 < len(plain) {
		text = plain[lineNo-1]
	}
	return &SyntaxError{File: filename, Line: lineNo, Text: text}
}

func splitKeepEnds(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

func splitPlain(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line := s[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			out = append(out, line)
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
