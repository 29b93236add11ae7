package pdg

import (
	"strings"

	"github.com/iec-st/pdganalyzer/internal/ast"
)

// operatorSymbols maps the grammar's empty, named operator-token rules to
// the text the printer reinserts for them. None of these rules ever have
// children of their own; the tag alone carries the meaning.
var operatorSymbols = map[string]string{
	"less_or_equal":    "<=",
	"greater_or_equal": ">=",
	"less_than":        "<",
	"greater_than":     ">",
	"equals":           "=",
	"not_equals":       "<>",
	"plus":             "+",
	"minus":            "-",
	"multiply":         "*",
	"divide":           "/",
	"modulo":           "MOD",
	"negate":           "NOT",
	"and_operator":     "AND",
	"or_operator":      "OR",
	"xor_operator":     "XOR",
	"assign_operator":  ":=",
}

// chainTags are the left-associative operator-chain rules: a sequence of
// operands interleaved with operator nodes, printed by concatenating every
// child's own rendering with single spaces.
var chainTags = map[string]bool{
	"expression":       true,
	"xor_expression":   true,
	"and_expression":   true,
	"comparison":       true,
	"add_expression":   true,
	"term":             true,
	"power_expression": true,
	"unary_expression": true,
}

// PrintExpr renders n as readable source text: a recursive walk that emits
// leaf text in order and substitutes symbolic operators for the grammar's
// empty operator-token nodes. Not intended to round-trip exactly; used for
// statement display text and condition rendering in invariant templates.
func PrintExpr(n ast.Node) string {
	var b strings.Builder
	printInto(&b, n)
	return squeeze(b.String())
}

func printInto(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case ast.Leaf:
		appendToken(b, string(v))
	case *ast.Inner:
		if sym, ok := operatorSymbols[v.Tag]; ok {
			appendToken(b, sym)
			return
		}
		if v.Tag == "primary_expression" {
			printPrimary(b, v)
			return
		}
		if v.Tag == "function_call" {
			printFunctionCall(b, v)
			return
		}
		for _, c := range v.Children {
			printInto(b, c)
		}
	}
}

// printPrimary special-cases the one grammar shape the printer cannot
// recover by token concatenation alone: a parenthesized sub-expression
// consumes its parentheses without leaving a node, so a bare
// "expression"-tagged child here (rather than a constant, variable,
// function call, or unary form) signals the source wrote parens around it.
func printPrimary(b *strings.Builder, n *ast.Inner) {
	if len(n.Children) == 0 {
		return
	}
	if len(n.Children) == 2 {
		// NOT <primary_expression>
		printInto(b, n.Children[0])
		printInto(b, n.Children[1])
		return
	}
	child := n.Children[0]
	if inner, ok := child.(*ast.Inner); ok && chainTags[inner.Tag] {
		appendToken(b, "(")
		printInto(b, inner)
		appendToken(b, ")")
		return
	}
	printInto(b, child)
}

func printFunctionCall(b *strings.Builder, n *ast.Inner) {
	if len(n.Children) == 0 {
		return
	}
	printInto(b, n.Children[0])
	appendToken(b, "(")
	for i, c := range n.Children[1:] {
		if i > 0 {
			appendToken(b, ",")
		}
		printInto(b, c)
	}
	appendToken(b, ")")
}

func appendToken(b *strings.Builder, tok string) {
	if tok == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(tok)
}

var noSpaceBefore = "),].;"
var noSpaceAfter = "([."

// squeeze removes the space the generic token-joiner inserted before/after
// punctuation that should hug its neighbor.
func squeeze(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			if i+1 < len(s) && strings.IndexByte(noSpaceBefore, s[i+1]) >= 0 {
				continue
			}
			if len(out) > 0 && strings.IndexByte(noSpaceAfter, out[len(out)-1]) >= 0 {
				continue
			}
		}
		out = append(out, c)
	}
	return string(out)
}
