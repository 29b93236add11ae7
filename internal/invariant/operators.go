package invariant

import (
	"regexp"
	"strings"

	"github.com/iec-st/pdganalyzer/internal/ast"
)

// comparisonSymbols mirrors the comparison slice of the expression
// printer's operator table; Pass C's single-variable rule only ever needs
// a comparison operator, never an arithmetic one.
var comparisonSymbols = map[string]string{
	"less_or_equal":    "<=",
	"greater_or_equal": ">=",
	"less_than":        "<",
	"greater_than":     ">",
	"equals":           "=",
	"not_equals":       "<>",
}

// innermostComparison returns the deepest "comparison"-tagged node in n's
// subtree whose operands mention varName, or nil. Depth-first, preferring
// the match closest to the leaves over one closer to the root.
func innermostComparison(n ast.Node, varName string) *ast.Inner {
	inner, ok := n.(*ast.Inner)
	if !ok {
		return nil
	}
	for _, c := range inner.Children {
		if found := innermostComparison(c, varName); found != nil {
			return found
		}
	}
	if inner.Tag == "comparison" && ast.ContainsLeaf(inner, varName) {
		return inner
	}
	return nil
}

// comparisonOperatorSymbol extracts the symbolic operator from a
// "comparison" node's comparison_operator child.
func comparisonOperatorSymbol(cmp *ast.Inner) string {
	if cmp == nil {
		return ""
	}
	for _, c := range cmp.Children {
		opNode, ok := c.(*ast.Inner)
		if !ok || opNode.Tag != "comparison_operator" {
			continue
		}
		for _, oc := range opNode.Children {
			tagged, ok := oc.(*ast.Inner)
			if !ok {
				continue
			}
			if sym, ok := comparisonSymbols[tagged.Tag]; ok {
				return sym
			}
		}
	}
	return ""
}

// operatorFor determines the comparison operator governing varName within
// astRef, per Pass C's single-variable rule.
func operatorFor(astRef ast.Node, varName string) string {
	return comparisonOperatorSymbol(innermostComparison(astRef, varName))
}

var assignedValueRe = regexp.MustCompile(`:=\s*(.+?)\s*$`)

// assignedValue pulls the literal text to the right of ":=" out of a
// printed assignment statement's display text.
func assignedValue(statementText string) string {
	m := assignedValueRe.FindStringSubmatch(statementText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
