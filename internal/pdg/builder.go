package pdg

import (
	"sort"
	"strings"

	"github.com/iec-st/pdganalyzer/internal/ast"
)

// BuildAll locates the program's top-level CASE-over-state-variable
// structure and builds one PDG per arm. It returns the PDGs keyed by state
// id and the name of the variable the CASE switches on.
func BuildAll(root ast.Node) (map[string]*PDG, string, error) {
	caseStmt := ast.Find(root, "case_statement")
	if caseStmt == nil {
		return map[string]*PDG{}, "", nil
	}

	stateVar := caseExpressionText(caseStmt)
	pdgs := map[string]*PDG{}

	for _, elem := range ast.FindAll(caseStmt, "case_element") {
		stateID := caseElementID(elem)
		if stateID == "" {
			continue
		}
		p := newPDG(stateID, stateVar)
		body := findStatementList(elem)
		b := &builder{pdg: p}
		b.walkList(body, nil, LabelNone)
		pruneControlEdges(p)
		synthesizeDataEdges(p)
		pdgs[stateID] = p
	}

	return pdgs, stateVar, nil
}

// caseExpressionText returns the printed form of the CASE statement's
// switched-on expression, i.e. the state variable name in the common case
// of a bare identifier.
func caseExpressionText(caseStmt *ast.Inner) string {
	if len(caseStmt.Children) == 0 {
		return ""
	}
	return strings.TrimSpace(PrintExpr(caseStmt.Children[0]))
}

func caseElementID(elem *ast.Inner) string {
	list := ast.Find(elem, "case_list")
	if list == nil {
		return ""
	}
	var ids []string
	for _, el := range ast.FindAll(list, "case_list_element") {
		ids = append(ids, strings.TrimSpace(el.Text()))
	}
	return strings.Join(ids, ",")
}

func findStatementList(elem *ast.Inner) *ast.Inner {
	return ast.Find(elem, "statement_list")
}

// builder accumulates nodes and edges while walking one case_element's
// statement list.
type builder struct {
	pdg *PDG
}

// walkList processes every statement in list, in source order, returning
// the full set of node ids created within it and any nested blocks
// (flattened). If governor is non-nil, a control edge labeled label is
// added from governor to every id returned.
func (b *builder) walkList(list *ast.Inner, governor *Node, label ControlLabel) []int {
	if list == nil {
		return nil
	}
	var all []int
	for _, child := range list.Children {
		wrap, ok := child.(*ast.Inner)
		if !ok || wrap.Tag != "statement" || len(wrap.Children) == 0 {
			continue
		}
		stmt, ok := wrap.Children[0].(*ast.Inner)
		if !ok {
			continue
		}
		switch stmt.Tag {
		case "assignment_statement":
			n := b.addAssignment(stmt)
			all = append(all, n.ID)
		case "if_statement":
			ids := b.walkIf(stmt)
			all = append(all, ids...)
		default:
			// loops, RETURN/EXIT, and bare FB invocations fall outside the
			// assignment/condition subset the dependency graph models.
		}
	}
	if governor != nil {
		for _, id := range all {
			b.pdg.Edges = append(b.pdg.Edges, Edge{From: governor.ID, To: id, Type: ControlEdge, Label: label})
		}
	}
	return all
}

func (b *builder) addAssignment(stmt *ast.Inner) *Node {
	if len(stmt.Children) < 2 {
		return b.pdg.addNode(Assignment, "", nil, nil, stmt)
	}
	// Children: target variable, assign_operator, expression.
	target := stmt.Children[0]
	expr := stmt.Children[len(stmt.Children)-1]
	writeName := writeNameOf(target)
	reads := variablesIn(expr)
	text := writeName + " := " + PrintExpr(expr)
	var writes []string
	if writeName != "" {
		writes = []string{writeName}
	}
	return b.pdg.addNode(Assignment, text, reads, writes, stmt)
}

// walkIf processes an if_statement: one condition node per IF/ELSIF
// expression, each wired with cascading control edges (pruned afterward)
// to every node in its THEN block, including nested blocks. The ELSE
// block's nodes are not governed by a condition node of their own.
func (b *builder) walkIf(stmt *ast.Inner) []int {
	var all []int

	// Children of if_statement, in order: expression, statement_list(THEN),
	// [expression, statement_list(ELSIF)]*, [statement_list(ELSE)]?
	i := 0
	children := stmt.Children
	for i < len(children) {
		exprNode, ok := children[i].(*ast.Inner)
		if !ok || exprNode.Tag != "expression" {
			break
		}
		i++
		var body *ast.Inner
		if i < len(children) {
			if sl, ok := children[i].(*ast.Inner); ok && sl.Tag == "statement_list" {
				body = sl
				i++
			}
		}
		label := LabelThen
		if len(all) > 0 {
			label = LabelElsif
		}
		condText := PrintExpr(exprNode)
		cond := b.pdg.addNode(Condition, condText, variablesIn(exprNode), nil, exprNode)
		all = append(all, cond.ID)
		governed := b.walkList(body, cond, label)
		all = append(all, governed...)
	}
	// Trailing statement_list, if any, is the ELSE block.
	if i < len(children) {
		if sl, ok := children[i].(*ast.Inner); ok && sl.Tag == "statement_list" {
			elseIDs := b.walkList(sl, nil, LabelElse)
			all = append(all, elseIDs...)
		}
	}
	return all
}

func writeNameOf(n ast.Node) string {
	inner, ok := n.(*ast.Inner)
	if !ok {
		return n.Text()
	}
	if inner.Tag == "variable_name" && len(inner.Children) > 0 {
		return inner.Children[0].Text()
	}
	return inner.Text()
}

// variablesIn collects the names of every variable textually referenced
// under n, deduplicated, in first-occurrence order within each reference
// form (variable_name, direct_variable, bare identifier).
func variablesIn(n ast.Node) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, v := range ast.FindAll(n, "variable_name") {
		if len(v.Children) > 0 {
			add(v.Children[0].Text())
		}
	}
	for _, v := range ast.FindAll(n, "direct_variable") {
		add(v.Text())
	}
	// primary_expression tries enumerated_value before _variable, so a bare
	// identifier in an expression arrives as an untyped enumerated_value.
	for _, v := range ast.FindAll(n, "enumerated_value") {
		if len(v.Children) == 1 {
			if leaf, ok := v.Children[0].(ast.Leaf); ok {
				add(string(leaf))
			}
		}
	}
	return out
}

// pruneControlEdges keeps, for each node, only the immediate enclosing
// control predecessor: if p1 -> p2 is itself a direct control edge and
// both p1 and p2 govern some node c, p1 is a strict ancestor of p2 in the
// control structure, so the edge p1 -> c is redundant and removed.
func pruneControlEdges(p *PDG) {
	direct := map[[2]int]bool{}
	for _, e := range p.Edges {
		if e.Type == ControlEdge {
			direct[[2]int{e.From, e.To}] = true
		}
	}

	byTarget := map[int][]Edge{}
	for _, e := range p.Edges {
		if e.Type == ControlEdge {
			byTarget[e.To] = append(byTarget[e.To], e)
		}
	}

	toRemove := map[int]bool{} // edge index in p.Edges
	for target, preds := range byTarget {
		if len(preds) < 2 {
			continue
		}
		for _, p1 := range preds {
			for _, p2 := range preds {
				if p1.From == p2.From {
					continue
				}
				if direct[[2]int{p1.From, p2.From}] {
					markRemoval(p, target, p1.From, toRemove)
				}
			}
		}
	}

	if len(toRemove) == 0 {
		return
	}
	kept := p.Edges[:0]
	for i, e := range p.Edges {
		if !toRemove[i] {
			kept = append(kept, e)
		}
	}
	p.Edges = kept
}

func markRemoval(p *PDG, target, from int, toRemove map[int]bool) {
	for i, e := range p.Edges {
		if e.Type == ControlEdge && e.To == target && e.From == from {
			toRemove[i] = true
		}
	}
}

// synthesizeDataEdges walks nodes in increasing id order, emitting a data
// edge from the last writer of each read variable, then updating the
// last-writer map with this node's own writes.
func synthesizeDataEdges(p *PDG) {
	ids := make([]int, 0, len(p.Nodes))
	for id := range p.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lastDef := map[string]int{}
	for _, id := range ids {
		n := p.Nodes[id]
		for _, v := range n.Reads {
			if def, ok := lastDef[v]; ok {
				p.Edges = append(p.Edges, Edge{From: def, To: id, Type: DataEdge, Variable: v})
			}
		}
		for _, v := range n.Writes {
			lastDef[v] = id
		}
	}
}
