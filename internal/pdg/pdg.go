// Package pdg builds one Program Dependency Graph per CASE arm of a
// state-machine-shaped Structured Text program: one node per
// assignment/condition statement, control edges from governing predicates,
// and data edges along last-writer-wins reaching-definition chains.
package pdg

import "github.com/iec-st/pdganalyzer/internal/ast"

// StatementType distinguishes the two node shapes a PDG can hold.
type StatementType string

const (
	Assignment StatementType = "assignment"
	Condition  StatementType = "condition"
)

// EdgeType distinguishes control flow from data flow.
type EdgeType string

const (
	ControlEdge EdgeType = "control"
	DataEdge    EdgeType = "data"
)

// ControlLabel marks which branch of an if/elsif/else a control edge
// originates from.
type ControlLabel string

const (
	LabelThen  ControlLabel = "then"
	LabelElsif ControlLabel = "elsif"
	LabelElse  ControlLabel = "else"
	LabelNone  ControlLabel = ""
)

// Node is one assignment or condition statement. Ids are dense,
// nonnegative, and strictly increasing in source order within a PDG.
type Node struct {
	ID            int
	StatementType StatementType
	StatementText string
	Reads         []string
	Writes        []string
	ASTRef        ast.Node
}

// Edge is a directed arc between two node ids.
type Edge struct {
	From     int
	To       int
	Type     EdgeType
	Variable string       // set only for data edges
	Label    ControlLabel // set only for control edges, when known
}

// PDG is one CASE arm's dependency graph.
type PDG struct {
	StateID       string
	StateVariable string
	Nodes         map[int]*Node
	Edges         []Edge

	nextID int
}

func newPDG(stateID, stateVariable string) *PDG {
	return &PDG{StateID: stateID, StateVariable: stateVariable, Nodes: map[int]*Node{}}
}

func (p *PDG) addNode(stmtType StatementType, text string, reads, writes []string, ref ast.Node) *Node {
	n := &Node{
		ID:            p.nextID,
		StatementType: stmtType,
		StatementText: text,
		Reads:         reads,
		Writes:        writes,
		ASTRef:        ref,
	}
	p.nextID++
	p.Nodes[n.ID] = n
	return n
}

// ControlPredecessors returns the ids of every node with a surviving
// control edge into id, in edge-list order.
func (p *PDG) ControlPredecessors(id int) []int {
	var out []int
	for _, e := range p.Edges {
		if e.Type == ControlEdge && e.To == id {
			out = append(out, e.From)
		}
	}
	return out
}

// DataPredecessors returns the ids of nodes with a surviving data edge
// into id carrying variable, in edge-list order.
func (p *PDG) DataPredecessors(id int, variable string) []int {
	var out []int
	for _, e := range p.Edges {
		if e.Type == DataEdge && e.To == id && e.Variable == variable {
			out = append(out, e.From)
		}
	}
	return out
}

// InEdges returns every edge (control or data) with To == id, in edge-list
// order. Used by the invariant extractor's backward, type-agnostic
// dependency walk.
func (p *PDG) InEdges(id int) []Edge {
	var out []Edge
	for _, e := range p.Edges {
		if e.To == id {
			out = append(out, e)
		}
	}
	return out
}
