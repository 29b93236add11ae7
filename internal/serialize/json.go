package serialize

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/invariant"
	"github.com/iec-st/pdganalyzer/internal/pdg"
	"github.com/iec-st/pdganalyzer/internal/variable"
)

// Document is the JSON-serializable equivalent of the XML output: the AST
// under "program", plus optional "pdg_analysis" and "invariant_templates"
// maps keyed by state id.
type Document struct {
	AnalysisSummary    *analysisSummaryDocument        `json:"analysis_summary,omitempty"`
	Program            any                             `json:"program"`
	PDGAnalysis        map[string]pdgDocument          `json:"pdg_analysis,omitempty"`
	InvariantTemplates map[string][]invariant.Template `json:"invariant_templates,omitempty"`
}

type analysisSummaryDocument struct {
	StateCount      int            `json:"state_count"`
	VariablesByRole map[string]int `json:"variables_by_role"`
	TemplatesByKind map[string]int `json:"templates_by_kind"`
}

type pdgDocument struct {
	Variables []variableDocument `json:"variables"`
	Nodes     []nodeDocument     `json:"nodes"`
	Edges     []edgeDocument     `json:"edges"`
}

type variableDocument struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DataType     string `json:"data_type"`
	Scope        string `json:"scope"`
	InitialValue string `json:"initial_value,omitempty"`
}

type nodeDocument struct {
	ID        int      `json:"id"`
	Type      string   `json:"type"`
	Statement string   `json:"statement"`
	Reads     []string `json:"reads,omitempty"`
	Writes    []string `json:"writes,omitempty"`
}

type edgeDocument struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Type     string `json:"type"`
	Variable string `json:"variable,omitempty"`
	Label    string `json:"label,omitempty"`
}

// BuildDocument assembles the JSON document for root/pdgs/vars/templates.
// Separated from WriteJSON so callers (such as cmd/analyze, which picks its
// own indentation) can work with the structure before encoding.
func BuildDocument(root ast.Node, pdgs map[string]*pdg.PDG, vars variable.Table, templates []invariant.Template) Document {
	doc := Document{Program: astToJSON(root)}

	if len(pdgs) > 0 || len(templates) > 0 {
		roleCounts := map[string]int{}
		for _, v := range vars {
			roleCounts[string(v.Role)]++
		}
		kindCounts := map[string]int{}
		for _, t := range templates {
			kindCounts[string(t.Kind)]++
		}
		doc.AnalysisSummary = &analysisSummaryDocument{
			StateCount:      len(pdgs),
			VariablesByRole: roleCounts,
			TemplatesByKind: kindCounts,
		}
	}

	if len(pdgs) > 0 {
		doc.PDGAnalysis = make(map[string]pdgDocument, len(pdgs))
		for id, p := range pdgs {
			doc.PDGAnalysis[id] = pdgToDocument(p, vars)
		}
	}

	if len(templates) > 0 {
		doc.InvariantTemplates = groupByState(templates)
	}

	return doc
}

// WriteJSON encodes the full document to w with two-space indentation.
func WriteJSON(w io.Writer, root ast.Node, pdgs map[string]*pdg.PDG, vars variable.Table, templates []invariant.Template) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocument(root, pdgs, vars, templates))
}

func astToJSON(n ast.Node) any {
	switch v := n.(type) {
	case ast.Leaf:
		return string(v)
	case *ast.Inner:
		children := make([]any, 0, len(v.Children))
		for _, c := range v.Children {
			children = append(children, astToJSON(c))
		}
		return map[string]any{
			"type":     v.Tag,
			"children": children,
		}
	default:
		return nil
	}
}

func pdgToDocument(p *pdg.PDG, vars variable.Table) pdgDocument {
	doc := pdgDocument{}

	for _, name := range sortedKeys(vars) {
		v := vars[name]
		doc.Variables = append(doc.Variables, variableDocument{
			Name:         v.Name,
			Type:         string(v.Role),
			DataType:     v.DataType,
			Scope:        string(v.Scope),
			InitialValue: v.InitialValue,
		})
	}

	ids := make([]int, 0, len(p.Nodes))
	for id := range p.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n := p.Nodes[id]
		reads := append([]string{}, n.Reads...)
		sort.Strings(reads)
		writes := append([]string{}, n.Writes...)
		sort.Strings(writes)
		doc.Nodes = append(doc.Nodes, nodeDocument{
			ID:        id,
			Type:      string(n.StatementType),
			Statement: n.StatementText,
			Reads:     reads,
			Writes:    writes,
		})
	}

	for _, e := range p.Edges {
		doc.Edges = append(doc.Edges, edgeDocument{
			From:     e.From,
			To:       e.To,
			Type:     string(e.Type),
			Variable: e.Variable,
			Label:    string(e.Label),
		})
	}

	return doc
}
