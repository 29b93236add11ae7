package serialize

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iec-st/pdganalyzer/internal/pdg"
)

var nodeFillColor = map[pdg.StatementType]string{
	pdg.Assignment: "lightblue",
	pdg.Condition:  "lightyellow",
}

// WriteDOT renders every PDG as one Graphviz digraph, with a dashed
// subgraph cluster per state. Control edges are solid red, data edges
// dashed blue, matching the original tool's export.
func WriteDOT(w io.Writer, pdgs map[string]*pdg.PDG) error {
	var b strings.Builder
	b.WriteString("digraph PDGs {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  compound=true;\n")
	b.WriteString("  node [shape=box];\n\n")

	for _, stateID := range sortedKeys(pdgs) {
		p := pdgs[stateID]
		fmt.Fprintf(&b, "  subgraph cluster_state_%s {\n", stateID)
		fmt.Fprintf(&b, "    label=\"State %s\";\n", stateID)
		b.WriteString("    style=dashed;\n")
		b.WriteString("    color=blue;\n\n")

		ids := make([]int, 0, len(p.Nodes))
		for id := range p.Nodes {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			n := p.Nodes[id]
			label := dotEscape(n.StatementText)
			color := nodeFillColor[n.StatementType]
			if color == "" {
				color = "white"
			}
			fmt.Fprintf(&b, "    s%s_n%d [label=\"%s\", fillcolor=%s, style=filled];\n", stateID, id, label, color)
		}

		for _, e := range p.Edges {
			style := "dashed"
			color := "blue"
			if e.Type == pdg.ControlEdge {
				style = "solid"
				color = "red"
			}
			label := string(e.Label)
			if label == "" {
				label = e.Variable
			}
			fmt.Fprintf(&b, "    s%s_n%d -> s%s_n%d [style=%s, color=%s, label=\"%s\"];\n",
				stateID, e.From, stateID, e.To, style, color, dotEscape(label))
		}

		b.WriteString("  }\n\n")
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
