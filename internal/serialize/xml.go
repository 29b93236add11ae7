// Package serialize renders a parsed program, its PDGs, and its extracted
// invariant templates as XML, JSON, or Graphviz DOT.
package serialize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iec-st/pdganalyzer/internal/ast"
	"github.com/iec-st/pdganalyzer/internal/invariant"
	"github.com/iec-st/pdganalyzer/internal/pdg"
	"github.com/iec-st/pdganalyzer/internal/variable"
)

// WriteXML writes the `<iec-source>` document: an optional
// `<analysis-summary>`, the AST under `<program>`, then an optional
// `<pdg-analysis>` section, then an optional `<invariant-templates>`
// section, in that fixed order.
func WriteXML(w io.Writer, root ast.Node, pdgs map[string]*pdg.PDG, vars variable.Table, templates []invariant.Template) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<iec-source>\n")

	if len(pdgs) > 0 || len(templates) > 0 {
		writeAnalysisSummary(&b, pdgs, vars, templates)
	}

	b.WriteString("  <program>\n")
	b.WriteString(indentLines(astToXML(root), 2))
	b.WriteString("  </program>\n")

	if len(pdgs) > 0 {
		b.WriteString("  <pdg-analysis>\n")
		for _, id := range sortedKeys(pdgs) {
			serializePDG(&b, id, pdgs[id], vars)
		}
		b.WriteString("  </pdg-analysis>\n")
	}

	if len(templates) > 0 {
		grouped := groupByState(templates)
		b.WriteString("  <invariant-templates>\n")
		for _, id := range sortedKeys(grouped) {
			fmt.Fprintf(&b, "    <state id=\"%s\">\n", escapeText(id))
			for _, tmpl := range grouped[id] {
				serializeInvariant(&b, tmpl)
			}
			b.WriteString("    </state>\n")
		}
		b.WriteString("  </invariant-templates>\n")
	}

	b.WriteString("</iec-source>")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeAnalysisSummary writes the optional `<analysis-summary>` element:
// aggregate counts a reader can use before descending into the full
// program/pdg-analysis/invariant-templates sections.
func writeAnalysisSummary(b *strings.Builder, pdgs map[string]*pdg.PDG, vars variable.Table, templates []invariant.Template) {
	b.WriteString("  <analysis-summary>\n")
	fmt.Fprintf(b, "    <state-count>%d</state-count>\n", len(pdgs))

	roleCounts := map[variable.Role]int{}
	for _, v := range vars {
		roleCounts[v.Role]++
	}
	b.WriteString("    <variables-by-role>\n")
	for _, role := range sortedRoleKeys(roleCounts) {
		fmt.Fprintf(b, "      <role name=\"%s\" count=\"%d\"/>\n", escapeText(string(role)), roleCounts[role])
	}
	b.WriteString("    </variables-by-role>\n")

	kindCounts := map[invariant.Kind]int{}
	for _, t := range templates {
		kindCounts[t.Kind]++
	}
	b.WriteString("    <templates-by-kind>\n")
	for _, kind := range sortedKindKeys(kindCounts) {
		fmt.Fprintf(b, "      <kind name=\"%s\" count=\"%d\"/>\n", escapeText(string(kind)), kindCounts[kind])
	}
	b.WriteString("    </templates-by-kind>\n")

	b.WriteString("  </analysis-summary>\n")
}

func sortedRoleKeys(m map[variable.Role]int) []variable.Role {
	keys := make([]variable.Role, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedKindKeys(m map[invariant.Kind]int) []invariant.Kind {
	keys := make([]invariant.Kind, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// escapeText renders s safe for XML text or attribute content.
func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func attr(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, " %s=\"%s\"", name, escapeText(value))
}

// astToXML converts the parse tree to the original tool's minimal XML
// shape: tuples become elements named for their tag (underscores replaced
// by hyphens), strings become escaped text content, and the resulting
// fragment carries no internal line breaks.
func astToXML(n ast.Node) string {
	switch v := n.(type) {
	case ast.Leaf:
		return escapeText(string(v))
	case *ast.Inner:
		tag := strings.ReplaceAll(v.Tag, "_", "-")
		var b strings.Builder
		b.WriteString("<" + tag + ">")
		for _, c := range v.Children {
			b.WriteString(astToXML(c))
		}
		b.WriteString("</" + tag + ">")
		return b.String()
	default:
		return ""
	}
}

// indentLines prefixes every non-blank line of text with levels*2 spaces,
// leaving blank lines untouched.
func indentLines(text string, levels int) string {
	pad := strings.Repeat("  ", levels)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func serializePDG(b *strings.Builder, stateID string, p *pdg.PDG, vars variable.Table) {
	fmt.Fprintf(b, "    <state id=\"%s\">\n", escapeText(stateID))

	b.WriteString("      <variables>\n")
	for _, name := range sortedKeys(vars) {
		v := vars[name]
		b.WriteString("        <variable")
		attr(b, "name", v.Name)
		attr(b, "type", string(v.Role))
		attr(b, "data-type", v.DataType)
		attr(b, "scope", string(v.Scope))
		if v.InitialValue != "" {
			attr(b, "initial-value", v.InitialValue)
		}
		b.WriteString("/>\n")
	}
	b.WriteString("      </variables>\n")

	b.WriteString("      <nodes>\n")
	ids := make([]int, 0, len(p.Nodes))
	for id := range p.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		n := p.Nodes[id]
		fmt.Fprintf(b, "        <node id=\"%d\" type=\"%s\">\n", id, escapeText(string(n.StatementType)))
		fmt.Fprintf(b, "          <statement>%s</statement>\n", escapeText(n.StatementText))

		if len(n.Reads) > 0 {
			b.WriteString("          <reads>\n")
			reads := append([]string{}, n.Reads...)
			sort.Strings(reads)
			for _, r := range reads {
				fmt.Fprintf(b, "            <variable>%s</variable>\n", escapeText(r))
			}
			b.WriteString("          </reads>\n")
		}
		if len(n.Writes) > 0 {
			b.WriteString("          <writes>\n")
			writes := append([]string{}, n.Writes...)
			sort.Strings(writes)
			for _, wr := range writes {
				fmt.Fprintf(b, "            <variable>%s</variable>\n", escapeText(wr))
			}
			b.WriteString("          </writes>\n")
		}
		b.WriteString("        </node>\n")
	}
	b.WriteString("      </nodes>\n")

	b.WriteString("      <edges>\n")
	for _, e := range p.Edges {
		b.WriteString("        <edge")
		attr(b, "from", strconv.Itoa(e.From))
		attr(b, "to", strconv.Itoa(e.To))
		attr(b, "type", string(e.Type))
		if e.Variable != "" {
			attr(b, "variable", e.Variable)
		}
		if e.Label != pdg.LabelNone {
			attr(b, "label", string(e.Label))
		}
		b.WriteString("/>\n")
	}
	b.WriteString("      </edges>\n")

	b.WriteString("    </state>\n")
}

func serializeInvariant(b *strings.Builder, inv invariant.Template) {
	fmt.Fprintf(b, "      <invariant id=\"%s\" type=\"%s\">\n", escapeText(inv.ID), escapeText(string(inv.Kind)))

	b.WriteString("        <variables>\n")
	for _, v := range inv.Variables {
		fmt.Fprintf(b, "          <variable>%s</variable>\n", escapeText(v))
	}
	b.WriteString("        </variables>\n")

	fmt.Fprintf(b, "        <structure>%s</structure>\n", escapeText(inv.Structure))

	switch inv.Kind {
	case invariant.Single:
		fmt.Fprintf(b, "        <sensing-var>%s</sensing-var>\n", escapeText(inv.SensingVar))
		fmt.Fprintf(b, "        <actuation-var>%s</actuation-var>\n", escapeText(inv.ActuationVar))
		fmt.Fprintf(b, "        <operator>%s</operator>\n", escapeText(inv.Operator))
		if inv.ActuationValue != "" {
			fmt.Fprintf(b, "        <actuation-value>%s</actuation-value>\n", escapeText(inv.ActuationValue))
		}

	case invariant.Multi:
		if len(inv.SensingVars) > 0 {
			b.WriteString("        <sensing-vars>\n")
			for _, v := range inv.SensingVars {
				fmt.Fprintf(b, "          <variable>%s</variable>\n", escapeText(v))
			}
			b.WriteString("        </sensing-vars>\n")
		}
		if len(inv.ConfigurationVars) > 0 {
			b.WriteString("        <configuration-vars>\n")
			for _, v := range inv.ConfigurationVars {
				fmt.Fprintf(b, "          <variable>%s</variable>\n", escapeText(v))
			}
			b.WriteString("        </configuration-vars>\n")
		}
		fmt.Fprintf(b, "        <actuation-var>%s</actuation-var>\n", escapeText(inv.ActuationVar))
		fmt.Fprintf(b, "        <condition>%s</condition>\n", escapeText(inv.Condition))
		fmt.Fprintf(b, "        <action>%s</action>\n", escapeText(inv.Action))

	case invariant.Inter:
		fmt.Fprintf(b, "        <source-state>%s</source-state>\n", escapeText(inv.SourceState))
		fmt.Fprintf(b, "        <dest-state>%s</dest-state>\n", escapeText(inv.DestState))
		fmt.Fprintf(b, "        <state-variable>%s</state-variable>\n", escapeText(inv.StateVariable))
		fmt.Fprintf(b, "        <transition-condition>%s</transition-condition>\n", escapeText(inv.TransitionCondition))
		if len(inv.ConditionVariables) > 0 {
			b.WriteString("        <condition-variables>\n")
			for _, v := range inv.ConditionVariables {
				fmt.Fprintf(b, "          <variable>%s</variable>\n", escapeText(v))
			}
			b.WriteString("        </condition-variables>\n")
		}
	}

	fmt.Fprintf(b, "        <confidence>%s</confidence>\n", formatConfidence(inv.Confidence))
	b.WriteString("      </invariant>\n")
}

func formatConfidence(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func groupByState(templates []invariant.Template) map[string][]invariant.Template {
	out := map[string][]invariant.Template{}
	for _, t := range templates {
		out[t.StateID] = append(out[t.StateID], t)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
