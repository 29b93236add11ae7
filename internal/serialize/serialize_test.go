package serialize

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iec-st/pdganalyzer/internal/invariant"
	"github.com/iec-st/pdganalyzer/internal/parser"
	"github.com/iec-st/pdganalyzer/internal/pdg"
	"github.com/iec-st/pdganalyzer/internal/variable"
)

const sample = `
PROGRAM conveyor
VAR_INPUT
	sensor_start : BOOL;
END_VAR
VAR_OUTPUT
	actuator_motor : BOOL;
END_VAR
VAR
	state : INT := 0;
END_VAR

CASE state OF
	0:
		IF sensor_start = TRUE THEN
			actuator_motor := TRUE;
			state := 1;
		END_IF;
	1:
		actuator_motor := FALSE;
END_CASE;
END_PROGRAM
`

func build(t *testing.T) (map[string]*pdg.PDG, variable.Table, []invariant.Template) {
	t.Helper()
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	vars := variable.BuildTable(root)
	pdgs, _, err := pdg.BuildAll(root)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	templates := invariant.ExtractAll(pdgs, vars)
	return pdgs, vars, templates
}

func TestWriteXMLShape(t *testing.T) {
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pdgs, vars, templates := build(t)

	var buf bytes.Buffer
	if err := WriteXML(&buf, root, pdgs, vars, templates); err != nil {
		t.Fatalf("WriteXML failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("missing XML preamble")
	}
	for _, want := range []string{
		"<iec-source>", "<analysis-summary>", "<program>", "<pdg-analysis>", "<invariant-templates>",
		`<state id="0">`, `<state id="1">`, "</iec-source>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "<analysis-summary>") > strings.Index(out, "<program>") {
		t.Error("analysis-summary must precede program")
	}
	if strings.Contains(out, "<program_declaration>") {
		t.Error("tag names should be hyphenated, not underscored")
	}
	if !strings.Contains(out, "<program-declaration>") {
		t.Error("expected hyphenated program-declaration tag")
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pdgs, vars, templates := build(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, root, pdgs, vars, templates); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
	if _, ok := decoded["program"]; !ok {
		t.Error("missing program key")
	}
	summary, ok := decoded["analysis_summary"].(map[string]any)
	if !ok {
		t.Fatal("missing analysis_summary object")
	}
	if summary["state_count"] != float64(2) {
		t.Errorf("state_count = %v, want 2", summary["state_count"])
	}
	pdgAnalysis, ok := decoded["pdg_analysis"].(map[string]any)
	if !ok {
		t.Fatal("missing pdg_analysis object")
	}
	if _, ok := pdgAnalysis["0"]; !ok {
		t.Error("pdg_analysis missing state 0")
	}
	if _, ok := decoded["invariant_templates"]; !ok {
		t.Error("missing invariant_templates key")
	}
}

func TestWriteDOTProducesOneClusterPerState(t *testing.T) {
	pdgs, _, _ := build(t)

	var buf bytes.Buffer
	if err := WriteDOT(&buf, pdgs); err != nil {
		t.Fatalf("WriteDOT failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph PDGs {") {
		t.Error("missing digraph header")
	}
	for _, want := range []string{"cluster_state_0", "cluster_state_1", "style=solid", "color=red"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
