package pdg

import (
	"testing"

	"github.com/iec-st/pdganalyzer/internal/parser"
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
		IF sensor_start THEN
			actuator_motor := TRUE;
			state := 1;
		END_IF;
	1:
		actuator_motor := FALSE;
END_CASE;
END_PROGRAM
`

func TestBuildAllProducesOnePDGPerArm(t *testing.T) {
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pdgs, stateVar, err := BuildAll(root)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	if stateVar != "state" {
		t.Errorf("state variable = %q, want %q", stateVar, "state")
	}
	if len(pdgs) != 2 {
		t.Fatalf("got %d PDGs, want 2", len(pdgs))
	}
	if _, ok := pdgs["0"]; !ok {
		t.Error("missing PDG for state 0")
	}
	if _, ok := pdgs["1"]; !ok {
		t.Error("missing PDG for state 1")
	}
}

func TestControlEdgesFromConditionToBlock(t *testing.T) {
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pdgs, _, err := BuildAll(root)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	p := pdgs["0"]

	var cond *Node
	for _, n := range p.Nodes {
		if n.StatementType == Condition {
			cond = n
		}
	}
	if cond == nil {
		t.Fatal("expected a condition node in state 0")
	}

	for _, n := range p.Nodes {
		if n.ID == cond.ID {
			continue
		}
		preds := p.ControlPredecessors(n.ID)
		if len(preds) != 1 || preds[0] != cond.ID {
			t.Errorf("node %d: control predecessors = %v, want [%d]", n.ID, preds, cond.ID)
		}
	}
}

func TestDataEdgeFromWriteToRead(t *testing.T) {
	root, err := parser.Parse(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pdgs, _, err := BuildAll(root)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	p := pdgs["0"]

	for _, e := range p.Edges {
		if e.Type != DataEdge {
			continue
		}
		writer := p.Nodes[e.From]
		reader := p.Nodes[e.To]
		foundWrite := false
		for _, w := range writer.Writes {
			if w == e.Variable {
				foundWrite = true
			}
		}
		if !foundWrite {
			t.Errorf("data edge %d->%d on %s: source node does not write %s", e.From, e.To, e.Variable, e.Variable)
		}
		foundRead := false
		for _, r := range reader.Reads {
			if r == e.Variable {
				foundRead = true
			}
		}
		if !foundRead {
			t.Errorf("data edge %d->%d on %s: target node does not read %s", e.From, e.To, e.Variable, e.Variable)
		}
		if e.From >= e.To {
			t.Errorf("data edge %d->%d: expected From < To", e.From, e.To)
		}
	}
}
