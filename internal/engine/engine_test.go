package engine

import (
	"sort"
	"testing"
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

func TestAnalyzeSequential(t *testing.T) {
	res, err := Analyze(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.StateVar != "state" {
		t.Errorf("state variable = %q, want %q", res.StateVar, "state")
	}
	if len(res.PDGs) != 2 {
		t.Fatalf("got %d PDGs, want 2", len(res.PDGs))
	}
	if len(res.Templates) == 0 {
		t.Error("expected at least one invariant template")
	}
}

func TestAnalyzeConcurrentMatchesSequentialSet(t *testing.T) {
	seq, err := Analyze(sample, "conveyor.st")
	if err != nil {
		t.Fatalf("sequential Analyze failed: %v", err)
	}
	conc, err := Analyze(sample, "conveyor.st", WithConcurrentExtraction())
	if err != nil {
		t.Fatalf("concurrent Analyze failed: %v", err)
	}

	if len(seq.Templates) != len(conc.Templates) {
		t.Fatalf("template count mismatch: sequential %d, concurrent %d", len(seq.Templates), len(conc.Templates))
	}

	seqStructures := make([]string, len(seq.Templates))
	for i, tmpl := range seq.Templates {
		seqStructures[i] = tmpl.StateID + "|" + string(tmpl.Kind) + "|" + tmpl.Structure
	}
	concStructures := make([]string, len(conc.Templates))
	for i, tmpl := range conc.Templates {
		concStructures[i] = tmpl.StateID + "|" + string(tmpl.Kind) + "|" + tmpl.Structure
	}
	sort.Strings(seqStructures)
	sort.Strings(concStructures)

	for i := range seqStructures {
		if seqStructures[i] != concStructures[i] {
			t.Errorf("mismatch at %d: sequential %q, concurrent %q", i, seqStructures[i], concStructures[i])
		}
	}
}

func TestAnalyzeRejectsSyntaxError(t *testing.T) {
	_, err := Analyze("this is not structured text $$$", "bad.st")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}
