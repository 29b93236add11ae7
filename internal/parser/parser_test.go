package parser

import (
	"testing"

	"github.com/iec-st/pdganalyzer/internal/ast"
)

const sampleProgram = `
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

func TestParseProgram(t *testing.T) {
	root, err := Parse(sampleProgram, "conveyor.st")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	prog := ast.Find(root, "program_declaration")
	if prog == nil {
		t.Fatal("expected a program_declaration node")
	}

	caseStmt := ast.Find(root, "case_statement")
	if caseStmt == nil {
		t.Fatal("expected a case_statement node")
	}

	elements := ast.FindAll(caseStmt, "case_element")
	if len(elements) != 2 {
		t.Fatalf("expected 2 case elements, got %d", len(elements))
	}

	if !ast.ContainsLeaf(root, "actuator_motor") {
		t.Error("expected actuator_motor to appear somewhere in the tree")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("this is not structured text {{{", "bad.st")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Line < 1 {
		t.Errorf("expected a positive line number, got %d", se.Line)
	}
}
