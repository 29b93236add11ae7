package invariant

import (
	"testing"

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

func build(t *testing.T) (map[string]*pdg.PDG, variable.Table) {
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
	return pdgs, vars
}

func TestPassAStateUnconditionalActuation(t *testing.T) {
	pdgs, vars := build(t)
	templates := ExtractAll(pdgs, vars)

	found := false
	for _, tmpl := range templates {
		if tmpl.Kind == Single && tmpl.StateID == "1" && tmpl.ActuationVar == "actuator_motor" {
			found = true
			if tmpl.SensingVar != SensingStateSentinel {
				t.Errorf("sensing_var = %q, want sentinel %q", tmpl.SensingVar, SensingStateSentinel)
			}
			if tmpl.ActuationValue != "FALSE" {
				t.Errorf("actuation value = %q, want FALSE", tmpl.ActuationValue)
			}
		}
	}
	if !found {
		t.Error("expected a state-unconditional single template for state 1's actuator_motor := FALSE")
	}
}

func TestPassBInterStateTransition(t *testing.T) {
	pdgs, vars := build(t)
	templates := ExtractAll(pdgs, vars)

	found := false
	for _, tmpl := range templates {
		if tmpl.Kind == Inter && tmpl.StateID == "0" {
			found = true
			if tmpl.DestState != "1" {
				t.Errorf("dest state = %q, want 1", tmpl.DestState)
			}
			if tmpl.StateVariable != "state" {
				t.Errorf("state variable = %q, want state", tmpl.StateVariable)
			}
			hasSensor := false
			for _, v := range tmpl.ConditionVariables {
				if v == "sensor_start" {
					hasSensor = true
				}
			}
			if !hasSensor {
				t.Errorf("condition variables %v missing sensor_start", tmpl.ConditionVariables)
			}
		}
	}
	if !found {
		t.Error("expected an inter-state template for state 0's transition to state 1")
	}
}

const nestedGuardSample = `
PROGRAM gate
VAR_INPUT
	a : INT;
	b : INT;
END_VAR
VAR
	state : INT := 0;
END_VAR

CASE state OF
	0:
		IF a = 1 THEN
			IF b = 2 THEN
				state := 20;
			END_IF;
		END_IF;
END_CASE;
END_PROGRAM
`

func TestPassBNestedGuardsOrderedOutermostFirst(t *testing.T) {
	root, err := parser.Parse(nestedGuardSample, "gate.st")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	vars := variable.BuildTable(root)
	pdgs, _, err := pdg.BuildAll(root)
	if err != nil {
		t.Fatalf("BuildAll failed: %v", err)
	}
	templates := ExtractAll(pdgs, vars)

	found := false
	for _, tmpl := range templates {
		if tmpl.Kind == Inter && tmpl.DestState == "20" {
			found = true
			want := "(a = 1) AND (b = 2)"
			if tmpl.TransitionCondition != want {
				t.Errorf("transition condition = %q, want %q", tmpl.TransitionCondition, want)
			}
			if len(tmpl.Variables) == 0 || tmpl.Variables[0] != tmpl.StateVariable {
				t.Errorf("variables = %v, want state variable %q first", tmpl.Variables, tmpl.StateVariable)
			}
		}
	}
	if !found {
		t.Error("expected an inter-state template for the transition to state 20")
	}
}

func TestPassCSingleVariableRule(t *testing.T) {
	pdgs, vars := build(t)
	templates := ExtractAll(pdgs, vars)

	found := false
	for _, tmpl := range templates {
		if tmpl.Kind == Single && tmpl.SensingVar == "sensor_start" {
			found = true
			if tmpl.Operator == "" {
				t.Error("expected a non-empty operator")
			}
			if tmpl.ActuationVar != "actuator_motor" {
				t.Errorf("actuation var = %q, want actuator_motor", tmpl.ActuationVar)
			}
		}
	}
	if !found {
		t.Error("expected a single-variable rule keyed on sensor_start")
	}
}
