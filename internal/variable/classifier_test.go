package variable

import "testing"

func TestClassifyScopeRules(t *testing.T) {
	if got := Classify("anything", ScopeOutput); got != RoleActuation {
		t.Errorf("output scope: got %s, want actuation", got)
	}
	if got := Classify("tank_level_setpoint", ScopeInput); got != RoleConfiguration {
		t.Errorf("input scope with configuration pattern: got %s, want configuration", got)
	}
	if got := Classify("start_button", ScopeInput); got != RoleSensing {
		t.Errorf("input scope without configuration pattern: got %s, want sensing", got)
	}
}

func TestClassifyVarScopeOverlapOrdering(t *testing.T) {
	// "level" matches both the sensing and configuration patterns; for
	// scope var, sensing must win because it is checked first.
	if got := Classify("tank_level", ScopeVar); got != RoleSensing {
		t.Errorf("overlapping name in var scope: got %s, want sensing (checked before configuration)", got)
	}
}

func TestClassifyVarScopeActuation(t *testing.T) {
	if got := Classify("motor", ScopeVar); got != RoleActuation {
		t.Errorf("got %s, want actuation", got)
	}
	if got := Classify("s_conveyor", ScopeVar); got != RoleActuation {
		t.Errorf("got %s, want actuation", got)
	}
}

func TestClassifyVarScopeDefault(t *testing.T) {
	if got := Classify("counter", ScopeVar); got != RoleInternal {
		t.Errorf("got %s, want internal", got)
	}
}

func TestLookupUnknownIsInternal(t *testing.T) {
	tbl := Table{}
	v := tbl.Lookup("undeclared")
	if v.Role != RoleInternal {
		t.Errorf("got role %s, want internal for undeclared identifier", v.Role)
	}
	if v.DataType != UnknownType {
		t.Errorf("got data type %s, want UNKNOWN", v.DataType)
	}
}
