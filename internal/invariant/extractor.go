package invariant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iec-st/pdganalyzer/internal/pdg"
	"github.com/iec-st/pdganalyzer/internal/variable"
)

// ExtractAll runs all three passes over every PDG and returns templates in
// a deterministic order: grouped by state id (lexicographic), and within a
// state, Pass A before Pass B before Pass C, in PDG node id order.
func ExtractAll(pdgs map[string]*pdg.PDG, vars variable.Table) []Template {
	stateIDs := make([]string, 0, len(pdgs))
	for id := range pdgs {
		stateIDs = append(stateIDs, id)
	}
	sort.Strings(stateIDs)

	var out []Template
	counter := 0
	next := func(prefix string) string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}

	for _, stateID := range stateIDs {
		p := pdgs[stateID]
		e := &extractor{pdg: p, vars: vars, nextID: next}
		out = append(out, e.passA()...)
		out = append(out, e.passB()...)
		out = append(out, e.passC()...)
	}
	return out
}

type extractor struct {
	pdg    *pdg.PDG
	vars   variable.Table
	nextID func(prefix string) string
}

func (e *extractor) orderedNodeIDs() []int {
	ids := make([]int, 0, len(e.pdg.Nodes))
	for id := range e.pdg.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// passA emits a state-unconditional actuation rule for every assignment to
// an actuation variable that has no governing condition at all.
func (e *extractor) passA() []Template {
	var out []Template
	for _, id := range e.orderedNodeIDs() {
		n := e.pdg.Nodes[id]
		if n.StatementType != pdg.Assignment || len(n.Writes) != 1 {
			continue
		}
		v := n.Writes[0]
		if v == e.pdg.StateVariable {
			continue
		}
		if e.vars.RoleOf(v) != variable.RoleActuation {
			continue
		}
		if len(e.pdg.ControlPredecessors(id)) != 0 {
			continue
		}
		value := assignedValue(n.StatementText)
		t := Template{
			ID:             e.nextID("single"),
			Kind:           Single,
			StateID:        e.pdg.StateID,
			Variables:      []string{v},
			SensingVar:     SensingStateSentinel,
			Operator:       "=",
			ActuationVar:   v,
			ActuationValue: value,
			Structure:      fmt.Sprintf("In State %s, %s = %s", e.pdg.StateID, v, value),
			Confidence:     1.0,
		}
		out = append(out, t)
	}
	return out
}

// passB emits one inter-state transition rule per assignment to the state
// variable, with the guard built from the full chain of control
// predecessors above it.
func (e *extractor) passB() []Template {
	var out []Template
	for _, id := range e.orderedNodeIDs() {
		n := e.pdg.Nodes[id]
		if n.StatementType != pdg.Assignment {
			continue
		}
		wrote := false
		for _, w := range n.Writes {
			if w == e.pdg.StateVariable {
				wrote = true
			}
		}
		if !wrote {
			continue
		}

		var guards []string
		seenVars := map[string]bool{}
		var condVars []string
		cur := id
		for {
			preds := e.pdg.ControlPredecessors(cur)
			if len(preds) == 0 {
				break
			}
			pred := e.pdg.Nodes[preds[0]]
			guards = append([]string{"(" + pred.StatementText + ")"}, guards...)
			for _, v := range pred.Reads {
				if !seenVars[v] {
					seenVars[v] = true
					condVars = append(condVars, v)
				}
			}
			cur = pred.ID
		}

		transition := "TRUE"
		if len(guards) > 0 {
			transition = strings.Join(guards, " AND ")
		}
		dest := assignedValue(n.StatementText)

		t := Template{
			ID:                  e.nextID("inter"),
			Kind:                Inter,
			StateID:             e.pdg.StateID,
			Variables:           append([]string{e.pdg.StateVariable}, condVars...),
			SourceState:         e.pdg.StateID,
			DestState:           dest,
			StateVariable:       e.pdg.StateVariable,
			ConditionVariables:  condVars,
			TransitionCondition: transition,
			Structure:           fmt.Sprintf("IF %s THEN %s := %s", transition, e.pdg.StateVariable, dest),
			Confidence:          1.0,
		}
		out = append(out, t)
	}
	return out
}

// passC emits the per-actuation conditional rules: a single-variable rule
// per sensing variable read by an immediate governing condition, and a
// multi-variable rule summarizing the full backward dependency set.
func (e *extractor) passC() []Template {
	var out []Template
	for _, id := range e.orderedNodeIDs() {
		n := e.pdg.Nodes[id]
		if n.StatementType != pdg.Assignment || len(n.Writes) != 1 {
			continue
		}
		a := n.Writes[0]
		if a == e.pdg.StateVariable {
			continue
		}
		if e.vars.RoleOf(a) != variable.RoleActuation {
			continue
		}
		value := assignedValue(n.StatementText)

		preds := e.pdg.ControlPredecessors(id)
		for _, pid := range preds {
			c := e.pdg.Nodes[pid]
			for _, s := range c.Reads {
				if e.vars.RoleOf(s) != variable.RoleSensing {
					continue
				}
				op := operatorFor(c.ASTRef, s)
				if op == "" {
					continue
				}
				out = append(out, Template{
					ID:             e.nextID("single"),
					Kind:           Single,
					StateID:        e.pdg.StateID,
					Variables:      []string{s, a},
					SensingVar:     s,
					Operator:       op,
					ActuationVar:   a,
					ActuationValue: value,
					Structure:      fmt.Sprintf("IF %s %s [#] THEN %s = %s", s, op, a, value),
					Confidence:     1.0,
				})
			}
		}

		sensingVars, configVars := e.backwardVariables(id)
		if len(sensingVars) == 0 && len(configVars) == 0 {
			continue
		}
		condition := ""
		if len(preds) > 0 {
			condition = e.pdg.Nodes[preds[0]].StatementText
		}
		vars := append(append([]string{}, sensingVars...), configVars...)
		out = append(out, Template{
			ID:                e.nextID("multi"),
			Kind:              Multi,
			StateID:           e.pdg.StateID,
			Variables:         append(vars, a),
			SensingVars:       sensingVars,
			ConfigurationVars: configVars,
			ActuationVar:      a,
			Condition:         condition,
			Action:            n.StatementText,
			Structure:         fmt.Sprintf("IF %s THEN %s", condition, n.StatementText),
			Confidence:        1.0,
		})
	}
	return out
}

// backwardVariables performs the depth-first backward traversal over
// control and data in-edges described by Pass C's multi-variable rule,
// returning deduplicated sensing and configuration variables in visit
// order.
func (e *extractor) backwardVariables(start int) (sensing, configuration []string) {
	visitedNode := map[int]bool{}
	seenSensing := map[string]bool{}
	seenConfig := map[string]bool{}

	var walk func(id int)
	walk = func(id int) {
		if visitedNode[id] {
			return
		}
		visitedNode[id] = true
		n := e.pdg.Nodes[id]
		for _, v := range n.Reads {
			switch e.vars.RoleOf(v) {
			case variable.RoleSensing:
				if !seenSensing[v] {
					seenSensing[v] = true
					sensing = append(sensing, v)
				}
			case variable.RoleConfiguration:
				if !seenConfig[v] {
					seenConfig[v] = true
					configuration = append(configuration, v)
				}
			}
		}
		for _, edge := range e.pdg.InEdges(id) {
			walk(edge.From)
		}
	}
	walk(start)
	return sensing, configuration
}
