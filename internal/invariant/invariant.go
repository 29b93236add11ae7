// Package invariant extracts parametric invariant templates from a
// program's PDGs: state-unconditional actuation rules, single- and
// multi-variable conditional actuation rules, and inter-state transition
// rules. Templates are parametric over numeric bounds, marked "[#]" where
// the source subset gives no concrete threshold to copy.
package invariant

// Kind discriminates the three template shapes.
type Kind string

const (
	Single Kind = "single"
	Multi  Kind = "multi"
	Inter  Kind = "inter"
)

// SensingStateSentinel is the sensing_var value Pass A uses in place of a
// real sensing variable: the rule fires unconditionally once the PDG's
// arm is entered, so there is no sensing predicate to name.
const SensingStateSentinel = "STATE"

// Template is a tagged union over the three invariant shapes. Only the
// fields relevant to Kind are populated; the rest are left zero.
type Template struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"type"`
	StateID    string   `json:"state_id"`
	Variables  []string `json:"variables"`
	Structure  string   `json:"structure"`
	Confidence float64  `json:"confidence"`

	// Single
	SensingVar     string `json:"sensing_var,omitempty"`
	Operator       string `json:"operator,omitempty"`
	ActuationVar   string `json:"actuation_var,omitempty"`
	ActuationValue string `json:"actuation_value,omitempty"`

	// Multi
	SensingVars       []string `json:"sensing_vars,omitempty"`
	ConfigurationVars []string `json:"configuration_vars,omitempty"`
	Condition         string   `json:"condition,omitempty"`
	Action            string   `json:"action,omitempty"`

	// Inter
	SourceState         string   `json:"source_state,omitempty"`
	DestState           string   `json:"dest_state,omitempty"`
	StateVariable       string   `json:"state_variable,omitempty"`
	ConditionVariables  []string `json:"condition_variables,omitempty"`
	TransitionCondition string   `json:"transition_condition,omitempty"`
}
