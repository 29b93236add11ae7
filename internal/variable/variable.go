// Package variable classifies declared identifiers into the roles the PDG
// builder and invariant extractor key off of: sensing, configuration,
// actuation, or internal.
package variable

// Role is one of the four classification outcomes a declared identifier
// can receive.
type Role string

const (
	RoleSensing       Role = "sensing"
	RoleConfiguration Role = "configuration"
	RoleActuation     Role = "actuation"
	RoleInternal      Role = "internal"
)

// Scope is the declaration section an identifier came from.
type Scope string

const (
	ScopeInput  Scope = "input"
	ScopeOutput Scope = "output"
	ScopeVar    Scope = "var"
)

// UnknownType is the placeholder data type for a declaration whose type
// expression could not be resolved to a known tag.
const UnknownType = "UNKNOWN"

// Variable is one declared identifier, classified once and never mutated
// afterward.
type Variable struct {
	Name         string
	Role         Role
	DataType     string
	Scope        Scope
	InitialValue string // empty if the declaration carries none
}

// Table is a program's variable set, keyed by name.
type Table map[string]*Variable

// Lookup returns the named variable, or a synthetic internal-role entry if
// it is not present. A statement referencing a name the declarations never
// introduced is not an error (see Declaration gap in the design notes) —
// it is simply treated as internal for classification purposes.
func (t Table) Lookup(name string) *Variable {
	if v, ok := t[name]; ok {
		return v
	}
	return &Variable{Name: name, Role: RoleInternal, DataType: UnknownType}
}

// RoleOf is a convenience wrapper returning just the role.
func (t Table) RoleOf(name string) Role {
	return t.Lookup(name).Role
}
