package variable

import (
	"regexp"

	"github.com/iec-st/pdganalyzer/internal/ast"
)

// Name-pattern rules for scope var, matched case-insensitively against the
// full identifier. Patterns deliberately overlap across categories (most
// notably "level", which appears in both sensing and configuration): which
// category wins is a function of evaluation order, not pattern
// exclusivity, and that order is load-bearing — see Classify.
var (
	sensingPattern = regexp.MustCompile(`(?i)sensor|^l_|(level|position|reading|detected|actual)$|input`)
	actuationPattern = regexp.MustCompile(`(?i)^s_|actuator|(command|output|motor|valve|pump)$|_start`)
	configPattern    = regexp.MustCompile(`(?i)target|offset|threshold|limit|setpoint|tolerance|tol|level`)
)

// Classify assigns a role to a declared identifier given its scope. The
// priority order below must not be reshuffled: for scope input the
// configuration pattern preempts sensing, while for scope var the sensing
// pattern is checked ahead of actuation and configuration.
func Classify(name string, scope Scope) Role {
	switch scope {
	case ScopeOutput:
		return RoleActuation
	case ScopeInput:
		if configPattern.MatchString(name) {
			return RoleConfiguration
		}
		return RoleSensing
	default: // var
		switch {
		case sensingPattern.MatchString(name):
			return RoleSensing
		case actuationPattern.MatchString(name):
			return RoleActuation
		case configPattern.MatchString(name):
			return RoleConfiguration
		default:
			return RoleInternal
		}
	}
}

// dataTypeCategories maps a category tag to its default specific type,
// used when a declaration's type expression names the category but no
// more specific elementary type.
var dataTypeCategories = map[string]string{
	"_numeric_type_name":     "INT",
	"bit_string_type_name":   "BOOL",
	"real_type_name":         "REAL",
}

// specificTypeTags are searched for first; if present, they take priority
// over the category default.
var specificTypeTags = []string{
	"type_bool", "type_int", "type_dint", "type_sint", "type_lint",
	"type_real", "type_l_real", "type_word", "type_dword", "type_l_word",
	"type_uint", "type_us_int", "type_u_dint", "type_ulint",
}

var tagToType = map[string]string{
	"type_bool":   "BOOL",
	"type_int":    "INT",
	"type_dint":   "DINT",
	"type_sint":   "SINT",
	"type_lint":   "LINT",
	"type_real":   "REAL",
	"type_l_real": "LREAL",
	"type_word":   "WORD",
	"type_dword":  "DWORD",
	"type_l_word": "LWORD",
	"type_uint":   "UINT",
	"type_us_int": "USINT",
	"type_u_dint": "UDINT",
	"type_ulint":  "ULINT",
}

// ExtractDataType walks a declaration's type subtree, bounded to depth 5,
// looking first for a specific elementary type tag and falling back to a
// category default. Returns UnknownType if nothing matches.
func ExtractDataType(n ast.Node) string {
	specific, category := searchType(n, 0)
	if specific != "" {
		return tagToType[specific]
	}
	if category != "" {
		return dataTypeCategories[category]
	}
	return UnknownType
}

func searchType(n ast.Node, depth int) (specific, category string) {
	if depth > 5 {
		return "", ""
	}
	inner, ok := n.(*ast.Inner)
	if !ok {
		return "", ""
	}
	for _, tag := range specificTypeTags {
		if inner.Tag == tag {
			return tag, ""
		}
	}
	if _, ok := dataTypeCategories[inner.Tag]; ok {
		category = inner.Tag
	}
	for _, c := range inner.Children {
		s, cat := searchType(c, depth+1)
		if s != "" {
			return s, ""
		}
		if category == "" {
			category = cat
		}
	}
	return "", category
}
