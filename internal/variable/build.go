package variable

import "github.com/iec-st/pdganalyzer/internal/ast"

var initializerTags = map[string]bool{
	"expression":               true,
	"enumerated_value":         true,
	"array_initialization":     true,
	"structure_initialization": true,
	"string_initialization":    true,
}

// BuildTable walks every declaration section reachable from root and
// classifies each declared identifier, producing the read-only table the
// PDG builder and invariant extractor consult.
func BuildTable(root ast.Node) Table {
	t := Table{}
	for _, section := range ast.FindAll(root, "input_declarations") {
		addSection(t, section, ScopeInput)
	}
	for _, section := range ast.FindAll(root, "output_declarations") {
		addSection(t, section, ScopeOutput)
	}
	for _, section := range ast.FindAll(root, "var_declarations") {
		addSection(t, section, ScopeVar)
	}
	return t
}

func addSection(t Table, section *ast.Inner, scope Scope) {
	for _, decl := range ast.FindAll(section, "var_init_decl") {
		names, spec := splitDecl(decl)
		dataType := UnknownType
		initial := ""
		if spec != nil {
			dataType = ExtractDataType(spec)
			initial = extractInitialValue(spec)
		}
		for _, name := range names {
			t[name] = &Variable{
				Name:         name,
				Role:         Classify(name, scope),
				DataType:     dataType,
				Scope:        scope,
				InitialValue: initial,
			}
		}
	}
}

// splitDecl separates the leading variable_name children (the declared
// identifiers) from the trailing specification node (type + optional
// initializer) that every var_init_decl alternative ends with.
func splitDecl(decl *ast.Inner) (names []string, spec *ast.Inner) {
	for _, c := range decl.Children {
		inner, ok := c.(*ast.Inner)
		if !ok {
			continue
		}
		if inner.Tag == "variable_name" || inner.Tag == "fb_name" {
			if len(inner.Children) > 0 {
				names = append(names, inner.Children[0].Text())
			}
			continue
		}
		if spec == nil {
			spec = inner
		}
	}
	return names, spec
}

func extractInitialValue(spec *ast.Inner) string {
	for _, c := range spec.Children {
		if inner, ok := c.(*ast.Inner); ok && initializerTags[inner.Tag] {
			return inner.Text()
		}
	}
	return ""
}
