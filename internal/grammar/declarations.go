package grammar

// Variables, subscripts, and declaration sections.

func _variable() Expr { return Alt(R(direct_variable), R(_symbolic_variable)) }

func _symbolic_variable() Expr {
	return Alt(R(multi_element_variable), R(variable_name))
}

func variable_name() Expr { return Seq(R(_identifier), 0, R(dereferenced)) }

func direct_variable() Expr {
	return Seq("%", R(location_prefix), 0, R(size_prefix), R(integer), -1, Seq(".", R(integer)))
}

func location_prefix() Expr { return Re(`[IQM]`) }
func size_prefix() Expr     { return Re(`[XBWDL]`) }

func _subscript() Expr { return R(expression) }

func subscript_list() Expr {
	return Seq("[", R(_subscript), -1, Seq(",", R(_subscript)), "]")
}

func dereferenced() Expr { return Lit("^") }

func field_selector() Expr { return Seq(0, R(dereferenced), ".", R(variable_name)) }

func multi_element_variable() Expr {
	return Seq(
		R(variable_name),
		Alt(R(subscript_list), R(field_selector)),
		-1, Alt(R(subscript_list), R(field_selector)),
	)
}

func retain() Expr     { return K("RETAIN") }
func non_retain() Expr { return K("NON_RETAIN") }
func constant() Expr   { return K("CONSTANT") }

// Type specifications with optional initializers.

func simple_spec_init() Expr {
	return Seq(0, R(pointer_to), R(_simple_specification), 0, Seq(":=", R(expression)))
}

func _simple_specification() Expr {
	return Alt(R(_elementary_type_name), R(simple_type_name))
}

func subrange() Expr { return Seq(R(expression), "..", R(expression)) }

func subrange_specification() Expr {
	return Alt(Seq(R(integer_type_name), "(", R(subrange), ")"), R(subrange_type_name))
}

func subrange_spec_init() Expr {
	return Seq(0, R(pointer_to), R(subrange_specification), 0, Seq(":=", R(expression)))
}

func enumerated_value() Expr {
	return Seq(0, Seq(R(enumerated_type_name), "#"), R(_identifier), 0, Seq(":=", R(integer_literal)))
}

func enumerated_specification() Expr {
	return Alt(
		Seq("(", R(enumerated_value), -1, Seq(",", R(enumerated_value)), ")"),
		R(enumerated_type_name),
	)
}

func enumerated_spec_init() Expr {
	return Seq(0, R(pointer_to), R(enumerated_specification), 0, Seq(":=", R(enumerated_value)))
}

func array_specification() Expr {
	return Seq(
		K("ARRAY"), "[", R(subrange), -1, Seq(",", R(subrange)), "]", K("OF"),
		Alt(R(string_type), R(non_generic_type_name)),
	)
}

func array_initial_element() Expr {
	return Alt(R(_constant), R(structure_initialization), R(enumerated_value))
}

func array_initial_elements() Expr {
	return Alt(
		Seq(Alt(R(integer), R(enumerated_value)), "(", 0, R(array_initial_element), ")"),
		R(array_initial_element),
	)
}

func array_initialization() Expr {
	return Alt(
		Seq("[", R(array_initial_elements), -1, Seq(",", R(array_initial_elements)), "]"),
		Seq(R(array_initial_elements), -1, Seq(",", R(array_initial_elements))),
	)
}

func array_spec_init() Expr {
	return Seq(0, R(pointer_to), R(array_specification), 0, Seq(":=", R(array_initialization)))
}

func structure_element_name() Expr { return R(_identifier) }

func structure_initialization() Expr {
	return Seq("(", R(structure_element_initialization), -1, Seq(",", R(structure_element_initialization)), ")")
}

func structure_element_initialization() Expr {
	return Alt(
		R(_constant),
		Seq(R(structure_element_name), ":=", Alt(R(_constant), R(enumerated_value), R(array_initialization), R(structure_initialization))),
	)
}

func initialized_structure() Expr {
	return Seq(R(structure_type_name), ":=", R(structure_initialization))
}

func structure_element_declaration() Expr {
	return Seq(
		R(structure_element_name), ":",
		Alt(R(initialized_structure), R(array_spec_init), R(simple_spec_init), R(subrange_spec_init), R(enumerated_spec_init)),
	)
}

func _structure_declaration() Expr {
	return Seq(
		K("STRUCT"), R(structure_element_declaration), ";",
		-1, Seq(R(structure_element_declaration), ";"),
		K("END_STRUCT"), 0, ";",
	)
}

func _structure_specification() Expr {
	return Alt(Seq(0, R(pointer_to), R(_structure_declaration)), R(initialized_structure))
}

func structure_type_declaration() Expr {
	return Seq(R(structure_type_name), ":", R(_structure_specification))
}

// Declaration lists.

func _var1_list() Expr {
	return Seq(R(variable_name), -1, Seq(",", R(variable_name)))
}

func _var1_init_decl() Expr {
	return Seq(R(_var1_list), ":", Alt(R(simple_spec_init), R(subrange_spec_init), R(enumerated_spec_init)))
}

func array_var_init_decl() Expr {
	return Seq(R(_var1_list), ":", R(array_spec_init))
}

func structured_var_init_decl() Expr {
	return Seq(R(_var1_list), ":", R(initialized_structure))
}

func string_var_declaration() Expr {
	return Seq(R(_var1_list), ":", R(string_type), 0, R(string_initialization))
}

func fb_name() Expr { return R(_identifier) }

func fb_name_list() Expr { return Seq(R(fb_name), -1, Seq(",", R(fb_name))) }

func fb_name_decl() Expr {
	return Seq(R(fb_name_list), ":", R(function_block_type_name), 0, Seq(":=", R(structure_initialization)))
}

func var_init_decl() Expr {
	return Alt(R(array_var_init_decl), R(structured_var_init_decl), R(string_var_declaration), R(_var1_init_decl), R(fb_name_decl))
}

func _var1_declaration() Expr {
	return Seq(R(_var1_list), ":", Alt(R(_simple_specification), R(subrange_specification), R(enumerated_specification)))
}

func array_var_declaration() Expr { return Seq(R(_var1_list), ":", R(array_specification)) }

func structured_var_declaration() Expr {
	return Seq(R(_var1_list), ":", R(structure_type_name))
}

func _temp_var_decl() Expr {
	return Alt(R(_var1_declaration), R(array_var_declaration), R(structured_var_declaration), R(string_var_declaration))
}

func var_declaration() Expr { return Alt(R(_temp_var_decl), R(fb_name_decl)) }

func input_declarations() Expr {
	return Seq(
		K("VAR_INPUT"), 0, Alt(R(retain), R(non_retain)),
		-1, Seq(R(var_init_decl), ";"),
		K("END_VAR"), 0, ";",
	)
}

func output_declarations() Expr {
	return Seq(
		K("VAR_OUTPUT"), 0, Alt(R(retain), R(non_retain)),
		-1, Seq(R(var_init_decl), ";"),
		K("END_VAR"), 0, ";",
	)
}

func input_output_declarations() Expr {
	return Seq(K("VAR_IN_OUT"), -1, Seq(R(var_init_decl), ";"), K("END_VAR"), 0, ";")
}

func var_declarations() Expr {
	return Seq(
		K("VAR"), 0, R(constant),
		-1, Seq(R(var_init_decl), ";"),
		K("END_VAR"), 0, ";",
	)
}

func retentive_var_declarations() Expr {
	return Seq(K("VAR"), K("RETAIN"), -1, Seq(R(var_init_decl), ";"), K("END_VAR"), 0, ";")
}

func non_retentive_var_decls() Expr {
	return Seq(K("VAR"), K("NON_RETAIN"), -1, Seq(R(var_init_decl), ";"), K("END_VAR"), 0, ";")
}

func temp_var_decls() Expr {
	return Seq(K("VAR_TEMP"), -1, Seq(R(_temp_var_decl), ";"), K("END_VAR"), 0, ";")
}

func global_var_name() Expr { return R(_identifier) }

func external_declaration() Expr {
	return Seq(
		R(global_var_name), ":",
		Alt(R(_simple_specification), R(subrange_specification), R(enumerated_specification), R(array_specification), R(structure_type_name), R(function_block_type_name)),
	)
}

func external_var_declarations() Expr {
	return Seq(
		K("VAR_EXTERNAL"), 0, R(constant),
		-1, Seq(R(external_declaration), ";"),
		K("END_VAR"), 0, ";",
	)
}

func global_var_list() Expr { return Seq(R(global_var_name), -1, Seq(",", R(global_var_name))) }

func global_var_spec() Expr { return R(global_var_list) }

func global_var_decl() Expr {
	return Seq(R(global_var_spec), ":", 0, Alt(R(simple_spec_init), R(subrange_spec_init), R(enumerated_spec_init), R(array_spec_init), R(function_block_type_name)))
}

func global_var_declarations() Expr {
	return Seq(
		K("VAR_GLOBAL"), 0, Alt(R(constant), R(retain)),
		-1, Seq(Alt(R(var_init_decl), R(global_var_decl)), ";"),
		K("END_VAR"), 0, ";",
	)
}

func _other_var_declarations() Expr {
	return Alt(R(external_var_declarations), R(var_declarations), R(retentive_var_declarations), R(non_retentive_var_decls), R(temp_var_decls))
}

func _io_var_declarations() Expr {
	return Alt(R(input_declarations), R(output_declarations), R(input_output_declarations))
}

// Function, function block, and program declarations.

func function_block_type_name() Expr {
	return Alt(R(standard_function_block_name), R(derived_function_block_name))
}

func standard_function_block_name() Expr { return R(_identifier) }
func derived_function_block_name() Expr  { return R(_identifier) }
func derived_function_name() Expr        { return R(_identifier) }

func function_var_decls() Expr {
	return Seq(K("VAR"), 0, R(constant), -1, Seq(R(var_init_decl), ";"), K("END_VAR"), 0, ";")
}

func function_body() Expr { return R(statement_list) }

func function_declaration() Expr {
	return Seq(
		K("FUNCTION"), R(derived_function_name), ":", Alt(R(_elementary_type_name), R(derived_type_name)),
		-1, Alt(R(_io_var_declarations), R(function_var_decls), R(_other_var_declarations)),
		0, R(function_body),
		K("END_FUNCTION"), 0, ";",
	)
}

func function_block_body() Expr { return R(statement_list) }

func function_block_declaration() Expr {
	return Seq(
		Alt(K("FUNCTION_BLOCK"), K("FUNCTIONBLOCK")), R(derived_function_block_name),
		-1, Alt(R(_io_var_declarations), R(_other_var_declarations)),
		0, R(function_block_body),
		Alt(K("END_FUNCTION_BLOCK"), K("END_FUNCTIONBLOCK")), 0, ";",
	)
}

func program_type_name() Expr { return R(_identifier) }

func program_declaration() Expr {
	return Seq(
		K("PROGRAM"), R(program_type_name),
		-1, Alt(R(_io_var_declarations), R(_other_var_declarations)),
		0, R(function_block_body),
		K("END_PROGRAM"), 0, ";",
	)
}

func data_type_declaration() Expr {
	return Seq(K("TYPE"), -1, R(_type_declaration), K("END_TYPE"), 0, ";")
}

func _type_declaration() Expr {
	return Alt(
		Seq(R(array_type_declaration), ";"),
		Seq(R(structure_type_declaration), 0, ";"),
		Seq(R(string_type_declaration), ";"),
		Seq(R(_single_element_type_declaration), ";"),
	)
}

func array_type_declaration() Expr {
	return Seq(R(array_type_name), ":", R(array_spec_init))
}

func simple_type_declaration() Expr {
	return Seq(R(simple_type_name), ":", R(simple_spec_init))
}

func subrange_type_declaration() Expr {
	return Seq(R(subrange_type_name), ":", R(subrange_spec_init))
}

func enumerated_type_declaration() Expr {
	return Seq(R(enumerated_type_name), ":", R(enumerated_spec_init))
}

func _single_element_type_declaration() Expr {
	return Alt(R(simple_type_declaration), R(subrange_type_declaration), R(enumerated_type_declaration))
}

func global_var_declarations_root() Expr { return R(global_var_declarations) }
