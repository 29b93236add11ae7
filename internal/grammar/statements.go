package grammar

// Statement forms. statement_list is the entry point the PDG builder
// walks to locate each CASE arm's body.

func statement_list() Expr {
	return Seq(R(statement), ";", -1, Seq(R(statement), ";"))
}

func statement() Expr {
	return Alt(
		R(if_statement),
		R(case_statement),
		R(for_statement),
		R(while_statement),
		R(repeat_statement),
		R(exit_statement),
		R(return_statement),
		R(fb_invocation),
		R(assignment_statement),
	)
}

func assignment_statement() Expr {
	return Seq(R(_variable), R(assign_operator), R(expression))
}

func assign_operator() Expr { return Lit(":=") }

// Selection statements.

func if_statement() Expr {
	return Seq(
		K("IF"), R(expression), K("THEN"), 0, R(statement_list),
		-1, Seq(K("ELSIF"), R(expression), K("THEN"), 0, R(statement_list)),
		0, Seq(K("ELSE"), 0, R(statement_list)),
		K("END_IF"),
	)
}

func case_statement() Expr {
	return Seq(
		K("CASE"), R(expression), K("OF"),
		R(case_element), -1, R(case_element),
		0, Seq(K("ELSE"), 0, R(statement_list)),
		K("END_CASE"),
	)
}

func case_element() Expr {
	return Seq(R(case_list), ":", 0, R(statement_list))
}

func case_list() Expr {
	return Seq(R(case_list_element), -1, Seq(",", R(case_list_element)))
}

func case_list_element() Expr {
	return Alt(R(subrange), R(signed_integer), R(enumerated_value))
}

// Iteration statements.

func for_statement() Expr {
	return Seq(
		K("FOR"), R(control_variable), ":=", R(for_list), K("DO"),
		0, R(statement_list),
		K("END_FOR"),
	)
}

func control_variable() Expr { return R(_identifier) }

func for_list() Expr {
	return Seq(R(expression), K("TO"), R(expression), 0, Seq(K("BY"), R(expression)))
}

func while_statement() Expr {
	return Seq(K("WHILE"), R(expression), K("DO"), 0, R(statement_list), K("END_WHILE"))
}

func repeat_statement() Expr {
	return Seq(K("REPEAT"), 0, R(statement_list), K("UNTIL"), R(expression), K("END_REPEAT"))
}

func exit_statement() Expr   { return K("EXIT") }
func return_statement() Expr { return K("RETURN") }

// Function block invocation, as a bare statement (EN/ENO and named
// parameter passing handled uniformly via param_assignment).

func fb_invocation() Expr {
	return Seq(
		R(_identifier), "(",
		0, R(param_assignment), -1, Seq(",", R(param_assignment)),
		")",
	)
}
