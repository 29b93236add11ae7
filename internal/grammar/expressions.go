package grammar

// Expression precedence chain, tightest-bound function call down to the
// loosest-bound logical OR. Each level is a named rule even where it wraps
// a single alternative, so the PDG builder's expression printer and the
// invariant extractor's operator lookup can key off the exact same tags
// the original grammar used.

func expression() Expr {
	return Seq(R(xor_expression), -1, Seq(R(or_operator), R(xor_expression)))
}

func or_operator() Expr { return K("OR") }

func xor_expression() Expr {
	return Seq(R(and_expression), -1, Seq(R(xor_operator), R(and_expression)))
}

func xor_operator() Expr { return K("XOR") }

func and_expression() Expr {
	return Seq(R(comparison), -1, Seq(R(and_operator), R(comparison)))
}

func and_operator() Expr { return Alt(K("AND"), Lit("&")) }

func comparison() Expr {
	return Seq(R(add_expression), -1, Seq(R(comparison_operator), R(add_expression)))
}

func comparison_operator() Expr {
	return Alt(R(less_or_equal), R(greater_or_equal), R(equals), R(not_equals), R(less_than), R(greater_than))
}

func less_than() Expr        { return Lit("<") }
func greater_than() Expr     { return Lit(">") }
func less_or_equal() Expr    { return Lit("<=") }
func greater_or_equal() Expr { return Lit(">=") }
func equals() Expr           { return Lit("=") }
func not_equals() Expr       { return Lit("<>") }

func add_expression() Expr {
	return Seq(R(term), -1, Seq(R(add_operator), R(term)))
}

func add_operator() Expr { return Alt(R(plus), R(minus)) }

func plus() Expr  { return Lit("+") }
func minus() Expr { return Lit("-") }

func term() Expr {
	return Seq(R(power_expression), -1, Seq(R(multiply_operator), R(power_expression)))
}

func multiply_operator() Expr {
	return Alt(R(multiply), R(divide), R(modulo))
}

func multiply() Expr { return Lit("*") }
func divide() Expr   { return Lit("/") }
func modulo() Expr   { return K("MOD") }

func power_expression() Expr {
	return Seq(R(unary_expression), -1, Seq("**", R(unary_expression)))
}

func unary_expression() Expr {
	return Seq(0, R(unary_operator), R(primary_expression))
}

func unary_operator() Expr { return Alt(R(negate), R(plus), R(minus)) }

func negate() Expr { return K("NOT") }

func primary_expression() Expr {
	return Alt(
		R(_constant),
		R(function_call),
		R(enumerated_value),
		R(_variable),
		Seq("(", R(expression), ")"),
		Seq(R(negate), R(primary_expression)),
	)
}

// Function calls and the parameter-assignment forms used both in bare
// expressions and in FB invocation statements.

func standard_function_name() Expr { return R(_identifier) }

func function_call() Expr {
	return Seq(
		Alt(R(derived_function_name), R(standard_function_name)),
		"(",
		0, R(param_assignment), -1, Seq(",", R(param_assignment)),
		")",
	)
}

func param_assignment() Expr {
	return Alt(
		Seq(0, R(negate), R(variable_name), ":=", R(expression)),
		Seq(R(variable_name), "=>", 0, R(negate), R(variable_name)),
		R(expression),
	)
}
