package grammar

// Top-level translation unit. iec_source_root is the parser's entry rule;
// it wraps iec_source with an end-of-input check so a trailing garbage
// fragment fails the parse instead of being silently left unconsumed.

func _library_element_declaration() Expr {
	return Alt(
		R(data_type_declaration),
		R(function_declaration),
		R(function_block_declaration),
		R(program_declaration),
	)
}

func iec_source() Expr {
	return Seq(
		R(_library_element_declaration), 0, ";",
		-1, Seq(R(_library_element_declaration), 0, ";"),
	)
}

func _eof() Expr { return Not(Re(`[\s\S]`)) }

func iec_source_root() Expr {
	return Seq(R(iec_source), R(_eof))
}

// Root is the parser's entry rule: a full translation unit, end-to-end.
func Root() Rule { return iec_source_root }
