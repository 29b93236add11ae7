package grammar

// Identifiers and low-level lexical primitives.

func _identifier() Expr { return Re(`\w+`) }

func letter() Expr      { return Re(`[A-Za-z]`) }
func digit() Expr       { return Re(`[0-9]`) }
func octal_digit() Expr { return Re(`[0-7]`) }
func hex_digit() Expr   { return Re(`[0-9A-F]`) }

// Numeric, boolean, bit-string, and character-string literals.

func _constant() Expr {
	return Alt(R(time_literal), R(_numeric_literal), R(_character_string), R(bit_string_literal), R(boolean_literal))
}

func _numeric_literal() Expr { return Alt(R(real_literal), R(integer_literal)) }

func integer_literal() Expr {
	return Seq(
		0, Seq(R(integer_type_name), "#"),
		Re(`(2#([10])(_?([10]))*)|(8#[0-7](_?[0-7])*)|(16#[0-9A-F](_?[0-9A-F])*)|(([+\-])?[0-9](_?[0-9])*)`),
	)
}

func signed_integer() Expr { return Re(`([+\-])?[0-9](_?[0-9])*`) }
func integer() Expr        { return Re(`[0-9](_?[0-9])*`) }

func real_literal() Expr {
	return Alt(
		Seq(0, Seq(R(real_type_name), "#"), Re(`(([+\-])?[0-9](_?[0-9])*)\.([0-9](_?[0-9])*)(([eE])([+\-])?([0-9](_?[0-9])*))?`)),
		Seq(0, Seq(R(real_type_name), "#"), Re(`(([+\-])?[0-9](_?[0-9])*)(([eE])([+\-])?([0-9](_?[0-9])*))`)),
	)
}

func bit_string_literal() Expr {
	return Seq(
		0, Seq(R(bit_string_type_name), "#"),
		Re(`(2#([10])(_?([10]))*)|(8#[0-7](_?[0-7])*)|(16#[0-9A-F](_?[0-9A-F])*)|([0-9](_?[0-9])*)`),
	)
}

func boolean_literal() Expr { return Seq(0, "BOOL#", Re(`1|0|TRUE|FALSE`)) }

func _character_string() Expr {
	return Alt(R(single_byte_character_string), R(double_byte_character_string))
}

func single_byte_character_string() Expr {
	return Re(`\'([^$"\']|\$\$|\$L|\$N|\$P|\$R|\$T|\$l|\$n|\$p|\$r|\$t|\$\'|"|\$[0-9A-F][0-9A-F])*\'`)
}

func double_byte_character_string() Expr {
	return Re(`"([^$"\']|\$\$|\$L|\$N|\$P|\$R|\$T|\$l|\$n|\$p|\$r|\$t|\$\'|"|\$[0-9A-F][0-9A-F][0-9A-F][0-9A-F])*"`)
}

// Time literals (durations, time-of-day, date, date-and-time).

func time_literal() Expr {
	return Alt(R(duration), R(time_of_day), R(date), R(date_and_time))
}

func duration() Expr {
	return Seq(Alt("TIME", "T", "t"), "#", 0, "-", R(_interval))
}

func _interval() Expr {
	return Alt(R(days), R(hours), R(minutes), R(seconds), R(milliseconds))
}

func fixed_point() Expr { return Re(`[0-9](_?[0-9])*\.[0-9](_?[0-9])*`) }

func days() Expr {
	return Alt(
		Seq(R(fixed_point), "d"),
		Seq(R(integer), "d", 0, "_", R(hours)),
		Seq(R(integer), "d"),
	)
}

func hours() Expr {
	return Alt(
		Seq(R(fixed_point), "h"),
		Seq(R(integer), "h", 0, "_", R(minutes)),
		Seq(R(integer), "h"),
	)
}

func minutes() Expr {
	return Alt(
		Seq(R(fixed_point), "m"),
		Seq(Seq(R(integer), "m", 0, "_", R(seconds)), Seq(R(integer), "m")),
	)
}

func seconds() Expr {
	return Alt(
		Seq(R(fixed_point), "s"),
		Seq(R(integer), "s", 0, "_", R(milliseconds)),
		Seq(R(integer), "s"),
	)
}

func milliseconds() Expr {
	return Alt(Seq(R(fixed_point), "ms"), Seq(R(integer), "ms"))
}

func time_of_day() Expr {
	return Seq(Alt(K("TIME_OF_DAY"), K("TOD")), "#", R(_daytime))
}

func _daytime() Expr {
	return Seq(R(day_hour), ":", R(day_minute), ":", R(day_second))
}

func day_hour() Expr   { return R(integer) }
func day_minute() Expr { return R(integer) }
func day_second() Expr { return R(fixed_point) }

func date() Expr {
	return Seq(Alt(K("DATE"), "D", "d"), "#", R(date_literal))
}

func date_literal() Expr {
	return Seq(R(year), "-", R(month), "-", R(day))
}

func year() Expr  { return R(integer) }
func month() Expr { return R(integer) }
func day() Expr   { return R(integer) }

func date_and_time() Expr {
	return Seq(Alt(K("DATE_AND_TIME"), K("DT")), "#", R(date_literal), "-", R(_daytime))
}

// Elementary type names.

func data_type_name() Expr {
	return Alt(R(non_generic_type_name), R(generic_type_name))
}

func non_generic_type_name() Expr {
	return Seq(0, R(pointer_to), Alt(R(_elementary_type_name), R(derived_type_name)))
}

func _elementary_type_name() Expr {
	return Alt(R(_numeric_type_name), R(date_type_name), R(bit_string_type_name), R(string_type_declaration))
}

func _numeric_type_name() Expr { return Alt(R(integer_type_name), R(real_type_name)) }

func integer_type_name() Expr {
	return Alt(R(_signed_integer_type_name), R(_unsigned_integer_type_name))
}

func type_sint() Expr { return K("SINT") }
func type_int() Expr  { return K("INT") }
func type_dint() Expr { return K("DINT") }
func type_lint() Expr { return K("LINT") }

func _signed_integer_type_name() Expr {
	return Alt(R(type_sint), R(type_int), R(type_dint), R(type_lint))
}

func type_us_int() Expr { return K("USINT") }
func type_uint() Expr   { return K("UINT") }
func type_u_dint() Expr { return K("UDINT") }
func type_ulint() Expr  { return K("ULINT") }

func _unsigned_integer_type_name() Expr {
	return Alt(R(type_us_int), R(type_uint), R(type_u_dint), R(type_ulint))
}

func type_real() Expr   { return K("REAL") }
func type_l_real() Expr { return K("LREAL") }

func real_type_name() Expr { return Alt(R(type_real), R(type_l_real)) }

func type_tod() Expr      { return Alt(K("TIME_OF_DAY"), K("TOD")) }
func type_datetime() Expr { return Alt(K("DATE_AND_TIME"), K("DT")) }
func type_date() Expr     { return K("DATE") }
func type_time() Expr     { return K("TIME") }

func date_type_name() Expr {
	return Alt(R(type_tod), R(type_datetime), R(type_date), R(type_time))
}

func type_bool() Expr  { return K("BOOL") }
func type_byte() Expr  { return K("BYTE") }
func type_word() Expr  { return K("WORD") }
func type_dword() Expr { return K("DWORD") }
func type_l_word() Expr { return K("LWORD") }

func bit_string_type_name() Expr {
	return Alt(R(type_bool), R(type_byte), R(type_word), R(type_dword), R(type_l_word))
}

func generic_type_name() Expr {
	return Re(`ANY_DERIVED|ANY_ELEMENTARY|ANY_MAGNITUDE|ANY_NUM|ANY_REAL|ANY_INT|ANY_BIT|ANY_STRING|ANY_DATE|ANY`)
}

func derived_type_name() Expr {
	return Alt(R(single_element_type_name), R(array_type_name), R(structure_type_name), R(string_type_name))
}

func single_element_type_name() Expr {
	return Alt(R(simple_type_name), R(subrange_type_name), R(enumerated_type_name))
}

func simple_type_name() Expr      { return R(_identifier) }
func subrange_type_name() Expr    { return R(_identifier) }
func enumerated_type_name() Expr  { return R(_identifier) }
func array_type_name() Expr       { return R(_identifier) }
func structure_type_name() Expr   { return R(_identifier) }
func string_type_name() Expr      { return R(_identifier) }

func pointer_to() Expr { return Seq(K("POINTER"), K("TO")) }

func string_type_declaration() Expr {
	return Seq(R(string_type_name), ":", R(string_type), 0, R(string_initialization))
}

func string_initialization() Expr { return Seq(":=", R(_character_string)) }

func string_type() Expr {
	return Seq(
		Alt(R(type_string), R(wstring)),
		0,
		Seq("[", R(integer), "]"),
	)
}

// type_string is the one rule not spelled as in the original grammar: a
// package-level func named string would shadow Go's built-in string type.
func type_string() Expr { return K("STRING") }
func wstring() Expr { return K("WSTRING") }
