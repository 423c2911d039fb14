package pattern

// This file collects small constructor helpers used by the builtin command
// definitions in commands_*.go. They exist only to keep those definitions
// readable; none of them is part of the public API.

func lit(value string) Literal {
	return Literal{Value: value}
}

func litQ(value string, q Quantifier) Literal {
	return Literal{Value: value, Quantifier: q}
}

// field is an unnamed positional field-type parameter with the given effect.
func field(effect FieldEffect) TypedParam {
	return TypedParam{ParamType: ParamField, Effect: effect}
}

func fieldQ(effect FieldEffect, q Quantifier) TypedParam {
	return TypedParam{ParamType: ParamField, Effect: effect, Quantifier: q}
}

func wcField(effect FieldEffect) TypedParam {
	return TypedParam{ParamType: ParamWildcardField, Effect: effect}
}

func evaledField(name string, effect FieldEffect) TypedParam {
	return TypedParam{ParamType: ParamEvaledField, Name: name, Effect: effect}
}

func fieldList(effect FieldEffect, q Quantifier) TypedParam {
	return TypedParam{ParamType: ParamFieldList, Effect: effect, Quantifier: q}
}

func named(name string, t ParamType) TypedParam {
	return TypedParam{ParamType: t, Name: name}
}

func namedQ(name string, t ParamType, q Quantifier) TypedParam {
	return TypedParam{ParamType: t, Name: name, Quantifier: q}
}

func namedEffect(name string, t ParamType, effect FieldEffect) TypedParam {
	return TypedParam{ParamType: t, Name: name, Effect: effect}
}

func bare(t ParamType) TypedParam {
	return TypedParam{ParamType: t}
}

func bareQ(t ParamType, q Quantifier) TypedParam {
	return TypedParam{ParamType: t, Quantifier: q}
}

func seq(pats ...SyntaxPattern) Sequence {
	return Sequence{Patterns: pats}
}

func seqQ(q Quantifier, pats ...SyntaxPattern) Sequence {
	return Sequence{Patterns: pats, Quantifier: q}
}

func alt(opts ...SyntaxPattern) Alternation {
	return Alternation{Options: opts}
}

func group(p SyntaxPattern, q Quantifier) Group {
	return Group{Pattern: p, Quantifier: q}
}

func opt(p SyntaxPattern) Group {
	return group(p, QuantOptional)
}

func star(p SyntaxPattern) Group {
	return group(p, QuantZeroOrMore)
}

func plus(p SyntaxPattern) Group {
	return group(p, QuantOneOrMore)
}
