// Package pattern declares the recursive, tagged syntax-pattern grammar used
// to describe SPL commands, and the registry that holds one such pattern per
// command.
package pattern

// Quantifier controls how many times a pattern may match in sequence.
type Quantifier string

const (
	// QuantOne matches exactly once. It is the default when a pattern's
	// Quantifier field is left empty.
	QuantOne Quantifier = "1"
	// QuantOptional matches zero or one occurrence.
	QuantOptional Quantifier = "?"
	// QuantOneOrMore matches one or more occurrences, greedily.
	QuantOneOrMore Quantifier = "+"
	// QuantZeroOrMore matches zero or more occurrences, greedily.
	QuantZeroOrMore Quantifier = "*"
)

// normalize returns QuantOne for an empty quantifier, and q otherwise.
func (q Quantifier) normalize() Quantifier {
	if q == "" {
		return QuantOne
	}
	return q
}

// Normalize is the exported form of normalize, for packages (such as the
// interpreter) that apply quantifier semantics outside this package.
func (q Quantifier) Normalize() Quantifier {
	return q.normalize()
}

// Valid reports whether q is one of the four declared quantifiers (after
// normalizing an empty value to QuantOne).
func (q Quantifier) Valid() bool {
	switch q.normalize() {
	case QuantOne, QuantOptional, QuantOneOrMore, QuantZeroOrMore:
		return true
	default:
		return false
	}
}

// ParamType is the closed set of typed-parameter kinds a TypedParam may
// declare.
type ParamType string

const (
	ParamField        ParamType = "field"
	ParamWildcardField ParamType = "wc-field"
	ParamEvaledField  ParamType = "evaled-field"
	ParamFieldList    ParamType = "field-list"
	ParamInt          ParamType = "int"
	ParamNum          ParamType = "num"
	ParamString       ParamType = "string"
	ParamBool         ParamType = "bool"
	ParamStatsFunc    ParamType = "stats-func"
	ParamTimeModifier ParamType = "time-modifier"
)

// Valid reports whether t is a member of the closed ParamType set.
func (t ParamType) Valid() bool {
	switch t {
	case ParamField, ParamWildcardField, ParamEvaledField, ParamFieldList,
		ParamInt, ParamNum, ParamString, ParamBool, ParamStatsFunc, ParamTimeModifier:
		return true
	default:
		return false
	}
}

// fieldLike reports whether the parameter type denotes something that
// names or computes a field, and therefore is expected to carry a
// FieldEffect for warning diagnostics when a field-like type has no declared effect.
func (t ParamType) fieldLike() bool {
	switch t {
	case ParamField, ParamWildcardField, ParamEvaledField, ParamFieldList:
		return true
	default:
		return false
	}
}

// FieldEffect is the semantic annotation on a TypedParam describing how a
// matched argument changes the live field set.
type FieldEffect string

const (
	EffectCreates   FieldEffect = "creates"
	EffectConsumes  FieldEffect = "consumes"
	EffectModifies  FieldEffect = "modifies"
	EffectGroupsBy  FieldEffect = "groups-by"
	EffectDrops     FieldEffect = "drops"
)

// Valid reports whether e is a member of the closed FieldEffect set.
func (e FieldEffect) Valid() bool {
	switch e {
	case EffectCreates, EffectConsumes, EffectModifies, EffectGroupsBy, EffectDrops:
		return true
	default:
		return false
	}
}

// DataType is the inferred type of a field produced by a pattern match or
// an implicit creation.
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeBool    DataType = "bool"
	TypeUnknown DataType = "unknown"
)

// Kind identifies which of the five SyntaxPattern variants a node is.
type Kind string

const (
	KindLiteral     Kind = "literal"
	KindTypedParam  Kind = "typed-param"
	KindSequence    Kind = "sequence"
	KindAlternation Kind = "alternation"
	KindGroup       Kind = "group"
)

// SyntaxPattern is the sealed interface implemented by the five recursive
// pattern variants. The unexported marker method prevents external
// implementations, mirroring the closed Node hierarchy a sibling DSL engine
// in this codebase's lineage uses for its own execution tree.
type SyntaxPattern interface {
	isSyntaxPattern()
	Kind() Kind
}

// Literal is a fixed, case-insensitive keyword.
type Literal struct {
	Value      string
	Quantifier Quantifier
}

func (Literal) isSyntaxPattern() {}
func (Literal) Kind() Kind       { return KindLiteral }

// TypedParam is a single parameter slot.
type TypedParam struct {
	ParamType  ParamType
	Name       string // optional; non-empty for named options like limit=10
	Quantifier Quantifier
	Effect     FieldEffect // optional; "" means no lineage impact
}

func (TypedParam) isSyntaxPattern() {}
func (TypedParam) Kind() Kind       { return KindTypedParam }

// HasEffect reports whether the parameter declares a field effect.
func (p TypedParam) HasEffect() bool { return p.Effect != "" }

// Sequence is an ordered concatenation of sub-patterns.
type Sequence struct {
	Patterns   []SyntaxPattern
	Quantifier Quantifier
}

func (Sequence) isSyntaxPattern() {}
func (Sequence) Kind() Kind       { return KindSequence }

// Alternation is an unordered choice between two or more sub-patterns.
// Options are tried in declaration order; see the interpreter package for
// the tie-break rule.
type Alternation struct {
	Options []SyntaxPattern
}

func (Alternation) isSyntaxPattern() {}
func (Alternation) Kind() Kind       { return KindAlternation }

// Group wraps a single sub-pattern with a mandatory quantifier.
type Group struct {
	Pattern    SyntaxPattern
	Quantifier Quantifier
}

func (Group) isSyntaxPattern() {}
func (Group) Kind() Kind       { return KindGroup }

// CommandSyntax is the full description of one SPL command: its grammar
// plus documentation-only metadata that no semantic decision depends on.
type CommandSyntax struct {
	Name        string // lowercase canonical name
	Category    string
	Description string
	Root        SyntaxPattern
	Related     []string
	Tags        []string

	// Implicit is the set of field creations this command's semantics
	// always produce on a successful match, independent of pattern shape
	// (e.g. iplocation's city/country/region/lat/lon). Nil if the command
	// has no implicit creations.
	Implicit ImplicitEffect
}

// ImplicitEffect computes the implicit field creations a command produces
// given its bound parameters. It is invoked by the interpreter after a
// pattern match succeeds; see the interpreter package for the call site.
//
// bound maps TypedParam.Name (or, for unnamed positional params, a
// synthetic index key "#0", "#1", ...) to the matched token text.
type ImplicitEffect func(bound map[string]string) []ImplicitField

// ImplicitField describes one field an ImplicitEffect creates.
type ImplicitField struct {
	Name      string
	DependsOn []string
	DataType  DataType
}

// String renders a human-readable label for debugging and error messages.
func (k Kind) String() string { return string(k) }
