package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"splqlineage/internal/pattern"
)

// statsFuncNames is the closed-enough set of SPL aggregation function names
// recognized by the stats-func type predicate. perc/upperperc/exactperc
// take a numeric suffix (perc95, exactperc99) so those three are matched by
// prefix rather than exact name.
var statsFuncNames = map[string]bool{
	"count": true, "dc": true, "distinct_count": true, "sum": true,
	"avg": true, "mean": true, "min": true, "max": true, "range": true,
	"stdev": true, "stdevp": true, "var": true, "varp": true,
	"median": true, "mode": true, "values": true, "list": true,
	"first": true, "last": true, "earliest": true, "latest": true,
	"earliest_time": true, "latest_time": true, "sumsq": true,
}

var percPrefixes = []string{"perc", "upperperc", "exactperc"}

var timeModifierPattern = regexp.MustCompile(`^-?\d+[smhdwMy](@[A-Za-z0-9+-]*)?$|^now$`)

// stopWords are tokens that terminate a greedy field-list run even though
// they are syntactically indistinguishable from a bare field name; they
// are the literal keywords this registry places immediately after a
// field-list slot.
var stopWords = map[string]bool{
	"by": true, "as": true, "output": true, "keepevents": true,
	"keepempty": true, "consecutive": true, "from": true, "over": true,
}

// funcNameOf strips a trailing "(...)" argument list, leaving the bare
// function name, e.g. "avg(bytes)" -> "avg".
func funcNameOf(tok string) string {
	if i := strings.IndexByte(tok, '('); i >= 0 {
		return tok[:i]
	}
	return tok
}

// statsFuncArg returns the inner argument of a "func(field)" token, or ""
// if tok has no parenthesized argument.
func statsFuncArg(tok string) string {
	open := strings.IndexByte(tok, '(')
	closeIdx := strings.LastIndexByte(tok, ')')
	if open < 0 || closeIdx <= open {
		return ""
	}
	return tok[open+1 : closeIdx]
}

func isStatsFunc(tok string) bool {
	name := strings.ToLower(funcNameOf(tok))
	if statsFuncNames[name] {
		return true
	}
	for _, p := range percPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func isIntLiteral(tok string) bool {
	_, err := strconv.ParseInt(tok, 10, 64)
	return err == nil
}

func isNumLiteral(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func isBoolLiteral(tok string) bool {
	lower := strings.ToLower(tok)
	return lower == "true" || lower == "false" || lower == "t" || lower == "f"
}

func isTimeModifier(tok string) bool {
	return timeModifierPattern.MatchString(tok)
}

func isWildcardField(tok string) bool {
	return strings.ContainsRune(tok, '*')
}

func isQuoted(tok string) bool {
	return len(tok) >= 2 && ((tok[0] == '"' && tok[len(tok)-1] == '"') || (tok[0] == '\'' && tok[len(tok)-1] == '\''))
}

// looksLikeField reports whether tok is a plausible bare field name: not
// empty, not a quoted literal, and not wildcarded. Numeric tokens are
// accepted. Field name matching is
// deliberately permissive — the registry leans on surrounding Literal
// keywords to disambiguate, since recognition is by position in the
// pattern, not punctuation.
func looksLikeField(tok string) bool {
	if tok == "" || isQuoted(tok) || isWildcardField(tok) {
		return false
	}
	return true
}

// matchesSingleTokenType reports whether tok satisfies the type predicate
// for every ParamType that consumes exactly one token (field-list and
// evaled-field are handled separately by the matcher since they can
// consume a variable number of tokens).
func matchesSingleTokenType(t pattern.ParamType, tok string) bool {
	switch t {
	case pattern.ParamField:
		return looksLikeField(tok)
	case pattern.ParamWildcardField:
		return isWildcardField(tok) || looksLikeField(tok)
	case pattern.ParamInt:
		return isIntLiteral(tok)
	case pattern.ParamNum:
		return isNumLiteral(tok)
	case pattern.ParamBool:
		return isBoolLiteral(tok)
	case pattern.ParamStatsFunc:
		return isStatsFunc(tok)
	case pattern.ParamTimeModifier:
		return isTimeModifier(tok)
	case pattern.ParamString:
		return tok != ""
	default:
		return false
	}
}

// requiresExplicitName reports whether a named, optional TypedParam of
// type t must be written as "name=value" rather than matching a bare
// token. A required (non-optional) named param always matches
// positionally too — if it doesn't consume the token here, the whole
// pattern fails anyway, so there is no ambiguity to guard against. An
// optional param of a permissive type, though, would otherwise greedily
// (and wrongly) swallow the mandatory positional argument that follows it
// when the option is simply absent.
func requiresExplicitName(t pattern.ParamType, q pattern.Quantifier) bool {
	if q.Normalize() != pattern.QuantOptional && q.Normalize() != pattern.QuantZeroOrMore {
		return false
	}
	switch t {
	case pattern.ParamString, pattern.ParamField, pattern.ParamWildcardField, pattern.ParamEvaledField, pattern.ParamFieldList:
		return true
	default:
		return false
	}
}

// stripNamedPrefix splits a "name=value" token into its value, if tok looks
// like a named-option assignment for the given option name. ok is false
// (and value is tok unchanged) when tok is not of that shape. The value may
// be empty ("name=" matches with value ""), e.g. an empty iplocation
// prefix=.
func stripNamedPrefix(tok, name string) (value string, ok bool) {
	prefix := name + "="
	if len(tok) >= len(prefix) && strings.EqualFold(tok[:len(prefix)], prefix) {
		return tok[len(prefix):], true
	}
	return tok, false
}
