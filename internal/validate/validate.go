// Package validate implements the pattern validator: it proves
// every registered command's syntax pattern is structurally sound before the
// interpreter ever runs over it.
package validate

import (
	"fmt"

	"splqlineage/internal/pattern"
)

// Result is the per-command outcome of validating one CommandSyntax.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// fail records an error and marks the result invalid. A command can still
// be Valid with non-empty Warnings.
func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Command validates a single CommandSyntax in isolation. Validation is
// purely local to the command; see Registry for the summary aggregator.
func Command(cs *pattern.CommandSyntax) Result {
	r := Result{Valid: true}

	if cs.Name == "" {
		r.fail("command is missing a name")
	}
	if cs.Root == nil {
		r.fail("command %q has no root pattern", cs.Name)
		return r
	}

	if _, err := walk(cs.Root, &r, 0); err != nil {
		r.fail("command %q: %v", cs.Name, err)
	}

	return r
}

// Registry validates every distinct command in reg and returns a map keyed
// by canonical command name. Running Registry twice over the same Registry
// value produces identical results (it performs no mutation and depends
// only on the immutable pattern tree).
func Registry(reg *pattern.Registry) map[string]Result {
	out := make(map[string]Result)
	for _, cs := range reg.All() {
		out[cs.Name] = Command(cs)
	}
	return out
}

// walk recursively validates one pattern node and its descendants,
// returning the maximum depth reached (for recursion-limit enforcement) or
// an error if MaxPatternDepth is exceeded.
func walk(p pattern.SyntaxPattern, r *Result, depth int) (int, error) {
	if depth > pattern.MaxPatternDepth {
		return depth, pattern.ErrRecursionLimit
	}

	switch n := p.(type) {
	case pattern.Literal:
		return validateLiteral(n, r, depth)
	case pattern.TypedParam:
		return validateTypedParam(n, r, depth)
	case pattern.Sequence:
		return validateSequence(n, r, depth)
	case pattern.Alternation:
		return validateAlternation(n, r, depth)
	case pattern.Group:
		return validateGroup(n, r, depth)
	default:
		r.fail("unknown pattern kind %T", p)
		return depth, nil
	}
}

func validateLiteral(n pattern.Literal, r *Result, depth int) (int, error) {
	if n.Value == "" {
		r.fail("literal has empty value")
	}
	if !n.Quantifier.Valid() {
		r.fail("literal %q has unknown quantifier %q", n.Value, n.Quantifier)
	}
	if n.Quantifier == pattern.QuantOneOrMore || n.Quantifier == pattern.QuantZeroOrMore {
		r.warn("literal %q uses quantifier %q, which is almost certainly a bug for a fixed keyword", n.Value, n.Quantifier)
	}
	return depth, nil
}

func validateTypedParam(n pattern.TypedParam, r *Result, depth int) (int, error) {
	if !n.ParamType.Valid() {
		r.fail("typed param %q has unknown param_type %q", n.Name, n.ParamType)
	}
	if !n.Quantifier.Valid() {
		r.fail("typed param %q has unknown quantifier %q", n.Name, n.Quantifier)
	}
	if n.Effect != "" && !n.Effect.Valid() {
		r.fail("typed param %q has unknown effect %q", n.Name, n.Effect)
	}
	if n.Effect == "" && fieldLike(n.ParamType) {
		r.warn("typed param %q of field-like type %q has no declared field_effect", n.Name, n.ParamType)
	}
	return depth, nil
}

func fieldLike(t pattern.ParamType) bool {
	switch t {
	case pattern.ParamField, pattern.ParamWildcardField, pattern.ParamEvaledField, pattern.ParamFieldList:
		return true
	default:
		return false
	}
}

func validateSequence(n pattern.Sequence, r *Result, depth int) (int, error) {
	if !n.Quantifier.Valid() {
		r.fail("sequence has unknown quantifier %q", n.Quantifier)
	}
	if len(n.Patterns) == 0 {
		r.fail("sequence has zero children")
		return depth, nil
	}
	if len(n.Patterns) == 1 {
		r.warn("sequence has exactly one child, which is a redundant wrapper")
	}
	maxDepth := depth
	for _, child := range n.Patterns {
		if child == nil {
			r.fail("sequence has a nil child pattern")
			continue
		}
		d, err := walk(child, r, depth+1)
		if err != nil {
			return d, err
		}
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth, nil
}

func validateAlternation(n pattern.Alternation, r *Result, depth int) (int, error) {
	if len(n.Options) < 2 {
		r.warn("alternation has fewer than two options")
	}
	if len(n.Options) == 0 {
		r.fail("alternation has no options")
		return depth, nil
	}
	seen := make(map[string]bool, len(n.Options))
	maxDepth := depth
	for _, opt := range n.Options {
		if opt == nil {
			r.fail("alternation has a nil option pattern")
			continue
		}
		key := signature(opt)
		if seen[key] {
			r.warn("alternation has a duplicate option: %s", key)
		}
		seen[key] = true
		d, err := walk(opt, r, depth+1)
		if err != nil {
			return d, err
		}
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth, nil
}

func validateGroup(n pattern.Group, r *Result, depth int) (int, error) {
	if n.Pattern == nil {
		r.fail("group has no pattern")
		return depth, nil
	}
	if !n.Quantifier.Valid() {
		r.fail("group has unknown quantifier %q", n.Quantifier)
	}
	if n.Quantifier == "" || n.Quantifier == pattern.QuantOne {
		r.warn("group has no quantifier (or an explicit '1'), which is a redundant wrapper")
	}
	return walk(n.Pattern, r, depth+1)
}

// signature produces a coarse structural fingerprint of a pattern, used only
// to flag likely-duplicate Alternation options. It is not a full structural
// equality check (nested field names inside children are ignored below the
// first level), which is a deliberate, cheap approximation: pattern trees in
// this registry are shallow enough that first-level dedup catches the
// realistic mistake (copy-pasting an option twice).
func signature(p pattern.SyntaxPattern) string {
	switch n := p.(type) {
	case pattern.Literal:
		return "lit:" + n.Value
	case pattern.TypedParam:
		return fmt.Sprintf("param:%s:%s:%s", n.ParamType, n.Name, n.Effect)
	case pattern.Sequence:
		s := fmt.Sprintf("seq(%d):", len(n.Patterns))
		for _, c := range n.Patterns {
			s += signature(c) + ","
		}
		return s
	case pattern.Alternation:
		s := fmt.Sprintf("alt(%d):", len(n.Options))
		for _, c := range n.Options {
			s += signature(c) + ","
		}
		return s
	case pattern.Group:
		return "group:" + string(n.Quantifier) + ":" + signature(n.Pattern)
	default:
		return "?"
	}
}
