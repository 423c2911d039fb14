package interpreter

import (
	"fmt"
	"strings"

	"splqlineage/internal/pattern"
	"splqlineage/internal/spl"
)

// result is the internal return shape of every node matcher: how many
// tokens (from the position it was given) it consumed, the field events
// and bound names it produced, and whether it matched at all. A Sequence or
// repeated node that fails still returns whatever prefix of events/bound it
// accumulated before the failure, which is how Interpret implements the
// best-effort partial match. An Alternation none of whose options matches
// returns an empty result: the failed options' events are discarded.
type result struct {
	consumed int
	events   []FieldEvent
	bound    bound
	ok       bool
}

func emptyResult() result {
	return result{bound: bound{}}
}

// appendResult concatenates b's events/bound onto a, advancing consumed.
// It does not look at a.ok or b.ok; callers decide matched-ness themselves.
func appendResult(a, b result) result {
	out := result{
		consumed: a.consumed + b.consumed,
		events:   append(append([]FieldEvent{}, a.events...), b.events...),
		bound:    a.bound.clone(),
	}
	for k, v := range b.bound {
		out.bound[k] = v
	}
	return out
}

// matcher carries the per-interpretation context threaded through the
// recursive descent: the stage being interpreted, used to stamp every
// emitted event with its stage index and command name.
type matcher struct {
	stageIndex  int
	commandName string
	argIndex    int // synthetic "#N" counter for unnamed TypedParams
}

// matchNode matches pattern node p against toks starting at position pos,
// applying p's own quantifier (every node kind but Alternation carries
// one). depth is the recursion depth, bounded by pattern.MaxPatternDepth
// exactly as the validator bounds it at registry-load time.
func (m *matcher) matchNode(p pattern.SyntaxPattern, toks []spl.ArgToken, pos int, depth int) (result, int, error) {
	if depth > pattern.MaxPatternDepth {
		return emptyResult(), pos, fmt.Errorf("%w: interpreting %q", pattern.ErrRecursionLimit, m.commandName)
	}

	switch n := p.(type) {
	case pattern.Literal:
		return m.matchQuantified(n.Quantifier, toks, pos, depth, m.matchLiteralOnce(n))
	case pattern.TypedParam:
		return m.matchQuantified(n.Quantifier, toks, pos, depth, m.matchParamOnce(n))
	case pattern.Sequence:
		return m.matchQuantified(n.Quantifier, toks, pos, depth, m.matchSequenceOnce(n, depth))
	case pattern.Group:
		return m.matchQuantified(n.Quantifier, toks, pos, depth, func(toks []spl.ArgToken, pos, depth int) (result, int, error) {
			return m.matchNode(n.Pattern, toks, pos, depth+1)
		})
	case pattern.Alternation:
		return m.matchAlternation(n, toks, pos, depth)
	default:
		return emptyResult(), pos, fmt.Errorf("interpreter: unknown pattern kind %T", p)
	}
}

// onceFn matches a pattern body exactly one time, starting at pos. It
// returns the result of that single attempt and the new position.
type onceFn func(toks []spl.ArgToken, pos, depth int) (result, int, error)

// matchQuantified applies quantifier semantics around a once-matcher: `1`
// requires exactly one success, `?` allows zero or one, `+`/`*` repeat
// greedily. Every repetition that succeeds is kept even if a later
// repetition or the final requirement fails, which is what lets the
// matcher report a best-effort prefix on PatternMismatch.
func (m *matcher) matchQuantified(q pattern.Quantifier, toks []spl.ArgToken, pos int, depth int, once onceFn) (result, int, error) {
	switch q.Normalize() {
	case pattern.QuantOne:
		r, newPos, err := once(toks, pos, depth)
		if err != nil {
			return r, pos, err
		}
		return r, newPos, nil

	case pattern.QuantOptional:
		r, newPos, err := once(toks, pos, depth)
		if err != nil {
			return r, pos, err
		}
		if !r.ok {
			ok := emptyResult()
			ok.ok = true
			return ok, pos, nil
		}
		return r, newPos, nil

	case pattern.QuantOneOrMore, pattern.QuantZeroOrMore:
		acc := emptyResult()
		cur := pos
		count := 0
		for cur < len(toks) {
			r, newPos, err := once(toks, cur, depth)
			if err != nil {
				return acc, cur, err
			}
			if !r.ok || newPos == cur {
				break
			}
			acc = appendResult(acc, r)
			cur = newPos
			count++
		}
		if q.Normalize() == pattern.QuantOneOrMore && count == 0 {
			acc.ok = false
			return acc, pos, nil
		}
		acc.ok = true
		return acc, cur, nil

	default:
		return emptyResult(), pos, fmt.Errorf("interpreter: unknown quantifier %q", q)
	}
}

func (m *matcher) matchLiteralOnce(n pattern.Literal) onceFn {
	return func(toks []spl.ArgToken, pos, depth int) (result, int, error) {
		if pos >= len(toks) || !strings.EqualFold(toks[pos].Text, n.Value) {
			return emptyResult(), pos, nil
		}
		r := emptyResult()
		r.ok = true
		r.consumed = 1
		return r, pos + 1, nil
	}
}

func (m *matcher) matchSequenceOnce(n pattern.Sequence, depth int) onceFn {
	return func(toks []spl.ArgToken, pos, depth2 int) (result, int, error) {
		acc := emptyResult()
		cur := pos
		for _, child := range n.Patterns {
			if child == nil {
				continue
			}
			r, newPos, err := m.matchNode(child, toks, cur, depth+1)
			if err != nil {
				return acc, cur, err
			}
			acc = appendResult(acc, r)
			cur = newPos
			if !r.ok {
				acc.ok = false
				return acc, cur, nil
			}
		}
		acc.ok = true
		return acc, cur, nil
	}
}

// matchAlternation tries every option as an independent attempt (no shared
// state between them — this is the matcher's one real backtracking point)
// and keeps the option consuming the most tokens; ties go to the
// earlier-declared option.
func (m *matcher) matchAlternation(n pattern.Alternation, toks []spl.ArgToken, pos int, depth int) (result, int, error) {
	var best result
	bestPos := pos
	found := false

	for _, opt := range n.Options {
		if opt == nil {
			continue
		}
		r, newPos, err := m.matchNode(opt, toks, pos, depth+1)
		if err != nil {
			return emptyResult(), pos, err
		}
		if !r.ok {
			continue
		}
		if !found || newPos-pos > bestPos-pos {
			best, bestPos, found = r, newPos, true
		}
	}

	if !found {
		return emptyResult(), pos, nil
	}
	return best, bestPos, nil
}

// matchParamOnce dispatches a single TypedParam match, special-casing the
// two variable-width param types (field-list and evaled-field, neither of
// which consumes a fixed one token) and stats-func (which owns its own
// optional trailing "as newname" clause per the registry's design notes).
func (m *matcher) matchParamOnce(n pattern.TypedParam) onceFn {
	return func(toks []spl.ArgToken, pos, depth int) (result, int, error) {
		if pos >= len(toks) {
			return emptyResult(), pos, nil
		}

		switch n.ParamType {
		case pattern.ParamFieldList:
			return m.matchFieldList(n, toks, pos)
		case pattern.ParamEvaledField:
			return m.matchEvaledField(n, toks, pos)
		case pattern.ParamStatsFunc:
			return m.matchStatsFunc(n, toks, pos)
		default:
			return m.matchSingleToken(n, toks, pos)
		}
	}
}

// matchSingleToken matches one token against a TypedParam that consumes
// exactly one token. A named parameter of a permissive type (string,
// field, and the other field-like types, whose predicates accept almost
// any token) only matches a token carrying its explicit "name=value"
// syntax — otherwise an optional named option would greedily (and
// wrongly) swallow the positional field argument that follows it. Named
// parameters of a narrow type (int, num, bool, time-modifier) accept
// either the explicit "name=value" form or a bare token of that type, the
// way SPL itself accepts both "sort 10 field" and "sort count=10 field".
func (m *matcher) matchSingleToken(n pattern.TypedParam, toks []spl.ArgToken, pos int) (result, int, error) {
	raw := toks[pos].Text
	value := raw
	explicitlyNamed := false
	if n.Name != "" {
		v, ok := stripNamedPrefix(raw, n.Name)
		switch {
		case ok:
			value, explicitlyNamed = v, true
		case requiresExplicitName(n.ParamType, n.Quantifier):
			return emptyResult(), pos, nil
		}
	}
	// An explicit "name=" assignment is unambiguous even with an empty
	// value (e.g. iplocation's prefix=), unlike a bare empty token, which
	// matchesSingleTokenType's ParamString case still rejects.
	if !(explicitlyNamed && n.ParamType == pattern.ParamString) && !matchesSingleTokenType(n.ParamType, value) {
		return emptyResult(), pos, nil
	}

	r := emptyResult()
	r.ok = true
	r.consumed = 1
	r.bound[m.bindKey(n.Name)] = value
	if n.Effect != "" {
		r.events = append(r.events, m.event(n.Effect, value, inferType(n.ParamType), Certain, nil))
	}
	return r, pos + 1, nil
}

// matchFieldList greedily consumes the run of tokens from pos that look
// like field names, stopping at the first token that is a reserved
// keyword following a field-list slot in this registry.
func (m *matcher) matchFieldList(n pattern.TypedParam, toks []spl.ArgToken, pos int) (result, int, error) {
	start := pos
	var names []string
	for pos < len(toks) {
		tok := strings.TrimSuffix(toks[pos].Text, ",")
		if stopWords[strings.ToLower(tok)] || !looksLikeField(tok) {
			break
		}
		names = append(names, tok)
		pos++
	}
	if len(names) == 0 {
		return emptyResult(), start, nil
	}

	r := emptyResult()
	r.ok = true
	r.consumed = pos - start
	r.bound[m.bindKey(n.Name)] = strings.Join(names, ",")
	if n.Effect != "" {
		for _, name := range names {
			r.events = append(r.events, m.event(n.Effect, name, pattern.TypeUnknown, Certain, nil))
		}
	}
	return r, pos, nil
}

// matchEvaledField consumes every remaining token in the current matching
// region as one opaque expression. Splunk evaluated expressions (a `where`
// predicate, a bare search clause) are not parsed at the expression level
// here — full SPL expression evaluation is out of scope — so the whole
// remaining run becomes the field event's name/value.
func (m *matcher) matchEvaledField(n pattern.TypedParam, toks []spl.ArgToken, pos int) (result, int, error) {
	if pos >= len(toks) {
		return emptyResult(), pos, nil
	}
	var parts []string
	for _, t := range toks[pos:] {
		parts = append(parts, t.Text)
	}
	expr := strings.Join(parts, " ")

	r := emptyResult()
	r.ok = true
	r.consumed = len(toks) - pos
	r.bound[m.bindKey(n.Name)] = expr
	if n.Effect != "" {
		r.events = append(r.events, m.event(n.Effect, expr, pattern.TypeUnknown, Certain, nil))
	}
	return r, len(toks), nil
}

// matchStatsFunc matches a stats aggregation function token and its
// optional trailing "as newname" override. It always emits a `creates` event for the aggregation's output
// field, since ParamStatsFunc slots in the registry carry no FieldEffect
// of their own.
func (m *matcher) matchStatsFunc(n pattern.TypedParam, toks []spl.ArgToken, pos int) (result, int, error) {
	tok := toks[pos].Text
	if !isStatsFunc(tok) {
		return emptyResult(), pos, nil
	}

	consumed := 1
	outputName := tok

	if pos+2 < len(toks) && strings.EqualFold(toks[pos+1].Text, "as") {
		outputName = toks[pos+2].Text
		consumed = 3
	}

	r := emptyResult()
	r.ok = true
	r.consumed = consumed
	r.bound[m.bindKey(n.Name)] = tok

	var deps []string
	if arg := statsFuncArg(tok); arg != "" && looksLikeField(arg) {
		deps = []string{arg}
	}
	r.events = append(r.events, m.event(pattern.EffectCreates, outputName, pattern.TypeNumber, Certain, deps))
	return r, pos + consumed, nil
}

func (m *matcher) bindKey(name string) string {
	if name != "" {
		return name
	}
	key := fmt.Sprintf("#%d", m.argIndex)
	m.argIndex++
	return key
}

func (m *matcher) event(effect pattern.FieldEffect, field string, typ pattern.DataType, conf Confidence, deps []string) FieldEvent {
	return FieldEvent{
		StageIndex:       m.stageIndex,
		CommandName:      m.commandName,
		Effect:           effect,
		FieldName:        field,
		InferredType:     typ,
		Confidence:       conf,
		SourceFieldNames: deps,
	}
}

// inferType derives a field event's data type from the declared role of the
// parameter that produced it. A bare field reference (ParamField and its
// wildcarded/evaled/list variants) names an existing or to-be-computed field
// without saying anything about its contents, so it infers TypeUnknown
// rather than TypeString: mergeType then leaves a modified field's prior
// type alone instead of overwriting e.g. a number with "string" just
// because it passed through a field-name parameter like bin's or eval's.
func inferType(t pattern.ParamType) pattern.DataType {
	switch t {
	case pattern.ParamInt, pattern.ParamNum:
		return pattern.TypeNumber
	case pattern.ParamBool:
		return pattern.TypeBool
	case pattern.ParamString, pattern.ParamTimeModifier, pattern.ParamStatsFunc:
		return pattern.TypeString
	default:
		return pattern.TypeUnknown
	}
}
