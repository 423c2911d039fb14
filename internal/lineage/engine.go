package lineage

import (
	"fmt"
	"sort"

	"splqlineage/internal/interpreter"
	"splqlineage/internal/pattern"
	"splqlineage/internal/spl"
)

// Engine folds a pipeline's stages into an Index. It holds no state across
// runs; Run is safe to call repeatedly (and concurrently, on independent
// stage lists) against the same immutable *pattern.Registry.
type Engine struct {
	Registry *pattern.Registry
}

// New returns an Engine bound to reg.
func New(reg *pattern.Registry) *Engine {
	return &Engine{Registry: reg}
}

// Run applies stages in order, producing the final Index and the
// diagnostics collected along the way. It never aborts partway: every
// stage is attempted even if an earlier one failed.
func (e *Engine) Run(stages []spl.Stage) (*Index, []Diagnostic) {
	idx := newIndex()
	var diags []Diagnostic

	for i, stage := range stages {
		summary := StageSummary{Index: i, CommandName: stage.CommandName}

		cs, ok := e.Registry.Get(stage.CommandName)
		if !ok {
			diags = append(diags, Diagnostic{
				Severity:   SeverityInfo,
				StageIndex: i,
				Message:    fmt.Sprintf("unknown command %q; passed through with no field effects", stage.CommandName),
				SourceSpan: stageSpan(stage),
			})
			idx.stages = append(idx.stages, summary)
			idx.snapshot()
			continue
		}

		outcome, err := interpreter.Interpret(i, stage, cs)
		if err != nil {
			// pattern.ErrRecursionLimit, or an unknown pattern kind or
			// quantifier (see interpreter.Interpret); it is fatal for this
			// stage alone, which is then skipped entirely.
			diags = append(diags, Diagnostic{
				Severity:   SeverityFatal,
				StageIndex: i,
				Message:    err.Error(),
				SourceSpan: stageSpan(stage),
			})
			idx.stages = append(idx.stages, summary)
			idx.snapshot()
			continue
		}

		if outcome.Partial {
			diags = append(diags, Diagnostic{
				Severity:   SeverityWarning,
				StageIndex: i,
				Message:    fmt.Sprintf("%s: pattern mismatch after %d argument token(s); events up to that point retained", stage.CommandName, outcome.ConsumedTokens),
				SourceSpan: stageSpan(stage),
			})
		}
		summary.Matched = outcome.Matched

		events := outcome.Events
		switch cs.Name {
		case "rename":
			events = pairRenameEvents(idx, events)
		}

		danglers := e.apply(idx, &summary, events)
		for _, d := range danglers {
			diags = append(diags, Diagnostic{
				Severity:   SeverityInfo,
				StageIndex: i,
				Message:    fmt.Sprintf("%q is not in the live field set", d),
				SourceSpan: stageSpan(stage),
			})
		}

		if cs.Name == "fields" {
			e.applyFieldsRestriction(idx, &summary, stage)
		}

		sortSummary(&summary)
		idx.stages = append(idx.stages, summary)
		idx.snapshot()
	}

	return idx, diags
}

// apply performs the generic per-event effect-application table and
// records each touched field name on summary. It returns the list of
// field names that were consumed/grouped-by while not live (dangling
// references).
func (e *Engine) apply(idx *Index, summary *StageSummary, events []interpreter.FieldEvent) []string {
	var dangling []string

	for _, ev := range events {
		switch ev.Effect {
		case pattern.EffectCreates:
			for _, name := range resolveWrite(idx, ev) {
				n := buildNode(ev, name)
				idx.live[name] = n
				idx.history[name] = n
				summary.Created = append(summary.Created, name)
			}

		case pattern.EffectModifies:
			for _, name := range resolveWrite(idx, ev) {
				if existing, ok := idx.live[name]; ok {
					n := &Node{
						FieldName:        name,
						OriginStageIndex: ev.StageIndex,
						OriginCommand:    ev.CommandName,
						DataType:         mergeType(existing.DataType, ev.InferredType),
						Confidence:       ev.Confidence,
						DependsOn:        mergeDeps(existing.DependsOn, ev.SourceFieldNames),
						EffectKind:       pattern.EffectModifies,
					}
					idx.live[name] = n
					idx.history[name] = n
				} else {
					n := buildNode(ev, name)
					n.EffectKind = pattern.EffectCreates
					idx.live[name] = n
					idx.history[name] = n
				}
				summary.Modified = append(summary.Modified, name)
			}

		case pattern.EffectConsumes, pattern.EffectGroupsBy:
			names := resolveRead(idx, ev)
			for _, name := range names {
				if _, live := idx.live[name]; !live {
					dangling = append(dangling, name)
				}
				summary.Consumed = append(summary.Consumed, name)
				if ev.Effect == pattern.EffectGroupsBy {
					summary.GroupKeys = append(summary.GroupKeys, name)
				}
			}

		case pattern.EffectDrops:
			for _, name := range resolveRead(idx, ev) {
				delete(idx.live, name)
				summary.Dropped = append(summary.Dropped, name)
			}
		}
	}

	return dangling
}

// resolveWrite expands a creates/modifies event's field name against the
// live set if it is wildcarded; an unmatched wildcard is still recorded
// as a creation with the literal wildcard name.
func resolveWrite(idx *Index, ev interpreter.FieldEvent) []string {
	if !containsStar(ev.FieldName) {
		return []string{ev.FieldName}
	}
	matches := matchWildcard(ev.FieldName, idx.liveNamesSorted())
	if len(matches) == 0 {
		return []string{ev.FieldName}
	}
	return matches
}

// resolveRead expands a consumes/groups-by/drops event's field name
// against the live set if it is wildcarded. Unlike resolveWrite, an
// unmatched read wildcard resolves to nothing (there is no live field to
// act on).
func resolveRead(idx *Index, ev interpreter.FieldEvent) []string {
	if !containsStar(ev.FieldName) {
		return []string{ev.FieldName}
	}
	return matchWildcard(ev.FieldName, idx.liveNamesSorted())
}

func buildNode(ev interpreter.FieldEvent, name string) *Node {
	conf := ev.Confidence
	if containsStar(ev.FieldName) && name == ev.FieldName {
		conf = interpreter.Inferred
	}
	return &Node{
		FieldName:        name,
		OriginStageIndex: ev.StageIndex,
		OriginCommand:    ev.CommandName,
		DataType:         ev.InferredType,
		Confidence:       conf,
		DependsOn:        append([]string{}, ev.SourceFieldNames...),
		EffectKind:       ev.Effect,
	}
}

func mergeType(existing, incoming pattern.DataType) pattern.DataType {
	if incoming != "" && incoming != pattern.TypeUnknown {
		return incoming
	}
	return existing
}

func mergeDeps(existing, incoming []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range append(append([]string{}, existing...), incoming...) {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func containsStar(s string) bool {
	for _, r := range s {
		if r == '*' {
			return true
		}
	}
	return false
}

// pairRenameEvents merges the interpreter's independent drops+creates pair
// from a rename stage into matched drop/create pairs, each carrying the
// old name as the new field's dependency. When both the old and new name
// are wildcarded, it expands the old pattern against every currently live
// field and propagates each match's wildcard segment onto the new
// pattern, producing one drop/create pair per matched field instead of a
// single pair naming the literal wildcard text.
func pairRenameEvents(idx *Index, events []interpreter.FieldEvent) []interpreter.FieldEvent {
	var oldEvent, newEvent *interpreter.FieldEvent
	var out []interpreter.FieldEvent

	for i := range events {
		switch events[i].Effect {
		case pattern.EffectDrops:
			oldEvent = &events[i]
		case pattern.EffectCreates:
			newEvent = &events[i]
		default:
			out = append(out, events[i])
		}
	}

	if oldEvent == nil || newEvent == nil {
		if oldEvent != nil {
			out = append(out, *oldEvent)
		}
		if newEvent != nil {
			out = append(out, *newEvent)
		}
		return out
	}

	if containsStar(oldEvent.FieldName) && containsStar(newEvent.FieldName) {
		for _, live := range matchWildcard(oldEvent.FieldName, idx.liveNamesSorted()) {
			seg, ok := wildcardSegment(oldEvent.FieldName, live)
			if !ok {
				continue
			}
			newName := applySegment(newEvent.FieldName, seg)

			drop := *oldEvent
			drop.FieldName = live
			create := *newEvent
			create.FieldName = newName
			create.SourceFieldNames = append(append([]string{}, newEvent.SourceFieldNames...), live)

			out = append(out, drop, create)
		}
		return out
	}

	create := *newEvent
	create.SourceFieldNames = append(create.SourceFieldNames, oldEvent.FieldName)
	out = append(out, *oldEvent, create)
	return out
}

// applyFieldsRestriction implements "fields + list" / bare-list semantics:
// restrict the live set to exactly the listed fields, dropping everything
// else. The "-" form needs no special casing since its drops events are
// already applied generically.
func (e *Engine) applyFieldsRestriction(idx *Index, summary *StageSummary, stage spl.Stage) {
	if len(stage.Args) > 0 && stage.Args[0].Text == "-" {
		return
	}
	kept := map[string]bool{}
	for _, name := range summary.Consumed {
		kept[name] = true
	}
	for name := range idx.live {
		if !kept[name] {
			delete(idx.live, name)
			summary.Dropped = append(summary.Dropped, name)
		}
	}
}

func sortSummary(s *StageSummary) {
	sort.Strings(s.Created)
	sort.Strings(s.Modified)
	sort.Strings(s.Consumed)
	sort.Strings(s.Dropped)
	sort.Strings(s.GroupKeys)
}

func stageSpan(stage spl.Stage) *Span {
	return &Span{
		StartOffset: stage.StartOffset,
		EndOffset:   stage.EndOffset,
		StartLine:   stage.StartLine,
		EndLine:     stage.EndLine,
	}
}
