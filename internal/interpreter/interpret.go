package interpreter

import (
	"splqlineage/internal/pattern"
	"splqlineage/internal/spl"
)

// Interpret matches one stage's argument tokens against the CommandSyntax
// the registry resolved for it, producing field events in left-to-right
// pattern order. A pattern mismatch is reported via
// Outcome.Partial, never as an error: the caller (the lineage engine) is
// expected to apply whatever prefix of events Outcome.Events holds and
// move on to the next stage.
//
// err is non-nil for pattern.ErrRecursionLimit, or for a pattern node of
// unknown kind or quantifier (shapes the validator rejects); either is
// fatal for this stage alone.
func Interpret(stageIndex int, stage spl.Stage, cs *pattern.CommandSyntax) (Outcome, error) {
	m := &matcher{stageIndex: stageIndex, commandName: cs.Name}

	r, newPos, err := m.matchNode(cs.Root, stage.Args, 0, 0)
	if err != nil {
		return Outcome{}, err
	}

	matched := r.ok && newPos == len(stage.Args)
	out := Outcome{
		Events:         r.events,
		Matched:        matched,
		Partial:        !matched,
		ConsumedTokens: newPos,
	}

	if matched && cs.Implicit != nil {
		for _, f := range cs.Implicit(r.bound) {
			out.Events = append(out.Events, FieldEvent{
				StageIndex:       stageIndex,
				CommandName:      cs.Name,
				Effect:           pattern.EffectCreates,
				FieldName:        f.Name,
				InferredType:     f.DataType,
				Confidence:       Certain,
				SourceFieldNames: f.DependsOn,
			})
		}
	}

	return out, nil
}
