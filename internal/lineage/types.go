// Package lineage implements the pipeline lineage engine: it
// folds a pipeline's per-stage field events into an indexed, queryable
// graph of which stage produced each field and what it depends on.
package lineage

import (
	"splqlineage/internal/interpreter"
	"splqlineage/internal/pattern"
)

// Node is a field's lineage record as of the moment it was last written.
// It is immutable once constructed; a later write to the same field name
// replaces the Index's pointer to a new Node rather than mutating this one.
type Node struct {
	FieldName        string
	OriginStageIndex int
	OriginCommand    string
	DataType         pattern.DataType
	Confidence       interpreter.Confidence
	DependsOn        []string
	EffectKind       pattern.FieldEffect
}

// StageSummary is the per-stage bookkeeping the Index exposes via
// Stages/GetStageSummary: every field name the stage wrote, consumed, or
// dropped, plus whether the interpreter fully matched the stage's
// arguments.
type StageSummary struct {
	Index       int
	CommandName string
	Matched     bool
	Created     []string
	Modified    []string
	Consumed    []string
	Dropped     []string
	GroupKeys   []string
}

// Severity is a diagnostic's severity level.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one non-fatal-to-the-pipeline note surfaced during
// folding: an unknown command, a pattern mismatch, a dangling reference,
// or (rarely) a recursion-limit stage skip.
type Diagnostic struct {
	Severity    Severity
	StageIndex  int
	Message     string
	SourceSpan  *Span
}

// Span locates a diagnostic in the original source text, when the
// triggering stage's position is known.
type Span struct {
	StartOffset, EndOffset int
	StartLine, EndLine     int
}
