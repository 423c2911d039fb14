// Package analyze wires the tokenizer, interpreter, and lineage engine
// together behind the single entry point the rest of this module's
// callers use: Analyze(source) -> AnalyzeResult.
package analyze

import (
	"splqlineage/internal/lineage"
	"splqlineage/internal/pattern"
	"splqlineage/internal/spl"
)

// Result is the public analyzer output: the folded lineage index plus
// every diagnostic collected along the way, tokenizer diagnostics first.
type Result struct {
	Lineage     *lineage.Index
	Diagnostics []lineage.Diagnostic
}

// Analyzer binds a fixed registry to repeated Analyze calls. A zero-value
// Analyzer is not usable; construct one with New.
type Analyzer struct {
	registry *pattern.Registry
}

// New returns an Analyzer backed by reg. reg is never mutated and may be
// shared by any number of Analyzers and goroutines.
func New(reg *pattern.Registry) *Analyzer {
	return &Analyzer{registry: reg}
}

// Analyze tokenizes source into stages and folds them through the
// lineage engine, returning a complete (or, on a tokenizer-level
// diagnostic, best-effort) result. It never returns an error: every
// failure mode in this pipeline is represented as a Diagnostic instead.
func (a *Analyzer) Analyze(source string) Result {
	stages, tokDiags := spl.Tokenize(source)

	eng := lineage.New(a.registry)
	idx, diags := eng.Run(stages)

	out := Result{Lineage: idx}
	for _, d := range tokDiags {
		out.Diagnostics = append(out.Diagnostics, lineage.Diagnostic{
			Severity: lineage.SeverityWarning,
			Message:  d.Message,
			SourceSpan: &lineage.Span{
				StartOffset: d.StartOffset,
				EndOffset:   d.StartOffset,
				StartLine:   d.Line,
				EndLine:     d.Line,
			},
		})
	}
	out.Diagnostics = append(out.Diagnostics, diags...)
	return out
}

// Stages exposes the tokenizer's stage list for callers (e.g. the risky
// detector) that want to avoid re-tokenizing the same source.
func (a *Analyzer) Stages(source string) ([]spl.Stage, []spl.Diagnostic) {
	return spl.Tokenize(source)
}
