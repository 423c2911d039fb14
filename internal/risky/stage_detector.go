package risky

import (
	"strings"

	"splqlineage/internal/spl"
)

// StageDetector is the preferred detection path: it uses an
// already-tokenized stage list's own offsets, so it never has to guess at
// quoting or nesting.
type StageDetector struct {
	Policy map[string]bool
}

// NewStageDetector returns a StageDetector using policy, or DefaultPolicy
// if policy is nil.
func NewStageDetector(policy map[string]bool) StageDetector {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return StageDetector{Policy: policy}
}

// Detect tokenizes source and reports every top-level stage whose command
// name is in d.Policy.
func (d StageDetector) Detect(source string) Report {
	stages, _ := spl.Tokenize(source)
	return d.DetectStages(source, stages)
}

// DetectStages runs detection over an already-tokenized stage list,
// avoiding a redundant re-tokenize when the caller (e.g. the analyze
// package) already has one.
func (d StageDetector) DetectStages(source string, stages []spl.Stage) Report {
	var spans []Span
	for _, st := range stages {
		name := strings.ToLower(st.CommandName)
		if !d.Policy[name] {
			continue
		}
		spans = append(spans, Span{
			CommandName:     name,
			CommandNodeType: "stage",
			StartOffset:     commandStart(source, st),
			EndOffset:       lastNonSpaceInclusive(source, st),
			StartLine:       st.StartLine,
			EndLine:         st.EndLine,
		})
	}
	return buildReport(spans)
}

// commandStart finds the byte offset of the command name's first
// character within the stage, skipping the leading whitespace that
// Stage.StartOffset includes.
func commandStart(source string, st spl.Stage) int {
	i := st.StartOffset
	for i < st.EndOffset && isHSpace(source[i]) {
		i++
	}
	return i
}

// lastNonSpaceInclusive returns the offset of the stage's last non-
// whitespace byte, making the span's end offset inclusive.
func lastNonSpaceInclusive(source string, st spl.Stage) int {
	for i := st.EndOffset - 1; i >= st.StartOffset; i-- {
		if !isHSpace(source[i]) && source[i] != '\n' && source[i] != '\r' {
			return i
		}
	}
	return st.StartOffset
}

func isHSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
