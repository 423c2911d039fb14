package risky

import (
	"regexp"
	"strings"
)

// RegexDetector is the fallback detection path used when no parsed stage
// list is available: it scans for "| <command>" case-insensitively. The
// match is not anchored to line starts: every '|' in the text counts,
// including one inside a quoted string or a bracketed subsearch.
// It must agree with StageDetector on well-formed SPL in the test corpus.
type RegexDetector struct {
	Policy map[string]bool
}

// NewRegexDetector returns a RegexDetector using policy, or DefaultPolicy
// if policy is nil.
func NewRegexDetector(policy map[string]bool) RegexDetector {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return RegexDetector{Policy: policy}
}

var stagePattern = regexp.MustCompile(`(?m)\|\s*([A-Za-z_][A-Za-z0-9_]*)`)

// Detect scans source for pipe-introduced command names without
// tokenizing it, and reports every match whose command is in d.Policy.
// A leading, pipe-less first stage is never reported by this path.
// StageDetector does report one whose command is in the policy (e.g.
// "collect index=a | stats count"), so the two paths differ there.
func (d RegexDetector) Detect(source string) Report {
	var spans []Span
	matches := stagePattern.FindAllStringSubmatchIndex(source, -1)
	for i, m := range matches {
		nameStart, nameEnd := m[2], m[3]
		name := strings.ToLower(source[nameStart:nameEnd])
		if !d.Policy[name] {
			continue
		}
		stageEnd := len(source)
		if i+1 < len(matches) {
			stageEnd = pipeBefore(source, matches[i+1][0])
		}
		end := lastNonSpaceByte(source, nameStart, stageEnd)
		spans = append(spans, Span{
			CommandName:     name,
			CommandNodeType: "stage",
			StartOffset:     nameStart,
			EndOffset:       end,
			StartLine:       lineNumber(source, nameStart),
			EndLine:         lineNumber(source, end),
		})
	}
	return buildReport(spans)
}

// pipeBefore returns the offset of the '|' character that starts the next
// match, so the current stage's text is known to end just before it.
func pipeBefore(source string, nextMatchStart int) int {
	for i := nextMatchStart; i >= 0; i-- {
		if source[i] == '|' {
			return i
		}
	}
	return nextMatchStart
}

func lastNonSpaceByte(source string, start, end int) int {
	if end > len(source) {
		end = len(source)
	}
	for i := end - 1; i >= start; i-- {
		c := source[i]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return i
		}
	}
	return start
}

func lineNumber(source string, off int) int {
	if off > len(source) {
		off = len(source)
	}
	return 1 + strings.Count(source[:off], "\n")
}
