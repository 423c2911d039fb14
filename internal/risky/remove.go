package risky

import (
	"regexp"
	"sort"
	"strings"
)

// Remove deletes each listed span from source and normalizes the result.
// Deletion also consumes exactly one of the span's two
// flanking pipe characters — preferring the one before it, falling back
// to the one after for a first-stage span with nothing preceding it — so
// the common case ("A | risky | B" -> "A | B") needs no further cleanup;
// the normalization pass below still runs to handle edge cases like two
// consecutive risky stages or a risky stage at either end of the
// pipeline.
//
// Remove never fails: an empty spans list or an empty source returns
// source with no deletions, still normalized (so an empty spans list can
// still trim trailing whitespace and pipes).
func Remove(source string, spans []Span) string {
	if len(spans) == 0 {
		return normalize(source)
	}

	ranges := make([][2]int, 0, len(spans))
	for _, s := range spans {
		ranges = append(ranges, deletionRange(source, s))
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] > ranges[j][0] })

	out := source
	for _, r := range ranges {
		out = out[:r[0]] + out[r[1]:]
	}
	return normalize(out)
}

// deletionRange widens a reported (inclusive) Span into a half-open byte
// range that also swallows one neighboring pipe.
func deletionRange(source string, s Span) [2]int {
	start, end := s.StartOffset, s.EndOffset+1
	if end > len(source) {
		end = len(source)
	}

	if p := indexOfRune(source[:start], '|', true); p >= 0 {
		return [2]int{p, skipHSpace(source, end)}
	}
	if p := indexOfRune(source[end:], '|', false); p >= 0 {
		return [2]int{rskipHSpace(source, start), end + p + 1}
	}
	return [2]int{rskipHSpace(source, start), skipHSpace(source, end)}
}

// skipHSpace advances i past any run of horizontal whitespace.
func skipHSpace(source string, i int) int {
	for i < len(source) && isHSpace(source[i]) {
		i++
	}
	return i
}

// rskipHSpace retreats i past any run of horizontal whitespace
// immediately preceding it.
func rskipHSpace(source string, i int) int {
	for i > 0 && isHSpace(source[i-1]) {
		i--
	}
	return i
}

// indexOfRune finds '|' in s, searching from the end if last is true
// (nearest-preceding search) or from the start otherwise.
func indexOfRune(s string, r byte, last bool) int {
	if last {
		return strings.LastIndexByte(s, r)
	}
	return strings.IndexByte(s, r)
}

// normalize applies the post-removal text cleanup rules: collapse adjacent pipes
// separated only by horizontal whitespace, strip trailing pipes and
// horizontal whitespace at the end of each line, drop whitespace-only
// lines, and trim the whole string's trailing whitespace.
func normalize(s string) string {
	s = collapseAdjacentPipes(s)

	lines := strings.Split(s, "\n")
	var kept []string
	for _, line := range lines {
		line = stripTrailingPipeAndSpace(line)
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimRight(strings.Join(kept, "\n"), " \t\r\n")
}

// adjacentPipes matches two '|' characters separated only by horizontal
// whitespace, e.g. "| |" or "|   |".
var adjacentPipes = regexp.MustCompile(`\|[ \t]*\|`)

func collapseAdjacentPipes(s string) string {
	prev := ""
	for prev != s {
		prev = s
		s = adjacentPipes.ReplaceAllString(s, "|")
	}
	return s
}

func stripTrailingPipeAndSpace(line string) string {
	line = strings.TrimRight(line, " \t")
	for strings.HasSuffix(line, "|") {
		line = strings.TrimRight(strings.TrimSuffix(line, "|"), " \t")
	}
	return line
}
