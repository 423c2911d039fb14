package lineage

import (
	"regexp"
	"strings"
	"sync"
)

// wildcardCache caches compiled regexps keyed by pattern text, since the same
// wildcard field (e.g. "foo_*") is typically looked up repeatedly across a
// stage. sync.Map rather than a plain map plus mutex: Analyze is documented as
// safe to call concurrently from multiple goroutines on independent sources,
// and this is the only process-wide state any of them touch.
var wildcardCache sync.Map // string -> *regexp.Regexp

// compileWildcard turns a field pattern containing '*' into an anchored
// regexp, escaping every other regexp metacharacter. Field matching is
// case-sensitive.
func compileWildcard(pattern string) *regexp.Regexp {
	if re, ok := wildcardCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
	actual, _ := wildcardCache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp)
}

// matchWildcard returns every name in candidates matched by the wildcard
// pattern, sorted by first appearance in candidates.
func matchWildcard(pattern string, candidates []string) []string {
	re := compileWildcard(pattern)
	var out []string
	for _, c := range candidates {
		if re.MatchString(c) {
			out = append(out, c)
		}
	}
	return out
}

// wildcardSegment extracts the substring a field name matched against a
// single '*' in pattern, used to propagate a rename's wildcard segment
// from the old name onto the new name's template. Returns "", false if
// pattern does not contain exactly one '*' or name does not match it.
func wildcardSegment(pattern, name string) (string, bool) {
	idx := strings.IndexByte(pattern, '*')
	if idx < 0 || strings.IndexByte(pattern[idx+1:], '*') >= 0 {
		return "", false
	}
	prefix, suffix := pattern[:idx], pattern[idx+1:]
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return "", false
	}
	return name[len(prefix) : len(name)-len(suffix)], true
}

// applySegment substitutes seg for the single '*' in template.
func applySegment(template, seg string) string {
	return strings.Replace(template, "*", seg, 1)
}
