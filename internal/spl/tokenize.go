package spl

import "strings"

// Diagnostic is a tokenizer-level note. The tokenizer never fails outright;
// at worst it reports an unterminated-quote diagnostic and keeps going,
// mirroring the rest of this module's "never abort on one bad stage"
// posture.
type Diagnostic struct {
	Message     string
	StartOffset int
	Line        int
}

// Stage.CommandName is set to "search" for a stage whose first token
// contains '=' (e.g. "index=main status=500").

// Tokenize splits raw SPL source into an ordered list of top-level stages.
//
// A stage boundary is a '|' character that is not inside a single- or
// double-quoted string and not inside a bracketed subsearch ('[' ... ']').
// Subsearch pipes are therefore never treated as top-level boundaries:
// subsearches are opaque input providers, so whatever
// is inside the brackets is carried as plain argument text of the
// enclosing stage rather than split into its own stages.
//
// A stage whose first token contains '=' becomes an implicit "search"
// stage with every token as an argument — the common real-world
// shorthand of writing "index=main ..." with no leading "search" keyword.
// Any other first token is taken as the command name, so a pipe-less
// first stage starting with a bare term (e.g. "error | stats count") gets
// the command name "error".
func Tokenize(source string) ([]Stage, []Diagnostic) {
	segments, diags := splitTopLevel(source)
	if len(segments) == 0 {
		return nil, diags
	}

	stages := make([]Stage, 0, len(segments))
	for _, seg := range segments {
		stages = append(stages, buildStage(source, seg))
	}
	return stages, diags
}

// segment is a byte range of source text between top-level pipe
// boundaries, exclusive of the pipe characters themselves.
type segment struct {
	start, end int // [start, end) into source
}

// splitTopLevel scans source once, tracking quote and bracket-depth state,
// and returns the byte ranges between top-level '|' characters.
func splitTopLevel(source string) ([]segment, []Diagnostic) {
	var segments []segment
	var diags []Diagnostic

	inSingle, inDouble := false, false
	bracketDepth := 0
	segStart := 0

	runes := []byte(source)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			if c == '"' {
				inDouble = false
			}
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		case c == '[':
			bracketDepth++
		case c == ']':
			if bracketDepth > 0 {
				bracketDepth--
			}
		case c == '|' && bracketDepth == 0:
			segments = append(segments, segment{start: segStart, end: i})
			segStart = i + 1
		}
	}
	segments = append(segments, segment{start: segStart, end: len(runes)})

	if inSingle || inDouble {
		diags = append(diags, Diagnostic{Message: "unterminated quoted string", StartOffset: len(runes), Line: lineAt(source, len(runes))})
	}

	// Drop purely whitespace leading/trailing segments produced by e.g. a
	// source that starts or ends with '|'.
	var filtered []segment
	for _, s := range segments {
		if strings.TrimSpace(source[s.start:s.end]) == "" {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, diags
}

// buildStage turns one raw segment into a Stage: a command name plus its
// tokenized, offset-tagged arguments.
func buildStage(source string, seg segment) Stage {
	text := source[seg.start:seg.end]

	// Find the first run of non-whitespace as the command name.
	nameStart := seg.start
	for nameStart < seg.end && isSpace(source[nameStart]) {
		nameStart++
	}
	nameEnd := nameStart
	for nameEnd < seg.end && !isSpace(source[nameEnd]) {
		nameEnd++
	}

	stage := Stage{
		StartOffset: seg.start,
		EndOffset:   seg.end,
		StartLine:   lineAt(source, seg.start),
		EndLine:     lineAt(source, lastNonSpace(source, seg.start, seg.end)),
	}

	if nameStart >= nameEnd {
		// Whitespace-only segment; nothing to tokenize (should not occur
		// after splitTopLevel's filtering, but stay defensive).
		_ = text
		return stage
	}

	// Heuristic: if the first token looks like "key=value" rather than a
	// command keyword, treat the whole stage as an implicit "search" with
	// every token as an argument. We detect this by checking whether the
	// first token contains '=' (a search constraint) — a real command name
	// never does. A bare search term without '=' is not detected.
	if strings.ContainsRune(source[nameStart:nameEnd], '=') {
		stage.CommandName = "search"
		stage.Args = tokenizeArgs(source, seg.start, seg.end)
		return stage
	}

	stage.CommandName = source[nameStart:nameEnd]
	stage.Args = tokenizeArgs(source, nameEnd, seg.end)
	return stage
}

// tokenizeArgs splits source[start:end] into whitespace-delimited tokens,
// treating single- and double-quoted runs (and bracketed subsearch spans)
// as single tokens, and tags each with its byte offsets and line.
func tokenizeArgs(source string, start, end int) []ArgToken {
	var tokens []ArgToken
	i := start
	for i < end {
		for i < end && isSpace(source[i]) {
			i++
		}
		if i >= end {
			break
		}
		tokStart := i
		inSingle, inDouble := false, false
		bracketDepth := 0
		for i < end {
			c := source[i]
			switch {
			case inSingle:
				if c == '\'' {
					inSingle = false
				}
			case inDouble:
				if c == '"' {
					inDouble = false
				}
			case c == '\'':
				inSingle = true
			case c == '"':
				inDouble = true
			case c == '[':
				bracketDepth++
			case c == ']':
				if bracketDepth > 0 {
					bracketDepth--
				}
			case isSpace(c) && bracketDepth == 0:
				goto tokenDone
			}
			i++
		}
	tokenDone:
		tokens = append(tokens, ArgToken{
			Text:        source[tokStart:i],
			StartOffset: tokStart,
			EndOffset:   i,
			Line:        lineAt(source, tokStart),
		})
	}
	return tokens
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lineAt returns the 1-based line number of byte offset off in source.
func lineAt(source string, off int) int {
	if off > len(source) {
		off = len(source)
	}
	return 1 + strings.Count(source[:off], "\n")
}

// lastNonSpace returns the offset of the last non-whitespace byte in
// source[start:end), or start if the range is entirely whitespace.
func lastNonSpace(source string, start, end int) int {
	for i := end - 1; i >= start; i-- {
		if !isSpace(source[i]) {
			return i
		}
	}
	return start
}
