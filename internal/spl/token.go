// Package spl provides the mechanical front door the rest of this module
// relies on: splitting raw SPL source text into top-level pipeline stages
// and, within each stage, into argument tokens tagged with their byte
// offset and line. It is deliberately thin — the grammar and lineage
// semantics live in the pattern, interpreter, and lineage packages.
package spl

// ArgToken is one argument token within a stage, tagged with its source
// position. StartOffset/EndOffset are byte offsets into the original
// source; EndOffset is exclusive. Line is the 1-based line of the token's
// first byte.
type ArgToken struct {
	Text        string
	StartOffset int
	EndOffset   int
	Line        int
}

// Stage is one top-level pipeline stage: a command name plus its ordered
// argument tokens. StartOffset/EndOffset bound the whole stage including
// its command name and leading pipe whitespace, but not the leading "|"
// token itself. They are exclusive on the end, unlike the inclusive Span
// the risky package builds from them.
type Stage struct {
	CommandName string
	Args        []ArgToken
	StartOffset int
	EndOffset   int
	StartLine   int
	EndLine     int
}
