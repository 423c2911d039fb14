package spl

import "testing"

func TestTokenizeImplicitLeadingSearch(t *testing.T) {
	stages, diags := Tokenize("index=main status=500 | stats count")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	if stages[0].CommandName != "search" {
		t.Fatalf("expected implicit leading stage to be named search, got %q", stages[0].CommandName)
	}
	if len(stages[0].Args) != 2 {
		t.Fatalf("expected 2 args in implicit search stage, got %d: %v", len(stages[0].Args), stages[0].Args)
	}
	if stages[1].CommandName != "stats" {
		t.Fatalf("expected second stage to be stats, got %q", stages[1].CommandName)
	}
}

func TestTokenizeExplicitSearchKeyword(t *testing.T) {
	stages, _ := Tokenize("search index=main | head 10")
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	if stages[0].CommandName != "search" {
		t.Fatalf("expected explicit search command, got %q", stages[0].CommandName)
	}
}

func TestTokenizeEmptySource(t *testing.T) {
	stages, diags := Tokenize("")
	if stages != nil {
		t.Fatalf("expected nil stages for empty source, got %v", stages)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for empty source, got %v", diags)
	}
}

func TestTokenizeWhitespaceOnlySource(t *testing.T) {
	stages, _ := Tokenize("   \n\t  ")
	if stages != nil {
		t.Fatalf("expected nil stages for whitespace-only source, got %v", stages)
	}
}

func TestTokenizeQuotedPipeIsNotABoundary(t *testing.T) {
	stages, _ := Tokenize(`search message="a|b" | head 1`)
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d: %v", len(stages), stages)
	}
}

func TestTokenizeBracketedSubsearchPipeIsNotABoundary(t *testing.T) {
	stages, _ := Tokenize("search [search index=other | head 1] | stats count")
	if len(stages) != 2 {
		t.Fatalf("expected subsearch's internal pipe to stay opaque, got %d stages: %v", len(stages), stages)
	}
	if stages[1].CommandName != "stats" {
		t.Fatalf("expected second top-level stage to be stats, got %q", stages[1].CommandName)
	}
}

func TestTokenizeUnterminatedQuoteReportsDiagnostic(t *testing.T) {
	_, diags := Tokenize(`search message="unterminated`)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
}

func TestTokenizeStageOffsetsCoverCommandAndArgs(t *testing.T) {
	source := "search a=1 | stats count by b"
	stages, _ := Tokenize(source)
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	statsStage := stages[1]
	if source[statsStage.StartOffset:statsStage.EndOffset] != " stats count by b" {
		t.Fatalf("unexpected stage text: %q", source[statsStage.StartOffset:statsStage.EndOffset])
	}
}

func TestTokenizeArgsTrackLineNumbers(t *testing.T) {
	source := "search a=1\n| stats count\n| head 1"
	stages, _ := Tokenize(source)
	if len(stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(stages))
	}
	if stages[1].StartLine != 2 {
		t.Fatalf("expected stats stage to start on line 2, got %d", stages[1].StartLine)
	}
	if stages[2].StartLine != 3 {
		t.Fatalf("expected head stage to start on line 3, got %d", stages[2].StartLine)
	}
}

func TestTokenizeLeadingPipeHasNoImplicitSearch(t *testing.T) {
	stages, _ := Tokenize("| stats count")
	if len(stages) != 1 {
		t.Fatalf("expected exactly 1 stage, got %d: %v", len(stages), stages)
	}
	if stages[0].CommandName != "stats" {
		t.Fatalf("expected stats, got %q", stages[0].CommandName)
	}
}
