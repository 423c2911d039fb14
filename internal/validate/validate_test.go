package validate

import (
	"strings"
	"testing"

	"splqlineage/internal/pattern"
)

func TestCommandMissingName(t *testing.T) {
	r := Command(&pattern.CommandSyntax{Root: pattern.Literal{Value: "x"}})
	if r.Valid {
		t.Fatalf("expected invalid result for missing name")
	}
	mustContain(t, r.Errors, "missing a name")
}

func TestCommandNilRoot(t *testing.T) {
	r := Command(&pattern.CommandSyntax{Name: "foo"})
	if r.Valid {
		t.Fatalf("expected invalid result for nil root")
	}
	mustContain(t, r.Errors, "no root pattern")
}

func TestCommandRecursionLimit(t *testing.T) {
	var deep pattern.SyntaxPattern = pattern.Literal{Value: "leaf"}
	for i := 0; i <= pattern.MaxPatternDepth+1; i++ {
		deep = pattern.Group{Pattern: deep, Quantifier: pattern.QuantOptional}
	}
	r := Command(&pattern.CommandSyntax{Name: "deep", Root: deep})
	if r.Valid {
		t.Fatalf("expected recursion limit to invalidate the command")
	}
	mustContain(t, r.Errors, pattern.ErrRecursionLimit.Error())
}

func TestTypedParamFieldLikeWithoutEffectWarns(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.TypedParam{ParamType: pattern.ParamField},
	})
	if !r.Valid {
		t.Fatalf("a missing field_effect is a warning, not an error: %v", r.Errors)
	}
	mustContain(t, r.Warnings, "no declared field_effect")
}

func TestTypedParamUnknownKindsFail(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.TypedParam{ParamType: "bogus", Quantifier: "bogus", Effect: "bogus"},
	})
	if r.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(r.Errors) != 3 {
		t.Fatalf("expected three distinct errors (param type, quantifier, effect), got %d: %v", len(r.Errors), r.Errors)
	}
}

func TestSequenceZeroChildrenFails(t *testing.T) {
	r := Command(&pattern.CommandSyntax{Name: "foo", Root: pattern.Sequence{}})
	if r.Valid {
		t.Fatalf("expected invalid result for empty sequence")
	}
	mustContain(t, r.Errors, "zero children")
}

func TestSequenceSingleChildWarns(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.Sequence{Patterns: []pattern.SyntaxPattern{pattern.Literal{Value: "x"}}},
	})
	if !r.Valid {
		t.Fatalf("expected valid result, got errors: %v", r.Errors)
	}
	mustContain(t, r.Warnings, "redundant wrapper")
}

func TestSequenceNilChildFails(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.Sequence{Patterns: []pattern.SyntaxPattern{nil, pattern.Literal{Value: "x"}}},
	})
	if r.Valid {
		t.Fatalf("expected invalid result for nil sequence child")
	}
	mustContain(t, r.Errors, "nil child pattern")
}

func TestAlternationDuplicateOptionWarns(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.Alternation{Options: []pattern.SyntaxPattern{
			pattern.Literal{Value: "x"},
			pattern.Literal{Value: "x"},
		}},
	})
	if !r.Valid {
		t.Fatalf("expected valid result, got errors: %v", r.Errors)
	}
	mustContain(t, r.Warnings, "duplicate option")
}

func TestAlternationNoOptionsFails(t *testing.T) {
	r := Command(&pattern.CommandSyntax{Name: "foo", Root: pattern.Alternation{}})
	if r.Valid {
		t.Fatalf("expected invalid result for empty alternation")
	}
	mustContain(t, r.Errors, "no options")
}

func TestGroupNoQuantifierWarns(t *testing.T) {
	r := Command(&pattern.CommandSyntax{
		Name: "foo",
		Root: pattern.Group{Pattern: pattern.Literal{Value: "x"}},
	})
	if !r.Valid {
		t.Fatalf("expected valid result, got errors: %v", r.Errors)
	}
	mustContain(t, r.Warnings, "redundant wrapper")
}

func TestRegistryValidatesEveryBuiltin(t *testing.T) {
	reg := pattern.BuildDefault()
	results := Registry(reg)
	for name, r := range results {
		if !r.Valid {
			t.Errorf("builtin command %q failed validation: %v", name, r.Errors)
		}
	}
}

func mustContain(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Fatalf("expected one of %v to contain %q", msgs, substr)
}
