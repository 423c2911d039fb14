package analyze

import (
	"testing"

	"splqlineage/internal/lineage"
	"splqlineage/internal/pattern"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	reg := pattern.BuildDefault()
	a := New(reg)
	result := a.Analyze("index=main | iplocation clientip | rename city as client_city | fields + client_city, country")

	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	live := result.Lineage.ListFields(nil)
	if len(live) != 2 {
		t.Fatalf("expected 2 live fields, got %v", live)
	}
	n, ok := result.Lineage.GetFieldLineage("client_city")
	if !ok {
		t.Fatalf("expected client_city to be live")
	}
	if n.DependsOn[0] != "city" {
		t.Fatalf("expected client_city to depend on city, got %v", n.DependsOn)
	}
}

func TestAnalyzeTokenizerDiagnosticSurfacesAsWarning(t *testing.T) {
	reg := pattern.BuildDefault()
	a := New(reg)
	result := a.Analyze(`search message="unterminated`)

	found := false
	for _, d := range result.Diagnostics {
		if d.Severity == lineage.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unterminated-quote diagnostic to surface as a warning, got %v", result.Diagnostics)
	}
}

func TestAnalyzeEmptySourceProducesEmptyResult(t *testing.T) {
	reg := pattern.BuildDefault()
	a := New(reg)
	result := a.Analyze("")
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", result.Diagnostics)
	}
	if len(result.Lineage.Stages()) != 0 {
		t.Fatalf("expected no stages, got %v", result.Lineage.Stages())
	}
}

func TestAnalyzerStagesReturnsTokenizedStages(t *testing.T) {
	reg := pattern.BuildDefault()
	a := New(reg)
	stages, diags := a.Stages("index=main | stats count")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
}
