package risky

import (
	"strings"
	"testing"
)

func TestDefaultPolicyIsMinimal(t *testing.T) {
	p := DefaultPolicy()
	if !p["collect"] || !p["outputlookup"] {
		t.Fatalf("expected collect and outputlookup in the default policy, got %v", p)
	}
	if len(p) != 2 {
		t.Fatalf("expected exactly 2 entries in the default policy, got %d: %v", len(p), p)
	}
}

func TestFullPolicySupersetsDefault(t *testing.T) {
	full := FullPolicy()
	for name := range DefaultPolicy() {
		if !full[name] {
			t.Fatalf("expected FullPolicy to include %q", name)
		}
	}
	for _, name := range []string{"outputcsv", "sendemail", "script", "delete", "summaryindex"} {
		if !full[name] {
			t.Fatalf("expected FullPolicy to include %q", name)
		}
	}
}

func TestStageDetectorRemovesMiddleRiskyStage(t *testing.T) {
	source := "search index=test | collect index=summary | search index=main"
	d := NewStageDetector(nil)
	report := d.Detect(source)

	if !report.HasRisky {
		t.Fatalf("expected HasRisky to be true")
	}
	if len(report.Commands) != 1 {
		t.Fatalf("expected exactly one risky command, got %d: %+v", len(report.Commands), report.Commands)
	}
	if report.Commands[0].CommandName != "collect" {
		t.Fatalf("expected collect, got %q", report.Commands[0].CommandName)
	}
	if len(report.UniqueNames) != 1 || report.UniqueNames[0] != "collect" {
		t.Fatalf("expected UniqueNames={collect}, got %v", report.UniqueNames)
	}

	cleaned := Remove(source, report.Commands)
	if strings.Contains(cleaned, "collect") {
		t.Fatalf("expected collect to be fully removed, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "search index=test") || !strings.Contains(cleaned, "search index=main") {
		t.Fatalf("expected both search stages to survive, got %q", cleaned)
	}

	reDetect := d.Detect(cleaned)
	if reDetect.HasRisky {
		t.Fatalf("expected re-detection on cleaned text to find nothing, got %+v", reDetect)
	}
}

func TestStageAndRegexDetectorsAgreeOnWellFormedSPL(t *testing.T) {
	sources := []string{
		"search index=test | collect index=summary | search index=main",
		"search index=main | stats count by host | outputlookup hosts.csv",
		"search index=main | eval x=1 | table x",
		"search index=main | sendemail to=a@b.com | script run.py",
	}
	for _, src := range sources {
		stage := NewStageDetector(FullPolicy()).Detect(src)
		regex := NewRegexDetector(FullPolicy()).Detect(src)
		if stage.HasRisky != regex.HasRisky {
			t.Fatalf("%q: HasRisky mismatch: stage=%v regex=%v", src, stage.HasRisky, regex.HasRisky)
		}
		if len(stage.Commands) != len(regex.Commands) {
			t.Fatalf("%q: command count mismatch: stage=%d regex=%d", src, len(stage.Commands), len(regex.Commands))
		}
		for i := range stage.Commands {
			if stage.Commands[i].CommandName != regex.Commands[i].CommandName {
				t.Errorf("%q: command[%d] mismatch: stage=%q regex=%q", src, i, stage.Commands[i].CommandName, regex.Commands[i].CommandName)
			}
		}
	}
}

func TestRemoveNoRiskySpansReturnsNormalizedSource(t *testing.T) {
	source := "search index=main | stats count  \n"
	got := Remove(source, nil)
	want := "search index=main | stats count"
	if got != want {
		t.Fatalf("expected normalized no-op, got %q want %q", got, want)
	}
}

func TestRemoveConsecutiveRiskyStages(t *testing.T) {
	source := "search index=main | collect index=a | outputlookup b.csv | stats count"
	d := NewStageDetector(FullPolicy())
	report := d.Detect(source)
	if len(report.Commands) != 2 {
		t.Fatalf("expected 2 risky spans, got %d: %+v", len(report.Commands), report.Commands)
	}
	cleaned := Remove(source, report.Commands)
	if strings.Contains(cleaned, "collect") || strings.Contains(cleaned, "outputlookup") {
		t.Fatalf("expected both risky stages removed, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "search index=main") || !strings.Contains(cleaned, "stats count") {
		t.Fatalf("expected the surviving stages to remain, got %q", cleaned)
	}
}

func TestRemoveRiskyStageAtPipelineEnd(t *testing.T) {
	source := "search index=main | stats count | collect index=a"
	d := NewStageDetector(nil)
	report := d.Detect(source)
	cleaned := Remove(source, report.Commands)
	if strings.Contains(cleaned, "collect") {
		t.Fatalf("expected collect to be removed, got %q", cleaned)
	}
	if strings.HasSuffix(strings.TrimRight(cleaned, " \t\n"), "|") {
		t.Fatalf("expected no dangling trailing pipe, got %q", cleaned)
	}
}

func TestRemoveRiskyStageAtPipelineStart(t *testing.T) {
	source := "collect index=a | stats count"
	d := NewStageDetector(nil)
	report := d.Detect(source)
	cleaned := Remove(source, report.Commands)
	if strings.Contains(cleaned, "collect") {
		t.Fatalf("expected collect to be removed, got %q", cleaned)
	}
	if strings.HasPrefix(strings.TrimLeft(cleaned, " \t\n"), "|") {
		t.Fatalf("expected no dangling leading pipe, got %q", cleaned)
	}
}
