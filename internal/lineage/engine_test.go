package lineage

import (
	"sort"
	"strconv"
	"strings"
	"testing"

	"splqlineage/internal/pattern"
	"splqlineage/internal/spl"
)

func run(t *testing.T, source string) (*Index, []Diagnostic) {
	t.Helper()
	stages, tokDiags := spl.Tokenize(source)
	if len(tokDiags) != 0 {
		t.Fatalf("unexpected tokenizer diagnostics: %v", tokDiags)
	}
	eng := New(pattern.BuildDefault())
	return eng.Run(stages)
}

func deps(idx *Index, field string) []string {
	d := idx.GetDependencies(field)
	sort.Strings(d)
	return d
}

func TestEngineIplocationBasic(t *testing.T) {
	idx, diags := run(t, "index=main | iplocation clientip")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	live := idx.ListFields(nil)
	for _, want := range []string{"city", "country", "region", "lat", "lon"} {
		found := false
		for _, f := range live {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q in live fields, got %v", want, live)
		}
		n, ok := idx.GetFieldLineage(want)
		if !ok {
			t.Fatalf("expected %q to have a lineage record", want)
		}
		if len(n.DependsOn) != 1 || n.DependsOn[0] != "clientip" {
			t.Fatalf("%q: expected depends_on={clientip}, got %v", want, n.DependsOn)
		}
	}
	city, _ := idx.GetFieldLineage("city")
	if city.DataType != pattern.TypeString {
		t.Fatalf("expected city to be type string, got %s", city.DataType)
	}
	lat, _ := idx.GetFieldLineage("lat")
	if lat.DataType != pattern.TypeNumber {
		t.Fatalf("expected lat to be type number, got %s", lat.DataType)
	}
}

func TestEngineIplocationPrefixedNoCrossDependency(t *testing.T) {
	idx, diags := run(t, "index=main | iplocation prefix=src_ src_ip | iplocation prefix=dest_ dest_ip")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	live := idx.ListFields(nil)
	geoCount := 0
	for _, f := range live {
		if strings.HasPrefix(f, "src_") || strings.HasPrefix(f, "dest_") {
			geoCount++
		}
	}
	if geoCount != 10 {
		t.Fatalf("expected 10 geo fields, got %d: %v", geoCount, live)
	}
	if got := deps(idx, "src_city"); len(got) != 1 || got[0] != "src_ip" {
		t.Fatalf("expected src_city to depend only on src_ip, got %v", got)
	}
	if got := deps(idx, "dest_city"); len(got) != 1 || got[0] != "dest_ip" {
		t.Fatalf("expected dest_city to depend only on dest_ip, got %v", got)
	}
}

// Second iplocation call on the same geo fields overwrites the first's lineage.
func TestEngineIplocationOverwrite(t *testing.T) {
	idx, diags := run(t, "index=main | iplocation ip1 | iplocation ip2")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got := deps(idx, "city"); len(got) != 1 || got[0] != "ip2" {
		t.Fatalf("expected city to depend on ip2 (last write wins), got %v", got)
	}
	live := idx.ListFields(nil)
	count := 0
	for _, f := range live {
		if f == "city" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected city to appear exactly once in the live set, got %d", count)
	}
}

func TestEngineRenameChainTransitiveDependency(t *testing.T) {
	idx, diags := run(t, "index=main | iplocation clientip | rename city as client_city")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if _, ok := idx.GetFieldLineage("city"); ok {
		t.Fatalf("expected city to no longer be live after rename")
	}
	n, ok := idx.GetFieldLineage("client_city")
	if !ok {
		t.Fatalf("expected client_city to be live")
	}
	if len(n.DependsOn) != 1 || n.DependsOn[0] != "city" {
		t.Fatalf("expected client_city.depends_on={city}, got %v", n.DependsOn)
	}
	trans := idx.GetTransitiveDependencies("client_city")
	found := false
	for _, d := range trans {
		if d == "clientip" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected client_city's transitive dependencies to include clientip, got %v", trans)
	}
}

func TestEngineStatsGroupBy(t *testing.T) {
	idx, diags := run(t, "index=main | stats count by country")
	if len(diags) == 0 {
		t.Fatalf("expected a dangling-reference diagnostic for country (never live before stats)")
	}
	n, ok := idx.GetFieldLineage("count")
	if !ok {
		t.Fatalf("expected count to be live")
	}
	if len(n.DependsOn) != 0 {
		t.Fatalf("expected count to have no dependencies, got %v", n.DependsOn)
	}
	summary, ok := idx.GetStageSummary(1)
	if !ok {
		t.Fatalf("expected a summary for the stats stage")
	}
	if len(summary.GroupKeys) != 1 || summary.GroupKeys[0] != "country" {
		t.Fatalf("expected country as the sole group key, got %v", summary.GroupKeys)
	}
	found := false
	for _, c := range summary.Consumed {
		if c == "country" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected country to be recorded as consumed, got %v", summary.Consumed)
	}
	live := idx.ListFields(nil)
	if len(live) != 1 || live[0] != "count" {
		t.Fatalf("expected only count to be live after stats, got %v", live)
	}
}

func TestEngineWildcardRenamePropagatesPerField(t *testing.T) {
	idx, diags := run(t, "index=main | iplocation prefix=src_ src_ip | rename src_* as origin_*")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	for _, old := range []string{"src_city", "src_country", "src_region", "src_lat", "src_lon"} {
		if _, ok := idx.GetFieldLineage(old); ok {
			t.Fatalf("expected %q to no longer be live after the wildcard rename", old)
		}
	}
	for _, suffix := range []string{"city", "country", "region", "lat", "lon"} {
		name := "origin_" + suffix
		n, ok := idx.GetFieldLineage(name)
		if !ok {
			t.Fatalf("expected %q to be live after the wildcard rename", name)
		}
		want := "src_" + suffix
		if len(n.DependsOn) != 1 || n.DependsOn[0] != want {
			t.Fatalf("expected %q to depend on %q, got %v", name, want, n.DependsOn)
		}
	}
}

func TestEngineFieldsPlusRestrictsLiveSet(t *testing.T) {
	idx, _ := run(t, "index=main | iplocation clientip | fields + city, country")
	live := idx.ListFields(nil)
	sort.Strings(live)
	if len(live) != 2 || live[0] != "city" || live[1] != "country" {
		t.Fatalf("expected live set restricted to {city, country}, got %v", live)
	}
}

func TestEngineFieldsMinusDropsListed(t *testing.T) {
	idx, _ := run(t, "index=main | iplocation clientip | fields - lat, lon")
	if _, ok := idx.GetFieldLineage("lat"); ok {
		t.Fatalf("expected lat to be dropped")
	}
	if _, ok := idx.GetFieldLineage("city"); !ok {
		t.Fatalf("expected city to remain live")
	}
}

func TestEngineUnknownCommandPassesThroughWithInfoDiagnostic(t *testing.T) {
	idx, diags := run(t, "index=main | totallyfakecommand foo")
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Severity != SeverityInfo {
		t.Fatalf("expected info severity for an unknown command, got %s", diags[0].Severity)
	}
	summary, ok := idx.GetStageSummary(1)
	if !ok {
		t.Fatalf("expected a stage summary to still be recorded")
	}
	if summary.CommandName != "totallyfakecommand" {
		t.Fatalf("unexpected command name %q", summary.CommandName)
	}
}

func TestEngineEmptySourceProducesNoStagesOrDiagnostics(t *testing.T) {
	idx, diags := run(t, "")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for empty source, got %v", diags)
	}
	if len(idx.Stages()) != 0 {
		t.Fatalf("expected no stages for empty source, got %v", idx.Stages())
	}
}

func TestEngineSearchOnlyNoPipeSourceIsOneStageNoEvents(t *testing.T) {
	idx, diags := run(t, "index=main status=500")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	stages := idx.Stages()
	if len(stages) != 1 {
		t.Fatalf("expected exactly one stage, got %d", len(stages))
	}
	if len(idx.ListFields(nil)) != 0 {
		t.Fatalf("expected no live fields from a bare search expression")
	}
}

func TestEngineIplocationChainOfTenProducesFiftyGeoFields(t *testing.T) {
	source := "index=main"
	for i := 1; i <= 10; i++ {
		source += " | iplocation prefix=ip" + strconv.Itoa(i) + "_ ip" + strconv.Itoa(i)
	}
	idx, diags := run(t, source)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	live := idx.ListFields(nil)
	if len(live) != 50 {
		t.Fatalf("expected 50 geo fields from a chain of 10 iplocation calls, got %d: %v", len(live), live)
	}
}

func TestEngineIplocationEmptyPrefixUsesUnprefixedNames(t *testing.T) {
	idx, _ := run(t, "index=main | iplocation prefix= clientip")
	if _, ok := idx.GetFieldLineage("city"); !ok {
		t.Fatalf("expected an empty prefix= to fall back to unprefixed geo names")
	}
}

