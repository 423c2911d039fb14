package lineage

import "sort"

// Index is the fold's accumulated result: the live field set, every
// field's most recent record (live or historical, for dependency
// traversal after a drop or rename), and a per-stage summary trail.
type Index struct {
	live    map[string]*Node
	history map[string]*Node
	stages  []StageSummary
	// liveSnapshots[i] is the sorted list of live field names immediately
	// after stage i was applied, used by ListFields(stageIndex).
	liveSnapshots [][]string
}

func newIndex() *Index {
	return &Index{live: map[string]*Node{}, history: map[string]*Node{}}
}

// GetFieldLineage returns the field's current live node, or false if the
// field is not currently live (it may still have history).
func (idx *Index) GetFieldLineage(name string) (*Node, bool) {
	n, ok := idx.live[name]
	return n, ok
}

// GetDependencies returns the direct depends_on set of name's most recent
// known record (live or historical), sorted.
func (idx *Index) GetDependencies(name string) []string {
	n, ok := idx.history[name]
	if !ok {
		return nil
	}
	out := append([]string{}, n.DependsOn...)
	sort.Strings(out)
	return out
}

// GetTransitiveDependencies walks the depends_on chain of name's most
// recent known record to its full closure, sorted. A field that was
// overwritten only contributes its latest dependency set — the second
// creation wins, and the prior lineage is not chained through it.
func (idx *Index) GetTransitiveDependencies(name string) []string {
	seen := map[string]bool{}
	var walk func(string)
	walk = func(n string) {
		rec, ok := idx.history[n]
		if !ok {
			return
		}
		for _, dep := range rec.DependsOn {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			walk(dep)
		}
	}
	walk(name)
	out := make([]string, 0, len(seen))
	for dep := range seen {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// ListFields returns the live field set at the end of the pipeline, or
// (if stageIndex is non-nil) the live field set immediately after the
// given stage index. An out-of-range stageIndex returns nil.
func (idx *Index) ListFields(stageIndex *int) []string {
	if stageIndex == nil {
		return idx.liveNamesSorted()
	}
	i := *stageIndex
	if i < 0 || i >= len(idx.liveSnapshots) {
		return nil
	}
	return append([]string{}, idx.liveSnapshots[i]...)
}

func (idx *Index) liveNamesSorted() []string {
	out := make([]string, 0, len(idx.live))
	for name := range idx.live {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Stages returns every stage summary in pipeline order.
func (idx *Index) Stages() []StageSummary {
	return append([]StageSummary{}, idx.stages...)
}

// GetStageSummary returns the summary for stage i, or false if out of
// range.
func (idx *Index) GetStageSummary(i int) (StageSummary, bool) {
	if i < 0 || i >= len(idx.stages) {
		return StageSummary{}, false
	}
	return idx.stages[i], true
}

func (idx *Index) snapshot() {
	idx.liveSnapshots = append(idx.liveSnapshots, idx.liveNamesSorted())
}
