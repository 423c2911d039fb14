package pattern

// registerStatsCommands adds the aggregation family: stats, eventstats,
// streamstats, tstats, chart, timechart, top, rare, and transaction.
//
// stats, eventstats, streamstats, and tstats share the "one or more
// stats-func terms, optional AS override, optional BY field-list" shape;
// chart and timechart take stats-func terms with single-field over/by
// clauses, while top, rare, and transaction take plain group-by fields
// instead of stats-func terms. The stats-func param type's
// matching (including its optional trailing "as newname" clause) is owned
// by the interpreter package, not by these pattern declarations — see
// interpreter.matchStatsFunc.
func registerStatsCommands(b *Builder) {
	aggregationRoot := func() SyntaxPattern {
		return seq(
			plus(bare(ParamStatsFunc)),
			opt(seq(lit("by"), fieldList(EffectGroupsBy, QuantOne))),
		)
	}

	must(b.Register(CommandSyntax{
		Name:        "stats",
		Category:    "aggregation",
		Description: "Computes aggregate statistics over all events, optionally grouped by fields.",
		Related:     []string{"eventstats", "streamstats", "tstats"},
		Tags:        []string{"aggregation", "reporting"},
		Root:        aggregationRoot(),
	}))

	must(b.Register(CommandSyntax{
		Name:        "eventstats",
		Category:    "aggregation",
		Description: "Computes aggregate statistics and appends them to every event, instead of collapsing rows.",
		Related:     []string{"stats", "streamstats"},
		Tags:        []string{"aggregation"},
		Root:        aggregationRoot(),
	}))

	must(b.Register(CommandSyntax{
		Name:        "streamstats",
		Category:    "aggregation",
		Description: "Computes running/windowed aggregate statistics as events are streamed.",
		Related:     []string{"stats", "eventstats"},
		Tags:        []string{"aggregation"},
		Root: seq(
			opt(namedQ("window", ParamInt, QuantOptional)),
			aggregationRoot(),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "tstats",
		Category:    "aggregation",
		Description: "Computes statistics directly from tsidx-backed fields, usually from accelerated data models.",
		Related:     []string{"stats"},
		Tags:        []string{"aggregation", "datamodel"},
		Root: seq(
			opt(lit("prestats")),
			opt(seq(namedQ("summariesonly", ParamBool, QuantOptional))),
			aggregationRoot(),
			opt(seq(lit("from"), namedQ("datamodel", ParamString, QuantOptional))),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "chart",
		Category:    "aggregation",
		Description: "Computes statistics formatted for visualization, split over one or two fields.",
		Related:     []string{"timechart"},
		Tags:        []string{"aggregation", "reporting"},
		Root: seq(
			plus(bare(ParamStatsFunc)),
			opt(seq(lit("over"), field(EffectGroupsBy))),
			opt(seq(lit("by"), field(EffectGroupsBy))),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "timechart",
		Category:    "aggregation",
		Description: "Computes statistics bucketed over time, optionally split by a field.",
		Related:     []string{"chart"},
		Tags:        []string{"aggregation", "reporting", "time"},
		Root: seq(
			opt(namedQ("span", ParamTimeModifier, QuantOptional)),
			plus(bare(ParamStatsFunc)),
			opt(seq(lit("by"), field(EffectGroupsBy))),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "_time", DataType: TypeNumber}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "top",
		Category:    "aggregation",
		Description: "Finds the most common values of the listed fields.",
		Related:     []string{"rare"},
		Tags:        []string{"aggregation", "reporting"},
		Root: seq(
			opt(namedQ("limit", ParamInt, QuantOptional)),
			plus(field(EffectGroupsBy)),
			opt(seq(lit("by"), fieldList(EffectGroupsBy, QuantOne))),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "count", DataType: TypeNumber}, {Name: "percent", DataType: TypeNumber}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "rare",
		Category:    "aggregation",
		Description: "Finds the least common values of the listed fields.",
		Related:     []string{"top"},
		Tags:        []string{"aggregation", "reporting"},
		Root: seq(
			plus(field(EffectGroupsBy)),
			opt(seq(lit("by"), fieldList(EffectGroupsBy, QuantOne))),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "count", DataType: TypeNumber}, {Name: "percent", DataType: TypeNumber}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "transaction",
		Category:    "aggregation",
		Description: "Groups events sharing field values (and temporal proximity) into multi-event transactions.",
		Tags:        []string{"aggregation", "grouping"},
		Root: seq(
			plus(field(EffectGroupsBy)),
			opt(namedQ("maxspan", ParamTimeModifier, QuantOptional)),
			opt(namedQ("maxpause", ParamTimeModifier, QuantOptional)),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{
				{Name: "duration", DataType: TypeNumber},
				{Name: "eventcount", DataType: TypeNumber},
			}
		},
	}))
}
