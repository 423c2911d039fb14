package pattern

// registerMiscCommands adds the remaining commands needed to round out the
// coverage floor and a handful of commonly seen commands not already
// covered by the filter/stats/lookup/risky groups.
func registerMiscCommands(b *Builder) {
	must(b.Register(CommandSyntax{
		Name:        "bin",
		Category:    "fields",
		Description: "Buckets a numeric or time field into discrete ranges, in place.",
		Tags:        []string{"fields", "bucketing"},
		Root: seq(
			opt(namedQ("span", ParamTimeModifier, QuantOptional)),
			field(EffectModifies),
		),
	}))
	// bucket is the classic alias for bin; both names resolve to the same
	// *CommandSyntax object.
	must(b.Alias("bucket", "bin"))

	must(b.Register(CommandSyntax{
		Name:        "fieldsummary",
		Category:    "reporting",
		Description: "Produces summary statistics (count, distinct count, min/max) for every field in the live set.",
		Tags:        []string{"reporting"},
		Root:        star(field(EffectConsumes)),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{
				{Name: "field", DataType: TypeString},
				{Name: "count", DataType: TypeNumber},
				{Name: "distinct_count", DataType: TypeNumber},
			}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "erex",
		Category:    "fields",
		Description: "Learns a regular expression to extract a field from examples, then applies it.",
		Tags:        []string{"fields", "extraction"},
		Root: seq(
			field(EffectCreates),
			opt(seq(lit("examples"), namedQ("examples", ParamString, QuantOptional))),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "foreach",
		Category:    "fields",
		Description: "Repeats a templated sub-pipeline once per field matching a wildcard.",
		Tags:        []string{"fields", "iteration"},
		Root: seq(
			wcField(EffectConsumes),
			seqQ(QuantOneOrMore, evaledField("subpipeline", EffectConsumes)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "xyseries",
		Category:    "reporting",
		Description: "Reshapes results from a list of fields into an x/y/series table.",
		Tags:        []string{"reporting", "reshaping"},
		Root: seq(
			field(EffectGroupsBy),
			field(EffectGroupsBy),
			opt(fieldList(EffectConsumes, QuantOne)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "untable",
		Category:    "reporting",
		Description: "Converts a table of x/y/series columns back into rows (inverse of xyseries).",
		Related:     []string{"xyseries"},
		Tags:        []string{"reporting", "reshaping"},
		Root: seq(
			field(EffectConsumes),
			field(EffectCreates),
			field(EffectCreates),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "multisearch",
		Category:    "generating",
		Description: "Runs several subsearches concurrently and interleaves their results.",
		Tags:        []string{"generating", "subsearch"},
		Root:        plus(bare(ParamString)),
	}))
}
