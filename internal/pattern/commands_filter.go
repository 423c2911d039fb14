package pattern

// registerFilterCommands adds the filtering/shaping/field-manipulation
// commands: the ones that reorder, restrict, or rewrite the live field set
// without aggregating rows.
func registerFilterCommands(b *Builder) {
	must(b.Register(CommandSyntax{
		Name:        "search",
		Category:    "filtering",
		Description: "Filters events against search terms and field/value expressions.",
		Related:     []string{"where"},
		Tags:        []string{"generating", "filtering"},
		// A bare search clause has no declared effect: it restricts rows,
		// it does not read or write named fields in the lineage sense.
		Root: star(bare(ParamEvaledField)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "where",
		Category:    "filtering",
		Description: "Filters events using a boolean evaluated expression.",
		Related:     []string{"search"},
		Tags:        []string{"filtering"},
		Root:        evaledField("predicate", EffectConsumes),
	}))

	must(b.Register(CommandSyntax{
		Name:        "sort",
		Category:    "filtering",
		Description: "Sorts events by one or more fields, ascending or descending.",
		Tags:        []string{"filtering", "ordering"},
		Root: seq(
			opt(namedQ("count", ParamInt, QuantOptional)),
			plus(seq(opt(alt(lit("+"), lit("-"))), field(EffectConsumes))),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "dedup",
		Category:    "filtering",
		Description: "Removes duplicate events sharing the same combination of field values.",
		Tags:        []string{"filtering"},
		Root: seq(
			plus(field(EffectConsumes)),
			opt(lit("keepevents")),
			opt(lit("keepempty")),
			opt(lit("consecutive")),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "head",
		Category:    "filtering",
		Description: "Keeps only the first N events.",
		Tags:        []string{"filtering"},
		Root:        opt(bare(ParamInt)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "tail",
		Category:    "filtering",
		Description: "Keeps only the last N events.",
		Tags:        []string{"filtering"},
		Root:        opt(bare(ParamInt)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "table",
		Category:    "fields",
		Description: "Projects events down to the listed fields, in the listed order.",
		Related:     []string{"fields"},
		Tags:        []string{"fields"},
		Root:        plus(alt(wcField(EffectConsumes), field(EffectConsumes))),
	}))

	must(b.Register(CommandSyntax{
		Name:        "fields",
		Category:    "fields",
		Description: "Keeps (+) or drops (-) the listed fields from the live set.",
		Related:     []string{"table"},
		Tags:        []string{"fields"},
		// Three shapes: "+ list" (keep-only, restricts the whole live set in
		// the Lineage Engine), "- list" (drop exactly these), and a bare list
		// which defaults to "+" semantics. See the lineage package for the
		// restrict-to-listed handling keyed on the "+"/bare case.
		Root: alt(
			seq(lit("+"), fieldList(EffectConsumes, QuantOne)),
			seq(lit("-"), fieldList(EffectDrops, QuantOne)),
			fieldList(EffectConsumes, QuantOne),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "rename",
		Category:    "fields",
		Description: "Renames a field (or a wildcarded group of fields) in the live set.",
		Tags:        []string{"fields"},
		// The lineage engine pairs the drops+creates events of a rename
		// stage to compute the new node's dependency, and for the
		// wildcard form propagates each matched segment individually.
		Root: alt(
			seq(wcField(EffectDrops), lit("as"), wcField(EffectCreates)),
			seq(field(EffectDrops), lit("as"), field(EffectCreates)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "eval",
		Category:    "fields",
		Description: "Computes a new or existing field from an expression.",
		Tags:        []string{"fields", "computation"},
		// Requires whitespace around "=": the tokenizer splits on spaces, so
		// "x=y" arrives as one token and is read as a field literally named
		// "x=y" rather than an assignment to x. Full expression parsing
		// (needed to split "=" out of an unspaced assignment) is out of scope.
		Root: plus(seq(
			namedEffect("field", ParamField, EffectCreates),
			lit("="),
			evaledField("expr", EffectConsumes),
		)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "rex",
		Category:    "fields",
		Description: "Extracts one or more fields from a source field using a regular expression.",
		Tags:        []string{"fields", "extraction"},
		Root: seq(
			opt(namedQ("field", ParamField, QuantOptional)),
			namedEffect("mode", ParamString, ""),
		),
		// rex's created fields are the regex's named capture groups, which
		// are not statically known from the pattern shape; Implicit
		// conservatively records a single opaque placeholder field,
		// "<rex-capture-groups>", depending on the source field.
		Implicit: func(bound map[string]string) []ImplicitField {
			src := bound["field"]
			if src == "" {
				src = "_raw"
			}
			return []ImplicitField{{Name: "<rex-capture-groups>", DependsOn: []string{src}, DataType: TypeString}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "kv",
		Category:    "fields",
		Description: "Automatically extracts field/value pairs from event text (aliased as extract).",
		Tags:        []string{"fields", "extraction"},
		Related:     []string{"extract"},
		Root:        opt(namedQ("pairdelim", ParamString, QuantOptional)),
	}))
	must(b.Alias("extract", "kv"))

	must(b.Register(CommandSyntax{
		Name:        "spath",
		Category:    "fields",
		Description: "Extracts a field from structured (XML/JSON) event data using a path expression.",
		Tags:        []string{"fields", "extraction"},
		Root: seq(
			opt(namedEffect("output", ParamField, EffectCreates)),
			opt(namedEffect("input", ParamField, EffectConsumes)),
			opt(namedQ("path", ParamString, QuantOptional)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "fillnull",
		Category:    "fields",
		Description: "Replaces null/missing values in the named fields with a fixed value.",
		Tags:        []string{"fields"},
		Root: seq(
			opt(namedQ("value", ParamString, QuantOptional)),
			star(field(EffectModifies)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "makemv",
		Category:    "fields",
		Description: "Converts a single-value field into a multivalue field by splitting on a delimiter.",
		Tags:        []string{"fields"},
		Root: seq(
			opt(namedQ("delim", ParamString, QuantOptional)),
			field(EffectModifies),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "mvexpand",
		Category:    "fields",
		Description: "Expands a multivalue field into one event per value.",
		Tags:        []string{"fields"},
		Root:        seq(field(EffectModifies), opt(namedQ("limit", ParamInt, QuantOptional))),
	}))

	must(b.Register(CommandSyntax{
		Name:        "mvcombine",
		Category:    "fields",
		Description: "Combines events sharing all other field values into one event with a multivalue field.",
		Tags:        []string{"fields"},
		Root:        field(EffectModifies),
	}))

	must(b.Register(CommandSyntax{
		Name:        "nomv",
		Category:    "fields",
		Description: "Converts a multivalue field back into a single-value field.",
		Tags:        []string{"fields"},
		Root:        field(EffectModifies),
	}))

	must(b.Register(CommandSyntax{
		Name:        "convert",
		Category:    "fields",
		Description: "Converts field values between data types/formats (e.g. ctime, num, dur2sec).",
		Tags:        []string{"fields", "conversion"},
		Root: plus(seq(
			bare(ParamStatsFunc),
			namedEffect("field", ParamField, EffectModifies),
		)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "addinfo",
		Category:    "fields",
		Description: "Adds search job metadata fields (info_min_time, info_max_time, info_search_time).",
		Tags:        []string{"fields"},
		Root:        star(bare(ParamString)),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{
				{Name: "info_min_time", DataType: TypeNumber},
				{Name: "info_max_time", DataType: TypeNumber},
				{Name: "info_search_time", DataType: TypeNumber},
			}
		},
	}))
}

// must panics if err is non-nil. It is only ever called while building the
// built-in commands (NewBuilderWithBuiltins) with statically known,
// hand-reviewed command names, so a panic here indicates a bug in this file,
// never a runtime/user-triggerable condition.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
