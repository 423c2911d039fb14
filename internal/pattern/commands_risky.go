package pattern

// registerRiskyCommands adds the commands whose effect leaves the current
// search context and mutates persistent state — the policy set the
// risky-command detector (see the risky package) flags by name. Their field
// semantics are modest (mostly pure consumption); what matters about them
// lives in the detector, not here.
func registerRiskyCommands(b *Builder) {
	must(b.Register(CommandSyntax{
		Name:        "collect",
		Category:    "output",
		Description: "Writes the current results into a summary index.",
		Tags:        []string{"output", "risky"},
		Root: seq(
			named("index", ParamString),
			star(field(EffectConsumes)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "outputlookup",
		Category:    "output",
		Description: "Writes the current results into a lookup table file or KV store collection.",
		Related:     []string{"lookup", "inputlookup"},
		Tags:        []string{"output", "risky"},
		Root: seq(
			namedQ("table", ParamString, QuantOne),
			star(field(EffectConsumes)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "outputcsv",
		Category:    "output",
		Description: "Writes the current results to a CSV file on the search head.",
		Tags:        []string{"output", "risky"},
		Root:        named("file", ParamString),
	}))

	must(b.Register(CommandSyntax{
		Name:        "sendemail",
		Category:    "output",
		Description: "Emails the current results to one or more recipients.",
		Tags:        []string{"output", "risky"},
		Root: seq(
			namedQ("to", ParamString, QuantOne),
			star(field(EffectConsumes)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "script",
		Category:    "output",
		Description: "Invokes an external script, passing it the current results.",
		Related:     []string{"run"},
		Tags:        []string{"output", "risky", "external"},
		Root:        named("filename", ParamString),
	}))

	must(b.Register(CommandSyntax{
		Name:        "delete",
		Category:    "output",
		Description: "Marks the matched events as deleted in the index (irreversible without re-indexing).",
		Tags:        []string{"output", "risky"},
		Root:        star(bare(ParamString)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "summaryindex",
		Category:    "output",
		Description: "Writes the current results into a summary index (legacy form of collect).",
		Related:     []string{"collect"},
		Tags:        []string{"output", "risky"},
		Root: seq(
			named("index", ParamString),
			star(field(EffectConsumes)),
		),
	}))
}
