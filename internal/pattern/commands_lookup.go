package pattern

// registerLookupCommands adds the enrichment family: lookup, inputlookup,
// iplocation, geom, join, append, and format.
func registerLookupCommands(b *Builder) {
	must(b.Register(CommandSyntax{
		Name:        "lookup",
		Category:    "enrichment",
		Description: "Enriches events with fields from a lookup table, matched on one or more key fields.",
		Related:     []string{"inputlookup", "outputlookup"},
		Tags:        []string{"enrichment"},
		Root: seq(
			namedQ("table", ParamString, QuantOne),
			plus(field(EffectConsumes)),
			opt(seq(
				lit("output"),
				opt(lit("as")),
				plus(field(EffectCreates)),
			)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "inputlookup",
		Category:    "enrichment",
		Description: "Reads a lookup table directly as a source of events.",
		Related:     []string{"lookup", "outputlookup"},
		Tags:        []string{"enrichment", "generating"},
		Root: seq(
			namedQ("table", ParamString, QuantOne),
			opt(lit("append")),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "<lookup-table-fields>", DataType: TypeUnknown}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "iplocation",
		Category:    "enrichment",
		Description: "Resolves an IP address field into geographic fields (city, country, region, lat, lon).",
		Tags:        []string{"enrichment", "geo"},
		Root: seq(
			opt(namedQ("prefix", ParamString, QuantOptional)),
			opt(namedQ("allfields", ParamBool, QuantOptional)),
			named("ip", ParamField),
		),
		Implicit: func(bound map[string]string) []ImplicitField {
			ip := bound["ip"]
			prefix := bound["prefix"]
			base := []struct {
				name string
				typ  DataType
			}{
				{"city", TypeString},
				{"country", TypeString},
				{"region", TypeString},
				{"lat", TypeNumber},
				{"lon", TypeNumber},
			}
			if bound["allfields"] == "true" {
				base = append(base,
					struct {
						name string
						typ  DataType
					}{"metrocode", TypeString},
					struct {
						name string
						typ  DataType
					}{"timezone", TypeString},
					struct {
						name string
						typ  DataType
					}{"continent", TypeString},
				)
			}
			fields := make([]ImplicitField, 0, len(base))
			for _, f := range base {
				fields = append(fields, ImplicitField{Name: prefix + f.name, DependsOn: []string{ip}, DataType: f.typ})
			}
			return fields
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "geom",
		Category:    "enrichment",
		Description: "Adds a geographic shape field for choropleth visualization lookups.",
		Tags:        []string{"enrichment", "geo"},
		Root: seq(
			named("featurecollection", ParamString),
			opt(namedQ("minratio", ParamNum, QuantOptional)),
		),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "geom", DataType: TypeString}}
		},
	}))

	must(b.Register(CommandSyntax{
		Name:        "join",
		Category:    "enrichment",
		Description: "Joins the current pipeline's results with a subsearch's results on shared fields.",
		Tags:        []string{"enrichment", "subsearch"},
		Root: seq(
			opt(namedQ("type", ParamString, QuantOptional)),
			plus(field(EffectConsumes)),
		),
	}))

	must(b.Register(CommandSyntax{
		Name:        "append",
		Category:    "enrichment",
		Description: "Appends a subsearch's results to the current pipeline. The subsearch is an opaque input provider.",
		Tags:        []string{"subsearch"},
		Root:        star(bare(ParamString)),
	}))

	must(b.Register(CommandSyntax{
		Name:        "format",
		Category:    "enrichment",
		Description: "Formats a set of events (typically subsearch results) into a single search-expression string.",
		Tags:        []string{"subsearch", "formatting"},
		Root:        star(namedQ("option", ParamString, QuantOptional)),
		Implicit: func(map[string]string) []ImplicitField {
			return []ImplicitField{{Name: "search", DataType: TypeString}}
		},
	}))
}
