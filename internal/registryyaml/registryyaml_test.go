package registryyaml

import (
	"testing"

	"splqlineage/internal/pattern"
)

const sampleDoc = `
commands:
  - name: geoip2
    category: enrichment
    description: Resolves an IP into geo fields, loaded from a registry extension.
    root:
      kind: sequence
      patterns:
        - kind: typed-param
          param_type: field
          name: ip
    implicit:
      - name: geo2_city
        depends_on: [ip]
        data_type: string
aliases:
  geoip2alias: geoip2
`

func TestParseValidDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(doc.Commands))
	}
	cs := doc.Commands[0]
	if cs.Name != "geoip2" {
		t.Fatalf("expected name geoip2, got %q", cs.Name)
	}
	if cs.Root == nil {
		t.Fatalf("expected a non-nil root pattern")
	}
	if cs.Implicit == nil {
		t.Fatalf("expected implicit fields to be set")
	}
	fields := cs.Implicit(nil)
	if len(fields) != 1 || fields[0].Name != "geo2_city" {
		t.Fatalf("unexpected implicit fields: %+v", fields)
	}
	if doc.Aliases["geoip2alias"] != "geoip2" {
		t.Fatalf("expected alias geoip2alias -> geoip2, got %v", doc.Aliases)
	}
}

func TestParseMissingNameFails(t *testing.T) {
	_, err := Parse([]byte(`
commands:
  - root:
      kind: literal
      value: x
`))
	if err == nil {
		t.Fatalf("expected an error for a command with no name")
	}
}

func TestParseUnknownPatternKindFails(t *testing.T) {
	_, err := Parse([]byte(`
commands:
  - name: foo
    root:
      kind: bogus
`))
	if err == nil {
		t.Fatalf("expected an error for an unknown pattern kind")
	}
}

func TestParseGroupMissingPatternFails(t *testing.T) {
	_, err := Parse([]byte(`
commands:
  - name: foo
    root:
      kind: group
      quantifier: "?"
`))
	if err == nil {
		t.Fatalf("expected an error for a group node missing its pattern")
	}
}

func TestApplyRegistersCommandsAndAliases(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	b := pattern.NewBuilder()
	if err := Apply(b, doc); err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	reg := b.Build()
	if !reg.Has("geoip2") {
		t.Fatalf("expected geoip2 to be registered")
	}
	target, _ := reg.Get("geoip2")
	alias, ok := reg.Get("geoip2alias")
	if !ok || alias != target {
		t.Fatalf("expected geoip2alias to resolve to the same CommandSyntax as geoip2")
	}
}

func TestApplyRejectsNameCollisionWithBuiltins(t *testing.T) {
	doc := Document{Commands: []pattern.CommandSyntax{
		{Name: "stats", Root: pattern.Literal{Value: "x"}},
	}}
	b := pattern.NewBuilderWithBuiltins()
	if err := Apply(b, doc); err == nil {
		t.Fatalf("expected a collision error when a registry extension redefines a builtin command")
	}
}

func TestConvertPatternRecursesThroughAlternationAndGroup(t *testing.T) {
	doc, err := Parse([]byte(`
commands:
  - name: altcmd
    root:
      kind: alternation
      options:
        - kind: literal
          value: a
        - kind: group
          quantifier: "*"
          pattern:
            kind: typed-param
            param_type: string
            name: x
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alt, ok := doc.Commands[0].Root.(pattern.Alternation)
	if !ok {
		t.Fatalf("expected an Alternation root, got %T", doc.Commands[0].Root)
	}
	if len(alt.Options) != 2 {
		t.Fatalf("expected 2 alternation options, got %d", len(alt.Options))
	}
	grp, ok := alt.Options[1].(pattern.Group)
	if !ok {
		t.Fatalf("expected the second option to be a Group, got %T", alt.Options[1])
	}
	if grp.Quantifier != pattern.QuantZeroOrMore {
		t.Fatalf("expected quantifier '*', got %q", grp.Quantifier)
	}
}
