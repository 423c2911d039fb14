// Package registryyaml loads registry extensions — additional SPL command
// definitions — from YAML documents, the way commands shipped with the
// core registry are loaded from Go literals. A YAML document
// can only add new commands; a name collision with anything already in
// the target Builder is a construction error, never a silent override.
package registryyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"splqlineage/internal/pattern"
)

// Document is a parsed registry-extension file: zero or more new
// commands plus zero or more aliases pointing at them (or at any
// already-registered command).
type Document struct {
	Commands []pattern.CommandSyntax
	Aliases  map[string]string // alias -> target
}

// rawDocument mirrors Document's YAML shape before pattern nodes are
// converted from their tagged-union wire form.
type rawDocument struct {
	Commands []rawCommand      `yaml:"commands"`
	Aliases  map[string]string `yaml:"aliases,omitempty"`
}

type rawCommand struct {
	Name        string       `yaml:"name"`
	Category    string       `yaml:"category,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Related     []string     `yaml:"related,omitempty"`
	Tags        []string     `yaml:"tags,omitempty"`
	Root        rawPattern   `yaml:"root"`
	Implicit    []rawImplicit `yaml:"implicit,omitempty"`
}

// rawImplicit describes a fixed (non-conditional) implicit field creation.
// YAML extensions cannot express the Go-closure conditional logic the
// built-in registry's iplocation and rex use — only an
// unconditional creation list.
type rawImplicit struct {
	Name      string   `yaml:"name"`
	DependsOn []string `yaml:"depends_on,omitempty"`
	DataType  string   `yaml:"data_type,omitempty"`
}

// rawPattern is the single struct every SyntaxPattern variant decodes
// through, discriminated by Kind — the YAML analogue of the Go tagged
// union in the pattern package. Polymorphic recursion (Patterns/Options/
// Pattern hold more rawPattern values) falls out of yaml.v3's ordinary
// struct decoding; no custom UnmarshalYAML is needed since every variant
// shares one concrete Go type at the parse layer.
type rawPattern struct {
	Kind       string       `yaml:"kind"`
	Value      string       `yaml:"value,omitempty"`       // literal
	ParamType  string       `yaml:"param_type,omitempty"`   // typed-param
	Name       string       `yaml:"name,omitempty"`         // typed-param
	Effect     string       `yaml:"effect,omitempty"`       // typed-param
	Quantifier string       `yaml:"quantifier,omitempty"`   // literal, typed-param, sequence, group
	Patterns   []rawPattern `yaml:"patterns,omitempty"`     // sequence
	Options    []rawPattern `yaml:"options,omitempty"`      // alternation
	Pattern    *rawPattern  `yaml:"pattern,omitempty"`       // group
}

// Parse decodes a registry-extension YAML document.
func Parse(in []byte) (Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(in, &raw); err != nil {
		return Document{}, fmt.Errorf("registryyaml: %w", err)
	}

	doc := Document{Aliases: raw.Aliases}
	for _, rc := range raw.Commands {
		cs, err := convertCommand(rc)
		if err != nil {
			return Document{}, fmt.Errorf("registryyaml: command %q: %w", rc.Name, err)
		}
		doc.Commands = append(doc.Commands, cs)
	}
	return doc, nil
}

func convertCommand(rc rawCommand) (pattern.CommandSyntax, error) {
	if rc.Name == "" {
		return pattern.CommandSyntax{}, fmt.Errorf("missing name")
	}
	root, err := convertPattern(rc.Root)
	if err != nil {
		return pattern.CommandSyntax{}, err
	}

	cs := pattern.CommandSyntax{
		Name:        rc.Name,
		Category:    rc.Category,
		Description: rc.Description,
		Related:     rc.Related,
		Tags:        rc.Tags,
		Root:        root,
	}
	if len(rc.Implicit) > 0 {
		fields := make([]pattern.ImplicitField, 0, len(rc.Implicit))
		for _, ri := range rc.Implicit {
			dt := pattern.DataType(ri.DataType)
			if dt == "" {
				dt = pattern.TypeUnknown
			}
			fields = append(fields, pattern.ImplicitField{Name: ri.Name, DependsOn: ri.DependsOn, DataType: dt})
		}
		cs.Implicit = func(map[string]string) []pattern.ImplicitField { return fields }
	}
	return cs, nil
}

func convertPattern(rp rawPattern) (pattern.SyntaxPattern, error) {
	q := pattern.Quantifier(rp.Quantifier)

	switch rp.Kind {
	case "":
		return nil, fmt.Errorf("pattern node missing kind")

	case "literal":
		return pattern.Literal{Value: rp.Value, Quantifier: q}, nil

	case "typed-param":
		return pattern.TypedParam{
			ParamType:  pattern.ParamType(rp.ParamType),
			Name:       rp.Name,
			Quantifier: q,
			Effect:     pattern.FieldEffect(rp.Effect),
		}, nil

	case "sequence":
		children, err := convertPatterns(rp.Patterns)
		if err != nil {
			return nil, err
		}
		return pattern.Sequence{Patterns: children, Quantifier: q}, nil

	case "alternation":
		options, err := convertPatterns(rp.Options)
		if err != nil {
			return nil, err
		}
		return pattern.Alternation{Options: options}, nil

	case "group":
		if rp.Pattern == nil {
			return nil, fmt.Errorf("group node missing pattern")
		}
		inner, err := convertPattern(*rp.Pattern)
		if err != nil {
			return nil, err
		}
		return pattern.Group{Pattern: inner, Quantifier: q}, nil

	default:
		return nil, fmt.Errorf("unknown pattern kind %q", rp.Kind)
	}
}

func convertPatterns(raw []rawPattern) ([]pattern.SyntaxPattern, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]pattern.SyntaxPattern, 0, len(raw))
	for _, rp := range raw {
		p, err := convertPattern(rp)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Apply registers every command and alias in doc onto b. It stops at the
// first error, matching the core registry's non-overriding construction
// discipline.
func Apply(b *pattern.Builder, doc Document) error {
	for _, cs := range doc.Commands {
		if err := b.Register(cs); err != nil {
			return fmt.Errorf("registryyaml: %w: %s", err, cs.Name)
		}
	}
	for alias, target := range doc.Aliases {
		if err := b.Alias(alias, target); err != nil {
			return fmt.Errorf("registryyaml: %w: %s -> %s", err, alias, target)
		}
	}
	return nil
}
