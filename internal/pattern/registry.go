package pattern

import (
	"sort"
	"strings"
)

// Registry is an immutable, case-insensitive mapping from command name to
// CommandSyntax. Aliases share the same *CommandSyntax by identity with
// their target, matching the spec's requirement that alias lookups resolve
// to the same underlying object.
//
// A Registry is built once via Builder and never mutated afterward; it is
// safe to share across goroutines without synchronization.
type Registry struct {
	commands map[string]*CommandSyntax
}

// Builder accumulates commands and aliases before producing an immutable
// Registry. It is the only way to construct a non-empty Registry: an
// explicit construct-then-freeze discipline, with no package-level
// singleton.
type Builder struct {
	commands map[string]*CommandSyntax
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{commands: make(map[string]*CommandSyntax)}
}

// Register adds a new command to the builder. name is folded to lowercase.
// Returns ErrCommandAlreadyExists if the name (or an alias of it) is
// already registered.
func (b *Builder) Register(cs CommandSyntax) error {
	name := foldName(cs.Name)
	if _, exists := b.commands[name]; exists {
		return ErrCommandAlreadyExists
	}
	cs.Name = name
	b.commands[name] = &cs
	return nil
}

// Alias registers alias as pointing to the same *CommandSyntax object as
// target. target must already be registered. Returns ErrUnknownAlias
// otherwise, or ErrCommandAlreadyExists if alias is already taken.
func (b *Builder) Alias(alias, target string) error {
	t := foldName(target)
	cs, ok := b.commands[t]
	if !ok {
		return ErrUnknownAlias
	}
	a := foldName(alias)
	if _, exists := b.commands[a]; exists {
		return ErrCommandAlreadyExists
	}
	b.commands[a] = cs
	return nil
}

// Build freezes the builder into a Registry. It does not itself validate
// the patterns; callers are expected to run the validator (see the
// validate package) over the result before trusting it for analysis.
func (b *Builder) Build() *Registry {
	frozen := make(map[string]*CommandSyntax, len(b.commands))
	for k, v := range b.commands {
		frozen[k] = v
	}
	return &Registry{commands: frozen}
}

// Get returns the CommandSyntax for name (case-insensitive), or false if
// name is not registered.
func (r *Registry) Get(name string) (*CommandSyntax, bool) {
	cs, ok := r.commands[foldName(name)]
	return cs, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[foldName(name)]
	return ok
}

// Names returns every registered name (including aliases), sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every distinct *CommandSyntax in the registry, deduplicated
// by pointer identity so aliases are not double-counted. Order is by
// canonical (non-alias) name.
func (r *Registry) All() []*CommandSyntax {
	seen := make(map[*CommandSyntax]struct{}, len(r.commands))
	var out []*CommandSyntax
	for _, cs := range r.commands {
		if _, dup := seen[cs]; dup {
			continue
		}
		seen[cs] = struct{}{}
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// foldName lowercases a command name for case-insensitive lookup.
func foldName(name string) string {
	return strings.ToLower(name)
}
