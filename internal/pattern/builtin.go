package pattern

// BuildDefault constructs the built-in command registry: every command this
// repository ships, spanning every field effect, quantifier, and parameter
// type in the closed sets (the registry's required coverage floor).
//
// Each call returns a fresh, independently constructed Registry — there is
// no package-level singleton. Callers that want a shared, process-wide
// registry build it once (typically in main) and pass the *Registry down.
func BuildDefault() *Registry {
	return NewBuilderWithBuiltins().Build()
}

// NewBuilderWithBuiltins returns a Builder pre-loaded with every built-in
// command, still open for a caller to Register additional commands (e.g.
// ones decoded from registry-extension YAML) before calling Build.
func NewBuilderWithBuiltins() *Builder {
	b := NewBuilder()
	registerFilterCommands(b)
	registerStatsCommands(b)
	registerLookupCommands(b)
	registerRiskyCommands(b)
	registerMiscCommands(b)
	return b
}
