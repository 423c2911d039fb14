package main

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"splqlineage/internal/pattern"
	"splqlineage/internal/validate"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the SPL command registry",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered command",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, cs := range reg.All() {
			fmt.Printf("%-20s %s\n", cs.Name, cs.Category)
		}
		return nil
	},
}

var registryShowCmd = &cobra.Command{
	Use:   "show <command>",
	Short: "Show the full syntax definition of one command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		cs, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("no such command: %s", args[0])
		}
		printCommandSyntax(cs)
		return nil
	},
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every registered command's pattern tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		results := validate.Registry(reg)
		failed := 0
		for _, name := range reg.Names() {
			r, ok := results[name]
			if !ok {
				continue
			}
			if len(r.Errors) > 0 {
				failed++
				fmt.Printf("%s  FAIL\n", name)
				for _, e := range r.Errors {
					fmt.Printf("    %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("%s  warning: %s\n", name, w)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d command(s) failed validation", failed)
		}
		fmt.Println("all commands valid")
		return nil
	},
}

var registryFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Interactively fuzzy-find a command and print its definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		all := reg.All()
		idx, err := fuzzyfinder.Find(all, func(i int) string {
			return fmt.Sprintf("%s (%s)", all[i].Name, all[i].Category)
		}, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			return commandSyntaxText(all[i])
		}))
		if err != nil {
			return err
		}
		printCommandSyntax(all[idx])
		return nil
	},
}

func init() {
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryShowCmd)
	registryCmd.AddCommand(registryValidateCmd)
	registryCmd.AddCommand(registryFindCmd)
}

func printCommandSyntax(cs *pattern.CommandSyntax) {
	fmt.Print(commandSyntaxText(cs))
}

func commandSyntaxText(cs *pattern.CommandSyntax) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(cs.Name))
	if cs.Description != "" {
		fmt.Fprintf(&b, "%s\n", cs.Description)
	}
	if cs.Category != "" {
		fmt.Fprintf(&b, "category: %s\n", cs.Category)
	}
	if len(cs.Related) > 0 {
		fmt.Fprintf(&b, "related: %s\n", strings.Join(cs.Related, ", "))
	}
	if len(cs.Tags) > 0 {
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(cs.Tags, ", "))
	}
	fmt.Fprintf(&b, "\npattern:\n  %s\n", describePattern(cs.Root))
	return b.String()
}

// describePattern renders a SyntaxPattern tree as one compact line, mirroring
// the shape SPL documentation uses for command syntax summaries.
func describePattern(p pattern.SyntaxPattern) string {
	switch n := p.(type) {
	case pattern.Literal:
		return n.Value + quantSuffix(n.Quantifier)
	case pattern.TypedParam:
		name := n.Name
		if name == "" {
			name = string(n.ParamType)
		}
		return "<" + name + ":" + string(n.ParamType) + ">" + quantSuffix(n.Quantifier)
	case pattern.Sequence:
		parts := make([]string, len(n.Patterns))
		for i, c := range n.Patterns {
			parts[i] = describePattern(c)
		}
		return strings.Join(parts, " ") + quantSuffix(n.Quantifier)
	case pattern.Alternation:
		parts := make([]string, len(n.Options))
		for i, c := range n.Options {
			parts[i] = describePattern(c)
		}
		return "(" + strings.Join(parts, " | ") + ")"
	case pattern.Group:
		return "(" + describePattern(n.Pattern) + ")" + quantSuffix(n.Quantifier)
	default:
		return "?"
	}
}

func quantSuffix(q pattern.Quantifier) string {
	switch q {
	case pattern.QuantOptional:
		return "?"
	case pattern.QuantZeroOrMore:
		return "*"
	case pattern.QuantOneOrMore:
		return "+"
	default:
		return ""
	}
}
