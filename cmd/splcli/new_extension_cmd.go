package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var registryNewExtensionCmd = &cobra.Command{
	Use:   "new-extension",
	Short: "Interactively author a new registry-extension YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNewExtensionWizard()
	},
}

func init() {
	registryCmd.AddCommand(registryNewExtensionCmd)
}

// extensionAnswers holds the wizard's collected form values before they are
// shaped into a registryyaml document.
type extensionAnswers struct {
	name        string
	category    string
	description string
	params      string // comma-separated "name:type:effect" entries
}

func runNewExtensionWizard() error {
	var a extensionAnswers

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Command name").
				Description("lowercase, as it appears after a pipe in SPL").
				Value(&a.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Value(&a.category),
			huh.NewInput().
				Title("Description").
				Value(&a.description),
			huh.NewInput().
				Title("Positional params").
				Description("comma-separated name:type:effect, e.g. field:field:consumes").
				Value(&a.params),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	doc := buildExtensionDocument(a)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling extension: %w", err)
	}

	configDir := flagConfigDir
	if configDir == "" {
		cd, err := resolveConfigDir()
		if err != nil {
			return err
		}
		configDir = cd
	}
	dir := filepath.Join(configDir, "registry")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, a.name+".yml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// wireDocument is the plain YAML-tag shape written to disk — the same
// shape registryyaml.Parse reads back in, field for field.
type wireDocument struct {
	Commands []wireCommand `yaml:"commands"`
}

type wireCommand struct {
	Name        string      `yaml:"name"`
	Category    string      `yaml:"category,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Root        wirePattern `yaml:"root"`
}

// wirePattern covers only the "sequence of typed-params" shape the wizard
// generates; hand-authored extensions may use the full tagged union
// registryyaml.Parse supports (alternation, group, nested sequences).
type wirePattern struct {
	Kind      string        `yaml:"kind"`
	ParamType string        `yaml:"param_type,omitempty"`
	Name      string        `yaml:"name,omitempty"`
	Effect    string        `yaml:"effect,omitempty"`
	Patterns  []wirePattern `yaml:"patterns,omitempty"`
}

func buildExtensionDocument(a extensionAnswers) wireDocument {
	seq := wirePattern{Kind: "sequence"}
	for _, raw := range strings.Split(a.params, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, ":", 3)
		name := parts[0]
		paramType := "field"
		if len(parts) > 1 {
			paramType = parts[1]
		}
		effect := ""
		if len(parts) > 2 {
			effect = parts[2]
		}
		seq.Patterns = append(seq.Patterns, wirePattern{
			Kind:      "typed-param",
			ParamType: paramType,
			Name:      name,
			Effect:    effect,
		})
	}

	return wireDocument{Commands: []wireCommand{{
		Name:        a.name,
		Category:    a.category,
		Description: a.description,
		Root:        seq,
	}}}
}
