package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"splqlineage/internal/pattern"
	"splqlineage/internal/registryyaml"
)

var (
	flagRegistryDirs []string
	flagConfigDir    string
)

var rootCmd = &cobra.Command{
	Use:   "splcli [command]",
	Short: "Static analyzer for Splunk Processing Language queries",
	Long: "splcli parses SPL pipelines and reports where each field comes from,\n" +
		"what depends on it, and which stages touch data outside the search\n" +
		"head's own index — all without running the query.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagRegistryDirs, "registry-dir", nil,
		"additional directories of registry-extension YAML files (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"override the base config directory (default: $SPLCLI_CONFIG_DIR, $XDG_CONFIG_HOME/splcli, or ~/.config/splcli)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(riskyCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(exploreCmd)
}

// loadRegistry builds the full command registry: the built-in commands plus
// every extension YAML file found under the resolved registry directories.
func loadRegistry() (*pattern.Registry, error) {
	configDir := flagConfigDir
	if configDir == "" {
		cd, err := resolveConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = cd
	}

	b := pattern.NewBuilderWithBuiltins()

	for _, dir := range resolveRegistryExtensionDirs(configDir, flagRegistryDirs) {
		files, err := globYAML(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			doc, err := loadExtensionFile(f)
			if err != nil {
				return nil, err
			}
			if err := registryyaml.Apply(b, doc); err != nil {
				return nil, fmt.Errorf("%s: %w", f, err)
			}
		}
	}

	return b.Build(), nil
}

// loadExtensionFile reads and parses a single registry-extension YAML file.
func loadExtensionFile(path string) (registryyaml.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return registryyaml.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := registryyaml.Parse(raw)
	if err != nil {
		return registryyaml.Document{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
