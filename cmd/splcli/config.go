package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// appName is the single source of truth for the application name. Derived
// identifiers (env vars, config paths) are computed from it.
const appName = "splcli"

// Derived env var names, computed once at init from appName.
var (
	envConfigDir    = strings.ToUpper(appName) + "_CONFIG_DIR"
	envRegistryDirs = strings.ToUpper(appName) + "_REGISTRY_DIRS"
)

// resolveConfigDir returns the base config directory for the application.
// Priority: $SPLCLI_CONFIG_DIR > $XDG_CONFIG_HOME/splcli > ~/.config/splcli
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveRegistryExtensionDirs returns every directory to scan for
// registry-extension YAML files. Order: configDir/registry ->
// $SPLCLI_REGISTRY_DIRS -> flagDirs.
func resolveRegistryExtensionDirs(configDir string, flagDirs []string) []string {
	dirs := []string{filepath.Join(configDir, "registry")}
	dirs = append(dirs, splitColon(os.Getenv(envRegistryDirs))...)
	dirs = append(dirs, flagDirs...)
	return dirs
}

func splitColon(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// globYAML returns sorted *.yml / *.yaml files in dir. Returns nil without
// error if dir does not exist.
func globYAML(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}
