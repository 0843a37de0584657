// Package config loads and scaffolds the .qm/config.yml file.
package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrConfigNotFound reports that no config file exists up the tree.
var ErrConfigNotFound = errors.New("no " + ConfigDirName + "/" + ConfigFileName + " found")

// Load reads, parses, normalizes and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Discover finds and loads the nearest config starting at startDir. When
// none exists it returns the defaults rooted at startDir.
func Discover(startDir string) (Config, Paths, error) {
	path, err := FindConfigPath(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		cfg := Default()
		root := startDir
		if root == "" {
			root = "."
		}
		paths, err := cfg.Resolve(root)
		return cfg, paths, err
	}
	if err != nil {
		return Config{}, Paths{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, Paths{}, err
	}
	paths, err := cfg.Resolve(RootFromConfigPath(path))
	return cfg, paths, err
}
