package config

import (
	"fmt"
	"os"
	"path/filepath"

	"qm/internal/bank"
)

const defaultConfig = `version: 1

# Answer matching for multiple choice and fill-in questions.
case_sensitive: false

# Number of question banks kept in memory.
cache_capacity: 64

# Per-question limit as a Go duration (e.g. 45s, 2m) or "none".
default_time_limit: 60s

# Staleness check for cached banks: stat (size + mtime) or hash.
fingerprint: stat

# Relative paths resolve from the project root; QM_DATA_DIR overrides data_dir.
data_dir: "."
categories_dir: categories
history_dir: scores

ui:
  mode: auto
  no_color: false
`

// Scaffold writes a default config and an example bank under root.
func Scaffold(root string) (string, error) {
	configPath := ConfigPath(root)
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("config path %q is a directory", configPath)
		}
		return "", fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}

	cfg := Default()
	paths, err := cfg.Resolve(root)
	if err != nil {
		return "", err
	}
	for _, dir := range []string{paths.CategoriesDir, paths.HistoryDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	example := filepath.Join(paths.CategoriesDir, "templates", "example_template.json")
	if _, err := os.Stat(example); os.IsNotExist(err) {
		if err := bank.WriteTemplate(example, false); err != nil {
			return "", fmt.Errorf("write example bank: %w", err)
		}
	}
	return configPath, nil
}
