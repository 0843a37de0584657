package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigDirName  = ".qm"
	ConfigFileName = "config.yml"
)

// ConfigDir returns the .qm directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns the config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RootFromConfigPath derives the project root from a config file path.
func RootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath searches upward from startDir for .qm/config.yml.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	dir = abs

	for {
		configPath := ConfigPath(dir)
		info, err := os.Stat(configPath)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %q is a directory", configPath)
			}
			return configPath, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat config path %q: %w", configPath, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or parent directories", ErrConfigNotFound, abs)
		}
		dir = parent
	}
}

// Resolve turns the configured directories into absolute paths. Relative
// directories are taken from root; QM_DATA_DIR replaces data_dir.
func (cfg Config) Resolve(root string) (Paths, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolve root: %w", err)
	}
	dataDir := cfg.DataDir
	if override := strings.TrimSpace(os.Getenv(DataDirEnv)); override != "" {
		dataDir = override
	}
	dataDir = under(root, dataDir)
	return Paths{
		Root:          root,
		DataDir:       dataDir,
		CategoriesDir: under(dataDir, cfg.CategoriesDir),
		HistoryDir:    under(dataDir, cfg.HistoryDir),
	}, nil
}

func under(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
