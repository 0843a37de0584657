package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultCacheCapacity = 64
	DefaultTimeLimit     = "60s"
	DefaultFingerprint   = "stat"
	DefaultDataDir       = "."
	DefaultCategoriesDir = "categories"
	DefaultHistoryDir    = "scores"
	DefaultUIMode        = "auto"
	TimeLimitNone        = "none"
	currentConfigVersion = 1
)

// DataDirEnv overrides data_dir when set.
const DataDirEnv = "QM_DATA_DIR"

// Default returns a normalized config for use without a config file.
func Default() Config {
	cfg := Config{Version: currentConfigVersion}
	Normalize(&cfg)
	return cfg
}

// Normalize fills unset fields with defaults.
func Normalize(cfg *Config) {
	if cfg.CacheCapacity == 0 {
		cfg.CacheCapacity = DefaultCacheCapacity
	}
	cfg.DefaultTimeLimit = strings.TrimSpace(cfg.DefaultTimeLimit)
	if cfg.DefaultTimeLimit == "" {
		cfg.DefaultTimeLimit = DefaultTimeLimit
	}
	cfg.Fingerprint = strings.ToLower(strings.TrimSpace(cfg.Fingerprint))
	if cfg.Fingerprint == "" {
		cfg.Fingerprint = DefaultFingerprint
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = DefaultDataDir
	}
	if strings.TrimSpace(cfg.CategoriesDir) == "" {
		cfg.CategoriesDir = DefaultCategoriesDir
	}
	if strings.TrimSpace(cfg.HistoryDir) == "" {
		cfg.HistoryDir = DefaultHistoryDir
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = DefaultUIMode
	}
}
