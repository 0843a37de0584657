package config

// Config is the qm configuration file.
type Config struct {
	Version          int      `yaml:"version"`
	CaseSensitive    bool     `yaml:"case_sensitive"`
	CacheCapacity    int      `yaml:"cache_capacity"`
	DefaultTimeLimit string   `yaml:"default_time_limit"`
	Fingerprint      string   `yaml:"fingerprint"`
	DataDir          string   `yaml:"data_dir"`
	CategoriesDir    string   `yaml:"categories_dir"`
	HistoryDir       string   `yaml:"history_dir"`
	UI               UIConfig `yaml:"ui"`
}

// UIConfig selects the session front end.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// Paths holds directories resolved against the config location.
type Paths struct {
	Root          string
	DataDir       string
	CategoriesDir string
	HistoryDir    string
}
