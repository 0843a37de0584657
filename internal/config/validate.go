package config

import (
	"fmt"
	"strings"
	"time"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors one per line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks field values after Normalize.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != currentConfigVersion {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.CacheCapacity < 0 {
		add("cache_capacity", "must be >= 0")
	}
	if _, err := cfg.TimeLimit(); err != nil {
		add("default_time_limit", err.Error())
	}
	switch cfg.Fingerprint {
	case "stat", "hash":
	default:
		add("fingerprint", fmt.Sprintf("unsupported mode %q (expected stat|hash)", cfg.Fingerprint))
	}
	switch cfg.UI.Mode {
	case "auto", "live", "plain":
	default:
		add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// TimeLimit parses DefaultTimeLimit. Zero means no limit.
func (cfg Config) TimeLimit() (time.Duration, error) {
	value := strings.TrimSpace(cfg.DefaultTimeLimit)
	if value == "" || strings.EqualFold(value, TimeLimitNone) {
		return 0, nil
	}
	limit, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (expected e.g. 60s or none)", value)
	}
	if limit <= 0 {
		return 0, fmt.Errorf("must be positive or none, got %q", value)
	}
	return limit, nil
}
