// Package config holds the application configuration: where the saved
// variables file lives, where backups and scrape caches go, and how
// polite the scraper is.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from YAML scalars like
// "500ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Scrape configures the database scraper.
type Scrape struct {
	BaseURL   string   `yaml:"base_url"`
	UserAgent string   `yaml:"user_agent"`
	Delay     Duration `yaml:"delay"`
	CacheDir  string   `yaml:"cache_dir"`
}

// Config is the full application configuration.
type Config struct {
	// File is the TradeSkillMaster saved variables file to edit.
	File string `yaml:"file"`
	// BackupDir overrides the default backups directory next to File.
	BackupDir string `yaml:"backup_dir"`
	// RulesFile optionally points at a categorization overlay.
	RulesFile string `yaml:"rules_file"`
	Scrape    Scrape `yaml:"scrape"`
}

// Default returns the built-in configuration. The scrape cache lands
// under the user cache directory.
func Default() Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return Config{
		Scrape: Scrape{
			Delay:    Duration(500 * time.Millisecond),
			CacheDir: filepath.Join(cacheDir, "tsm-scraper"),
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
