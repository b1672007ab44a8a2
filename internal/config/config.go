package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Repo  RepoConfig  `toml:"repo"`
	Graph GraphConfig `toml:"graph"`
	Watch WatchConfig `toml:"watch"`
	Log   LogConfig   `toml:"log"`
}

type RepoConfig struct {
	// MainBranches are tried in order to find the mainline
	MainBranches []string `toml:"main_branches"`
	MaxCommits   int      `toml:"max_commits"`
}

type GraphConfig struct {
	MessageWidth int  `toml:"message_width"`
	ShowAuthor   bool `toml:"show_author"`
}

type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMs int  `toml:"debounce_ms"`
}

type LogConfig struct {
	File       string `toml:"file"`
	Debug      bool   `toml:"debug"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			MainBranches: []string{"master", "main"},
			MaxCommits:   2000,
		},
		Graph: GraphConfig{
			MessageWidth: 50,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
		Log: LogConfig{
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 30,
		},
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "railway.toml"), nil
}

// Load reads the user config, writing the defaults on first run
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.SaveFile(path) // Best effort save
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Repo.MaxCommits < 0 {
		return fmt.Errorf("repo.max_commits must not be negative, got %d", c.Repo.MaxCommits)
	}
	if c.Graph.MessageWidth < 0 {
		return fmt.Errorf("graph.message_width must not be negative, got %d", c.Graph.MessageWidth)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	// An empty list means "use the defaults", not "no mainline"
	if len(c.Repo.MainBranches) == 0 {
		c.Repo.MainBranches = DefaultConfig().Repo.MainBranches
	}
	return nil
}

func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Debounce returns the watcher debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMs) * time.Millisecond
}

// LogPath returns the log file, defaulting to the user cache directory
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return expandTilde(c.Log.File)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "railway", "railway.log")
	}
	return filepath.Join(cacheDir, "railway", "railway.log")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
