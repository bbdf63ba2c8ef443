package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pfrederiksen/event-roster/internal/logger"
	"github.com/pfrederiksen/event-roster/internal/page"
	"github.com/pfrederiksen/event-roster/internal/storage"
)

const (
	// FileName is the config file looked up inside the data directory.
	FileName = "config.toml"

	DefaultDataDir = "~/.local/share/event-roster"

	EnvDataDir  = "EVENT_ROSTER_DATA_DIR"
	EnvLogLevel = "EVENT_ROSTER_LOG_LEVEL"
)

// Config is the persisted config file schema.
type Config struct {
	DataDir  string   `toml:"data_dir"`
	Title    string   `toml:"title"`
	Events   []string `toml:"events"`
	LogLevel string   `toml:"log_level"`
	Source   string   `toml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		DataDir:  DefaultDataDir,
		Title:    page.DefaultTitle,
		Events:   []string{"lunch", "dinner"},
		LogLevel: string(logger.LevelInfo),
	}
}

// Load reads path, or config.toml inside the data directory when path is
// empty. A missing file yields the defaults. Precedence for the data
// directory is dataDir (the flag), then $EVENT_ROSTER_DATA_DIR, then the file.
func Load(path, dataDir string) (Config, error) {
	cfg := Default()

	envDir := strings.TrimSpace(os.Getenv(EnvDataDir))
	if path == "" {
		dir := DefaultDataDir
		switch {
		case dataDir != "":
			dir = dataDir
		case envDir != "":
			dir = envDir
		}
		expanded, err := storage.ExpandHome(dir)
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(expanded, FileName)
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if envDir != "" {
		cfg.DataDir = envDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		cfg.LogLevel = env
	}

	return cfg, cfg.Validate()
}

// Validate checks event names and the log level.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for _, e := range c.Events {
		if !page.ValidEventName(e) {
			return fmt.Errorf("invalid event name in config: %q", e)
		}
	}
	return nil
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
