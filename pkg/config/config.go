// Package config loads and persists the application configuration: package
// definition search paths, the AUR helper, directory locations and run
// defaults. The config file is YAML; missing files yield the defaults so a
// fresh machine works without setup.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/archbox-dev/archbox/pkg/errors"
	"github.com/archbox-dev/archbox/pkg/fsutil"
)

// Config is the application configuration.
type Config struct {
	// PackagePaths lists directories and files searched for package
	// definitions, in order. Later paths override earlier names.
	PackagePaths []string `yaml:"package_paths"`

	// AURHelper is the AUR helper binary used when a package does not name
	// one.
	AURHelper string `yaml:"aur_helper,omitempty"`

	Settings Settings `yaml:"settings"`
}

// Settings are the general knobs.
type Settings struct {
	CacheDir string `yaml:"cache_dir,omitempty"`
	StateDir string `yaml:"state_dir,omitempty"`
	TempDir  string `yaml:"temp_dir,omitempty"`

	HTTPTimeout            time.Duration `yaml:"http_timeout"`
	InstallTimeout         time.Duration `yaml:"install_timeout"`
	MaxConcurrentDownloads int           `yaml:"max_concurrent_downloads"`

	LogLevel string `yaml:"log_level"`
	NoColor  bool   `yaml:"no_color,omitempty"`
}

// Default configuration values.
const (
	DefaultHTTPTimeout            = 30 * time.Second
	DefaultInstallTimeout         = 30 * time.Minute
	DefaultMaxConcurrentDownloads = 4

	yamlIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults rooted under
// the user's config, cache and state directories.
func DefaultConfig() *Config {
	configDir := userConfigDir()
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(configDir, "cache")
	}

	return &Config{
		PackagePaths: []string{
			filepath.Join(configDir, "packages"),
			"/etc/archbox/packages",
		},
		AURHelper: "",
		Settings: Settings{
			CacheDir:               filepath.Join(cacheDir, "archbox"),
			StateDir:               filepath.Join(configDir, "state"),
			TempDir:                os.TempDir(),
			HTTPTimeout:            DefaultHTTPTimeout,
			InstallTimeout:         DefaultInstallTimeout,
			MaxConcurrentDownloads: DefaultMaxConcurrentDownloads,
			LogLevel:               "info",
		},
	}
}

// DefaultConfigPath returns the expected config file location.
func DefaultConfigPath() string {
	return filepath.Join(userConfigDir(), "config.yaml")
}

func userConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "archbox")
}

// LoadConfig loads the configuration at path. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "%s: %v", path, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader parses a configuration from a reader and fills in
// defaults for anything left unset.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.PackagePaths) == 0 {
		c.PackagePaths = def.PackagePaths
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = def.Settings.CacheDir
	}
	if c.Settings.StateDir == "" {
		c.Settings.StateDir = def.Settings.StateDir
	}
	if c.Settings.TempDir == "" {
		c.Settings.TempDir = def.Settings.TempDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = def.Settings.HTTPTimeout
	}
	if c.Settings.InstallTimeout == 0 {
		c.Settings.InstallTimeout = def.Settings.InstallTimeout
	}
	if c.Settings.MaxConcurrentDownloads == 0 {
		c.Settings.MaxConcurrentDownloads = def.Settings.MaxConcurrentDownloads
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = def.Settings.LogLevel
	}

	for i, p := range c.PackagePaths {
		c.PackagePaths[i] = fsutil.ExpandHome(p)
	}
	c.Settings.CacheDir = fsutil.ExpandHome(c.Settings.CacheDir)
	c.Settings.StateDir = fsutil.ExpandHome(c.Settings.StateDir)
	c.Settings.TempDir = fsutil.ExpandHome(c.Settings.TempDir)
}

// SaveConfig writes the configuration atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidPath, "%s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeSecure); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to encode config")
	}
	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}
	return nil
}

// StatePath is the location of the state database.
func (c *Config) StatePath() string {
	return filepath.Join(c.Settings.StateDir, "state.json")
}

// HooksDir is the directory searched for lifecycle hook scripts.
func (c *Config) HooksDir() string {
	return filepath.Join(userConfigDir(), "hooks")
}

// ProfilePath is the location of the user group/profile definitions.
func (c *Config) ProfilePath() string {
	return filepath.Join(userConfigDir(), "profiles.yaml")
}
