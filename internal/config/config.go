// Package config loads runtime settings from defaults, an optional
// .scriptorium.yaml file, SCRIPTORIUM_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Setting keys
const (
	KeyDataDir         = "data_dir"
	KeyContentURL      = "content_url"
	KeyCacheTTL        = "cache.ttl"
	KeyCacheCoalesce   = "cache.coalesce"
	KeyCachePersistent = "cache.persistent"
	KeyHTTPTimeout     = "http.timeout"
	KeyLogFile         = "log_file"
)

const (
	EnvPrefix         = "SCRIPTORIUM"
	DefaultContentURL = "http://localhost:4321"
	DefaultCacheTTL   = 7 * 24 * time.Hour
	DefaultTimeout    = 30 * time.Second
)

// Config is the resolved runtime configuration
type Config struct {
	DataDir         string
	ContentURL      string
	CacheTTL        time.Duration
	Coalesce        bool
	PersistentCache bool
	HTTPTimeout     time.Duration
	LogFile         string
}

// StateDir is where the local key/value documents live
func (c *Config) StateDir() string {
	return filepath.Join(c.DataDir, "state")
}

// New returns a viper instance with every default, the environment
// binding and the config search path set up
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDataDir, DefaultDataDir())
	v.SetDefault(KeyContentURL, DefaultContentURL)
	v.SetDefault(KeyCacheTTL, DefaultCacheTTL)
	v.SetDefault(KeyCacheCoalesce, false)
	v.SetDefault(KeyCachePersistent, true)
	v.SetDefault(KeyHTTPTimeout, DefaultTimeout)
	v.SetDefault(KeyLogFile, "")

	v.SetConfigName(".scriptorium") // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")
	return v
}

// Load reads the config file, if any, and resolves the settings of v
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString(KeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyDataDir, err)
	}
	logFile, err := homedir.Expand(v.GetString(KeyLogFile))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogFile, err)
	}

	cfg := &Config{
		DataDir:         dataDir,
		ContentURL:      v.GetString(KeyContentURL),
		CacheTTL:        v.GetDuration(KeyCacheTTL),
		Coalesce:        v.GetBool(KeyCacheCoalesce),
		PersistentCache: v.GetBool(KeyCachePersistent),
		HTTPTimeout:     v.GetDuration(KeyHTTPTimeout),
		LogFile:         logFile,
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "scriptorium.log")
	}
	return cfg, nil
}

// DefaultDataDir follows the XDG data directory convention
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := homedir.Dir()
		if err != nil {
			return ".scriptorium"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "scriptorium")
}
