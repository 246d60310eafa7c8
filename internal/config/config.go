// Package config provides configuration management for tabwell with Viper
// integration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete configuration for tabwell.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace"`
}

// DatabaseConfig holds state-storage configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// WorkspaceConfig holds tab workspace preferences.
type WorkspaceConfig struct {
	// RestoreOnStart restores the previous session's tabs when the
	// workspace loads.
	RestoreOnStart bool `mapstructure:"restore_on_start" yaml:"restore_on_start"`

	// Pages adds or overrides entries of the static route table. Keys are
	// exact normalized paths.
	Pages map[string]PageConfig `mapstructure:"pages" yaml:"pages"`
}

// PageConfig describes a static route's tab defaults.
type PageConfig struct {
	Title     string `mapstructure:"title" yaml:"title" json:"title"`
	Closeable bool   `mapstructure:"closeable" yaml:"closeable" json:"closeable"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("TABWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"database.path":              "DATABASE_PATH",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
		"workspace.restore_on_start": "RESTORE_ON_START",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "TABWELL_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and env apply.
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads
// automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// Global manager instance, initialized by Init.
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Init loads the global configuration. Safe to call more than once.
func Init() error {
	var err error
	globalOnce.Do(func() {
		var m *Manager
		m, err = NewManager()
		if err != nil {
			return
		}
		if err = m.Load(); err != nil {
			return
		}
		globalManager = m
	})
	return err
}

// Get returns the global configuration, loading it on first use.
func Get() *Config {
	if globalManager == nil {
		if err := Init(); err != nil || globalManager == nil {
			return DefaultConfig()
		}
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager, or nil before Init.
func GetManager() *Manager {
	return globalManager
}
