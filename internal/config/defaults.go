package config

// DefaultConfig returns the default configuration values for tabwell.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Workspace: WorkspaceConfig{
			RestoreOnStart: true,
			Pages:          map[string]PageConfig{},
		},
	}
}

// setDefaults seeds viper with default values (must be called with lock).
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("workspace.restore_on_start", defaults.Workspace.RestoreOnStart)
	m.viper.SetDefault("workspace.pages", map[string]any{})
}
