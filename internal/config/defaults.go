package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4310,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Driver: "badger",
			Badger: BadgerConfig{
				Path: "./data/portfel",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
		Notify: NotifyConfig{
			Capability: "cron",
			Channel:    "portfolio-reports",
		},
	}
}
