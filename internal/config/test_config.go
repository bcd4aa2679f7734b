package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultAPIURL,
			Timeout:   5 * time.Second,
			UserAgent: "brief-test/1.0",
		},
		Database: DatabaseConfig{
			Path:    "",
			Timeout: 1 * time.Second,
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
		Log:  LogConfig{Level: "off"},
	}
}
