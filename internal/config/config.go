package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIURL matches the backend's default local listen address.
const DefaultAPIURL = "http://127.0.0.1:8000"

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	Colors         ThemeColors   `mapstructure:"colors"`
	Summary        SummaryConfig `mapstructure:"summary"`
	SwipeThreshold int           `mapstructure:"swipe_threshold"`
	SwipeStep      int           `mapstructure:"swipe_step"`
}

// ThemeColors holds optional per-theme palette overrides. Empty values keep
// the built-in palette.
type ThemeColors struct {
	Dark  UIColors `mapstructure:"dark"`
	Light UIColors `mapstructure:"light"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
	Urgent     string `mapstructure:"urgent"`
	Mid        string `mapstructure:"mid"`
}

type SummaryConfig struct {
	WordWrapMaxWidth int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth int `mapstructure:"word_wrap_min_width"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit        string `mapstructure:"quit"`
	Search      string `mapstructure:"search"`
	Channels    string `mapstructure:"channels"`
	Triage      string `mapstructure:"triage"`
	Summaries   string `mapstructure:"summaries"`
	Refresh     string `mapstructure:"refresh"`
	Logout      string `mapstructure:"logout"`
	ToggleTheme string `mapstructure:"toggle_theme"`
	Back        string `mapstructure:"back"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:   DefaultAPIURL,
			Timeout:   30 * time.Second,
			UserAgent: "brief/1.0 (https://github.com/pders01/brief)",
		},
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".brief.db"),
			Timeout: 1 * time.Second,
		},
		UI: UIConfig{
			Summary: SummaryConfig{
				WordWrapMaxWidth: 120,
				WordWrapMinWidth: 40,
			},
			SwipeThreshold: 12,
			SwipeStep:      4,
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:        "q",
				Search:      "/",
				Channels:    "c",
				Triage:      "t",
				Summaries:   "d",
				Refresh:     "r",
				Logout:      "l",
				ToggleTheme: "t",
				Back:        "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(homeDir, ".brief", "brief.log"),
		},
	}
}

// Load reads configuration from configPath, or from the default search
// locations when configPath is empty. A .env file in the working directory
// is loaded first so API_URL can be set the same way the web frontend sets
// its backend URL.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)
	v.SetDefault("metrics", cfg.Metrics)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Decode over the defaults so a partial table keeps its other keys.
	config := *cfg
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// AutomaticEnv only applies to keys viper already knows as leaves; the
	// nested defaults above are registered as whole structs.
	if url := os.Getenv("BRIEF_API_BASE_URL"); url != "" {
		config.API.BaseURL = url
	} else if url := os.Getenv("API_URL"); url != "" {
		config.API.BaseURL = url
	}
	if level := os.Getenv("BRIEF_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}

	expandPaths(&config)

	return &config, nil
}

// DefaultConfigDir returns ~/.config/brief.
func DefaultConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "brief")
}

// DefaultConfigFile returns the path `config generate` writes to.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Leaf keys keep the snake_case names; durations as strings for TOML
	// readability.
	v.Set("api.base_url", config.API.BaseURL)
	v.Set("api.timeout", config.API.Timeout.String())
	v.Set("api.user_agent", config.API.UserAgent)

	v.Set("database.path", config.Database.Path)
	v.Set("database.timeout", config.Database.Timeout.String())

	setColors(v, "ui.colors.dark", config.UI.Colors.Dark)
	setColors(v, "ui.colors.light", config.UI.Colors.Light)
	v.Set("ui.summary.word_wrap_max_width", config.UI.Summary.WordWrapMaxWidth)
	v.Set("ui.summary.word_wrap_min_width", config.UI.Summary.WordWrapMinWidth)
	v.Set("ui.swipe_threshold", config.UI.SwipeThreshold)
	v.Set("ui.swipe_step", config.UI.SwipeStep)

	b := config.Keys.Bindings
	v.Set("keys.modifier", config.Keys.Modifier)
	v.Set("keys.bindings.quit", b.Quit)
	v.Set("keys.bindings.search", b.Search)
	v.Set("keys.bindings.channels", b.Channels)
	v.Set("keys.bindings.triage", b.Triage)
	v.Set("keys.bindings.summaries", b.Summaries)
	v.Set("keys.bindings.refresh", b.Refresh)
	v.Set("keys.bindings.logout", b.Logout)
	v.Set("keys.bindings.toggle_theme", b.ToggleTheme)
	v.Set("keys.bindings.back", b.Back)

	v.Set("log.level", config.Log.Level)
	v.Set("log.file", config.Log.File)
	v.Set("metrics.addr", config.Metrics.Addr)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func setColors(v *viper.Viper, prefix string, c UIColors) {
	for key, value := range map[string]string{
		"primary":    c.Primary,
		"secondary":  c.Secondary,
		"accent":     c.Accent,
		"background": c.Background,
		"surface":    c.Surface,
		"text":       c.Text,
		"muted":      c.Muted,
		"error":      c.Error,
		"success":    c.Success,
		"urgent":     c.Urgent,
		"mid":        c.Mid,
	} {
		if value != "" {
			v.Set(prefix+"."+key, value)
		}
	}
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
