// Package config handles configuration loading for bharatgpt.
//
// Values are layered: defaults, then ~/.bharatgpt/config.json, then a .env
// file in the working directory, then process environment variables.
// Command-line flags are applied on top by the commands package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/diogo/bharatgpt/internal/models"
)

const (
	configDirName  = ".bharatgpt"
	configFileName = "config.json"

	// LegacyAPIKeyEnv is read when GEMINI_API_KEY is unset
	LegacyAPIKeyEnv = "VITE_GEMINI_API_KEY"
)

// MarkdownConfig configures glamour rendering of tables in the terminal
type MarkdownConfig struct {
	Style     string `json:"style" env:"BHARATGPT_MARKDOWN_STYLE"` // "dark", "light", "notty" or "auto"
	TableWrap bool   `json:"table_wrap"`
}

// Config represents the user configuration
type Config struct {
	// APIKey is read from the file or environment but never written back.
	APIKey  string `json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	Model   string `json:"model" env:"BHARATGPT_MODEL"`
	BaseURL string `json:"base_url,omitempty" env:"BHARATGPT_BASE_URL"`
	Addr    string `json:"addr" env:"BHARATGPT_ADDR"`

	FontSize int `json:"font_size" env:"BHARATGPT_FONT_SIZE"`
	// RequestTimeout is in seconds; 0 disables the timeout.
	RequestTimeout  int     `json:"request_timeout" env:"BHARATGPT_REQUEST_TIMEOUT"`
	Temperature     float64 `json:"temperature,omitempty" env:"BHARATGPT_TEMPERATURE"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty" env:"BHARATGPT_MAX_OUTPUT_TOKENS"`

	TUITheme        string         `json:"tui_theme,omitempty" env:"BHARATGPT_TUI_THEME"`
	Markdown        MarkdownConfig `json:"markdown"`
	CopyToClipboard bool           `json:"copy_to_clipboard" env:"BHARATGPT_COPY_TO_CLIPBOARD"`
	ExportDir       string         `json:"export_dir,omitempty" env:"BHARATGPT_EXPORT_DIR"`

	LogLevel string `json:"log_level" env:"BHARATGPT_LOG_LEVEL"`
	LogFile  string `json:"log_file,omitempty" env:"BHARATGPT_LOG_FILE"`

	// RateLimit is the number of questions per minute per web session.
	RateLimit int `json:"rate_limit" env:"BHARATGPT_RATE_LIMIT"`
	// SessionTTL is the idle lifetime of a web session, in minutes.
	SessionTTL int `json:"session_ttl" env:"BHARATGPT_SESSION_TTL"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:     "dark",
		TableWrap: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Model:          models.DefaultModel.Name,
		Addr:           "localhost:8080",
		FontSize:       16,
		RequestTimeout: 0,
		TUITheme:       "bharat",
		Markdown:       DefaultMarkdownConfig(),
		ExportDir:      filepath.Join(homeDir, configDirName, "exports"),
		LogLevel:       "info",
		RateLimit:      20,
		SessionTTL:     60,
	}
}

// RequestTimeoutDuration returns the provider timeout, or 0 when disabled
func (c Config) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// SessionTTLDuration returns the idle lifetime of a web session
func (c Config) SessionTTLDuration() time.Duration {
	if c.SessionTTL <= 0 {
		return time.Hour
	}
	return time.Duration(c.SessionTTL) * time.Minute
}

// HasAPIKey reports whether an API key is configured
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Redacted returns a copy safe to print, with the API key masked
func (c Config) Redacted() Config {
	out := c
	if out.APIKey != "" {
		out.APIKey = maskKey(out.APIKey)
	}
	return out
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the file may hold an API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFileName), nil
}

// GetExportDir returns the transcript export directory, creating it if necessary
func GetExportDir(cfg Config) (string, error) {
	dir := cfg.ExportDir
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "exports")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return dir, nil
}

// LoadConfig loads the configuration from the default locations
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath, ".env")
}

// LoadConfigFrom loads the configuration from configPath and dotenvPath,
// then applies environment variables. Missing files are not an error.
func LoadConfigFrom(configPath, dotenvPath string) (Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if dotenvPath != "" {
		// godotenv.Load never overrides variables already set in the process.
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(LegacyAPIKeyEnv)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.Model == "" {
		cfg.Model = models.DefaultModel.Name
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk. The API key is never persisted.
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, configFileName), cfg)
}

// SaveConfigTo writes cfg to path without the API key
func SaveConfigTo(path string, cfg Config) error {
	cfg.APIKey = ""

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AvailableModels returns a list of known model names
func AvailableModels() []string {
	all := models.AllModels()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	return names
}
