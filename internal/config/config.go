package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ErrMissingBaseURL is returned by Validate when no API base URL has been configured.  Tanpen cannot do anything
// useful without it, so callers treat it as fatal.
var ErrMissingBaseURL = errors.New("api.base_url is not configured")

const (
	defaultAPITimeout = 30 * time.Second
	defaultAuthHeader = "X-Telegram-Init-Data"
)

// Config represents the application configuration
type Config struct {
	API      APIConfig      `yaml:"api,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Player   PlayerConfig   `yaml:"player,omitempty"`
	Stream   StreamConfig   `yaml:"stream,omitempty"`
	Feedback FeedbackConfig `yaml:"feedback,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// APIConfig contains settings for the remote video API
type APIConfig struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"` // Go duration string, e.g. "30s"
	AuthHeader string `yaml:"auth_header,omitempty"`
}

// SessionConfig carries the host-issued session.  The host launcher normally supplies it through the environment so it
// is rarely written to disk.
type SessionConfig struct {
	InitData string `yaml:"init_data,omitempty"`
}

// PlayerConfig contains media player settings
type PlayerConfig struct {
	Type string `yaml:"type,omitempty"` // "mpv", "custom"
	Path string `yaml:"path,omitempty"`
	Args string `yaml:"args,omitempty"`
}

// StreamConfig contains settings for the local server that hands downloaded videos to the media player
type StreamConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

// FeedbackConfig controls how haptic-style feedback is rendered in a terminal
type FeedbackConfig struct {
	Haptics string `yaml:"haptics,omitempty"` // "bell", "log", "off"
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

// RequestTimeout returns the parsed API timeout, falling back to the default when unset or invalid.
func (c APIConfig) RequestTimeout() time.Duration {
	if c.Timeout == "" {
		return defaultAPITimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultAPITimeout
	}
	return d
}

// HeaderName returns the header the session token is sent under
func (c APIConfig) HeaderName() string {
	if c.AuthHeader == "" {
		return defaultAuthHeader
	}
	return c.AuthHeader
}

// Validate checks the configuration for values Tanpen cannot run without.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if _, err := time.ParseDuration(c.API.Timeout); c.API.Timeout != "" && err != nil {
		return fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return nil
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties.  Dynamic properties are those that are determined at runtime, for example log file location which is different per OS.
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Apply environment variable overrides
//
// Load does not validate; call Validate once the config has been fully assembled.
func Load() (*Config, error) {
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	applyDynamicDefaults(cfg)

	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	applyEnvVarOverrides(cfg)

	return cfg, nil
}

// applyDynamicDefaults sets runtime-determined default values for any properties that haven't been explicitly configured.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateConfig reads the existing config, applies the update function, and saves it back to disk
func UpdateConfig(updateFn func(*Config)) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		return fmt.Errorf("error loading config file from disk: %w", err)
	}

	updateFn(cfg)

	return save(cfg, configPath)
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else tries
// to use OS config location defaults.
func getConfigPath() (string, error) {
	configPath := os.Getenv("TANPEN_CONFIG_PATH")
	if configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "tanpen", "config.yaml"), nil
}

// createBaseDefaultConfig creates a config with all default values.  The API base URL deliberately has no default.
func createBaseDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout:    defaultAPITimeout.String(),
			AuthHeader: defaultAuthHeader,
		},
		Player: PlayerConfig{
			Type: "mpv",
			Path: "mpv",
		},
		Stream: StreamConfig{
			ListenAddr: "127.0.0.1:0",
		},
		Feedback: FeedbackConfig{
			Haptics: "bell",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultLogFilePath returns the path to the log file.  Tries to use expected OS location defaults.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tanpen.log")
	}

	switch runtime.GOOS {
	case "windows":
		// Windows:  %LOCALAPPDATA%\tanpen\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, "tanpen", "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "local", "tanpen", "logs")
		}
	case "darwin":
		// macOS:  ~/Library/Logs/tanpen
		basePath = filepath.Join(homedir, "Library", "Logs", "tanpen")
	default:
		// Linux/BSD:  XDG_STATE_HOME
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, "tanpen", "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", "tanpen", "logs")
		}
	}

	if err := os.MkdirAll(basePath, 0700); err != nil {
		return filepath.Join(".", "tanpen.log")
	}
	return filepath.Join(basePath, "tanpen.log")
}
