// Package config loads the HeartBeats configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	ML      MLConfig      `yaml:"ml"`
	Session SessionConfig `yaml:"session"`
	Contact Contact       `yaml:"contact"`
}

type HTTPConfig struct {
	Port         int           `yaml:"port"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// MLConfig points at the classifier artifact loaded at start.
type MLConfig struct {
	ModelType string `yaml:"model_type"`
	ModelPath string `yaml:"model_path"`
}

type SessionConfig struct {
	Capacity   int    `yaml:"capacity"`
	CookieName string `yaml:"cookie_name"`
}

// LogConfig controls the zap logger and its optional rotating file.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Contact is the static information shown on the contact page.
type Contact struct {
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// Default returns the configuration used for keys absent from the file.
func Default() *Config {
	cfg := &Config{}
	cfg.Http.Port = 8501
	cfg.Http.Timeout = 30 * time.Second
	cfg.Http.MaxBodyBytes = 64 << 10
	cfg.Log = LogConfig{
		Level:      "info",
		Format:     "json",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
	cfg.ML.ModelType = "decision_tree"
	cfg.ML.ModelPath = "models/heart_tree.json"
	cfg.Session.Capacity = 1024
	cfg.Session.CookieName = "hb_session"
	cfg.Contact = Contact{
		Email:   "petikmanggafm@gmail.com",
		Phone:   "0852-1234-1117",
		Address: "Universitas Negeri Jakarta, Rawamangun, Jakarta Timur",
	}
	return cfg
}

// Load reads path on top of the defaults, then applies environment
// overrides. A .env file in the working directory is honoured when present.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Http.Port = getEnvIntOrDefault("HEARTBEATS_PORT", cfg.Http.Port)
	cfg.Log.Level = getEnvOrDefault("HEARTBEATS_LOG_LEVEL", cfg.Log.Level)
	cfg.ML.ModelType = getEnvOrDefault("HEARTBEATS_MODEL_TYPE", cfg.ML.ModelType)
	cfg.ML.ModelPath = getEnvOrDefault("HEARTBEATS_MODEL_PATH", cfg.ML.ModelPath)
}

// Validate reports the first setting that would keep the server from starting.
func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.Http.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	if strings.TrimSpace(c.ML.ModelPath) == "" {
		return errors.New("ml.model_path is required")
	}
	if strings.TrimSpace(c.ML.ModelType) == "" {
		return errors.New("ml.model_type is required")
	}
	if c.Session.Capacity <= 0 {
		return errors.New("session.capacity must be positive")
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session.cookie_name is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Http.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
