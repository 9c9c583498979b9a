package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           int           `yaml:"port"`
	Password       string        `yaml:"password"`
	DeviceURL      string        `yaml:"device_url"`      // Base URL of the camera web server (cgi-bin lives under it)
	DeviceUser     string        `yaml:"device_user"`     // Optional HTTP basic auth for the camera
	DevicePassword string        `yaml:"device_password"` // Optional HTTP basic auth for the camera
	DeviceTimeout  time.Duration `yaml:"-"`               // 0 means no timeout
	DatabasePath   string        `yaml:"database"`
	HistoryLimit   int           `yaml:"history_limit"` // Default number of exchanges returned by the history API
	LogDirectory   string        `yaml:"log_dir"`

	// Seconds, mirrored into DeviceTimeout after loading.
	DeviceTimeoutSeconds int `yaml:"device_timeout"`

	ConfigFile string `yaml:"-"`
}

// Default returns the built-in configuration before any file or env override.
func Default() *Config {
	return &Config{
		Port:         8080,
		Password:     "admin",
		DeviceURL:    "http://127.0.0.1",
		DatabasePath: filepath.Join(".", "data", "settings.db"),
		HistoryLimit: 50,
		LogDirectory: filepath.Join(".", "logs"),
		ConfigFile:   "config.yaml",
	}
}

// Load reads configuration with priority: defaults < config.yaml < .env < environment.
func Load() *Config {
	cfg := Default()

	cfg.ConfigFile = getEnv("CONFIG_FILE", cfg.ConfigFile)
	if data, err := os.ReadFile(cfg.ConfigFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("[config] warning: failed to parse %s: %v", cfg.ConfigFile, err)
		}
	}

	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg.Port = getEnvAsInt("PORT", cfg.Port)
	cfg.Password = getEnv("PASSWORD", cfg.Password)
	cfg.DeviceURL = getEnv("DEVICE_URL", cfg.DeviceURL)
	cfg.DeviceUser = getEnv("DEVICE_USER", cfg.DeviceUser)
	cfg.DevicePassword = getEnv("DEVICE_PASSWORD", cfg.DevicePassword)
	cfg.DeviceTimeoutSeconds = getEnvAsInt("DEVICE_TIMEOUT", cfg.DeviceTimeoutSeconds)
	cfg.DatabasePath = getEnv("DB_PATH", cfg.DatabasePath)
	cfg.HistoryLimit = getEnvAsInt("HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.LogDirectory = getEnv("LOG_DIR", cfg.LogDirectory)

	if cfg.DeviceTimeoutSeconds > 0 {
		cfg.DeviceTimeout = time.Duration(cfg.DeviceTimeoutSeconds) * time.Second
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
