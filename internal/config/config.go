package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported relational backends for the master table.
const (
	DriverMySQL      = "mysql"
	DriverPostgreSQL = "postgresql"
	DriverSQLite     = "sqlite"
)

// Database holds the connection settings for the catalogue store.
type Database struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Camera holds the IP webcam settings for image capture.
type Camera struct {
	URL        string `yaml:"url"`
	CaptureDir string `yaml:"capture_dir"`
}

// LLM holds the completion-service settings shared by the extraction and
// classification oracles.
type LLM struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// Config is the full booklog configuration. Values are resolved in order:
// built-in defaults, then an optional booklog.yaml in the working directory,
// then environment variables (a .env file, if present, is loaded by the root
// command before this runs).
type Config struct {
	Camera   Camera   `yaml:"camera"`
	Database Database `yaml:"database"`
	LLM      LLM      `yaml:"llm"`
	Location string   `yaml:"location"`
}

// ConfigFile is the optional on-disk overlay read by Load.
const ConfigFile = "booklog.yaml"

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Camera: Camera{
			CaptureDir: "captured_images",
		},
		Database: Database{
			Driver:   DriverMySQL,
			Host:     "localhost",
			Port:     3306,
			Username: "root",
			Name:     "booklog",
		},
		LLM: LLM{
			Provider:    "openai",
			Temperature: 0.2,
		},
	}
}

// Load resolves the configuration from defaults, the optional YAML overlay,
// and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(ConfigFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", ConfigFile, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Camera.URL, "CAMERA_URL")
	setString(&cfg.Camera.CaptureDir, "CAPTURE_DIR")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Username, "DB_USERNAME")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.LLM.Provider, "CATALOGING_PROVIDER")
	setString(&cfg.LLM.Model, "CATALOGING_MODEL")
	setString(&cfg.Location, "BOOK_LOCATION")

	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("CATALOGING_TEMPERATURE"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLM.Temperature = temp
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks settings that must be rejected at construction time.
func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case DriverMySQL, DriverPostgreSQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	return nil
}

// DriverName returns the database/sql driver name registered for the
// configured backend.
func (d Database) DriverName() (string, error) {
	switch strings.ToLower(d.Driver) {
	case DriverMySQL:
		return "mysql", nil
	case DriverPostgreSQL:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", d.Driver)
	}
}

// DSN builds the connection string for the configured backend.
func (d Database) DSN() (string, error) {
	switch strings.ToLower(d.Driver) {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			d.Username, d.Password, d.Host, d.Port, d.Name), nil
	case DriverPostgreSQL:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			d.Username, d.Password, d.Host, d.Port, d.Name), nil
	case DriverSQLite:
		// The name is treated as a file path; a bare name gets a .db suffix.
		if d.Name == ":memory:" || strings.HasSuffix(d.Name, ".db") {
			return d.Name, nil
		}
		return d.Name + ".db", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", d.Driver)
	}
}
