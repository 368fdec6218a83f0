package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultPort       = 8080
	DefaultEnv        = "development"
	DefaultFilename   = "portfolio.pdf"
	DefaultOutputDir  = "."
	DefaultTTLSeconds = 3600
	DefaultTitle      = "Portfolio"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Defaults DefaultConfig  `json:"defaults"`
	Document DocumentConfig `json:"document"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `json:"port"`
	Env  string `json:"env"`
}

// DatabaseConfig holds the record store connection. An empty DSN disables the store.
type DatabaseConfig struct {
	Driver string `json:"driver,omitempty"`
	DSN    string `json:"dsn,omitempty"`
}

// RedisConfig holds the render cache connection. An empty URL disables caching.
type RedisConfig struct {
	URL        string `json:"url,omitempty"`
	TTLSeconds int    `json:"ttl_seconds,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
	Filename  string `json:"filename"`
}

// DocumentConfig holds PDF metadata.
type DocumentConfig struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// TTL returns the cache entry lifetime.
func (r RedisConfig) TTL() (ttl time.Duration) {
	ttl = time.Duration(r.TTLSeconds) * time.Second
	return ttl
}

// OutputPath joins the default output directory and filename.
func (c *Config) OutputPath() (path string) {
	path = filepath.Join(c.Defaults.OutputDir, c.Defaults.Filename)
	return path
}

// DefaultPath returns $HOME/.checkdisout/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".checkdisout", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'checkdisout init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	err = cfg.finish()
	return cfg, err
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		err = cfg.finish()
		return cfg, err
	}

	cfg, err = Load(path)
	return cfg, err
}

func (c *Config) finish() (err error) {
	err = c.applyEnv()
	if err != nil {
		return err
	}

	err = c.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return err
	}

	return err
}

// applyEnv loads .env when present and applies CHECKDISOUT_* overrides.
func (c *Config) applyEnv() (err error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if env := os.Getenv("CHECKDISOUT_ENV"); env != "" {
		c.Server.Env = env
	}

	if port := os.Getenv("CHECKDISOUT_PORT"); port != "" {
		c.Server.Port, err = strconv.Atoi(port)
		if err != nil {
			err = errors.Wrapf(err, "invalid CHECKDISOUT_PORT %q", port)
			return err
		}
	}

	if url := os.Getenv("CHECKDISOUT_REDIS_URL"); url != "" {
		c.Redis.URL = url
	}

	if driver := os.Getenv("CHECKDISOUT_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}

	if dsn := os.Getenv("CHECKDISOUT_DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}

	if dir := os.Getenv("CHECKDISOUT_OUTPUT_DIR"); dir != "" {
		c.Defaults.OutputDir = dir
	}

	return err
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() (err error) {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = errors.Errorf("server.port %d is out of range", c.Server.Port)
		return err
	}

	if c.Server.Env == "" {
		c.Server.Env = DefaultEnv
	}

	switch c.Database.Driver {
	case "":
		if c.Database.DSN != "" {
			err = errors.New("database.driver is required when database.dsn is set")
			return err
		}
	case "postgres", "sqlite":
	default:
		err = errors.Errorf("database.driver %q is not supported (use postgres or sqlite)", c.Database.Driver)
		return err
	}

	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = DefaultTTLSeconds
	}
	if c.Redis.TTLSeconds < 0 {
		err = errors.New("redis.ttl_seconds must be positive")
		return err
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = DefaultOutputDir
	}

	if c.Defaults.Filename == "" {
		c.Defaults.Filename = DefaultFilename
	}

	if c.Document.Title == "" {
		c.Document.Title = DefaultTitle
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		Server: ServerConfig{
			Port: DefaultPort,
			Env:  DefaultEnv,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(homeDir, ".checkdisout", "portfolios.db"),
		},
		Redis: RedisConfig{
			TTLSeconds: DefaultTTLSeconds,
		},
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "Portfolios"),
			Filename:  DefaultFilename,
		},
		Document: DocumentConfig{
			Title:  DefaultTitle,
			Author: "your-name",
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
