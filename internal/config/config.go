package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Export   ExportConfig   `yaml:"export"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	AssetsDir string `yaml:"assets_dir"`
}

type StorageConfig struct {
	// Driver is one of sqlite, postgres, memory.
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type ExportConfig struct {
	PaintDelayMS  int    `yaml:"paint_delay_ms"`
	ModalSettleMS int    `yaml:"modal_settle_ms"`
	Title         string `yaml:"title"`
}

type CatalogConfig struct {
	File string `yaml:"file"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func (e ExportConfig) PaintDelay() time.Duration {
	return time.Duration(e.PaintDelayMS) * time.Millisecond
}

func (e ExportConfig) ModalSettle() time.Duration {
	return time.Duration(e.ModalSettleMS) * time.Millisecond
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 3000, AssetsDir: "public/images"},
		Storage:  StorageConfig{Driver: "sqlite", Path: "daily-orders.db"},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Database: "daily_orders"},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Export:   ExportConfig{PaintDelayMS: 60, ModalSettleMS: 200, Title: "Daily Order Summary"},
		Log:      LogConfig{Level: "debug"},
	}
}

// Load reads the yaml file at path over the defaults, then applies
// environment overrides (a .env file is loaded first when present).
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse yaml: %w", err)
			}
		}
	}

	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Export.PaintDelayMS < 0 || c.Export.ModalSettleMS < 0 {
		return errors.New("export delays must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strVars := map[string]*string{
		"DAILY_ORDERS_ASSETS_DIR":     &cfg.Server.AssetsDir,
		"DAILY_ORDERS_STORAGE_DRIVER": &cfg.Storage.Driver,
		"DAILY_ORDERS_STORAGE_PATH":   &cfg.Storage.Path,
		"DAILY_ORDERS_DB_HOST":        &cfg.Database.Host,
		"DAILY_ORDERS_DB_USER":        &cfg.Database.User,
		"DAILY_ORDERS_DB_PASSWORD":    &cfg.Database.Password,
		"DAILY_ORDERS_DB_NAME":        &cfg.Database.Database,
		"DAILY_ORDERS_RABBITMQ_HOST":  &cfg.RabbitMQ.Host,
		"DAILY_ORDERS_CATALOG_FILE":   &cfg.Catalog.File,
		"DAILY_ORDERS_LOG_LEVEL":      &cfg.Log.Level,
	}
	for key, dst := range strVars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"DAILY_ORDERS_PORT":          &cfg.Server.Port,
		"DAILY_ORDERS_DB_PORT":       &cfg.Database.Port,
		"DAILY_ORDERS_RABBITMQ_PORT": &cfg.RabbitMQ.Port,
	}
	for key, dst := range intVars {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("DAILY_ORDERS_RABBITMQ_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DAILY_ORDERS_RABBITMQ_ENABLED: %w", err)
		}
		cfg.RabbitMQ.Enabled = enabled
	}

	return nil
}
