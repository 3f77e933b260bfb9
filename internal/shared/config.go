package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type ServerConfig struct {
	Port            int    `yaml:"port"`
	DBPath          string `yaml:"db_path"`
	Store           string `yaml:"store"`
	StaticDir       string `yaml:"static_dir"`
	LogLevel        string `yaml:"log_level"`
	ShutdownSeconds int    `yaml:"shutdown_seconds"`
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            3000,
		DBPath:          "./db/db.json",
		Store:           StoreFile,
		LogLevel:        "info",
		ShutdownSeconds: 5,
	}
}

// LoadServerConfig reads the optional yaml file at path (empty means none)
// and then applies environment overrides: PORT, NOTES_DB_PATH, NOTES_STORE,
// NOTES_STATIC_DIR, NOTES_LOG_LEVEL.
func LoadServerConfig(path string) (*ServerConfig, error) {
	c := DefaultServerConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Errorf("invalid PORT %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("NOTES_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("NOTES_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("NOTES_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("NOTES_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = StoreFile
	}
	if c.Store != StoreFile && c.Store != StoreSQLite {
		return nil, errors.Errorf("unknown store %q (want %s or %s)", c.Store, StoreFile, StoreSQLite)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, errors.Errorf("invalid port %d", c.Port)
	}
	if c.DBPath == "" {
		c.DBPath = DefaultServerConfig().DBPath
	}
	if c.ShutdownSeconds <= 0 {
		c.ShutdownSeconds = 5
	}
	return c, nil
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

type ClientConfig struct {
	ServerURL      string `yaml:"server_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoadClientConfig falls back to defaults when path does not exist.
func LoadClientConfig(path string) (*ClientConfig, error) {
	c := &ClientConfig{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:3000"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 20
	}
	return c, nil
}

func SaveClientConfig(path string, c *ClientConfig) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}
