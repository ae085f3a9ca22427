package config

import (
	"errors"
	"path/filepath"

	"github.com/spf13/viper"

	"zing-keeper/internal/env"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8998")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path ("console" for stdout only)
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Store configuration (Gitea server hosting the package store)
 * @property {string} base_url - Gitea server base URL
 * @property {string} owner - Default owner for catalog entries without one
 * @property {string} token - Optional access token for private stores
 * @property {string} catalog_repo - Repository holding store_list.yaml
 */
type StoreConfig struct {
	BaseUrl     string `mapstructure:"base_url"`
	Owner       string `mapstructure:"owner"`
	Token       string `mapstructure:"token"`
	CatalogRepo string `mapstructure:"catalog_repo"`
}

/**
 * Hub configuration (file tree the packages are installed into)
 * @property {string} dir - Hub config directory
 */
type HubConfig struct {
	Dir string `mapstructure:"dir"`
}

/**
 * Update check configuration
 * @property {string} interval - Check period (Go duration string, default "1h")
 */
type CheckConfig struct {
	Interval string `mapstructure:"interval"`
}

var ErrPackageNotFound = errors.New("package not found")
var ErrIssueNotFound = errors.New("issue not found")

type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Hub    HubConfig    `mapstructure:"hub"`
	Check  CheckConfig  `mapstructure:"check"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(env.ZingDir)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:8998"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Store.BaseUrl == "" {
		cfg.Store.BaseUrl = "https://git.onoffre.eu"
	}
	if cfg.Store.CatalogRepo == "" {
		cfg.Store.CatalogRepo = "zing-store"
	}
	if cfg.Hub.Dir == "" {
		cfg.Hub.Dir = env.GetHubDir()
	}
	if cfg.Check.Interval == "" {
		cfg.Check.Interval = "1h"
	}
	return cfg
}

/**
 * Reload configuration from disk, keeping defaults for missing keys
 */
func ReloadConfig() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	Config = *cfg
	collectConfig(&Config)
	return nil
}

/**
 * Get log directory path
 */
func LogDir() string {
	return filepath.Join(env.ZingDir, "logs")
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
