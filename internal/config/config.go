package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIURL serves the full restaurant list as a single JSON document
const DefaultAPIURL = "https://storage.googleapis.com/nandos-engineering-public/coding-challenge-rn/restaurantlist.json"

// Cache drivers
const (
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Network NetworkConfig `mapstructure:"network"`
	Data    DataConfig    `mapstructure:"data"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the remote restaurant endpoint
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds snapshot persistence settings
type CacheConfig struct {
	Driver string        `mapstructure:"driver"` // "bolt", "redis" or "memory"
	Path   string        `mapstructure:"path"`   // bolt only
	Key    string        `mapstructure:"key"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// RedisConfig is used when Cache.Driver is "redis"
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// NetworkConfig holds connectivity probe settings
type NetworkConfig struct {
	ProbeAddress  string        `mapstructure:"probe_address"` // host:port dialed to detect connectivity
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	Force         string        `mapstructure:"force"` // "", "online" or "offline"
}

// DataConfig describes data coverage
type DataConfig struct {
	LiveScope      string `mapstructure:"live_scope"`      // only country with populated data
	DefaultCountry string `mapstructure:"default_country"` // initial country filter
}

// CatalogConfig points at an alternative geo catalog
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Driver: DriverBolt,
			Path:   defaultCachePath(),
			Key:    "restaurant_list_cache_v1",
			TTL:    5 * time.Hour,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
			Prefix:  "tablemap:",
		},
		Network: NetworkConfig{
			ProbeAddress:  "storage.googleapis.com:443",
			ProbeInterval: 10 * time.Second,
			ProbeTimeout:  3 * time.Second,
		},
		Data: DataConfig{
			LiveScope: "UK",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tablemap", "tablemap.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tablemap", "tablemap.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tablemap")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tablemap")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tablemap", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tablemap", "cache")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	// Defaults must be registered for AutomaticEnv to reach Unmarshal
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (TABLEMAP_CACHE_DRIVER etc.)
	v.SetEnvPrefix("TABLEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.timeout", cfg.API.Timeout)

	v.SetDefault("cache.driver", cfg.Cache.Driver)
	v.SetDefault("cache.path", cfg.Cache.Path)
	v.SetDefault("cache.key", cfg.Cache.Key)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)

	v.SetDefault("redis.address", cfg.Redis.Address)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.prefix", cfg.Redis.Prefix)

	v.SetDefault("network.probe_address", cfg.Network.ProbeAddress)
	v.SetDefault("network.probe_interval", cfg.Network.ProbeInterval)
	v.SetDefault("network.probe_timeout", cfg.Network.ProbeTimeout)
	v.SetDefault("network.force", cfg.Network.Force)

	v.SetDefault("data.live_scope", cfg.Data.LiveScope)
	v.SetDefault("data.default_country", cfg.Data.DefaultCountry)

	v.SetDefault("catalog.file", cfg.Catalog.File)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects settings the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case DriverBolt, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown cache driver: %q", c.Cache.Driver)
	}
	switch strings.ToLower(c.Network.Force) {
	case "", "online", "offline":
	default:
		return fmt.Errorf("network.force must be online, offline or empty, got %q", c.Network.Force)
	}
	if c.Cache.Key == "" {
		return errors.New("cache.key is required")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// ForcedStatus reports the pinned connectivity, if any
func (c *Config) ForcedStatus() (online bool, ok bool) {
	switch strings.ToLower(c.Network.Force) {
	case "online":
		return true, true
	case "offline":
		return false, true
	}
	return false, false
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
