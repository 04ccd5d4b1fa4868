package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"rolodex/internal/eventbus"
)

// EnvPrefix prefixes every environment override, e.g. ROLODEX_SERVER_ADDR
const EnvPrefix = "ROLODEX"

// EnvConfigPath names the environment variable that points at a config file
const EnvConfigPath = "ROLODEX_CONFIG"

// Database drivers
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config represents the application configuration
type Config struct {
	Version  int            `mapstructure:"version" toml:"version"`
	Server   ServerConfig   `mapstructure:"server" toml:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	Browse   BrowseConfig   `mapstructure:"browse" toml:"browse"`
}

// ServerConfig configures the HTTP front end
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// DatabaseConfig selects the contact store
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" toml:"driver"` // sqlite or memory
	Path   string `mapstructure:"path" toml:"path"`
	Seed   bool   `mapstructure:"seed" toml:"seed"` // load sample contacts into an empty store
}

// LogConfig configures zap
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"` // empty logs to stderr
}

// BrowseConfig configures the terminal browser
type BrowseConfig struct {
	Remote  string `mapstructure:"remote" toml:"remote"` // base URL of a running server; empty browses in-process
	LogFile string `mapstructure:"log_file" toml:"log_file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for ROLODEX_CONFIG or the user config directory
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path, bus: bus}
}

// DefaultPath returns ROLODEX_CONFIG when set, otherwise <user config dir>/rolodex/config.toml
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "rolodex", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the file does not exist.
// Environment overrides apply either way.
func (cs *configService) Load() (*Config, error) {
	loadedFrom := cs.filePath
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		loadedFrom = ""
	}

	cfg, err := load(loadedFrom)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: loadedFrom})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return load(path)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// load layers defaults, the optional file at path and ROLODEX_* environment overrides
func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.seed", d.Database.Seed)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("browse.remote", d.Browse.Remote)
	v.SetDefault("browse.log_file", d.Browse.LogFile)
}

// Validate rejects settings no command can run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	dataDir := filepath.Join(homeDir, ".local", "share", "rolodex")

	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr: "127.0.0.1:5173",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(dataDir, "rolodex.db"),
			Seed:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Browse: BrowseConfig{
			LogFile: filepath.Join(dataDir, "rolodex.log"),
		},
	}
}
