package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// EnvPrefix prefixes environment overrides, e.g. TRADELEDGER_STORAGE_PATH.
const EnvPrefix = "TRADELEDGER"

// Config represents the complete application configuration
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage" mapstructure:"storage"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// StorageConfig selects where the ledger is persisted
type StorageConfig struct {
	Type string `json:"type" yaml:"type" mapstructure:"type" validate:"required,oneof=memory file sqlite"`
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path" validate:"required_unless=Type memory"`
}

// LedgerConfig contains ledger defaults
type LedgerConfig struct {
	// DefaultCapital is used until a starting capital is saved.
	DefaultCapital float64 `json:"default_capital" yaml:"default_capital" mapstructure:"default_capital" validate:"gte=0"`
	// Timezone groups monthly performance; empty or "Local" means the
	// process timezone.
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" mapstructure:"timezone" validate:"omitempty,tz"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level" validate:"required,loglevel"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"required,oneof=text json"`
}

// Location resolves Timezone. Validate has already rejected unknown names.
func (l LedgerConfig) Location() *time.Location {
	if l.Timezone == "" || l.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type: StorageFile,
			Path: "./tradeledger.json",
		},
		Ledger: LedgerConfig{
			DefaultCapital: 10000,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the optional file at path,
// and TRADELEDGER_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	return Load(path)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.type", d.Storage.Type)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("ledger.default_capital", d.Ledger.DefaultCapital)
	v.SetDefault("ledger.timezone", d.Ledger.Timezone)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
