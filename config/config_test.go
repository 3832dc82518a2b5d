package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, StorageFile, cfg.Storage.Type)
	assert.Equal(t, 10000.0, cfg.Ledger.DefaultCapital)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func(mod func(c *Config)) *Config {
		c := Default()
		mod(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: Default(),
		},
		{
			name:   "memory needs no path",
			config: valid(func(c *Config) { c.Storage = StorageConfig{Type: StorageMemory} }),
		},
		{
			name:   "local timezone",
			config: valid(func(c *Config) { c.Ledger.Timezone = "Local" }),
		},
		{
			name:   "iana timezone",
			config: valid(func(c *Config) { c.Ledger.Timezone = "UTC" }),
		},
		{
			name:    "missing storage type",
			config:  valid(func(c *Config) { c.Storage.Type = "" }),
			wantErr: true,
			errMsg:  "storage.type is required",
		},
		{
			name:    "unknown storage type",
			config:  valid(func(c *Config) { c.Storage.Type = "redis" }),
			wantErr: true,
			errMsg:  "storage.type must be one of: memory file sqlite",
		},
		{
			name:    "sqlite without path",
			config:  valid(func(c *Config) { c.Storage = StorageConfig{Type: StorageSQLite} }),
			wantErr: true,
			errMsg:  "storage.path is required",
		},
		{
			name:    "negative capital",
			config:  valid(func(c *Config) { c.Ledger.DefaultCapital = -1 }),
			wantErr: true,
			errMsg:  "ledger.default_capital must be at least 0",
		},
		{
			name:    "bad timezone",
			config:  valid(func(c *Config) { c.Ledger.Timezone = "Mars/Olympus" }),
			wantErr: true,
			errMsg:  "is not a known timezone",
		},
		{
			name:    "bad log level",
			config:  valid(func(c *Config) { c.Log.Level = "loud" }),
			wantErr: true,
			errMsg:  `log.level "loud" is not a log level`,
		},
		{
			name:    "bad log format",
			config:  valid(func(c *Config) { c.Log.Format = "xml" }),
			wantErr: true,
			errMsg:  "log.format must be one of: text json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Storage = StorageConfig{Type: StorageSQLite, Path: "/tmp/ledger.sqlite"}
			cfg.Ledger.DefaultCapital = 2500
			cfg.Ledger.Timezone = "UTC"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  default_capital: 500\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Ledger.DefaultCapital)
	assert.Equal(t, Default().Storage, cfg.Storage)
	assert.Equal(t, Default().Log, cfg.Log)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRADELEDGER_STORAGE_TYPE", "sqlite")
	t.Setenv("TRADELEDGER_STORAGE_PATH", "/var/lib/ledger.sqlite")
	t.Setenv("TRADELEDGER_LEDGER_DEFAULT_CAPITAL", "750")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage.Type)
	assert.Equal(t, "/var/lib/ledger.sqlite", cfg.Storage.Path)
	assert.Equal(t, 750.0, cfg.Ledger.DefaultCapital)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	_, err = LoadFromFile("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, LedgerConfig{}.Location())
	assert.Equal(t, time.Local, LedgerConfig{Timezone: "Local"}.Location())
	assert.Equal(t, "UTC", LedgerConfig{Timezone: "UTC"}.Location().String())
}
