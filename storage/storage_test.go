package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradeledger/config"
	"github.com/rustyeddy/tradeledger/ledger"
)

// exerciseKV runs the contract every backend must satisfy.
func exerciseKV(t *testing.T, kv Backend) {
	t.Helper()

	_, ok, err := kv.Read("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Write("a", "1"))
	require.NoError(t, kv.Write("b", "two"))
	require.NoError(t, kv.Write("a", "3"))

	v, ok, err := kv.Read("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	v, ok, err = kv.Read("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, kv.Write("empty", ""))
	v, ok, err = kv.Read("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exerciseKV(t, m)
	assert.NoError(t, m.Close())
}

func TestFile(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "nested", "ledger.json"))
	require.NoError(t, err)
	exerciseKV(t, f)

	// a fresh handle on the same path sees what was written
	again, err := NewFile(f.Path())
	require.NoError(t, err)
	v, ok, err := again.Read("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestFileEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)
	_, ok, err := f.Read("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, _, err = f.Read("a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")

	require.NoError(t, f.Write("a", "1"))
	v, ok, err := f.Read("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		want    any
		wantErr bool
	}{
		{"memory", config.StorageConfig{Type: config.StorageMemory}, &Memory{}, false},
		{"file", config.StorageConfig{Type: config.StorageFile, Path: filepath.Join(dir, "l.json")}, &File{}, false},
		{"sqlite", config.StorageConfig{Type: config.StorageSQLite, Path: filepath.Join(dir, "l.sqlite")}, &SQLite{}, false},
		{"unknown", config.StorageConfig{Type: "redis"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer b.Close()
			assert.IsType(t, tt.want, b)
		})
	}
}

func TestLedgerSurvivesReopen(t *testing.T) {
	cfgs := []config.StorageConfig{
		{Type: config.StorageFile, Path: filepath.Join(t.TempDir(), "ledger.json")},
		{Type: config.StorageSQLite, Path: filepath.Join(t.TempDir(), "ledger.sqlite")},
	}

	for _, cfg := range cfgs {
		t.Run(cfg.Type, func(t *testing.T) {
			kv, err := Open(cfg)
			require.NoError(t, err)

			s := ledger.Load(kv)
			_, err = s.Append(ledger.Win, 50, 20)
			require.NoError(t, err)
			_, err = s.Append(ledger.Loss, 40, 20)
			require.NoError(t, err)
			_, err = s.SetStartingCapital(2500)
			require.NoError(t, err)
			want := s.State()
			require.NoError(t, kv.Close())

			kv, err = Open(cfg)
			require.NoError(t, err)
			defer kv.Close()

			got := ledger.Load(kv).State()
			assert.Equal(t, want, got)
		})
	}
}
