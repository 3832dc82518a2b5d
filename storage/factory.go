package storage

import (
	"fmt"

	"github.com/rustyeddy/tradeledger/config"
	"github.com/rustyeddy/tradeledger/ledger"
)

// Backend is a ledger.KV that holds resources.
type Backend interface {
	ledger.KV
	Close() error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQLite)(nil)
)

// Open builds the backend named by cfg.Type.
func Open(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageFile:
		return NewFile(cfg.Path)
	case config.StorageSQLite:
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
