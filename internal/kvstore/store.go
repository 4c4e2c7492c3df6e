// Package kvstore 提供按键整体读写 JSON 文档的存储，后端可以是 PostgreSQL、SQLite、Redis 或内存
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
)

var ErrNotFound = errors.New("键不存在")

// Store 的每次 Set 都会原子地替换整个值
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Open 根据 STORE_DRIVER 创建对应的存储，并确认其可用
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case DriverPostgres:
		return OpenPostgres(ctx, cfg)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.Store.SQLitePath)
	case DriverRedis:
		return OpenRedis(ctx, cfg)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("未知的存储驱动: %q", cfg.Store.Driver)
	}
}
