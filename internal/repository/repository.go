package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
)

const (
	KeyEmployees         = "employees"
	KeyWorkRecords       = "workRecords"
	KeyQuickTimeSettings = "quickTimeSettings"
	KeyAdmins            = "admins"
)

// Repository 以整个集合为单位读写文档存储
// mu 只保证同一进程内的读-改-写不会交错，多个进程之间仍然是后写者覆盖
type Repository struct {
	cfg   *config.Config
	store kvstore.Store
	mu    sync.Mutex
}

func NewRepository(cfg *config.Config, store kvstore.Store) *Repository {
	return &Repository{
		cfg:   cfg,
		store: store,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(r.cfg.Store.QueryTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (r *Repository) getRaw(key string) ([]byte, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	return r.store.Get(ctx, key)
}

func (r *Repository) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.store.Set(ctx, key, data)
}

// readList 读取并解析一个集合，集合不存在时返回空集合
func readList[T any](r *Repository, key string) ([]T, error) {
	list := make([]T, 0)

	data, err := r.getRaw(key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return list, nil
		}
		return nil, fmt.Errorf("无法读取集合 %s: %w", key, err)
	}

	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("无法解析集合 %s: %w", key, err)
	}
	if list == nil {
		list = make([]T, 0)
	}

	return list, nil
}

// loadList 读取失败或无法解析时返回空集合，只用于查询
func loadList[T any](r *Repository, key string) []T {
	list, err := readList[T](r, key)
	if err != nil {
		slog.Error("读取集合失败", "key", key, "error", err)
		return make([]T, 0)
	}
	return list
}

// loadForUpdate 用于读-改-写，返回 false 时调用者必须放弃写入
func loadForUpdate[T any](r *Repository, key string) ([]T, bool) {
	list, err := readList[T](r, key)
	if err != nil {
		slog.Error("读取集合失败，放弃本次修改", "key", key, "error", err)
		return nil, false
	}
	return list, true
}

// saveList 写入失败时只记录日志
func saveList[T any](r *Repository, key string, list []T) {
	if err := writeList(r, key, list); err != nil {
		slog.Error("无法写入集合", "key", key, "error", err)
	}
}

func writeList[T any](r *Repository, key string, list []T) error {
	if list == nil {
		list = make([]T, 0)
	}
	return r.setJSON(key, list)
}

// appendList 在一次读-改-写中追加多个元素，读取或写入失败时返回错误且不修改集合
func appendList[T any](r *Repository, key string, items []T) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := readList[T](r, key)
	if err != nil {
		return err
	}
	return writeList(r, key, append(list, items...))
}
