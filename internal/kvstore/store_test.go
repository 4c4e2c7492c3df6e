package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "employees")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "employees", []byte(`[{"id":"1","name":"张三"}]`)))
	got, err := s.Get(ctx, "employees")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"张三"}]`, string(got))

	// 整体覆盖
	require.NoError(t, s.Set(ctx, "employees", []byte(`[]`)))
	got, err = s.Get(ctx, "employees")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))

	_, err = s.Get(ctx, "workRecords")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte(`{"a":1}`)
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "payroll.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "payroll.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "quickTimeSettings", []byte(`{}`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "quickTimeSettings")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("未设置 TEST_DATABASE_DSN")
	}

	cfg := &config.Config{}
	cfg.Database.DSN = dsn
	cfg.Database.ConnectTimeout = 5
	cfg.Database.MaxOpenConns = 2
	cfg.Database.MaxIdleConns = 2
	cfg.Database.MaxIdleTime = 60

	s, err := OpenPostgres(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec(`DELETE FROM documents WHERE key IN ('employees', 'workRecords')`)
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置 TEST_REDIS_ADDR")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	prefix := "payroll-test:" + t.Name() + ":"
	s := NewRedis(client, prefix)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, client.Del(ctx, prefix+"employees", prefix+"workRecords").Err())

	exerciseStore(t, s)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "mongo"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = DriverMemory

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}
