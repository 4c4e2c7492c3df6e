package main

import (
	"bytes"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
)

func newAdminTestEnv(t *testing.T, password string) (*config.Config, *repository.Repository, *bytes.Buffer, *slog.Logger) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Store.QueryTimeout = 5
	cfg.InitialAdmin.Username = "admin"
	cfg.InitialAdmin.Password = password

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return cfg, repository.NewRepository(cfg, kvstore.NewMemory()), &buf, logger
}

func TestEnsureInitialAdminGeneratesPassword(t *testing.T) {
	cfg, repo, logs, logger := newAdminTestEnv(t, "")

	require.NoError(t, ensureInitialAdmin(cfg, repo, logger))

	m := regexp.MustCompile(`password=(\S+)`).FindStringSubmatch(logs.String())
	require.Len(t, m, 2, logs.String())
	password := m[1]
	assert.Len(t, password, generatedPasswordLength)

	admin, err := repo.GetAdmin("admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)))

	// 再次启动时管理员已存在，不会再生成或输出密码
	logs.Reset()
	require.NoError(t, ensureInitialAdmin(cfg, repo, logger))
	assert.NotContains(t, logs.String(), "password=")

	again, err := repo.GetAdmin("admin")
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestEnsureInitialAdminUsesConfiguredPassword(t *testing.T) {
	cfg, repo, logs, logger := newAdminTestEnv(t, "configured-password")

	require.NoError(t, ensureInitialAdmin(cfg, repo, logger))
	assert.NotContains(t, logs.String(), "configured-password")

	admin, err := repo.GetAdmin("admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("configured-password")))
}
