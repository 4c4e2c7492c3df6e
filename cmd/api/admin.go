package main

import (
	"log/slog"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const generatedPasswordLength = 16

// ensureInitialAdmin 确保存储中存在初始管理员
// 未配置 INITIAL_ADMIN_PASSWORD 时随机生成密码，只在真正创建管理员时输出到日志
func ensureInitialAdmin(cfg *config.Config, repo *repository.Repository, logger *slog.Logger) error {
	password := cfg.InitialAdmin.Password
	generated := password == ""
	if generated {
		var err error
		password, err = utils.GenerateAdminPassword(generatedPasswordLength)
		if err != nil {
			return err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := repo.EnsureAdmin(&domain.Admin{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return err
	}

	switch {
	case created && generated:
		logger.Warn("已创建初始管理员并随机生成密码，请登录后立即修改", "username", cfg.InitialAdmin.Username, "password", password)
	case created:
		logger.Info("已创建初始管理员", "username", cfg.InitialAdmin.Username)
	}
	return nil
}
