package repository

import (
	"errors"
	"log/slog"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
)

// GetQuickTimeSettings 总是返回完整的设置，缺失的部分使用默认值
func (r *Repository) GetQuickTimeSettings() domain.QuickTimeSettings {
	data, err := r.getRaw(KeyQuickTimeSettings)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			slog.Error("无法读取快捷时间设置", "error", err)
		}
		return domain.DefaultQuickTimeSettings()
	}

	settings, err := domain.ResolveQuickTimeSettings(data)
	if err != nil {
		slog.Error("无法解析快捷时间设置", "error", err)
	}
	return settings
}

func (r *Repository) SaveQuickTimeSettings(settings domain.QuickTimeSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.setJSON(KeyQuickTimeSettings, settings); err != nil {
		slog.Error("无法写入快捷时间设置", "error", err)
	}
}
