package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
)

// 请求中的每个字段都必须出现，0 点 0 分需要与缺失区分开
type clockTimeRequest struct {
	Hours   *int `json:"hours" validate:"required,min=0,max=23"`
	Minutes *int `json:"minutes" validate:"required,min=0,max=59"`
}

type quickTimePresetRequest struct {
	StartTime *clockTimeRequest `json:"startTime" validate:"required"`
	EndTime   *clockTimeRequest `json:"endTime" validate:"required"`
}

type quickTimeSettingsRequest struct {
	Morning *quickTimePresetRequest `json:"morning" validate:"required"`
	Lunch   *quickTimePresetRequest `json:"lunch" validate:"required"`
	Dinner  *quickTimePresetRequest `json:"dinner" validate:"required"`
}

func (c *clockTimeRequest) toDomain() domain.ClockTime {
	return domain.ClockTime{Hours: *c.Hours, Minutes: *c.Minutes}
}

func (p *quickTimePresetRequest) toDomain() domain.QuickTimePreset {
	return domain.QuickTimePreset{StartTime: p.StartTime.toDomain(), EndTime: p.EndTime.toDomain()}
}

func (h *Handler) GetQuickTimeSettings(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取快捷时间设置成功", h.repository.GetQuickTimeSettings())
}

// UpdateQuickTimeSettings 整体覆盖快捷时间设置，三个预设都必须完整给出
func (h *Handler) UpdateQuickTimeSettings(w http.ResponseWriter, r *http.Request) {
	var req quickTimeSettingsRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings := domain.QuickTimeSettings{
		Morning: req.Morning.toDomain(),
		Lunch:   req.Lunch.toDomain(),
		Dinner:  req.Dinner.toDomain(),
	}
	if err := utils.ValidateQuickTimeSettings(&settings); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.repository.SaveQuickTimeSettings(settings)

	h.successResponse(w, r, "更新快捷时间设置成功", settings)
}
