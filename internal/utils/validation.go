package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

var (
	ErrEmployeeRequired = errors.New("请选择员工")
	ErrEmptyName        = errors.New("员工姓名不能为空")
	ErrInvalidDate      = errors.New("日期格式应为 YYYY-MM-DD")
	ErrInvalidTime      = errors.New("时间格式应为 HH:mm")
	ErrSameStartEnd     = errors.New("开始时间和结束时间不能相同")
)

// ValidateWorkRecord 在工作记录写入存储之前检查用户输入
// 结束时间早于开始时间是合法的，表示跨夜班次
func ValidateWorkRecord(wr *domain.WorkRecord) error {
	if strings.TrimSpace(wr.EmployeeID) == "" {
		return ErrEmployeeRequired
	}

	if _, err := time.Parse(worktime.DateLayout, wr.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, wr.Date)
	}

	if err := validateClockString("开始时间", wr.StartTime); err != nil {
		return err
	}
	if err := validateClockString("结束时间", wr.EndTime); err != nil {
		return err
	}

	if wr.StartTime == wr.EndTime {
		return ErrSameStartEnd
	}

	return nil
}

func ValidateEmployeeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

func ValidateQuickTimeSettings(s *domain.QuickTimeSettings) error {
	presets := []struct {
		name   string
		preset domain.QuickTimePreset
	}{
		{"早班", s.Morning},
		{"午班", s.Lunch},
		{"晚班", s.Dinner},
	}

	for _, p := range presets {
		if !clockInRange(p.preset.StartTime) {
			return fmt.Errorf("%w: %s的开始时间超出范围", ErrInvalidTime, p.name)
		}
		if !clockInRange(p.preset.EndTime) {
			return fmt.Errorf("%w: %s的结束时间超出范围", ErrInvalidTime, p.name)
		}
		if p.preset.StartTime == p.preset.EndTime {
			return fmt.Errorf("%w: %s", ErrSameStartEnd, p.name)
		}
	}

	return nil
}

func validateClockString(field, s string) error {
	clock, err := worktime.ParseTime(s)
	if err != nil || len(s) != 5 || !clockInRange(clock) {
		return fmt.Errorf("%w: %s %q", ErrInvalidTime, field, s)
	}
	return nil
}

func clockInRange(c domain.ClockTime) bool {
	return c.Hours >= 0 && c.Hours <= 23 && c.Minutes >= 0 && c.Minutes <= 59
}
