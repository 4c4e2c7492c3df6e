// Package worktime 处理 HH:mm 形式的时钟时间与工作时长
package worktime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
)

const (
	DateLayout   = "2006-01-02"
	minutesInDay = 24 * 60
)

var ErrMalformedTime = errors.New("时间格式应为 HH:mm")

// FormatDate 把日期格式化为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatTime 把时、分格式化为 HH:mm，不做范围检查
func FormatTime(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// ParseTime 以冒号分隔解析时、分，两部分都必须是数字
func ParseTime(s string) (domain.ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return domain.ClockTime{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.ClockTime{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	return domain.ClockTime{Hours: hours, Minutes: minutes}, nil
}

// CalculateWorkHours 计算从 start 到 end 的工作时长（小时，可为小数）
// 结束时间早于开始时间时视为跨越午夜一次，超过 24 小时的班次无法表示
func CalculateWorkHours(start, end string) (float64, error) {
	startClock, err := ParseTime(start)
	if err != nil {
		return 0, err
	}
	endClock, err := ParseTime(end)
	if err != nil {
		return 0, err
	}

	diff := totalMinutes(endClock) - totalMinutes(startClock)
	if diff < 0 {
		diff += minutesInDay
	}

	return float64(diff) / 60, nil
}

// CurrentMonth 返回当前本地时间所在的年份和月份
func CurrentMonth() domain.YearMonth {
	return MonthOf(time.Now())
}

func MonthOf(t time.Time) domain.YearMonth {
	return domain.YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// MonthPrefix 返回某个月份的记录日期前缀，例如 2024-03
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// FormatHours 把小数小时渲染为 "8h" 或 "7h 30m"
func FormatHours(hours float64) string {
	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func totalMinutes(c domain.ClockTime) int {
	return c.Hours*60 + c.Minutes
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
