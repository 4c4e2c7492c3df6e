package domain

import "encoding/json"

type ClockTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type QuickTimePreset struct {
	StartTime ClockTime `json:"startTime"`
	EndTime   ClockTime `json:"endTime"`
}

// QuickTimeSettings 只用于预填班次表单，不影响薪资计算
type QuickTimeSettings struct {
	Morning QuickTimePreset `json:"morning"`
	Lunch   QuickTimePreset `json:"lunch"`
	Dinner  QuickTimePreset `json:"dinner"`
}

func DefaultQuickTimeSettings() QuickTimeSettings {
	return QuickTimeSettings{
		Morning: QuickTimePreset{StartTime: ClockTime{Hours: 9}, EndTime: ClockTime{Hours: 12}},
		Lunch:   QuickTimePreset{StartTime: ClockTime{Hours: 12}, EndTime: ClockTime{Hours: 15}},
		Dinner:  QuickTimePreset{StartTime: ClockTime{Hours: 18}, EndTime: ClockTime{Hours: 21}},
	}
}

// 存储中的数据可能缺字段，因此用指针区分“未设置”和零值
type partialClockTime struct {
	Hours   *int `json:"hours"`
	Minutes *int `json:"minutes"`
}

type partialPreset struct {
	StartTime *partialClockTime `json:"startTime"`
	EndTime   *partialClockTime `json:"endTime"`
}

type partialQuickTimeSettings struct {
	Morning *partialPreset `json:"morning"`
	Lunch   *partialPreset `json:"lunch"`
	Dinner  *partialPreset `json:"dinner"`
}

// ResolveQuickTimeSettings 把存储中的原始 JSON 解析为完整的设置
// 缺失或越界的字段逐个回退到默认值；JSON 无法解析时返回默认值和错误
func ResolveQuickTimeSettings(data []byte) (QuickTimeSettings, error) {
	settings := DefaultQuickTimeSettings()
	if len(data) == 0 {
		return settings, nil
	}

	var partial partialQuickTimeSettings
	if err := json.Unmarshal(data, &partial); err != nil {
		return settings, err
	}

	mergePreset(&settings.Morning, partial.Morning)
	mergePreset(&settings.Lunch, partial.Lunch)
	mergePreset(&settings.Dinner, partial.Dinner)

	return settings, nil
}

func mergePreset(dst *QuickTimePreset, src *partialPreset) {
	if src == nil {
		return
	}
	mergeClock(&dst.StartTime, src.StartTime)
	mergeClock(&dst.EndTime, src.EndTime)
}

func mergeClock(dst *ClockTime, src *partialClockTime) {
	if src == nil {
		return
	}
	if src.Hours != nil && *src.Hours >= 0 && *src.Hours <= 23 {
		dst.Hours = *src.Hours
	}
	if src.Minutes != nil && *src.Minutes >= 0 && *src.Minutes <= 59 {
		dst.Minutes = *src.Minutes
	}
}
