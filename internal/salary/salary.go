// Package salary 把工作记录折算为工资、扣税和实发金额
package salary

import (
	"log/slog"
	"math"
	"sort"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

const (
	HourlyWage = 13000
	TaxRate    = 0.033
)

// CalculateSalary 根据工作时长计算工资，扣税以取整后的应发工资为基数
func CalculateSalary(hours float64) domain.SalaryInfo {
	total := int64(math.Round(hours * HourlyWage))
	return fromGross(hours, total)
}

func fromGross(hours float64, total int64) domain.SalaryInfo {
	tax := int64(math.Round(float64(total) * TaxRate))
	return domain.SalaryInfo{
		TotalHours:   hours,
		TotalSalary:  total,
		TaxDeduction: tax,
		NetSalary:    total - tax,
	}
}

// CalculateEmployeeSalary 统计某个员工在给定记录中的工资，记录保持原有顺序
// 时间格式错误的记录按 0 小时计
func CalculateEmployeeSalary(emp domain.Employee, records []domain.WorkRecord) domain.EmployeeSalary {
	own := make([]domain.WorkRecord, 0)
	hours := 0.0
	for _, r := range records {
		if r.EmployeeID != emp.ID {
			continue
		}
		own = append(own, r)

		h, err := worktime.CalculateWorkHours(r.StartTime, r.EndTime)
		if err != nil {
			slog.Warn("工作记录时间格式错误，按 0 小时计算", "id", r.ID, "error", err)
			continue
		}
		hours += h
	}

	return domain.EmployeeSalary{
		Employee:    emp,
		SalaryInfo:  CalculateSalary(hours),
		WorkRecords: own,
	}
}

// CalculateMonthlyTotal 汇总所有员工的工资，税额按汇总后的应发工资重新计算
func CalculateMonthlyTotal(salaries []domain.EmployeeSalary) domain.SalaryInfo {
	hours := make([]float64, 0, len(salaries))
	var total int64
	for _, s := range salaries {
		hours = append(hours, s.SalaryInfo.TotalHours)
		total += s.SalaryInfo.TotalSalary
	}

	// 排序后再相加，保证结果与输入顺序无关
	sort.Float64s(hours)
	sum := 0.0
	for _, h := range hours {
		sum += h
	}

	return fromGross(sum, total)
}

// Summarize 为每个员工计算工资并给出当月合计，records 应已按月份筛选
func Summarize(ym domain.YearMonth, employees []domain.Employee, records []domain.WorkRecord) domain.MonthlySummary {
	salaries := make([]domain.EmployeeSalary, 0, len(employees))
	for _, e := range employees {
		salaries = append(salaries, CalculateEmployeeSalary(e, records))
	}

	return domain.MonthlySummary{
		Year:     ym.Year,
		Month:    ym.Month,
		Salaries: salaries,
		Total:    CalculateMonthlyTotal(salaries),
	}
}
