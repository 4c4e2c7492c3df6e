// Package report 把月度工资汇总导出为 PDF 和 Excel 文件
package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/salary"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

// Row 是报表中的一行，合计行的 EmployeeID 为空
type Row struct {
	EmployeeID string
	Name       string
	Salary     domain.SalaryInfo
}

func rows(summary *domain.MonthlySummary) []Row {
	rs := make([]Row, 0, len(summary.Salaries))
	for _, s := range summary.Salaries {
		rs = append(rs, Row{
			EmployeeID: s.Employee.ID,
			Name:       s.Employee.Name,
			Salary:     s.SalaryInfo,
		})
	}
	return rs
}

// rateLine 说明报表使用的时薪和税率
func rateLine() string {
	return fmt.Sprintf("Hourly wage: %d  Tax rate: %.1f%%", salary.HourlyWage, salary.TaxRate*100)
}

func Title(summary *domain.MonthlySummary) string {
	return worktime.MonthPrefix(summary.Year, summary.Month)
}

// Filename 返回下载时使用的文件名，例如 payroll-2024-03.pdf
func Filename(summary *domain.MonthlySummary, ext string) string {
	return fmt.Sprintf("payroll-%s.%s", Title(summary), ext)
}

// romanize 把汉字转为首字母大写的拼音，其他字符保持不变
func romanize(name string) string {
	args := pinyin.NewArgs()

	var sb strings.Builder
	prevHan := false
	for _, r := range name {
		if !unicode.Is(unicode.Han, r) {
			sb.WriteRune(r)
			prevHan = false
			continue
		}

		py := pinyin.SinglePinyin(r, args)
		if len(py) == 0 || py[0] == "" {
			sb.WriteRune('?')
			prevHan = false
			continue
		}
		if prevHan || (sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ")) {
			sb.WriteByte(' ')
		}
		syllable := []rune(py[0])
		syllable[0] = unicode.ToUpper(syllable[0])
		sb.WriteString(string(syllable))
		prevHan = true
	}
	return sb.String()
}
