package report

import (
	"io"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []any{"员工编号", "姓名", "工作时长", "应发工资", "扣税", "实发工资"}

// WriteXLSX 生成只有一个工作表的工资汇总，工作表以月份命名
func WriteXLSX(w io.Writer, summary *domain.MonthlySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := Title(summary)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}

	line := 2
	for _, r := range rows(summary) {
		if err := writeXLSXRow(f, sheet, line, r.EmployeeID, r.Name, r.Salary); err != nil {
			return err
		}
		line++
	}
	if err := writeXLSXRow(f, sheet, line, "", "合计", summary.Total); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "F", 14); err != nil {
		return err
	}

	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, sheet string, line int, id, name string, info domain.SalaryInfo) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	values := []any{id, name, info.TotalHours, info.TotalSalary, info.TaxDeduction, info.NetSalary}
	return f.SetSheetRow(sheet, cell, &values)
}
