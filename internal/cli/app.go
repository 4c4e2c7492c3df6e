// Package cli 是直接读写本地存储的命令行工具
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/salary"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

var (
	ErrEmployeeNotFound  = errors.New("找不到员工")
	ErrAmbiguousEmployee = errors.New("有多个同名员工，请使用员工编号")
	ErrInvalidMonth      = errors.New("月份格式应为 YYYY-MM")
)

type App struct {
	repo *repository.Repository
	out  io.Writer
}

func NewApp(repo *repository.Repository, out io.Writer) *App {
	return &App{repo: repo, out: out}
}

func (a *App) ListEmployees() {
	employees := a.repo.GetEmployees()
	if len(employees) == 0 {
		fmt.Fprintln(a.out, "还没有员工")
		return
	}

	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.ID, e.Name})
	}
	PrintTable(a.out, []string{"编号", "姓名"}, rows, nil)
}

func (a *App) AddEmployee(name string) (domain.Employee, error) {
	if err := utils.ValidateEmployeeName(name); err != nil {
		return domain.Employee{}, err
	}

	employee := domain.Employee{ID: uuid.NewString(), Name: strings.TrimSpace(name)}
	a.repo.AddEmployee(employee)

	fmt.Fprintf(a.out, "已添加员工 %s (%s)\n", employee.Name, employee.ID)
	return employee, nil
}

// resolveEmployee 先按编号查找，再按姓名查找
func (a *App) resolveEmployee(ref string) (domain.Employee, error) {
	if e, ok := a.repo.GetEmployee(ref); ok {
		return e, nil
	}

	var matches []domain.Employee
	for _, e := range a.repo.GetEmployees() {
		if e.Name == strings.TrimSpace(ref) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Employee{}, fmt.Errorf("%w: %s", ErrAmbiguousEmployee, ref)
	}
}

func (a *App) AddRecord(employeeRef, date, start, end string) (domain.WorkRecord, error) {
	employee, err := a.resolveEmployee(employeeRef)
	if err != nil {
		return domain.WorkRecord{}, err
	}

	wr := domain.WorkRecord{
		ID:         uuid.NewString(),
		Date:       date,
		EmployeeID: employee.ID,
		StartTime:  start,
		EndTime:    end,
	}
	if err := utils.ValidateWorkRecord(&wr); err != nil {
		return domain.WorkRecord{}, err
	}
	a.repo.AddWorkRecord(wr)

	hours, _ := worktime.CalculateWorkHours(start, end)
	fmt.Fprintf(a.out, "已为 %s 添加 %s %s-%s 的记录（%s）\n", employee.Name, date, start, end, worktime.FormatHours(hours))
	return wr, nil
}

// ListRecords 列出某一天的记录，date 为空时列出全部
func (a *App) ListRecords(date string) {
	var records []domain.WorkRecord
	if date == "" {
		records = a.repo.GetWorkRecords()
	} else {
		records = a.repo.GetWorkRecordsByDate(date)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "没有工作记录")
		return
	}

	names := a.employeeNames()
	rows := make([][]string, 0, len(records))
	total := 0.0
	for _, wr := range records {
		hours, err := worktime.CalculateWorkHours(wr.StartTime, wr.EndTime)
		if err != nil {
			hours = 0
		}
		total += hours

		name, ok := names[wr.EmployeeID]
		if !ok {
			name = "(已删除)"
		}
		rows = append(rows, []string{wr.Date, name, wr.StartTime, wr.EndTime, worktime.FormatHours(hours)})
	}

	PrintTable(a.out, []string{"日期", "员工", "开始", "结束", "时长"}, rows, []string{"合计", "", "", "", worktime.FormatHours(total)})
}

func (a *App) ShowSalary(ym domain.YearMonth) domain.MonthlySummary {
	summary := salary.Summarize(ym, a.repo.GetEmployees(), a.repo.GetWorkRecordsByMonth(ym.Year, ym.Month))

	fmt.Fprintf(a.out, "%s 月度工资\n", worktime.MonthPrefix(ym.Year, ym.Month))
	rows := make([][]string, 0, len(summary.Salaries))
	for _, s := range summary.Salaries {
		rows = append(rows, salaryRow(s.Employee.Name, s.SalaryInfo))
	}
	PrintTable(a.out, []string{"员工", "时长", "应发", "扣税", "实发"}, rows, salaryRow("合计", summary.Total))

	return summary
}

func salaryRow(name string, info domain.SalaryInfo) []string {
	return []string{
		name,
		worktime.FormatHours(info.TotalHours),
		strconv.FormatInt(info.TotalSalary, 10),
		strconv.FormatInt(info.TaxDeduction, 10),
		strconv.FormatInt(info.NetSalary, 10),
	}
}

func (a *App) employeeNames() map[string]string {
	names := make(map[string]string)
	for _, e := range a.repo.GetEmployees() {
		names[e.ID] = e.Name
	}
	return names
}

// ParseYearMonth 解析 YYYY-MM
func ParseYearMonth(s string) (domain.YearMonth, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return domain.YearMonth{}, ErrInvalidMonth
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return domain.YearMonth{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return domain.YearMonth{}, ErrInvalidMonth
	}
	return domain.YearMonth{Year: year, Month: month}, nil
}
