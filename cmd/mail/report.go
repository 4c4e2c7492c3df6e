package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/report"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/salary"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
	"github.com/wneessen/go-mail"
)

// incomingMail 与 domain.MailMessage 相同，只是 Data 延迟到确定类型后再解析
type incomingMail struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type reportRow struct {
	Name         string
	Hours        string
	TotalSalary  int64
	TaxDeduction int64
	NetSalary    int64
}

type monthlyReportView struct {
	Title string
	Rows  []reportRow
	Total reportRow
}

func newReportRow(name string, info domain.SalaryInfo) reportRow {
	return reportRow{
		Name:         name,
		Hours:        worktime.FormatHours(info.TotalHours),
		TotalSalary:  info.TotalSalary,
		TaxDeduction: info.TaxDeduction,
		NetSalary:    info.NetSalary,
	}
}

type reportMailer struct {
	repo        *repository.Repository
	from        string
	templateDir string
	fontPath    string
}

// build 根据存储中的数据生成月度报表邮件，正文为汇总表格，附件为 PDF 工资单
func (m *reportMailer) build(in *incomingMail) (*mail.Msg, error) {
	var data domain.MonthlyReportMailData
	if err := json.Unmarshal(in.Data, &data); err != nil {
		return nil, err
	}
	if data.Month < 1 || data.Month > 12 {
		return nil, fmt.Errorf("月份无效: %d", data.Month)
	}

	ym := domain.YearMonth{Year: data.Year, Month: data.Month}
	summary := salary.Summarize(ym, m.repo.GetEmployees(), m.repo.GetWorkRecordsByMonth(ym.Year, ym.Month))

	view := monthlyReportView{
		Title: report.Title(&summary),
		Rows:  make([]reportRow, 0, len(summary.Salaries)),
		Total: newReportRow("合计", summary.Total),
	}
	for _, s := range summary.Salaries {
		view.Rows = append(view.Rows, newReportRow(s.Employee.Name, s.SalaryInfo))
	}

	tmpl, err := template.ParseFiles(filepath.Join(m.templateDir, "monthly_report_email.html"))
	if err != nil {
		return nil, err
	}

	var pdf bytes.Buffer
	if err := report.WritePDF(&pdf, &summary, report.PDFOptions{FontPath: m.fontPath}); err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, err
	}
	if err := msg.To(in.To); err != nil {
		return nil, err
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, view); err != nil {
		return nil, err
	}
	if err := msg.AttachReader(report.Filename(&summary, "pdf"), &pdf); err != nil {
		return nil, err
	}
	msg.Subject(fmt.Sprintf("工资记录 - %s 月度报表", view.Title))

	return msg, nil
}
