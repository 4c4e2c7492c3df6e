package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

const cjkFont = "cjk"

type PDFOptions struct {
	// FontPath 指向支持中文的 TTF 字体，为空时使用内置字体并把姓名转为拼音
	FontPath string
}

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Employee", 60, "L"},
	{"Hours", 25, "R"},
	{"Gross", 30, "R"},
	{"Tax", 30, "R"},
	{"Net", 30, "R"},
}

// WritePDF 生成单页的月度工资单
func WritePDF(w io.Writer, summary *domain.MonthlySummary, opts PDFOptions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	name := func(s string) string { return tr(romanize(s)) }
	if opts.FontPath != "" {
		pdf.AddUTF8Font(cjkFont, "", opts.FontPath)
		pdf.AddUTF8Font(cjkFont, "B", opts.FontPath)
		family = cjkFont
		tr = func(s string) string { return s }
		name = func(s string) string { return s }
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Payroll Statement %s", Title(summary))))
	pdf.Ln(12)

	pdf.SetFont(family, "", 10)
	pdf.Cell(0, 6, tr(rateLine()))
	pdf.Ln(10)

	pdf.SetFont(family, "B", 11)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 11)
	for _, r := range rows(summary) {
		writePDFRow(pdf, name(r.Name), r.Salary)
	}

	pdf.SetFont(family, "B", 11)
	writePDFRow(pdf, "Total", summary.Total)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func writePDFRow(pdf *gofpdf.Fpdf, label string, info domain.SalaryInfo) {
	cells := []string{
		label,
		worktime.FormatHours(info.TotalHours),
		fmt.Sprintf("%d", info.TotalSalary),
		fmt.Sprintf("%d", info.TaxDeduction),
		fmt.Sprintf("%d", info.NetSalary),
	}
	for i, c := range pdfColumns {
		pdf.CellFormat(c.width, 8, cells[i], "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)
}
