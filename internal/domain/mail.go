package domain

const MailTypeMonthlyReport = "monthly_report"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type MonthlyReportMailData struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}
