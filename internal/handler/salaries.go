package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/report"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/salary"
)

func (h *Handler) monthlySummary(r *http.Request) (*domain.MonthlySummary, error) {
	ym, err := h.readYearMonth(r)
	if err != nil {
		return nil, err
	}

	summary := salary.Summarize(ym, h.repository.GetEmployees(), h.repository.GetWorkRecordsByMonth(ym.Year, ym.Month))
	return &summary, nil
}

func (h *Handler) GetMonthlySalaries(w http.ResponseWriter, r *http.Request) {
	summary, err := h.monthlySummary(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.successResponse(w, r, "获取月度工资成功", summary)
}

func (h *Handler) DownloadMonthlyStatementPDF(w http.ResponseWriter, r *http.Request) {
	summary, err := h.monthlySummary(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 先写到缓冲区，出错时还能返回 JSON
	var buf bytes.Buffer
	if err := report.WritePDF(&buf, summary, report.PDFOptions{FontPath: h.config.Report.FontPath}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeAttachment(w, r, "application/pdf", report.Filename(summary, "pdf"), buf.Bytes())
}

func (h *Handler) DownloadMonthlyStatementXLSX(w http.ResponseWriter, r *http.Request) {
	summary, err := h.monthlySummary(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, summary); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeAttachment(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report.Filename(summary, "xlsx"), buf.Bytes())
}

func (h *Handler) writeAttachment(w http.ResponseWriter, r *http.Request, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logInternalServerError(r, err)
	}
}

// SendMonthlyReportMail 把月度报表邮件放入消息队列，由邮件服务生成附件并发送
func (h *Handler) SendMonthlyReportMail(w http.ResponseWriter, r *http.Request) {
	if h.mailChannel == nil {
		h.errorResponse(w, r, "邮件服务未启用")
		return
	}

	var req struct {
		Year  int    `json:"year" validate:"omitempty,min=1"`
		Month int    `json:"month" validate:"omitempty,min=1,max=12"`
		To    string `json:"to" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 年份和月份要么都给出，要么都不给（使用查询参数或当前月份）
	if (req.Year == 0) != (req.Month == 0) {
		h.badRequest(w, r, errors.New("年份和月份必须同时指定"))
		return
	}

	ym, err := h.readYearMonth(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Year != 0 {
		ym = domain.YearMonth{Year: req.Year, Month: req.Month}
	}

	to := req.To
	if to == "" {
		to = h.config.Email.ReportRecipient
	}
	if to == "" {
		h.badRequest(w, r, errors.New("未指定收件人"))
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeMonthlyReport,
		To:   to,
		Data: domain.MonthlyReportMailData{Year: ym.Year, Month: ym.Month},
	}
	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "月度报表邮件已加入发送队列", mailMessage)
}

func (h *Handler) publishMail(msg domain.MailMessage) error {
	// 序列化邮件
	mailData, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
