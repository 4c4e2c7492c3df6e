package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
)

// MailPublisher 是发送邮件任务所需的最小接口，*amqp.Channel 实现了它
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel MailPublisher // 未配置 rabbitmq 时为 nil

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh MailPublisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees)
			r.Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employee)
				r.Get("/", h.GetEmployee)
				r.Patch("/", h.UpdateEmployee)
				r.Delete("/", h.DeleteEmployee)
				r.Get("/work-records", h.GetEmployeeMonthlyRecords)
			})
		})

		r.Route("/work-records", func(r chi.Router) {
			r.Get("/", h.GetWorkRecords)
			r.Post("/", h.CreateWorkRecord)
			r.Get("/marked-dates", h.GetMarkedDates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workRecord)
				r.Get("/", h.GetWorkRecord)
				r.Patch("/", h.UpdateWorkRecord)
				r.Delete("/", h.DeleteWorkRecord)
			})
		})

		r.Route("/salaries/monthly", func(r chi.Router) {
			r.Get("/", h.GetMonthlySalaries)
			r.Get("/statement.pdf", h.DownloadMonthlyStatementPDF)
			r.Get("/statement.xlsx", h.DownloadMonthlyStatementXLSX)
			r.Post("/report-mail", h.SendMonthlyReportMail)
		})

		r.Route("/settings/quick-time", func(r chi.Router) {
			r.Get("/", h.GetQuickTimeSettings)
			r.Put("/", h.UpdateQuickTimeSettings)
		})
	})
}
