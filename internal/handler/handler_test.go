package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
)

const (
	testUsername = "admin"
	testPassword = "correct-horse"
)

type fakePublisher struct {
	keys     []string
	messages []amqp.Publishing
}

func (p *fakePublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, msg)
	return nil
}

type testServer struct {
	t      *testing.T
	h      *Handler
	repo   *repository.Repository
	cookie *http.Cookie
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, publisher MailPublisher) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.Store.QueryTimeout = 5
	cfg.RabbitMQ.Queue = "email_queue"
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}

	repo := repository.NewRepository(cfg, kvstore.NewMemory())

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.EnsureAdmin(&domain.Admin{Username: testUsername, PasswordHash: string(hash)})
	require.NoError(t, err)

	h, err := NewHandler(cfg, repo, publisher)
	require.NoError(t, err)
	h.RegisterRoutes()

	return &testServer{t: t, h: h, repo: repo}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, testResponse) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	rec := httptest.NewRecorder()
	s.h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (s *testServer) login() {
	s.t.Helper()

	rec, resp := s.do(http.MethodPost, "/auth/login", map[string]string{"username": testUsername, "password": testPassword})
	require.True(s.t, resp.Success, resp.Message)

	for _, c := range rec.Result().Cookies() {
		if c.Name == tokenCookieName {
			s.cookie = c
		}
	}
	require.NotNil(s.t, s.cookie)
}

func decodeData[T any](t *testing.T, resp testResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	return v
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, nil)

	_, resp := s.do(http.MethodGet, "/employees", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	s.cookie = &http.Cookie{Name: tokenCookieName, Value: "garbage"}
	_, resp = s.do(http.MethodGet, "/employees", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	_, resp := s.do(http.MethodPost, "/auth/login", map[string]string{"username": testUsername, "password": "wrong"})
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPost, "/auth/login", map[string]string{"username": "nobody", "password": testPassword})
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPost, "/auth/login", map[string]string{"username": testUsername})
	assert.False(t, resp.Success)

	s.login()
	_, resp = s.do(http.MethodGet, "/my-info", nil)
	require.True(t, resp.Success, resp.Message)
	assert.JSONEq(t, `{"username":"admin"}`, string(resp.Data))
}

func TestUpdateMyPassword(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	_, resp := s.do(http.MethodPatch, "/my-info/password", map[string]string{"oldPassword": "wrong", "newPassword": "new-password-1"})
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPatch, "/my-info/password", map[string]string{"oldPassword": testPassword, "newPassword": "new-password-1"})
	require.True(t, resp.Success, resp.Message)

	admin, err := s.repo.GetAdmin(testUsername)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("new-password-1")))
}

func TestEmployeesCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	_, resp := s.do(http.MethodPost, "/employees", map[string]string{"name": "  张三  "})
	require.True(t, resp.Success, resp.Message)
	created := decodeData[domain.Employee](t, resp)
	assert.Equal(t, "张三", created.Name)
	assert.NotEmpty(t, created.ID)

	_, resp = s.do(http.MethodPost, "/employees", map[string]string{"name": "   "})
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPatch, "/employees/"+created.ID, map[string]string{"name": "李四"})
	require.True(t, resp.Success, resp.Message)

	_, resp = s.do(http.MethodGet, "/employees/"+created.ID, nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "李四", decodeData[domain.Employee](t, resp).Name)

	_, resp = s.do(http.MethodGet, "/employees", nil)
	assert.Len(t, decodeData[[]domain.Employee](t, resp), 1)

	_, resp = s.do(http.MethodDelete, "/employees/"+created.ID, nil)
	require.True(t, resp.Success, resp.Message)

	_, resp = s.do(http.MethodGet, "/employees/"+created.ID, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "员工不存在", resp.Message)
}

func TestCreateWorkRecordValidation(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()
	s.repo.AddEmployee(domain.Employee{ID: "e1", Name: "张三"})

	cases := []map[string]string{
		{"date": "2024-03-01", "employeeId": "e1", "startTime": "09:00", "endTime": "09:00"},
		{"date": "2024-03-01", "employeeId": "ghost", "startTime": "09:00", "endTime": "18:00"},
		{"date": "2024-13-01", "employeeId": "e1", "startTime": "09:00", "endTime": "18:00"},
		{"date": "2024-03-01", "employeeId": "e1", "startTime": "9点", "endTime": "18:00"},
		{"date": "2024-03-01", "startTime": "09:00", "endTime": "18:00"},
	}
	for _, body := range cases {
		_, resp := s.do(http.MethodPost, "/work-records", body)
		assert.False(t, resp.Success, "%v", body)
	}
	assert.Empty(t, s.repo.GetWorkRecords())
}

func TestWorkRecordsFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()
	s.repo.AddEmployee(domain.Employee{ID: "e1", Name: "张三"})

	_, resp := s.do(http.MethodPost, "/work-records", map[string]string{"date": "2024-03-01", "employeeId": "e1", "startTime": "09:00", "endTime": "18:00"})
	require.True(t, resp.Success, resp.Message)
	wr := decodeData[domain.WorkRecord](t, resp)

	_, resp = s.do(http.MethodPost, "/work-records", map[string]string{"date": "2024-04-01", "employeeId": "e1", "startTime": "22:00", "endTime": "06:00"})
	require.True(t, resp.Success, resp.Message)

	_, resp = s.do(http.MethodGet, "/work-records?year=2024&month=3", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Len(t, decodeData[[]domain.WorkRecord](t, resp), 1)

	_, resp = s.do(http.MethodGet, "/work-records?date=2024-04-01", nil)
	assert.Len(t, decodeData[[]domain.WorkRecord](t, resp), 1)

	_, resp = s.do(http.MethodGet, "/work-records?date=yesterday", nil)
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodGet, "/work-records?year=2024&month=13", nil)
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPatch, "/work-records/"+wr.ID, map[string]string{"endTime": "09:00"})
	assert.False(t, resp.Success)

	_, resp = s.do(http.MethodPatch, "/work-records/"+wr.ID, map[string]string{"endTime": "12:30"})
	require.True(t, resp.Success, resp.Message)
	updated, ok := s.repo.GetWorkRecord(wr.ID)
	require.True(t, ok)
	assert.Equal(t, "12:30", updated.EndTime)

	_, resp = s.do(http.MethodGet, "/work-records/marked-dates?year=2024&month=3", nil)
	assert.Equal(t, []string{"2024-03-01"}, decodeData[[]string](t, resp))

	_, resp = s.do(http.MethodDelete, "/work-records/"+wr.ID, nil)
	require.True(t, resp.Success, resp.Message)
	assert.Len(t, s.repo.GetWorkRecords(), 1)
}

func TestMonthlySalaries(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()
	s.repo.SaveEmployees([]domain.Employee{{ID: "e1", Name: "张三"}, {ID: "e2", Name: "李四"}})
	s.repo.SaveWorkRecords([]domain.WorkRecord{
		{ID: "r1", Date: "2024-03-01", EmployeeID: "e1", StartTime: "09:00", EndTime: "18:00"},
		{ID: "r2", Date: "2024-03-02", EmployeeID: "e2", StartTime: "22:00", EndTime: "06:00"},
		{ID: "r3", Date: "2024-03-03", EmployeeID: "gone", StartTime: "09:00", EndTime: "18:00"},
		{ID: "r4", Date: "2024-02-28", EmployeeID: "e1", StartTime: "09:00", EndTime: "18:00"},
	})

	_, resp := s.do(http.MethodGet, "/salaries/monthly?year=2024&month=3", nil)
	require.True(t, resp.Success, resp.Message)

	summary := decodeData[domain.MonthlySummary](t, resp)
	require.Len(t, summary.Salaries, 2)
	assert.Equal(t, int64(117000), summary.Salaries[0].SalaryInfo.TotalSalary)
	assert.Equal(t, int64(3861), summary.Salaries[0].SalaryInfo.TaxDeduction)
	assert.Equal(t, 17.0, summary.Total.TotalHours)
	assert.Equal(t, int64(221000), summary.Total.TotalSalary)
	assert.Equal(t, int64(7293), summary.Total.TaxDeduction)

	_, resp = s.do(http.MethodGet, "/employees/e1/work-records?year=2024&month=3", nil)
	require.True(t, resp.Success, resp.Message)
	var monthly struct {
		Year        int               `json:"year"`
		SalaryInfo  domain.SalaryInfo `json:"salaryInfo"`
		WorkRecords []domain.WorkRecord
		MarkedDates []string `json:"markedDates"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &monthly))
	assert.Equal(t, 2024, monthly.Year)
	assert.Equal(t, 9.0, monthly.SalaryInfo.TotalHours)
	assert.Len(t, monthly.WorkRecords, 1)
	assert.Equal(t, []string{"2024-03-01"}, monthly.MarkedDates)
}

func TestStatementDownloads(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()
	s.repo.AddEmployee(domain.Employee{ID: "e1", Name: "张三"})
	s.repo.AddWorkRecord(domain.WorkRecord{ID: "r1", Date: "2024-03-01", EmployeeID: "e1", StartTime: "09:00", EndTime: "18:00"})

	rec, _ := s.do(http.MethodGet, "/salaries/monthly/statement.pdf?year=2024&month=3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2024-03.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec, _ = s.do(http.MethodGet, "/salaries/monthly/statement.xlsx?year=2024&month=3", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-2024-03.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestSendMonthlyReportMail(t *testing.T) {
	publisher := &fakePublisher{}
	s := newTestServer(t, publisher)
	s.login()

	_, resp := s.do(http.MethodPost, "/salaries/monthly/report-mail", map[string]any{"year": 2024, "month": 3})
	assert.False(t, resp.Success)
	assert.Empty(t, publisher.messages)

	_, resp = s.do(http.MethodPost, "/salaries/monthly/report-mail", map[string]any{"year": 2024, "month": 3, "to": "boss@example.com"})
	require.True(t, resp.Success, resp.Message)
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "email_queue", publisher.keys[0])
	assert.JSONEq(t, `{"type":"monthly_report","to":"boss@example.com","data":{"year":2024,"month":3}}`, string(publisher.messages[0].Body))
}

func TestSendMonthlyReportMailDisabled(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	_, resp := s.do(http.MethodPost, "/salaries/monthly/report-mail", map[string]any{"to": "boss@example.com"})
	assert.False(t, resp.Success)
	assert.Equal(t, "邮件服务未启用", resp.Message)
}

func TestQuickTimeSettings(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	_, resp := s.do(http.MethodGet, "/settings/quick-time", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, domain.DefaultQuickTimeSettings(), decodeData[domain.QuickTimeSettings](t, resp))

	settings := domain.DefaultQuickTimeSettings()
	settings.Morning.StartTime = domain.ClockTime{Hours: 8, Minutes: 30}
	_, resp = s.do(http.MethodPut, "/settings/quick-time", settings)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, settings, s.repo.GetQuickTimeSettings())

	settings.Lunch.EndTime.Hours = 24
	_, resp = s.do(http.MethodPut, "/settings/quick-time", settings)
	assert.False(t, resp.Success)
}

func TestQuickTimeSettingsRequiresEveryPreset(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	body := map[string]any{
		"morning": map[string]any{
			"startTime": map[string]int{"hours": 8, "minutes": 0},
			"endTime":   map[string]int{"hours": 11, "minutes": 0},
		},
	}
	_, resp := s.do(http.MethodPut, "/settings/quick-time", body)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.DefaultQuickTimeSettings(), s.repo.GetQuickTimeSettings())

	// 缺少分钟字段
	_, resp = s.do(http.MethodPut, "/settings/quick-time", map[string]any{
		"morning": map[string]any{"startTime": map[string]int{"hours": 8}, "endTime": map[string]int{"hours": 11, "minutes": 0}},
		"lunch":   map[string]any{"startTime": map[string]int{"hours": 12, "minutes": 0}, "endTime": map[string]int{"hours": 15, "minutes": 0}},
		"dinner":  map[string]any{"startTime": map[string]int{"hours": 18, "minutes": 0}, "endTime": map[string]int{"hours": 21, "minutes": 0}},
	})
	assert.False(t, resp.Success)
	assert.Equal(t, domain.DefaultQuickTimeSettings(), s.repo.GetQuickTimeSettings())
}

func TestQuickTimeSettingsRejectsSameStartEnd(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	settings := domain.DefaultQuickTimeSettings()
	settings.Dinner.EndTime = settings.Dinner.StartTime
	_, resp := s.do(http.MethodPut, "/settings/quick-time", settings)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.DefaultQuickTimeSettings(), s.repo.GetQuickTimeSettings())
}

func TestSendMonthlyReportMailRequiresYearAndMonth(t *testing.T) {
	publisher := &fakePublisher{}
	s := newTestServer(t, publisher)
	s.login()

	_, resp := s.do(http.MethodPost, "/salaries/monthly/report-mail", map[string]any{"year": 2024, "to": "boss@example.com"})
	assert.False(t, resp.Success)
	assert.Equal(t, "年份和月份必须同时指定", resp.Message)

	_, resp = s.do(http.MethodPost, "/salaries/monthly/report-mail", map[string]any{"month": 3, "to": "boss@example.com"})
	assert.False(t, resp.Success)
	assert.Empty(t, publisher.messages)
}
