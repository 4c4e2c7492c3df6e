package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

// GetWorkRecords 支持 ?date=YYYY-MM-DD 或 ?year=&month= 筛选，都没有时返回全部
func (h *Handler) GetWorkRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if date := q.Get("date"); date != "" {
		if _, err := time.Parse(worktime.DateLayout, date); err != nil {
			h.badRequest(w, r, utils.ErrInvalidDate)
			return
		}
		h.successResponse(w, r, "获取工作记录成功", h.repository.GetWorkRecordsByDate(date))
		return
	}

	if q.Has("year") || q.Has("month") {
		ym, err := h.readYearMonth(r)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		h.successResponse(w, r, "获取工作记录成功", h.repository.GetWorkRecordsByMonth(ym.Year, ym.Month))
		return
	}

	h.successResponse(w, r, "获取工作记录成功", h.repository.GetWorkRecords())
}

func (h *Handler) CreateWorkRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string `json:"date" validate:"required"`
		EmployeeID string `json:"employeeId" validate:"required"`
		StartTime  string `json:"startTime" validate:"required"`
		EndTime    string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	wr := domain.WorkRecord{
		ID:         uuid.NewString(),
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := h.checkWorkRecord(&wr); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.repository.AddWorkRecord(wr)

	h.successResponse(w, r, "添加工作记录成功", wr)
}

func (h *Handler) GetWorkRecord(w http.ResponseWriter, r *http.Request) {
	wr := r.Context().Value(WorkRecordCtx).(domain.WorkRecord)
	h.successResponse(w, r, "获取工作记录成功", wr)
}

func (h *Handler) UpdateWorkRecord(w http.ResponseWriter, r *http.Request) {
	wr := r.Context().Value(WorkRecordCtx).(domain.WorkRecord)

	var req struct {
		Date       *string `json:"date"`
		EmployeeID *string `json:"employeeId"`
		StartTime  *string `json:"startTime"`
		EndTime    *string `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Date != nil {
		wr.Date = *req.Date
	}
	if req.EmployeeID != nil {
		wr.EmployeeID = *req.EmployeeID
	}
	if req.StartTime != nil {
		wr.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		wr.EndTime = *req.EndTime
	}

	if err := h.checkWorkRecord(&wr); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.repository.UpdateWorkRecord(wr)

	h.successResponse(w, r, "更新工作记录成功", wr)
}

func (h *Handler) DeleteWorkRecord(w http.ResponseWriter, r *http.Request) {
	wr := r.Context().Value(WorkRecordCtx).(domain.WorkRecord)
	h.repository.DeleteWorkRecord(wr.ID)

	h.successResponse(w, r, "删除工作记录成功", nil)
}

// GetMarkedDates 返回当月有工作记录的日期，可用 ?employeeId= 只看某个员工
func (h *Handler) GetMarkedDates(w http.ResponseWriter, r *http.Request) {
	ym, err := h.readYearMonth(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	dates := h.repository.GetMarkedDates(ym.Year, ym.Month, r.URL.Query().Get("employeeId"))
	h.successResponse(w, r, "获取有记录的日期成功", dates)
}

func (h *Handler) checkWorkRecord(wr *domain.WorkRecord) error {
	if err := utils.ValidateWorkRecord(wr); err != nil {
		return err
	}
	if _, ok := h.repository.GetEmployee(wr.EmployeeID); !ok {
		return errors.New("员工不存在")
	}
	return nil
}
