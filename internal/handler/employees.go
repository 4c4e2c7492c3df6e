package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/salary"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取员工列表成功", h.repository.GetEmployees())
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateEmployeeName(req.Name); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := domain.Employee{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(req.Name),
	}
	h.repository.AddEmployee(employee)

	h.successResponse(w, r, "添加员工成功", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(domain.Employee)
	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(domain.Employee)

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateEmployeeName(req.Name); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee.Name = strings.TrimSpace(req.Name)
	h.repository.UpdateEmployee(employee)

	h.successResponse(w, r, "更新员工信息成功", employee)
}

// DeleteEmployee 保留该员工的工作记录，这些记录之后不再计入任何员工的工资
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(domain.Employee)
	h.repository.DeleteEmployee(employee.ID)

	h.successResponse(w, r, "删除员工成功", nil)
}

type employeeMonthlyRecords struct {
	domain.YearMonth
	domain.EmployeeSalary
	MarkedDates []string `json:"markedDates"`
}

// GetEmployeeMonthlyRecords 返回员工某个月的日历数据：工作记录、有记录的日期以及工资
func (h *Handler) GetEmployeeMonthlyRecords(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(domain.Employee)

	ym, err := h.readYearMonth(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	records := h.repository.GetWorkRecordsByMonth(ym.Year, ym.Month)

	h.successResponse(w, r, "获取员工月度记录成功", employeeMonthlyRecords{
		YearMonth:      ym,
		EmployeeSalary: salary.CalculateEmployeeSalary(employee, records),
		MarkedDates:    h.repository.GetMarkedDates(ym.Year, ym.Month, employee.ID),
	})
}
