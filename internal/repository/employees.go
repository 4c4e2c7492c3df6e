package repository

import "github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"

func (r *Repository) GetEmployees() []domain.Employee {
	return loadList[domain.Employee](r, KeyEmployees)
}

func (r *Repository) SaveEmployees(employees []domain.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saveList(r, KeyEmployees, employees)
}

func (r *Repository) GetEmployee(id string) (domain.Employee, bool) {
	for _, e := range r.GetEmployees() {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

func (r *Repository) AddEmployee(employee domain.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employees, ok := loadForUpdate[domain.Employee](r, KeyEmployees)
	if !ok {
		return
	}
	saveList(r, KeyEmployees, append(employees, employee))
}

// AddEmployees 批量追加员工，供导入和生成测试数据使用
func (r *Repository) AddEmployees(employees ...domain.Employee) error {
	return appendList(r, KeyEmployees, employees)
}

// UpdateEmployee 按 id 替换员工，id 不存在时什么都不做
func (r *Repository) UpdateEmployee(employee domain.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employees, ok := loadForUpdate[domain.Employee](r, KeyEmployees)
	if !ok {
		return
	}
	for i := range employees {
		if employees[i].ID == employee.ID {
			employees[i] = employee
			saveList(r, KeyEmployees, employees)
			return
		}
	}
}

// DeleteEmployee 不会删除该员工的工作记录
func (r *Repository) DeleteEmployee(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	employees, ok := loadForUpdate[domain.Employee](r, KeyEmployees)
	if !ok {
		return
	}
	remaining := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.ID != id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(employees) {
		return
	}
	saveList(r, KeyEmployees, remaining)
}
