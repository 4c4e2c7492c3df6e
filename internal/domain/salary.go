package domain

// SalaryInfo 是计算得到的薪资结果，不会被持久化
// 恒有 NetSalary == TotalSalary - TaxDeduction
type SalaryInfo struct {
	TotalHours   float64 `json:"totalHours"`
	TotalSalary  int64   `json:"totalSalary"`
	TaxDeduction int64   `json:"taxDeduction"`
	NetSalary    int64   `json:"netSalary"`
}

type EmployeeSalary struct {
	Employee    Employee     `json:"employee"`
	SalaryInfo  SalaryInfo   `json:"salaryInfo"`
	WorkRecords []WorkRecord `json:"workRecords"`
}

type MonthlySummary struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Salaries []EmployeeSalary `json:"salaries"`
	Total    SalaryInfo       `json:"total"`
}
