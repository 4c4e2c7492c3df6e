package domain

// WorkRecord 表示某个员工在某一天的一个班次
// 当 EndTime 的时钟值小于 StartTime 时，表示班次跨越午夜，在第二天结束
type WorkRecord struct {
	ID         string `json:"id"`
	Date       string `json:"date"`       // YYYY-MM-DD
	EmployeeID string `json:"employeeId"` // 对应的员工可能已被删除
	StartTime  string `json:"startTime"`  // HH:mm
	EndTime    string `json:"endTime"`    // HH:mm
}

type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1~12
}
