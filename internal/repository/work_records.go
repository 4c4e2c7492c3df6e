package repository

import (
	"sort"
	"strings"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

func (r *Repository) GetWorkRecords() []domain.WorkRecord {
	return loadList[domain.WorkRecord](r, KeyWorkRecords)
}

func (r *Repository) SaveWorkRecords(records []domain.WorkRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saveList(r, KeyWorkRecords, records)
}

func (r *Repository) GetWorkRecord(id string) (domain.WorkRecord, bool) {
	for _, wr := range r.GetWorkRecords() {
		if wr.ID == id {
			return wr, true
		}
	}
	return domain.WorkRecord{}, false
}

func (r *Repository) AddWorkRecord(record domain.WorkRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := loadForUpdate[domain.WorkRecord](r, KeyWorkRecords)
	if !ok {
		return
	}
	saveList(r, KeyWorkRecords, append(records, record))
}

func (r *Repository) AddWorkRecords(records ...domain.WorkRecord) error {
	return appendList(r, KeyWorkRecords, records)
}

func (r *Repository) UpdateWorkRecord(record domain.WorkRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := loadForUpdate[domain.WorkRecord](r, KeyWorkRecords)
	if !ok {
		return
	}
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record
			saveList(r, KeyWorkRecords, records)
			return
		}
	}
}

func (r *Repository) DeleteWorkRecord(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := loadForUpdate[domain.WorkRecord](r, KeyWorkRecords)
	if !ok {
		return
	}
	remaining := make([]domain.WorkRecord, 0, len(records))
	for _, wr := range records {
		if wr.ID != id {
			remaining = append(remaining, wr)
		}
	}
	if len(remaining) == len(records) {
		return
	}
	saveList(r, KeyWorkRecords, remaining)
}

func (r *Repository) GetWorkRecordsByDate(date string) []domain.WorkRecord {
	return filterRecords(r.GetWorkRecords(), func(wr domain.WorkRecord) bool {
		return wr.Date == date
	})
}

// GetWorkRecordsByMonth 按日期前缀 YYYY-MM 筛选
func (r *Repository) GetWorkRecordsByMonth(year, month int) []domain.WorkRecord {
	prefix := worktime.MonthPrefix(year, month) + "-"
	return filterRecords(r.GetWorkRecords(), func(wr domain.WorkRecord) bool {
		return strings.HasPrefix(wr.Date, prefix)
	})
}

// GetMarkedDates 返回当月至少有一条记录的日期（升序去重），employeeID 为空时不按员工筛选
func (r *Repository) GetMarkedDates(year, month int, employeeID string) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, wr := range r.GetWorkRecordsByMonth(year, month) {
		if employeeID != "" && wr.EmployeeID != employeeID {
			continue
		}
		if _, ok := seen[wr.Date]; ok {
			continue
		}
		seen[wr.Date] = struct{}{}
		dates = append(dates, wr.Date)
	}

	sort.Strings(dates)
	return dates
}

func filterRecords(records []domain.WorkRecord, keep func(domain.WorkRecord) bool) []domain.WorkRecord {
	filtered := make([]domain.WorkRecord, 0)
	for _, wr := range records {
		if keep(wr) {
			filtered = append(filtered, wr)
		}
	}
	return filtered
}
