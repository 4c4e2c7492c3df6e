// Package seed 从外部表格批量导入工作记录
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("只支持 .csv 和 .xlsx 文件")

// Store 是导入所需的集合读写接口，*repository.Repository 实现了它
// 追加操作只在读取成功后写入，不会覆盖已有数据
type Store interface {
	GetEmployees() []domain.Employee
	AddEmployees(...domain.Employee) error
	AddWorkRecords(...domain.WorkRecord) error
}

type ImportResult struct {
	Rows         int `json:"rows"`
	Imported     int `json:"imported"`
	Skipped      int `json:"skipped"`
	NewEmployees int `json:"newEmployees"`
}

var dateLayouts = []string{worktime.DateLayout, "2006/1/2", "2006-1-2", "2006.1.2"}

// ImportWorkRecords 读取每行为「日期, 员工姓名, 开始时间, 结束时间」的表格
// 不认识的姓名会新建员工，不合法的行会被跳过并记录日志
func ImportWorkRecords(store Store, path string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}

	employees := store.GetEmployees()
	byName := make(map[string]string, len(employees))
	for _, e := range employees {
		byName[e.Name] = e.ID
	}
	var (
		newEmployees []domain.Employee
		records      []domain.WorkRecord
	)

	result := &ImportResult{}
	for i, row := range rows {
		// 第一行如果不是日期则视为表头
		if i == 0 && len(row) > 0 {
			if _, ok := normalizeDate(row[0]); !ok {
				continue
			}
		}
		if isBlank(row) {
			continue
		}
		result.Rows++

		wr, name, err := parseRow(row)
		if err != nil {
			slog.Warn("跳过不合法的行", "line", i+1, "error", err)
			result.Skipped++
			continue
		}

		id, known := byName[name]
		if !known {
			id = uuid.NewString()
		}
		wr.EmployeeID = id

		if err := utils.ValidateWorkRecord(wr); err != nil {
			slog.Warn("跳过不合法的行", "line", i+1, "error", err)
			result.Skipped++
			continue
		}

		if !known {
			byName[name] = id
			newEmployees = append(newEmployees, domain.Employee{ID: id, Name: name})
			result.NewEmployees++
		}

		records = append(records, *wr)
		result.Imported++
	}

	// 先写员工，失败时不写入引用新员工的记录
	if err := store.AddEmployees(newEmployees...); err != nil {
		return nil, fmt.Errorf("无法写入员工: %w", err)
	}
	if err := store.AddWorkRecords(records...); err != nil {
		return nil, fmt.Errorf("无法写入工作记录: %w", err)
	}

	return result, nil
}

func parseRow(row []string) (*domain.WorkRecord, string, error) {
	if len(row) < 4 {
		return nil, "", fmt.Errorf("需要 4 列，实际只有 %d 列", len(row))
	}

	date, ok := normalizeDate(row[0])
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", utils.ErrInvalidDate, row[0])
	}

	name := strings.TrimSpace(row[1])
	if err := utils.ValidateEmployeeName(name); err != nil {
		return nil, "", err
	}

	start, err := normalizeTime(row[2])
	if err != nil {
		return nil, "", err
	}
	end, err := normalizeTime(row[3])
	if err != nil {
		return nil, "", err
	}

	return &domain.WorkRecord{
		ID:        uuid.NewString(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, name, nil
}

// normalizeDate 接受常见的日期写法以及 Excel 的日期序列号
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return worktime.FormatDate(t), true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return worktime.FormatDate(t), true
		}
	}

	return "", false
}

// normalizeTime 把 9:00、09:00:00 这类写法统一为 HH:mm
func normalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}

	clock, err := worktime.ParseTime(s)
	if err != nil {
		return "", err
	}
	return worktime.FormatTime(clock.Hours, clock.Minutes), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}
