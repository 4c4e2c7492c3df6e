package utils

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1

	var sb strings.Builder
	sb.WriteString(surname)
	for i := 0; i < nameLength; i++ {
		sb.WriteString(commonNameCharacters[rand.Intn(len(commonNameCharacters))])
	}
	return sb.String()
}

var digits = "0123456789"

// GenerateEmployeeIDFromChineseName 用姓名拼音加随机数字生成易读的员工 id，例如 zhangsan42
func GenerateEmployeeIDFromChineseName(chineseName string) string {
	var sb strings.Builder
	for _, p := range pinyin.LazyConvert(chineseName, nil) {
		sb.WriteString(p)
	}
	if sb.Len() == 0 {
		sb.WriteString("employee")
	}

	digitsLength := rand.Intn(3) + 2
	for i := 0; i < digitsLength; i++ {
		sb.WriteByte(digits[rand.Intn(len(digits))])
	}

	return sb.String()
}

func GenerateRandomEmployee() domain.Employee {
	name := GenerateRandomChineseName()
	return domain.Employee{
		ID:   GenerateEmployeeIDFromChineseName(name),
		Name: name,
	}
}

// GenerateRandomWorkRecord 在给定月份中随机生成一条工作记录，约五分之一是跨夜班次
func GenerateRandomWorkRecord(employeeID string, year, month int) domain.WorkRecord {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
	day := time.Date(year, time.Month(month), rand.Intn(daysInMonth)+1, 0, 0, 0, 0, time.Local)

	var startHour int
	if rand.Intn(5) == 0 {
		startHour = rand.Intn(3) + 20 // 20~22 点开始，跨过午夜
	} else {
		startHour = rand.Intn(10) + 7 // 7~16 点开始
	}
	startMinute := rand.Intn(2) * 30
	duration := (rand.Intn(16) + 1) * 30 // 0.5~8 小时

	endTotal := (startHour*60 + startMinute + duration) % (24 * 60)

	return domain.WorkRecord{
		ID:         uuid.NewString(),
		Date:       worktime.FormatDate(day),
		EmployeeID: employeeID,
		StartTime:  worktime.FormatTime(startHour, startMinute),
		EndTime:    worktime.FormatTime(endTotal/60, endTotal%60),
	}
}

// 去掉了容易混淆的 0/O、1/l/I
const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%^&*"

// GenerateAdminPassword 使用 crypto/rand 生成初始管理员密码
func GenerateAdminPassword(length int) (string, error) {
	if length < 8 {
		return "", fmt.Errorf("密码长度至少为 8，实际为 %d", length)
	}

	var sb strings.Builder
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := cryptorand.Int(cryptorand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		sb.WriteByte(passwordAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
