package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/seed"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/utils"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/worktime"
)

func main() {
	var op int
	var n int
	var year, month int
	var file string

	current := worktime.CurrentMonth()

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 为每个员工插入随机工作记录, 3: 从 csv/xlsx 导入工作记录)")
	flag.IntVar(&n, "n", 5, "要插入的数量（员工数或每个员工的记录数）")
	flag.IntVar(&year, "year", current.Year, "随机工作记录所在的年份")
	flag.IntVar(&month, "month", current.Month, "随机工作记录所在的月份")
	flag.StringVar(&file, "file", "", "要导入的文件路径")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 打开存储
	store, err := kvstore.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("无法打开存储", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 创建 repository
	repo := repository.NewRepository(cfg, store)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}

		employees := make([]domain.Employee, 0, n)
		for i := 0; i < n; i++ {
			employees = append(employees, utils.GenerateRandomEmployee())
		}
		if err := repo.AddEmployees(employees...); err != nil {
			slog.Error("插入员工失败", "error", err)
			return
		}

		slog.Info("插入员工成功", slog.Int("count", n))
	case 2:
		if n <= 0 || month < 1 || month > 12 {
			slog.Error("请输入合法的记录数量和月份")
			return
		}

		employees := repo.GetEmployees()
		if len(employees) == 0 {
			slog.Error("没有员工，请先插入员工")
			return
		}

		records := make([]domain.WorkRecord, 0, len(employees)*n)
		cnt := 0
		for _, e := range employees {
			for i := 0; i < n; i++ {
				wr := utils.GenerateRandomWorkRecord(e.ID, year, month)
				if err := utils.ValidateWorkRecord(&wr); err != nil {
					slog.Error("生成的工作记录不合法", "record", wr, "error", err)
					continue
				}
				records = append(records, wr)
				cnt++
			}
		}
		if err := repo.AddWorkRecords(records...); err != nil {
			slog.Error("插入工作记录失败", "error", err)
			return
		}

		slog.Info("插入工作记录成功", slog.Int("count", cnt), slog.Any("month", domain.YearMonth{Year: year, Month: month}))
	case 3:
		if file == "" {
			slog.Error("请通过 -file 指定要导入的文件")
			return
		}

		result, err := seed.ImportWorkRecords(repo, file)
		if err != nil {
			slog.Error("导入失败", "error", err)
			return
		}

		slog.Info("导入完成", "rows", result.Rows, "imported", result.Imported, "skipped", result.Skipped, "newEmployees", result.NewEmployees)
	default:
		slog.Error("指定的操作非法")
	}
}
