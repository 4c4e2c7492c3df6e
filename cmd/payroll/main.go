package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/cli"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/repository"
)

func main() {
	// 日志只输出到 stderr，避免和表格混在一起
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := kvstore.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("无法打开存储", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := cli.NewApp(repository.NewRepository(cfg, store), os.Stdout)
	err = cli.SetupCommands(app).Execute()
	store.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}
