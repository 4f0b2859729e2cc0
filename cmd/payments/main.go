// cmd/payments/main.go

// 本程式重播交易紀錄檔（CSV），並將每個帳戶的最終餘額以 CSV 輸出至 stdout。
// 此檔案負責初始化模組（config, logging, replay），並處理 SIGINT/SIGTERM；
// 輸入檔無法開啟或讀取時以非零狀態結束，單筆格式錯誤則略過並繼續。
//
// 用法：payments [flags] transactions.csv > accounts.csv

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"payments/internal/config"
	"payments/internal/logging"
	"payments/internal/replay"
)

func main() {
	cfg, err := replay.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	// log 一律寫入 stderr，stdout 只保留 CSV 報表
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := replay.Run(ctx, cfg, os.Stdout, logger); err != nil {
		_ = logger.Sync()
		stop()
		config.Exitf("Error: %v", err)
	}
	_ = logger.Sync()
}
