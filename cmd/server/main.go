package main

import (
	"log"
	"log/slog"
	"os"

	"stock_chart/internal/app/di"
	"stock_chart/internal/app/router"
	"stock_chart/internal/platform/config"
	platformhandler "stock_chart/internal/platform/http/handler"
)

func main() {
	// .envを読み込む
	config.LoadDotEnv()
	cfg := config.Load(nil)

	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	// APIキーチェック（未設定でも匿名アクセスで動作する）
	if cfg.Quandl.APIKey == "" {
		slog.Warn("QUANDL_API_KEY is not set. Requests are sent anonymously and may be rate limited.")
	}

	// Handler
	healthH := platformhandler.NewHealthHandler(cfg.Quandl.APIKey != "")
	chartH := di.NewChartHandler(cfg)

	// ルータ生成
	r := router.NewRouter(healthH, chartH)

	slog.Info("starting server", "addr", cfg.HTTPAddr, "provider", cfg.Quandl.BaseURL)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
