package router

import (
	charthandler "stock_chart/internal/feature/pricechart/transport/handler"
	platformhandler "stock_chart/internal/platform/http/handler"
	"stock_chart/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter はルーティングを設定した gin.Engine を生成します。
func NewRouter(health *platformhandler.HealthHandler, chart *charthandler.ChartHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	// Prometheus
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// フォームから送信されたチャート生成
	r.POST("/plot", chart.Plot)
	// 既定の銘柄・期間でのチャート生成
	r.GET("/plot_data", chart.PlotDefault)
	// PNG画像として描画
	r.GET("/plot/:dataset/chart.png", chart.PlotPNG)

	return r
}
