// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_chart/internal/feature/pricechart/adapters/render"
	charthandler "stock_chart/internal/feature/pricechart/transport/handler"
	"stock_chart/internal/feature/pricechart/usecase"
	"stock_chart/internal/platform/config"
	"stock_chart/internal/platform/externalapi/quandl"
	infrahttp "stock_chart/internal/platform/http"
	"stock_chart/internal/shared/ratelimiter"
)

// NewQuandlClient creates a Quandl client with a bounded-timeout HTTP client and request pacing.
func NewQuandlClient(cfg quandl.Config) *quandl.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RatePerSecond, cfg.Burst)
	return quandl.NewClient(cfg, httpClient, limiter)
}

// NewChartUsecase wires the fetch → decode → filter → build pipeline.
func NewChartUsecase(cfg config.Config) *usecase.ChartUsecase {
	return usecase.NewChartUsecase(
		NewQuandlClient(cfg.Quandl),
		quandl.NewDecoder(),
		usecase.WithValueUnit(cfg.ValueUnit),
	)
}

// NewChartHandler creates the HTTP handler for the chart endpoints.
func NewChartHandler(cfg config.Config) *charthandler.ChartHandler {
	return charthandler.NewChartHandler(NewChartUsecase(cfg), render.NewPNGRenderer())
}
