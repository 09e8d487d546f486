// Package handler はpricechartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_chart/internal/feature/pricechart/adapters/render"
	"stock_chart/internal/feature/pricechart/domain"
	"stock_chart/internal/feature/pricechart/domain/entity"
	"stock_chart/internal/feature/pricechart/transport/http/dto"
	"stock_chart/internal/platform/metrics"
)

// 既定チャート（/plot_data）の入力値です。
const (
	DefaultDatasetID = "SIX2_X"
	DefaultStartDate = "2018-05-01"
	DefaultEndDate   = "2018-06-01"
)

// DefaultColumns は既定チャートで表示する列です。
var DefaultColumns = []string{"Open", "High", "Low", "Close"}

// ChartUsecase はチャート生成パイプラインのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	Plot(ctx context.Context, req entity.PlotRequest) (*entity.ChartDescription, error)
}

// Renderer はChartDescriptionを画像として書き出します。
type Renderer interface {
	Render(w io.Writer, cd *entity.ChartDescription) error
}

// ChartHandler はチャート生成のHTTPリクエストを処理します。
type ChartHandler struct {
	uc       ChartUsecase
	renderer Renderer
}

// NewChartHandler は新しい ChartHandler を作成します。
func NewChartHandler(uc ChartUsecase, renderer Renderer) *ChartHandler {
	return &ChartHandler{uc: uc, renderer: renderer}
}

// Plot はフォーム入力からチャートを生成し、ChartDescriptionをJSONで返します。
//
// エンドポイント例:
// POST /plot  (url_acr=SIX2_X&start_date=2018-05-01&end_date=2018-06-01&col_use=Open&col_use=Close)
func (h *ChartHandler) Plot(c *gin.Context) {
	var form dto.PlotForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("plot form validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: string(domain.KindValidation), Error: "dataset id (url_acr) is required"})
		return
	}
	h.respondJSON(c, form)
}

// PlotDefault は既定の入力値（SIX2_X, 2018-05-01〜2018-06-01, Open/High/Low/Close）でチャートを生成します。
func (h *ChartHandler) PlotDefault(c *gin.Context) {
	h.respondJSON(c, dto.PlotForm{
		DatasetID: DefaultDatasetID,
		StartDate: DefaultStartDate,
		EndDate:   DefaultEndDate,
		Columns:   DefaultColumns,
	})
}

// PlotPNG はチャートをPNG画像として返します。
//
// エンドポイント例:
// GET /plot/SIX2_X/chart.png?start_date=2018-05-01&col_use=Close
func (h *ChartHandler) PlotPNG(c *gin.Context) {
	var q dto.PlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("plot query binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: string(domain.KindValidation), Error: "invalid query parameters"})
		return
	}
	form := dto.PlotForm{
		DatasetID: c.Param("dataset"),
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Columns:   q.Columns,
	}

	cd, ok := h.plot(c, form)
	if !ok {
		return
	}

	// 描画に失敗した場合に不完全な画像を返さないよう、一度バッファに書き出す
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, cd); err != nil {
		slog.Warn("chart render failed", "dataset_id", form.DatasetID, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrNothingToPlot) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, dto.ErrorResponse{Kind: "RenderError", Error: err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *ChartHandler) respondJSON(c *gin.Context, form dto.PlotForm) {
	cd, ok := h.plot(c, form)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.PlotResponse{
		DatasetID: form.DatasetID,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		Columns:   form.Columns,
		Chart:     cd,
	})
}

// plot はパイプラインを実行し、失敗時はエラーレスポンスを書き込んで false を返します。
func (h *ChartHandler) plot(c *gin.Context, form dto.PlotForm) (*entity.ChartDescription, bool) {
	cd, err := h.uc.Plot(c.Request.Context(), entity.PlotRequest{
		DatasetID: form.DatasetID,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		Columns:   form.Columns,
	})
	if err != nil {
		kind := domain.KindOf(err)
		metrics.RecordPipeline(string(kind))
		slog.Warn("chart pipeline failed", "dataset_id", form.DatasetID, "kind", kind, "error", err)
		c.JSON(statusFor(err), dto.ErrorResponse{Kind: string(kind), Error: Describe(err)})
		return nil, false
	}
	metrics.RecordPipeline(metrics.OutcomeOK)
	slog.Info("chart built", "dataset_id", form.DatasetID, "series", len(cd.Series))
	return cd, true
}

// statusFor は失敗の種類をHTTPステータスに対応付けます。
func statusFor(err error) int {
	var te *domain.TransportError
	if errors.As(err, &te) {
		switch {
		case te.Kind == domain.TransportTimeout:
			return http.StatusGatewayTimeout
		case te.Kind == domain.TransportHTTPStatus && te.StatusCode == http.StatusNotFound:
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	}
	switch domain.KindOf(err) {
	case domain.KindDecode:
		return http.StatusBadGateway
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Describe はユーザーに見せる短いメッセージを返します。
// 取得・デコードの失敗はデータセットIDを、検証の失敗は入力値を示します。
func Describe(err error) string {
	var (
		te *domain.TransportError
		de *domain.DecodeError
		ve *domain.ValidationError
	)
	switch {
	case errors.As(err, &te):
		switch te.Kind {
		case domain.TransportHTTPStatus:
			return fmt.Sprintf("dataset %q could not be retrieved (HTTP %d): %s. Check the dataset id and try again.", te.DatasetID, te.StatusCode, te.Message)
		case domain.TransportTimeout:
			return fmt.Sprintf("dataset %q: the data provider did not respond in time. Please try again.", te.DatasetID)
		case domain.TransportConnection:
			return fmt.Sprintf("dataset %q: the data provider could not be reached. Please try again.", te.DatasetID)
		default:
			return fmt.Sprintf("dataset %q could not be retrieved. Please try again.", te.DatasetID)
		}
	case errors.As(err, &de):
		return fmt.Sprintf("dataset %q returned data that could not be read: %s.", de.DatasetID, de.Message)
	case errors.As(err, &ve):
		return ve.Error()
	default:
		return "internal error"
	}
}
