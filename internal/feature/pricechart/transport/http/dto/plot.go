// Package dto はpricechartフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

import "stock_chart/internal/feature/pricechart/domain/entity"

// PlotForm はチャート生成フォームの入力です。
type PlotForm struct {
	DatasetID string   `form:"url_acr" binding:"required"` // データセットID（例: "SIX2_X"）
	StartDate string   `form:"start_date"`                 // 開始日（YYYY-MM-DD、空は未指定）
	EndDate   string   `form:"end_date"`                   // 終了日（YYYY-MM-DD、空は未指定）
	Columns   []string `form:"col_use"`                    // 表示する列（空は Open/High/Low/Close）
}

// PlotQuery はPNGエンドポイントのクエリ入力です。データセットIDはパスから受け取ります。
type PlotQuery struct {
	StartDate string   `form:"start_date"`
	EndDate   string   `form:"end_date"`
	Columns   []string `form:"col_use"`
}

// PlotResponse はチャート生成結果のレスポンスDTOです。入力値もそのまま返します。
type PlotResponse struct {
	DatasetID string                   `json:"url_acr"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Columns   []string                 `json:"col_use"`
	Chart     *entity.ChartDescription `json:"chart"`
}

// ErrorResponse は失敗時のレスポンスDTOです。
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}
