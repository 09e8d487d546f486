// Package usecase は株価チャート生成パイプライン（検証・取得・変換・チャート組み立て）を実装します。
package usecase

import (
	"context"

	"stock_chart/internal/feature/pricechart/domain/entity"
)

// Fetcher は提供元からデータセットの生データを取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Fetcher interface {
	Fetch(ctx context.Context, datasetID string) (entity.RawPayload, error)
}

// Decoder は生データを Table に変換するインターフェースです。
type Decoder interface {
	Decode(datasetID string, raw entity.RawPayload) (*entity.Table, error)
}

// ChartUsecase はパイプライン全体を 1 リクエスト単位で実行します。
// 実行間で共有する可変状態は持たないため、並行して呼び出せます。
type ChartUsecase struct {
	fetcher Fetcher
	decoder Decoder
	opts    []BuildOption
}

// NewChartUsecase は ChartUsecase の新しいインスタンスを生成します。
func NewChartUsecase(fetcher Fetcher, decoder Decoder, opts ...BuildOption) *ChartUsecase {
	return &ChartUsecase{fetcher: fetcher, decoder: decoder, opts: opts}
}

// Plot は入力日付を検証し、取得 → デコード → 絞り込み → チャート組み立ての順に実行します。
// いずれかの段階で失敗した場合は途中結果を返さずにエラーを返します。再試行は行いません。
func (u *ChartUsecase) Plot(ctx context.Context, req entity.PlotRequest) (*entity.ChartDescription, error) {
	// 日付が不正な場合は提供元へ問い合わせる前に中断する
	dr, err := ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	raw, err := u.fetcher.Fetch(ctx, req.DatasetID)
	if err != nil {
		return nil, err
	}

	table, err := u.decoder.Decode(req.DatasetID, raw)
	if err != nil {
		return nil, err
	}

	selected := Select(table, dr, req.Columns)
	if err := lookupColumns(table, selected); err != nil {
		return nil, err
	}

	return Build(selected, req.DatasetID, u.opts...)
}

// lookupColumns は絞り込み後の列が元データに存在するかを確認します。
// 範囲内の行が 0 件でも未知の列を検出できるよう、元の列定義を参照します。
func lookupColumns(source, selected *entity.Table) error {
	known := make(map[string]struct{}, len(source.Columns))
	for _, c := range source.Columns {
		known[c] = struct{}{}
	}
	for _, c := range selected.ValueColumns() {
		if _, ok := known[c]; !ok {
			return unknownColumnError(c)
		}
	}
	return nil
}
