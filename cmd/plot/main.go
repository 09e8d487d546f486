// Command plot はデータセットを取得してチャートをPNGファイル（またはJSON）に書き出すバッチコマンドです。
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stock_chart/internal/app/di"
	"stock_chart/internal/feature/pricechart/adapters/render"
	"stock_chart/internal/feature/pricechart/domain/entity"
	charthandler "stock_chart/internal/feature/pricechart/transport/handler"
	"stock_chart/internal/platform/config"
)

// runTimeout はコマンド全体の上限時間です。
const runTimeout = 5 * time.Minute

func main() {
	config.LoadDotEnv()
	if err := newRootCmd(config.New(), os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plot",
		Short:         "Render a Quandl FSE dataset as a line chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()
			return run(ctx, v, stdout)
		},
	}

	cmd.Flags().String("dataset", charthandler.DefaultDatasetID, "Dataset id, e.g. SIX2_X")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD); empty uses the first row")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD); empty uses the last row")
	cmd.Flags().StringSlice("col", nil, "Columns to plot (default Open,High,Low,Close)")
	cmd.Flags().StringP("out", "o", "chart.png", "Output PNG path")
	cmd.Flags().Bool("json", false, "Print the chart description as JSON instead of rendering")
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		log.Fatal("failed to bind flags:", err)
	}
	return cmd
}

func run(ctx context.Context, v *viper.Viper, stdout io.Writer) error {
	cfg := config.Load(v)
	uc := di.NewChartUsecase(cfg)

	req := entity.PlotRequest{
		DatasetID: v.GetString("dataset"),
		StartDate: v.GetString("start"),
		EndDate:   v.GetString("end"),
		Columns:   v.GetStringSlice("col"),
	}
	cd, err := uc.Plot(ctx, req)
	if err != nil {
		return fmt.Errorf("%s", charthandler.Describe(err))
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cd)
	}

	var buf bytes.Buffer
	if err := render.NewPNGRenderer().Render(&buf, cd); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	out := v.GetString("out")
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	slog.Info("chart written", "dataset_id", req.DatasetID, "series", len(cd.Series), "path", out)
	return nil
}
