package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_chart/internal/feature/pricechart/domain/entity"
	"stock_chart/internal/platform/config"
)

const payload = `{"dataset":{
	"column_names":["Date","Open","High","Low","Close","Traded Volume"],
	"data":[
		["2018-05-03",101.0,103.0,100.0,102.0,900],
		["2018-05-02",100.0,102.0,99.0,null,800],
		["2018-05-01",99.0,101.0,98.0,100.0,700]
	]}}`

func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/SIX2_X.json") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"quandl_error":{"code":"QECx02","message":"You have submitted an incorrect Quandl code."}}`))
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(config.New(), &out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlot_JSON(t *testing.T) {
	srv := newProvider(t)
	t.Setenv("QUANDL_BASE_URL", srv.URL)

	out, err := execute(t, "--json", "--start", "2018-05-02", "--col", "Close")
	require.NoError(t, err)

	var cd entity.ChartDescription
	require.NoError(t, json.Unmarshal([]byte(out), &cd))
	assert.Equal(t, "Quandl data for FSE dataset ID=SIX2_X", cd.Title)
	require.Len(t, cd.Series, 1)
	assert.Equal(t, "Close", cd.Series[0].Column)
	require.Len(t, cd.Series[0].Points, 2)
	assert.False(t, cd.Series[0].Points[0].Value.Valid)
	assert.Equal(t, 102.0, cd.Series[0].Points[1].Value.Float64)
}

func TestPlot_PNG(t *testing.T) {
	srv := newProvider(t)
	t.Setenv("QUANDL_BASE_URL", srv.URL)
	path := filepath.Join(t.TempDir(), "chart.png")

	_, err := execute(t, "-o", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPlot_Errors(t *testing.T) {
	srv := newProvider(t)
	t.Setenv("QUANDL_BASE_URL", srv.URL)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid date", []string{"--json", "--start", "2018-02-30"}, `"2018-02-30"`},
		{"unknown dataset", []string{"--json", "--dataset", "NOPE"}, `"NOPE"`},
		{"unknown column", []string{"--json", "--col", "Volume"}, "Volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
