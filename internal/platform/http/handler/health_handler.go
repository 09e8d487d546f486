// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	// providerKeySet はデータ提供元のAPIキーが設定されているかどうかです。
	// 未設定でも匿名アクセスで動作するため、ステータスは "degraded" にとどめます。
	providerKeySet bool
}

// NewHealthHandler は新しい HealthHandler を作成します。
func NewHealthHandler(providerKeySet bool) *HealthHandler {
	return &HealthHandler{providerKeySet: providerKeySet}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// 外部APIへの疎通確認は行いません（ヘルスチェックのたびに提供元を呼ばないため）。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		status := "ok"
		provider := "authenticated"
		if !h.providerKeySet {
			status = "degraded"
			provider = "anonymous"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "provider": provider})
	}
}
