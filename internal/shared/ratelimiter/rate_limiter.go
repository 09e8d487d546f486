package ratelimiter

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// Limiter は外部API呼び出しの頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter はトークンバケット方式で外部API呼び出しの頻度を制限します。
// 複数のリクエストから同時に呼び出しても安全です。
type RateLimiter struct {
	lim *rate.Limiter
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は 1 秒あたり perSecond 回、最大 burst 回まで連続で許可する RateLimiter を生成します。
// perSecond が 0 以下の場合は制限しません。
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{lim: rate.NewLimiter(limit, burst)}
}

// Wait は呼び出しが許可されるまで待機します。
// ctx がキャンセルされるか、期限内に許可できない場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.lim.Allow() {
		return nil
	}
	slog.Debug("rate limit reached, waiting", "limit", float64(rl.lim.Limit()), "burst", rl.lim.Burst())
	return rl.lim.Wait(ctx)
}
