package quandl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"stock_chart/internal/feature/pricechart/domain"
	"stock_chart/internal/feature/pricechart/domain/entity"
	"stock_chart/internal/feature/pricechart/usecase"
	"stock_chart/internal/platform/metrics"
	"stock_chart/internal/shared/ratelimiter"
)

// maxPayloadBytes caps the response body read into memory.
const maxPayloadBytes = 32 << 20

// Client fetches raw dataset payloads from Quandl.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
	maxBody int64
}

// Verify at compile time that Client implements usecase.Fetcher.
var _ usecase.Fetcher = (*Client)(nil)

// NewClient creates a Client. limiter may be nil when no pacing is wanted.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg.withDefaults(), client: client, limiter: limiter, maxBody: maxPayloadBytes}
}

// Fetch issues a single GET for datasetID and returns the body of a 2xx response.
// The identifier is substituted verbatim; an unknown one is reported by the provider
// as a non-2xx status. Every failure is a *domain.TransportError.
func (c *Client) Fetch(ctx context.Context, datasetID string) (entity.RawPayload, error) {
	start := time.Now()
	raw, err := c.fetch(ctx, datasetID)

	outcome := metrics.OutcomeOK
	var te *domain.TransportError
	if errors.As(err, &te) {
		outcome = string(te.Kind)
	}
	metrics.ObserveFetch(outcome, time.Since(start))
	return raw, err
}

func (c *Client) fetch(ctx context.Context, datasetID string) (entity.RawPayload, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyWait(ctx, datasetID, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.datasetURL(datasetID), nil)
	if err != nil {
		return nil, &domain.TransportError{
			Kind:      domain.TransportOther,
			DatasetID: datasetID,
			Message:   "build request: " + err.Error(),
			Err:       err,
		}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, classify(datasetID, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody+1))
	if err != nil {
		return nil, classify(datasetID, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &domain.TransportError{
			Kind:       domain.TransportHTTPStatus,
			DatasetID:  datasetID,
			StatusCode: res.StatusCode,
			Message:    providerMessage(res.StatusCode, body),
		}
	}
	if int64(len(body)) > c.maxBody {
		return nil, &domain.TransportError{
			Kind:      domain.TransportOther,
			DatasetID: datasetID,
			Message:   fmt.Sprintf("payload exceeds %d bytes", c.maxBody),
		}
	}
	return entity.RawPayload(body), nil
}

// datasetURL builds "<base>/<datasetID>.json?api_key=<key>".
func (c *Client) datasetURL(datasetID string) string {
	u := fmt.Sprintf("%s/%s.json", strings.TrimRight(c.cfg.BaseURL, "/"), datasetID)
	if c.cfg.APIKey == "" {
		return u
	}
	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	return u + "?" + q.Encode()
}

// providerMessage extracts the provider's error text, e.g.
// {"quandl_error":{"code":"QECx02","message":"You have submitted an incorrect Quandl code."}}.
func providerMessage(status int, body []byte) string {
	if msg := gjson.GetBytes(body, "quandl_error.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}

// classifyWait classifies a limiter failure. x/time/rate reports a wait that would
// overrun the deadline without wrapping context.DeadlineExceeded.
func classifyWait(ctx context.Context, datasetID string, err error) *domain.TransportError {
	te := classify(datasetID, err)
	if te.Kind != domain.TransportOther || errors.Is(err, context.Canceled) {
		return te
	}
	if _, ok := ctx.Deadline(); ok && !errors.Is(ctx.Err(), context.Canceled) {
		te.Kind = domain.TransportTimeout
	}
	return te
}

// classify maps a client-side failure onto the transport taxonomy.
func classify(datasetID string, err error) *domain.TransportError {
	var (
		netErr net.Error
		dnsErr *net.DNSError
		opErr  *net.OpError
	)
	kind := domain.TransportOther
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		kind = domain.TransportTimeout
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		kind = domain.TransportConnection
	}
	return &domain.TransportError{
		Kind:      kind,
		DatasetID: datasetID,
		Message:   err.Error(),
		Err:       err,
	}
}
