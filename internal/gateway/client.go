// Package gateway talks to the merchant platform's order API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/TemirB/merchant-orders-sync/internal/auth"
	"github.com/TemirB/merchant-orders-sync/internal/config"
	"github.com/TemirB/merchant-orders-sync/internal/domain"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
	"github.com/TemirB/merchant-orders-sync/internal/pkg/breaker"
)

//go:generate mockgen -source internal/gateway/client.go -destination=internal/gateway/client_mock_test.go -package=gateway

const (
	eventsPath = "/order/v1.0/events:polling"
	ordersPath = "/order/v1.0/orders/"

	maxErrorBody = 512
)

type Credentials interface {
	Get(ctx context.Context) (auth.Credential, error)
	Invalidate()
}

var _ domain.Gateway = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	limiter *rate.Limiter
	breaker *breaker.Breaker
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(cfg config.Remote, creds Credentials, brk *breaker.Breaker, logger *zap.Logger, metrics observability.Metrics) *Client {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		creds:   creds,
		limiter: limiter,
		breaker: brk,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchEvents returns the current batch of the polling feed. An empty feed is not an error.
func (c *Client) FetchEvents(ctx context.Context) ([]domain.RemoteEvent, error) {
	var events []domain.RemoteEvent
	if err := c.do(ctx, "events", http.MethodGet, eventsPath, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) FetchOrderDetail(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	var detail domain.OrderDetail
	if err := c.do(ctx, "order_detail", http.MethodGet, orderPath(orderID, ""), nil, &detail); err != nil {
		return nil, err
	}
	if detail.ID == "" {
		detail.ID = orderID
	}
	return &detail, nil
}

func (c *Client) Confirm(ctx context.Context, orderID string) error {
	return c.do(ctx, "confirm", http.MethodPost, orderPath(orderID, "confirm"), struct{}{}, nil)
}

func (c *Client) StartPreparation(ctx context.Context, orderID string) error {
	return c.do(ctx, "start_preparation", http.MethodPost, orderPath(orderID, "startPreparation"), struct{}{}, nil)
}

func (c *Client) ReadyToPickup(ctx context.Context, orderID string) error {
	return c.do(ctx, "ready_to_pickup", http.MethodPost, orderPath(orderID, "readyToPickup"), struct{}{}, nil)
}

func (c *Client) Dispatch(ctx context.Context, orderID string) error {
	return c.do(ctx, "dispatch", http.MethodPost, orderPath(orderID, "dispatch"), struct{}{}, nil)
}

func (c *Client) RequestCancellation(ctx context.Context, orderID, code string) error {
	body := struct {
		CancellationCode string `json:"cancellationCode"`
	}{code}
	return c.do(ctx, "request_cancellation", http.MethodPost, orderPath(orderID, "requestCancellation"), body, nil)
}

func (c *Client) FetchTracking(ctx context.Context, orderID string) (*domain.TrackingInfo, error) {
	var info domain.TrackingInfo
	if err := c.do(ctx, "tracking", http.MethodGet, orderPath(orderID, "tracking"), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func orderPath(orderID, action string) string {
	p := ordersPath + url.PathEscape(orderID)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveRemote(op, float64(time.Since(start).Microseconds())/1000.0, err == nil)
	}()

	// No credential, no call.
	cred, err := c.creds.Get(ctx)
	if err != nil {
		return err
	}

	if c.breaker != nil {
		if berr := c.breaker.Allow(); berr != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrTransport, op, berr)
		}
	}
	defer func() {
		if c.breaker == nil {
			return
		}
		if ctx.Err() != nil {
			c.breaker.Release()
			return
		}
		if errors.Is(err, domain.ErrTransport) {
			c.breaker.Failure()
		} else {
			c.breaker.Success()
		}
	}()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrTransport, op, werr)
		}
	}

	var body io.Reader
	if in != nil {
		b, merr := json.Marshal(in)
		if merr != nil {
			return fmt.Errorf("%s: encode body: %w", op, merr)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrTransport, op, err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrTransport, op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.creds.Invalidate()
		return fmt.Errorf("%w: %s: remote rejected credential", domain.ErrAuth, op)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, op, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("merchant api returned an error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return fmt.Errorf("%w: %s: status %d", domain.ErrTransport, op, resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: read body: %w", domain.ErrTransport, op, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: decode body: %w", domain.ErrTransport, op, err)
	}
	return nil
}
