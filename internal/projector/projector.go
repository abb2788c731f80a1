// Package projector maps feed events onto the local order records.
package projector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/config"
	"github.com/TemirB/merchant-orders-sync/internal/domain"
	"github.com/TemirB/merchant-orders-sync/internal/pkg/retry"
)

//go:generate mockgen -source internal/projector/projector.go -destination=internal/projector/projector_mock_test.go -package=projector

type DetailFetcher interface {
	FetchOrderDetail(ctx context.Context, orderID string) (*domain.OrderDetail, error)
}

type Store interface {
	Put(orderID string, rec domain.OrderRecord)
	Replace(orderID string, fn func(domain.OrderRecord) domain.OrderRecord) bool
}

type Projector struct {
	fetcher     DetailFetcher
	store       Store
	retryPolicy config.Retry
	logger      *zap.Logger

	now func() time.Time
}

func New(fetcher DetailFetcher, store Store, retryPolicy config.Retry, logger *zap.Logger) *Projector {
	return &Projector{
		fetcher:     fetcher,
		store:       store,
		retryPolicy: retryPolicy,
		logger:      logger,
		now:         time.Now,
	}
}

// Apply projects one event and reports whether a record changed. The only
// error it returns wraps domain.ErrRetryable: the caller must then leave the
// event unmarked so the next poll retries it.
func (p *Projector) Apply(ctx context.Context, ev domain.RemoteEvent) (bool, error) {
	code := ev.Kind()
	if code == domain.CodePlaced {
		if err := p.place(ctx, ev); err != nil {
			return false, err
		}
		return true, nil
	}

	status, _ := domain.StatusFor(code)
	found := p.store.Replace(ev.OrderID, func(rec domain.OrderRecord) domain.OrderRecord {
		return rec.WithEvent(ev, status)
	})
	if !found {
		p.logger.Debug("event for unknown order ignored",
			zap.String("event_id", ev.ID),
			zap.String("code", ev.Code),
			zap.String("order_id", ev.OrderID),
		)
		return false, nil
	}

	p.logger.Info("order updated",
		zap.String("event_id", ev.ID),
		zap.String("code", ev.Code),
		zap.String("order_id", ev.OrderID),
		zap.String("status", string(status)),
	)
	return true, nil
}

// place fetches the full order and (re)creates its record. A PLACED event for
// an order that is already known overwrites it.
func (p *Projector) place(ctx context.Context, ev domain.RemoteEvent) error {
	var detail *domain.OrderDetail
	err := retry.DoIf(ctx, p.retryPolicy, isTransient, func() error {
		d, err := p.fetcher.FetchOrderDetail(ctx, ev.OrderID)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		p.logger.Error("failed to fetch placed order, event left for retry",
			zap.String("event_id", ev.ID),
			zap.String("order_id", ev.OrderID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: fetch order %s: %w", domain.ErrRetryable, ev.OrderID, err)
	}

	p.store.Put(ev.OrderID, domain.OrderRecord{
		Detail:       *detail,
		Status:       domain.StatusNew,
		CreatedAt:    p.now(),
		EventHistory: []domain.RemoteEvent{ev},
	})
	p.logger.Info("new order received",
		zap.String("event_id", ev.ID),
		zap.String("order_id", ev.OrderID),
		zap.Float64("total_price", detail.TotalPrice),
	)
	return nil
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrTransport)
}
