// Package service implements the operator use cases on top of the order
// store and the merchant gateway.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/auth"
	"github.com/TemirB/merchant-orders-sync/internal/domain"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type Gateway interface {
	FetchOrderDetail(ctx context.Context, orderID string) (*domain.OrderDetail, error)
	Confirm(ctx context.Context, orderID string) error
	StartPreparation(ctx context.Context, orderID string) error
	ReadyToPickup(ctx context.Context, orderID string) error
	Dispatch(ctx context.Context, orderID string) error
	RequestCancellation(ctx context.Context, orderID, code string) error
	FetchTracking(ctx context.Context, orderID string) (*domain.TrackingInfo, error)
}

type Store interface {
	Get(orderID string) (domain.OrderRecord, bool)
	Put(orderID string, rec domain.OrderRecord)
	Replace(orderID string, fn func(domain.OrderRecord) domain.OrderRecord) bool
	ListAll() []domain.OrderRecord
}

type DetailCache interface {
	Get(orderID string) (*domain.OrderDetail, bool)
	Set(d *domain.OrderDetail)
	Remove(orderID string)
}

type Credentials interface {
	Get(ctx context.Context) (auth.Credential, error)
}

type Poller interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
}

// Lookup is the answer to an order query: the local record when the order
// is tracked, otherwise the detail as the platform reports it.
type Lookup struct {
	Record *domain.OrderRecord
	Detail *domain.OrderDetail
}

type Dashboard struct {
	TotalOrders  int                        `json:"totalOrders"`
	ByStatus     map[domain.OrderStatus]int `json:"byStatus"`
	TotalValue   float64                    `json:"totalValue"`
	LastDay      int                        `json:"ordersLast24h"`
	PollingState string                     `json:"pollingState"`
}

type Service struct {
	gateway Gateway
	store   Store
	cache   DetailCache
	creds   Credentials
	poller  Poller
	logger  *zap.Logger

	// pollCtx bounds polling started through the operator surface; request
	// contexts end with the response.
	pollCtx context.Context
	now     func() time.Time
}

func NewService(
	pollCtx context.Context,
	gateway Gateway,
	store Store,
	cache DetailCache,
	creds Credentials,
	poller Poller,
	logger *zap.Logger,
) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
		cache:   cache,
		creds:   creds,
		poller:  poller,
		logger:  logger,
		pollCtx: pollCtx,
		now:     time.Now,
	}
}

// EnsureAuthenticated reports whether a usable credential can be obtained.
func (s *Service) EnsureAuthenticated(ctx context.Context) error {
	if _, err := s.creds.Get(ctx); err != nil {
		s.logger.Warn("operator request without usable credential", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) StartPolling(ctx context.Context) error {
	if err := s.EnsureAuthenticated(ctx); err != nil {
		return err
	}
	s.poller.Start(s.pollCtx)
	return nil
}

func (s *Service) StopPolling() {
	s.poller.Stop()
}

func (s *Service) PollingActive() bool {
	return s.poller.Running()
}

func (s *Service) ListOrders() []domain.OrderRecord {
	return s.store.ListAll()
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (Lookup, LookupStats, error) {
	var st LookupStats

	if rec, ok := s.store.Get(orderID); ok {
		st.Source = SourceStore
		return Lookup{Record: &rec}, st, nil
	}

	tCacheStart := time.Now()
	if d, ok := s.cache.Get(orderID); ok {
		st.Source = SourceCache
		st.CacheMs = convertToMs(tCacheStart)
		return Lookup{Detail: d}, st, nil
	}
	st.CacheMs = convertToMs(tCacheStart)

	tRemoteStart := time.Now()
	d, err := s.gateway.FetchOrderDetail(ctx, orderID)
	if err != nil {
		s.logger.Warn("order lookup failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return Lookup{}, st, err
	}
	st.Source = SourceRemote
	st.RemoteMs = convertToMs(tRemoteStart)
	s.cache.Set(d)

	s.logger.Info("order fetched from platform",
		zap.String("order_id", orderID),
		zap.Float64("remote_ms", st.RemoteMs),
	)
	return Lookup{Detail: d}, st, nil
}

// ForceFetch pulls the order from the platform and stores it as NEW with an
// empty history, replacing whatever was tracked before.
func (s *Service) ForceFetch(ctx context.Context, orderID string) (domain.OrderRecord, error) {
	d, err := s.gateway.FetchOrderDetail(ctx, orderID)
	if err != nil {
		s.logger.Error("force fetch failed", zap.String("order_id", orderID), zap.Error(err))
		return domain.OrderRecord{}, err
	}

	rec := domain.OrderRecord{
		Detail:       *d,
		Status:       domain.StatusNew,
		CreatedAt:    s.now(),
		EventHistory: []domain.RemoteEvent{},
	}
	s.store.Put(orderID, rec)
	s.cache.Remove(orderID)

	s.logger.Info("order force fetched", zap.String("order_id", orderID))
	return rec, nil
}

func (s *Service) Confirm(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, "confirm", s.gateway.Confirm, domain.StatusConfirmed)
}

func (s *Service) StartPreparation(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, "start preparation", s.gateway.StartPreparation, domain.StatusInPreparation)
}

func (s *Service) ReadyToPickup(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, "ready to pickup", s.gateway.ReadyToPickup, domain.StatusReadyForPickup)
}

func (s *Service) Dispatch(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID, "dispatch", s.gateway.Dispatch, domain.StatusDispatched)
}

// transition performs the remote call and, when it succeeds, overwrites the
// local status. No event is appended and the ledger is not touched; the feed
// will later deliver the matching event.
func (s *Service) transition(
	ctx context.Context,
	orderID, action string,
	call func(context.Context, string) error,
	status domain.OrderStatus,
) error {
	if err := call(ctx, orderID); err != nil {
		s.logger.Error("order action failed",
			zap.String("action", action),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return err
	}

	updated := s.store.Replace(orderID, func(rec domain.OrderRecord) domain.OrderRecord {
		rec.Status = status
		return rec
	})
	s.logger.Info("order action done",
		zap.String("action", action),
		zap.String("order_id", orderID),
		zap.Bool("local_updated", updated),
	)
	return nil
}

// RequestCancellation only asks the platform; the local status follows when
// the CANCELLED event arrives.
func (s *Service) RequestCancellation(ctx context.Context, orderID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: cancellation code is required", domain.ErrInvalidInput)
	}
	if err := s.gateway.RequestCancellation(ctx, orderID, code); err != nil {
		s.logger.Error("cancellation request failed",
			zap.String("order_id", orderID),
			zap.String("cancellation_code", code),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("cancellation requested", zap.String("order_id", orderID), zap.String("cancellation_code", code))
	return nil
}

func (s *Service) Tracking(ctx context.Context, orderID string) (*domain.TrackingInfo, error) {
	info, err := s.gateway.FetchTracking(ctx, orderID)
	if err != nil {
		s.logger.Warn("tracking lookup failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return info, nil
}

// Dashboard aggregates the store at call time.
func (s *Service) Dashboard() Dashboard {
	orders := s.store.ListAll()
	dayAgo := s.now().Add(-24 * time.Hour)

	d := Dashboard{
		TotalOrders:  len(orders),
		ByStatus:     make(map[domain.OrderStatus]int, len(domain.Statuses)),
		PollingState: "stopped",
	}
	for _, st := range domain.Statuses {
		d.ByStatus[st] = 0
	}
	for _, rec := range orders {
		d.ByStatus[rec.Status]++
		d.TotalValue += rec.Detail.TotalPrice
		if rec.CreatedAt.After(dayAgo) {
			d.LastDay++
		}
	}
	if s.poller.Running() {
		d.PollingState = "running"
	}
	return d
}
