// Package poller drives the periodic fetch and apply cycle against the
// merchant event feed.
package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/merchant-orders-sync/internal/domain"
	"github.com/TemirB/merchant-orders-sync/internal/journal"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
)

//go:generate mockgen -source internal/poller/poller.go -destination=internal/poller/poller_mock_test.go -package=poller

type EventSource interface {
	FetchEvents(ctx context.Context) ([]domain.RemoteEvent, error)
}

type Ledger interface {
	AlreadyApplied(eventID string) bool
	MarkApplied(eventID string)
}

type Projector interface {
	Apply(ctx context.Context, ev domain.RemoteEvent) (bool, error)
}

type Publisher interface {
	Publish(ctx context.Context, e journal.Entry)
}

// ErrTickInFlight is returned by Tick when another tick has not finished yet.
var ErrTickInFlight = errors.New("poll tick already in flight")

// Summary counts what one tick did with its batch.
type Summary struct {
	Fetched    int
	Applied    int
	Duplicates int
	Deferred   int
	Invalid    int
}

type Poller struct {
	source    EventSource
	ledger    Ledger
	projector Projector
	publisher Publisher
	interval  time.Duration
	logger    *zap.Logger
	metrics   observability.Metrics

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup

	busy atomic.Bool
	now  func() time.Time
}

func New(
	source EventSource,
	ledger Ledger,
	projector Projector,
	publisher Publisher,
	interval time.Duration,
	logger *zap.Logger,
	metrics observability.Metrics,
) *Poller {
	return &Poller{
		source:    source,
		ledger:    ledger,
		projector: projector,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Start arms the periodic schedule and runs the first tick right away. A
// running schedule is replaced, never duplicated. Ticks run with ctx, so
// cancelling it is how the owner aborts work in flight.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
		p.logger.Info("polling restarted")
	} else {
		p.logger.Info("polling started", zap.Duration("interval", p.interval))
	}
	stop := make(chan struct{})
	p.stop = stop

	p.wg.Add(1)
	go p.loop(ctx, stop)
}

// Stop disarms the schedule. A tick already running finishes normally.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
	p.logger.Info("polling stopped")
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Shutdown stops the schedule and waits for every loop to return, or for ctx.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.Stop()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) loop(ctx context.Context, stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fire(ctx)
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fire(ctx)
		}
	}
}

func (p *Poller) fire(ctx context.Context) {
	_, err := p.Tick(ctx)
	if errors.Is(err, ErrTickInFlight) {
		p.logger.Debug("previous tick still running, firing skipped")
	}
}

// Tick fetches one batch and applies it in feed order. A fetch failure ends
// the tick and is returned; per-event failures are logged and leave the
// event unmarked for the next batch.
func (p *Poller) Tick(ctx context.Context) (Summary, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return Summary{}, ErrTickInFlight
	}
	defer p.busy.Store(false)

	start := time.Now()
	var sum Summary

	events, err := p.source.FetchEvents(ctx)
	if err != nil {
		p.metrics.ObservePoll(0, 0, float64(time.Since(start).Milliseconds()), false)
		p.logger.Error("failed to fetch events", zap.Error(err))
		return sum, err
	}
	sum.Fetched = len(events)

	for _, ev := range events {
		p.handle(ctx, ev, &sum)
	}

	p.metrics.ObservePoll(sum.Fetched, sum.Applied, float64(time.Since(start).Milliseconds()), true)
	if sum.Fetched > 0 {
		p.logger.Info("poll tick done",
			zap.Int("fetched", sum.Fetched),
			zap.Int("applied", sum.Applied),
			zap.Int("duplicates", sum.Duplicates),
			zap.Int("deferred", sum.Deferred),
			zap.Int("invalid", sum.Invalid),
		)
	}
	return sum, nil
}

func (p *Poller) handle(ctx context.Context, ev domain.RemoteEvent, sum *Summary) {
	code := string(ev.Kind())

	if err := ev.Validate(); err != nil {
		sum.Invalid++
		p.metrics.ObserveApply(code, observability.OutcomeInvalid)
		p.logger.Warn("skipping malformed event", zap.String("event_id", ev.ID), zap.Error(err))
		return
	}

	if p.ledger.AlreadyApplied(ev.ID) {
		sum.Duplicates++
		p.metrics.ObserveApply(code, observability.OutcomeDuplicate)
		p.logger.Debug("duplicate event skipped", zap.String("event_id", ev.ID))
		return
	}

	changed, err := p.projector.Apply(ctx, ev)
	if err != nil {
		sum.Deferred++
		p.metrics.ObserveApply(code, observability.OutcomeRetry)
		p.logger.Warn("event not applied, will retry on next poll",
			zap.String("event_id", ev.ID),
			zap.String("order_id", ev.OrderID),
			zap.Error(err),
		)
		return
	}

	p.ledger.MarkApplied(ev.ID)
	sum.Applied++
	p.metrics.ObserveApply(code, observability.OutcomeApplied)
	// Events for orders we never saw placed are consumed but leave nothing to journal.
	if changed {
		p.publisher.Publish(ctx, journal.NewEntry(ev, statusAfter(ev), p.now()))
	}
}

func statusAfter(ev domain.RemoteEvent) domain.OrderStatus {
	if ev.Kind() == domain.CodePlaced {
		return domain.StatusNew
	}
	status, _ := domain.StatusFor(ev.Kind())
	return status
}
