// Package journal publishes every applied feed event to downstream consumers.
// Publication is best effort: a failure never affects the ledger or the store.
package journal

import (
	"context"
	"time"

	"github.com/TemirB/merchant-orders-sync/internal/domain"
)

type Entry struct {
	EventID    string             `json:"eventId"`
	Code       string             `json:"code"`
	OrderID    string             `json:"orderId"`
	Status     domain.OrderStatus `json:"status,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
	AppliedAt  time.Time          `json:"appliedAt"`
}

func NewEntry(ev domain.RemoteEvent, status domain.OrderStatus, appliedAt time.Time) Entry {
	return Entry{
		EventID:    ev.ID,
		Code:       ev.Code,
		OrderID:    ev.OrderID,
		Status:     status,
		OccurredAt: ev.OccurredAt,
		AppliedAt:  appliedAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Entry)
	Close() error
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Publish(context.Context, Entry) {}
func (Noop) Close() error                   { return nil }
