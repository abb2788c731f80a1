package domain

import "context"

// Gateway is the merchant platform contract the engine calls.
type Gateway interface {
	FetchEvents(ctx context.Context) ([]RemoteEvent, error)
	FetchOrderDetail(ctx context.Context, orderID string) (*OrderDetail, error)
	Confirm(ctx context.Context, orderID string) error
	StartPreparation(ctx context.Context, orderID string) error
	ReadyToPickup(ctx context.Context, orderID string) error
	Dispatch(ctx context.Context, orderID string) error
	RequestCancellation(ctx context.Context, orderID, code string) error
	FetchTracking(ctx context.Context, orderID string) (*TrackingInfo, error)
}
