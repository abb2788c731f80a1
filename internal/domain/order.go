package domain

import (
	"encoding/json"
	"maps"
	"time"
)

type OrderStatus string

const (
	StatusNew            OrderStatus = "NEW"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusInPreparation  OrderStatus = "IN_PREPARATION"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusDispatched     OrderStatus = "DISPATCHED"
	StatusConcluded      OrderStatus = "CONCLUDED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []OrderStatus{
	StatusNew,
	StatusConfirmed,
	StatusInPreparation,
	StatusReadyForPickup,
	StatusDispatched,
	StatusConcluded,
	StatusCancelled,
}

// StatusFor returns the status an event code moves an order to. OTHER and
// PLACED have no transition of their own.
func StatusFor(code EventCode) (OrderStatus, bool) {
	switch code {
	case CodeConfirmed:
		return StatusConfirmed, true
	case CodePreparationStarted:
		return StatusInPreparation, true
	case CodeReadyForPickup:
		return StatusReadyForPickup, true
	case CodeDispatched:
		return StatusDispatched, true
	case CodeConcluded:
		return StatusConcluded, true
	case CodeCancelled:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// OrderDetail is the vendor order payload. Fields it does not declare are
// kept in Extra and written back at the top level, so the payload survives
// a decode/encode cycle whole.
type OrderDetail struct {
	ID               string                     `json:"id"`
	Reference        string                     `json:"reference,omitempty"`
	ShortReference   string                     `json:"shortReference,omitempty"`
	CreatedAt        string                     `json:"createdAt,omitempty"`
	Type             string                     `json:"type,omitempty"`
	Merchant         Merchant                   `json:"merchant"`
	Customer         Customer                   `json:"customer"`
	Items            []Item                     `json:"items"`
	TotalPrice       float64                    `json:"totalPrice"`
	DeliveryAddress  *Address                   `json:"deliveryAddress,omitempty"`
	DeliveryFee      float64                    `json:"deliveryFee,omitempty"`
	DeliveryDateTime string                     `json:"deliveryDateTime,omitempty"`
	DeliveryProvider string                     `json:"deliveryProvider,omitempty"`
	Payments         []Payment                  `json:"payments"`
	Extra            map[string]json.RawMessage `json:"-"`
}

type Merchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Customer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          Phone  `json:"phone"`
	DocumentNumber string `json:"documentNumber,omitempty"`
}

type Phone struct {
	Number string `json:"number"`
}

type Item struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
	SubItems     []Item  `json:"subItems,omitempty"`
	Observations string  `json:"observations,omitempty"`
	Unit         string  `json:"unit,omitempty"`
}

type Address struct {
	StreetName       string `json:"streetName"`
	StreetNumber     string `json:"streetNumber"`
	FormattedAddress string `json:"formattedAddress"`
	Neighborhood     string `json:"neighborhood"`
	City             string `json:"city"`
	State            string `json:"state"`
	PostalCode       string `json:"postalCode"`
	Reference        string `json:"reference,omitempty"`
	Complement       string `json:"complement,omitempty"`
}

type Payment struct {
	Type      string  `json:"type"`
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Prepaid   bool    `json:"prepaid"`
	ChangeFor float64 `json:"changeFor,omitempty"`
}

// OrderRecord is the local projection of one order. EventHistory is append-only.
type OrderRecord struct {
	Detail       OrderDetail   `json:"order"`
	Status       OrderStatus   `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	EventHistory []RemoteEvent `json:"events"`
}

// Clone copies the history slice so the caller can append without aliasing.
// The copy is never nil, so an empty history encodes as [].
func (r OrderRecord) Clone() OrderRecord {
	out := r
	out.EventHistory = append(make([]RemoteEvent, 0, len(r.EventHistory)), r.EventHistory...)
	out.Detail.Extra = maps.Clone(r.Detail.Extra)
	return out
}

// WithEvent returns a copy with the event appended and, if set, the new status.
func (r OrderRecord) WithEvent(ev RemoteEvent, status OrderStatus) OrderRecord {
	out := r.Clone()
	out.EventHistory = append(out.EventHistory, ev)
	if status != "" {
		out.Status = status
	}
	return out
}

// TrackingInfo is the delivery tracking payload.
type TrackingInfo struct {
	Status          string    `json:"status"`
	CourierName     string    `json:"courierName,omitempty"`
	ETA             string    `json:"eta,omitempty"`
	CurrentPosition *Position `json:"currentPosition,omitempty"`
}

type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
