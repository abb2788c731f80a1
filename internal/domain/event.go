package domain

import (
	"encoding/json"
	"time"
)

type EventCode string

const (
	CodePlaced             EventCode = "PLACED"
	CodeConfirmed          EventCode = "CONFIRMED"
	CodePreparationStarted EventCode = "PREPARATION_STARTED"
	CodeReadyForPickup     EventCode = "READY_FOR_PICKUP"
	CodeDispatched         EventCode = "DISPATCHED"
	CodeConcluded          EventCode = "CONCLUDED"
	CodeCancelled          EventCode = "CANCELLED"
	CodeOther              EventCode = "OTHER"
)

// wireCodes maps the feed's codes onto EventCode. PLC is the legacy alias of PLACED.
var wireCodes = map[string]EventCode{
	"PLACED": CodePlaced,
	"PLC":    CodePlaced,
	"CFM":    CodeConfirmed,
	"PRS":    CodePreparationStarted,
	"RTP":    CodeReadyForPickup,
	"DSP":    CodeDispatched,
	"CON":    CodeConcluded,
	"CAN":    CodeCancelled,

	"CONFIRMED":           CodeConfirmed,
	"PREPARATION_STARTED": CodePreparationStarted,
	"READY_FOR_PICKUP":    CodeReadyForPickup,
	"DISPATCHED":          CodeDispatched,
	"CONCLUDED":           CodeConcluded,
	"CANCELLED":           CodeCancelled,
}

// ParseEventCode never fails: unknown codes are OTHER.
func ParseEventCode(wire string) EventCode {
	if c, ok := wireCodes[wire]; ok {
		return c
	}
	return CodeOther
}

// RemoteEvent is one entry of the polling feed. Immutable once received.
type RemoteEvent struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	OrderID    string         `json:"orderId"`
	OccurredAt time.Time      `json:"createdAt"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Kind returns the projected code of the event.
func (e RemoteEvent) Kind() EventCode {
	return ParseEventCode(e.Code)
}

func (e RemoteEvent) Validate() error {
	if e.ID == "" {
		return wrapInvalid("missing id")
	}
	if e.OrderID == "" {
		return wrapInvalid("missing orderId")
	}
	return nil
}

// UnmarshalJSON tolerates a createdAt the feed sends without a zone or empty.
func (e *RemoteEvent) UnmarshalJSON(b []byte) error {
	type raw struct {
		ID        string         `json:"id"`
		Code      string         `json:"code"`
		FullCode  string         `json:"fullCode"`
		OrderID   string         `json:"orderId"`
		CreatedAt string         `json:"createdAt"`
		Metadata  map[string]any `json:"metadata"`
	}
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	e.ID = r.ID
	e.Code = r.Code
	if e.Code == "" {
		e.Code = r.FullCode
	}
	e.OrderID = r.OrderID
	e.Metadata = r.Metadata
	e.OccurredAt = parseTime(r.CreatedAt)
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTime(s string) time.Time {
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
