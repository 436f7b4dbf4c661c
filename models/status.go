package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// OrderStatus is the closed set of states an order can be in. Arbitrary
// labels are rejected at the API boundary; see Valid.
type OrderStatus string

const (
	StatusPending           OrderStatus = "pending"
	StatusAwaitingApproval  OrderStatus = "awaiting_approval"
	StatusConfirmed         OrderStatus = "confirmed"
	StatusPaymentReceived   OrderStatus = "payment_received"
	StatusProductionStarted OrderStatus = "production_started"
	StatusInProduction      OrderStatus = "in_production"
	StatusShipped           OrderStatus = "shipped"
	StatusDelivered         OrderStatus = "delivered"
	// A terminal cancelled/rejected state is intentionally not modeled yet.
	// Add it here (and to the canonical sequence handling) when cancellation
	// becomes a real workflow.
)

// StatusSequence is the canonical fulfillment progression used to render
// order timelines. It is hard-coded on purpose: business states can be
// skipped or revisited, so the ordering must never be inferred from
// timestamps. StatusAwaitingApproval is a side branch before confirmed and
// is spliced in only when an order actually passed through it.
var StatusSequence = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPaymentReceived,
	StatusProductionStarted,
	StatusInProduction,
	StatusShipped,
	StatusDelivered,
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingApproval, StatusConfirmed,
		StatusPaymentReceived, StatusProductionStarted, StatusInProduction,
		StatusShipped, StatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// StatusEvent is a single entry in an order's status timeline.
type StatusEvent struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// StatusTimeline is the append-only history of status transitions, stored as
// a JSON column. Entries are never removed or rewritten; re-entering a status
// appends a second event, so consumers must pick the latest timestamp per
// status when rendering.
type StatusTimeline []StatusEvent

func (t StatusTimeline) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *StatusTimeline) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// Contains reports whether the timeline has at least one event for status.
func (t StatusTimeline) Contains(status OrderStatus) bool {
	for _, event := range t {
		if event.Status == status {
			return true
		}
	}
	return false
}

// LatestTimestamp returns the most recent event timestamp recorded for
// status, and whether any event for it exists.
func (t StatusTimeline) LatestTimestamp(status OrderStatus) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, event := range t {
		if event.Status == status && (!found || event.Timestamp.After(latest)) {
			latest = event.Timestamp
			found = true
		}
	}
	return latest, found
}
