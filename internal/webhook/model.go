package webhook

import (
	"encoding/json"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// EventTypes lists the payment-provider events this service records.
var EventTypes = []string{
	"payment.succeeded",
	"payment.failed",
	"subscription.created",
	"subscription.renewed",
	"subscription.cancelled",
	"order.created",
	"refund.processed",
}

type Log struct {
	ID        int             `db:"id" json:"id"`
	EventID   string          `db:"event_id" json:"eventId"`
	EventType string          `db:"event_type" json:"eventType"`
	AdminID   int             `db:"admin_id" json:"adminId"`
	Status    string          `db:"status" json:"status"`
	Amount    *float64        `db:"amount" json:"amount,omitempty"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	Error     *string         `db:"error" json:"error,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// IngestRequest is the inbound provider event. Processing stays upstream;
// this service records the event and its reported outcome.
type IngestRequest struct {
	EventType string          `json:"eventType" binding:"required"`
	AdminID   int             `json:"adminId" binding:"required"`
	Status    string          `json:"status" binding:"required,oneof=success failed"`
	Amount    *float64        `json:"amount"`
	Payload   json.RawMessage `json:"payload"`
	Error     *string         `json:"error"`
}
