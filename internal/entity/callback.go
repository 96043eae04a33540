package entity

import (
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailure PaymentStatus = "FAILURE"
	// StatusPending is reserved: the gateway's documented responses never
	// produce it today, the enum keeps room for it.
	StatusPending PaymentStatus = "PENDING"
)

// UnknownOrderID marks a callback whose order id could not be read.
const UnknownOrderID = "UNKNOWN"

// CallbackResult is the classified outcome of one asynchronous gateway
// callback. It is request-scoped and never persisted here; the bridge
// only turns it into a browser redirect and a log record.
type CallbackResult struct {
	Status   PaymentStatus   `json:"status"`
	OrderID  string          `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	AuthCode string          `json:"auth_code,omitempty"`
	Token    string          `json:"token,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (r *CallbackResult) Succeeded() bool {
	return r.Status == StatusSuccess
}
