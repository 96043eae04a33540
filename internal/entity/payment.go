package entity

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "ILS"

// Currencies the downstream gateway accepts, keyed by ISO 4217 code.
var SupportedCurrencies = map[string]struct{}{
	"ILS": {},
	"USD": {},
	"EUR": {},
	"GBP": {},
}

type (
	Customer struct {
		Name  string `json:"name"            validate:"required"`
		Email string `json:"email,omitempty" validate:"omitempty,email"`
		Phone string `json:"phone,omitempty"`
	}

	// PaymentRequest is the aggregator's payment-initiation payload. It is
	// untrusted until its signature has been verified; Signature itself is
	// excluded from signing.
	PaymentRequest struct {
		TransactionID string          `json:"transaction_id"        validate:"required"`
		Amount        decimal.Decimal `json:"amount"`
		Currency      string          `json:"currency,omitempty"`
		Customer      Customer        `json:"customer"`
		Metadata      map[string]any  `json:"metadata,omitempty"`
		SuccessURL    string          `json:"success_url,omitempty" validate:"omitempty,url"`
		CancelURL     string          `json:"cancel_url,omitempty"  validate:"omitempty,url"`
		Signature     string          `json:"signature"             validate:"required"`
	}

	PaymentInitiation struct {
		TransactionID string `json:"transaction_id"`
		PaymentURL    string `json:"payment_url"`
	}
)

var paymentValidate = newPaymentValidator()

func newPaymentValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})
	return v
}

// paymentRequestWire defers amount decoding so that a non-numeric amount
// becomes a field violation instead of a payload-level JSON error.
type paymentRequestWire struct {
	TransactionID string          `json:"transaction_id"`
	Amount        json.RawMessage `json:"amount"`
	Currency      string          `json:"currency"`
	Customer      Customer        `json:"customer"`
	Metadata      map[string]any  `json:"metadata"`
	SuccessURL    string          `json:"success_url"`
	CancelURL     string          `json:"cancel_url"`
	Signature     string          `json:"signature"`
}

// ParsePaymentRequest decodes and validates an initiation payload.
// Failures are reported as *ValidationError with one entry per violated
// field. Currency is the only field that may be defaulted.
func ParsePaymentRequest(raw []byte) (*PaymentRequest, error) {
	var wire paymentRequestWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		verr := &ValidationError{}
		verr.Add("body", "malformed JSON payload")
		return nil, verr
	}

	verr := &ValidationError{}

	req := PaymentRequest{
		TransactionID: wire.TransactionID,
		Currency:      wire.Currency,
		Customer:      wire.Customer,
		Metadata:      wire.Metadata,
		SuccessURL:    wire.SuccessURL,
		CancelURL:     wire.CancelURL,
		Signature:     wire.Signature,
	}

	if err := paymentValidate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Add("body", "invalid payload structure")
			return nil, verr
		}
		for _, fe := range fieldErrs {
			verr.Add(fieldPath(fe), violationReason(fe))
		}
	}

	amount, amountErr := coerceAmount(wire.Amount)
	switch {
	case amountErr != nil:
		verr.Add("amount", "must be a number or a numeric string")
	case !amount.IsPositive():
		verr.Add("amount", "must be a positive decimal")
	default:
		req.Amount = amount
	}

	if req.Currency == "" {
		req.Currency = DefaultCurrency
	} else if _, ok := SupportedCurrencies[req.Currency]; !ok {
		verr.Add("currency", "unsupported currency code")
	}

	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return &req, nil
}

func coerceAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, errors.New("amount missing")
	}
	var amount decimal.Decimal
	if err := json.Unmarshal(raw, &amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "PaymentRequest.customer.name"; drop the root struct.
	ns := fe.Namespace()
	if idx := strings.IndexByte(ns, '.'); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and must be non-empty"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return "must satisfy '" + fe.Tag() + "'"
	}
}
