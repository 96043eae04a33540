package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSignature   = errors.New("invalid or missing request signature")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrConfigPathNotSet   = errors.New("CONFIG_PATH not set and -config flag not provided")
)

type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries per-field violations for a rejected payment
// request. It is returned to the caller verbatim; amount and transaction
// id are never silently defaulted into a passing state.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

func (e *ValidationError) Add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}
