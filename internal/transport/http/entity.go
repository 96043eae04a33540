package httpt

import "paybridge/internal/entity"

type ErrorResponse struct {
	Status  string                  `json:"status"`
	Error   string                  `json:"error"`
	Details []entity.FieldViolation `json:"details,omitempty"`
}

type PaymentResponse struct {
	Status        string `json:"status"`
	PaymentURL    string `json:"payment_url"`
	TransactionID string `json:"transaction_id"`
}
