package httpt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// Simulation handlers, mounted in test mode only. They reproduce what
// the real collaborators would send: a signed aggregator request and a
// gateway result callback.

func (h *BridgeHandler) testSBPayHandler(c *gin.Context) {
	const op = "transport.testSBPayHandler"

	var overrides struct {
		Amount    json.Number `json:"custom_amount"`
		Reference string      `json:"custom_reference"`
	}
	// Body is optional; defaults cover everything.
	_ = c.ShouldBindJSON(&overrides)

	amount := overrides.Amount
	if amount == "" {
		amount = "100.00"
	}
	reference := overrides.Reference
	if reference == "" {
		reference = "REF123"
	}

	payload := map[string]any{
		"transaction_id": fmt.Sprintf("SBPAY_%d", time.Now().UnixNano()),
		"amount":         amount,
		"currency":       "ILS",
		"customer": map[string]any{
			"name":  "Test Customer",
			"email": "customer@example.com",
			"phone": "0501234567",
		},
		"metadata": map[string]any{
			"order_reference": reference,
		},
	}

	sig, err := h.signer.Sign(payload)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}
	payload["signature"] = sig

	rawBody, err := json.Marshal(payload)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	initiation, err := h.payments.InitiatePayment(ctx, rawBody, sig)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		Status:        "success",
		PaymentURL:    initiation.PaymentURL,
		TransactionID: initiation.TransactionID,
	})
}

func (h *BridgeHandler) testCallbackHandler(c *gin.Context) {
	code := "1"
	if c.Query("success") == "true" {
		code = "0"
	}

	order := c.Query("order")
	if order == "" {
		order = "TEST123"
	}
	amount := c.Query("amount")
	if amount == "" {
		amount = "100.00"
	}

	values := url.Values{}
	values.Set("CCode", code)
	values.Set("ACode", "123456")
	values.Set("Order", order)
	values.Set("Amount", amount)
	values.Set("Token", "test_token_123")

	c.Redirect(http.StatusFound, "/api/callback?"+values.Encode())
}
