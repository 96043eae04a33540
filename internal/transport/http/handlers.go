package httpt

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"paybridge/internal/config"
	"paybridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// SignatureHeader carries the aggregator's HMAC digest of the body.
	SignatureHeader = "X-SBPay-Signature"

	_defaultContextTimeout = 15 * time.Second
)

// paymentHandler runs the initiation pipeline. In production mode the
// browser is redirected straight to the hosted payment page; in test
// mode the URL comes back as JSON for inspection.
func (h *BridgeHandler) paymentHandler(c *gin.Context) {
	const op = "transport.paymentHandler"

	log := h.log.Ctx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.bridge.MaxBodyBytes)
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warnw("payment request body rejected", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status: "error",
			Error:  "Request body unreadable or too large",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	initiation, err := h.payments.InitiatePayment(ctx, rawBody, c.GetHeader(SignatureHeader))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	log.LogAttrs(ctx, logger.InfoLevel, "payment URL issued",
		logger.String("transaction_id", initiation.TransactionID),
	)

	if h.bridge.Mode == config.ModeProduction {
		c.Redirect(http.StatusFound, initiation.PaymentURL)
		return
	}

	c.JSON(http.StatusOK, PaymentResponse{
		Status:        "success",
		PaymentURL:    initiation.PaymentURL,
		TransactionID: initiation.TransactionID,
	})
}

// callbackHandler acknowledges every gateway callback with a redirect:
// the vendor retries unacknowledged deliveries, and a malformed payload
// is still a delivery.
func (h *BridgeHandler) callbackHandler(c *gin.Context) {
	result := h.callbacks.Handle(c.Request.Context(), c.Request.URL.Query())

	if result.Succeeded() {
		c.Redirect(http.StatusFound, h.bridge.SuccessPath)
		return
	}

	c.Redirect(http.StatusFound, h.bridge.FailurePath+"?error="+url.QueryEscape(result.Error))
}
