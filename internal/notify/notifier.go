// Package notify reports approved payments back to the merchant
// aggregator. The bridge owns no transaction state, so this is the only
// downstream effect of a successful callback.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"paybridge/internal/entity"
	"paybridge/internal/signature"
	"paybridge/pkg/logger"
)

const (
	// SignatureHeader carries the HMAC digest of the notification body,
	// computed with the same shared secret the aggregator signs with.
	SignatureHeader = "X-SBPay-Signature"

	_notifyTimeout = 10 * time.Second
)

type Notifier interface {
	PaymentApproved(ctx context.Context, result *entity.CallbackResult) error
}

// HTTPNotifier POSTs a signed approval notice to the aggregator.
type HTTPNotifier struct {
	approvalURL string
	signer      *signature.Signer
	httpClient  *http.Client
	log         logger.Logger
}

func NewHTTPNotifier(approvalURL string, signer *signature.Signer, log logger.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		approvalURL: approvalURL,
		signer:      signer,
		httpClient: &http.Client{
			Timeout: _notifyTimeout,
		},
		log: log,
	}
}

func (n *HTTPNotifier) PaymentApproved(ctx context.Context, result *entity.CallbackResult) error {
	const op = "notify.PaymentApproved"

	payload := map[string]any{
		"order_id":  result.OrderID,
		"amount":    json.Number(result.Amount.String()),
		"auth_code": result.AuthCode,
		"token":     result.Token,
		"status":    string(result.Status),
	}

	sig, err := n.signer.Sign(payload)
	if err != nil {
		return fmt.Errorf("%s: sign notification: %w", op, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode notification: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.approvalURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, sig)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: deliver notification: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: aggregator returned %d", op, resp.StatusCode)
	}

	n.log.Infow("payment approval delivered",
		"order", result.OrderID,
		"status", resp.StatusCode,
	)
	return nil
}

// NewNop returns a Notifier that drops notifications; used when no
// approval URL is configured.
func NewNop() Notifier {
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) PaymentApproved(context.Context, *entity.CallbackResult) error {
	return nil
}
