package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"paybridge/internal/entity"
	"paybridge/internal/notify"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"

	"github.com/shopspring/decimal"
)

// Gateway callback query-parameter names.
const (
	paramResponseCode = "CCode"
	paramAuthCode     = "ACode"
	paramOrder        = "Order"
	paramAmount       = "Amount"
	paramToken        = "Token"

	successCode = "0"
)

// CallbackService classifies asynchronous payment-result callbacks and
// forwards approvals upstream. A callback is always acknowledged: parse
// failures degrade to a FAILURE result instead of an error.
type CallbackService struct {
	notifier notify.Notifier
	log      logger.Logger
	metrics  metric.Callback
}

func NewCallbackService(
	notifier notify.Notifier,
	log logger.Logger,
	metrics metric.Callback,
) *CallbackService {
	return &CallbackService{
		notifier: notifier,
		log:      log,
		metrics:  metrics,
	}
}

// Classify turns raw callback query parameters into a CallbackResult.
// CCode "0" is the gateway's only success code; anything else fails with
// the raw code embedded for diagnostics.
func (s *CallbackService) Classify(values url.Values) *entity.CallbackResult {
	orderID := values.Get(paramOrder)
	code := values.Get(paramResponseCode)
	rawAmount := values.Get(paramAmount)

	if orderID == "" || code == "" || rawAmount == "" {
		s.metrics.Malformed()
		return &entity.CallbackResult{
			Status:  entity.StatusFailure,
			OrderID: entity.UnknownOrderID,
			Amount:  decimal.Zero,
			Error:   "invalid payment response format",
		}
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		s.metrics.Malformed()
		return &entity.CallbackResult{
			Status:  entity.StatusFailure,
			OrderID: entity.UnknownOrderID,
			Amount:  decimal.Zero,
			Error:   "invalid payment response format",
		}
	}

	result := &entity.CallbackResult{
		OrderID:  orderID,
		Amount:   amount,
		AuthCode: values.Get(paramAuthCode),
		Token:    values.Get(paramToken),
	}

	if code == successCode {
		result.Status = entity.StatusSuccess
	} else {
		result.Status = entity.StatusFailure
		result.Error = fmt.Sprintf("payment failed with code: %s", code)
	}

	return result
}

// Handle classifies a callback, records it, and reports approvals to the
// aggregator. The returned result always yields a redirect; notifier
// failures are logged but never block the acknowledgement.
func (s *CallbackService) Handle(ctx context.Context, values url.Values) *entity.CallbackResult {
	result := s.Classify(values)

	s.metrics.Classified(string(result.Status))

	log := s.log.Ctx(ctx)
	log.LogAttrs(ctx, callbackLogLevel(result), "payment callback",
		logger.Time("timestamp", time.Now().UTC()),
		logger.String("status", string(result.Status)),
		logger.String("order_id", result.OrderID),
		logger.String("amount", result.Amount.String()),
		logger.String("error", result.Error),
	)

	if result.Succeeded() {
		if err := s.notifier.PaymentApproved(ctx, result); err != nil {
			log.Errorw("approval notification failed",
				"order_id", result.OrderID,
				"error", err,
			)
		}
	}

	return result
}

func callbackLogLevel(result *entity.CallbackResult) logger.Level {
	if result.Succeeded() {
		return logger.InfoLevel
	}
	return logger.WarnLevel
}
