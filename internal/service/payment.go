package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"paybridge/internal/entity"
	"paybridge/internal/gateway"
	"paybridge/internal/signature"
	"paybridge/pkg/logger"
)

// PaymentService runs the initiation pipeline: authenticate the raw
// payload, validate and coerce its fields, then translate it into the
// gateway's redirect URL. Each call is independent; the service holds no
// mutable state.
type PaymentService struct {
	signer  *signature.Signer
	gateway gateway.Client
	log     logger.Logger
}

func NewPaymentService(
	signer *signature.Signer,
	gatewayClient gateway.Client,
	log logger.Logger,
) *PaymentService {
	return &PaymentService{
		signer:  signer,
		gateway: gatewayClient,
		log:     log,
	}
}

// InitiatePayment authenticates and translates one initiation request.
// Error taxonomy: entity.ErrInvalidSignature (reject, no detail),
// *entity.ValidationError (field detail for the caller),
// entity.ErrGatewayUnavailable (wrapped downstream failure).
func (s *PaymentService) InitiatePayment(
	ctx context.Context,
	rawBody []byte,
	presentedSignature string,
) (*entity.PaymentInitiation, error) {
	const op = "service.InitiatePayment"

	log := s.log.Ctx(ctx)

	if presentedSignature == "" {
		log.Warnw("payment request without signature header")
		return nil, entity.ErrInvalidSignature
	}

	payload, err := decodePayload(rawBody)
	if err != nil {
		// A payload the authenticator cannot canonicalize is treated the
		// same as a bad signature: rejected without detail.
		log.Warnw("payment request payload not decodable", "error", err)
		return nil, entity.ErrInvalidSignature
	}

	if !s.signer.Verify(payload, presentedSignature) {
		log.Warnw("payment request signature mismatch")
		return nil, entity.ErrInvalidSignature
	}

	req, err := entity.ParsePaymentRequest(rawBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paymentURL, err := s.gateway.PaymentURL(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Infow("payment initiated",
		"transaction_id", req.TransactionID,
		"currency", req.Currency,
	)

	return &entity.PaymentInitiation{
		TransactionID: req.TransactionID,
		PaymentURL:    paymentURL,
	}, nil
}

// decodePayload preserves numeric literals so the digest covers the
// exact bytes-equivalent value the aggregator signed.
func decodePayload(rawBody []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(rawBody))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}
