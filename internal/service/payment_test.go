package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"paybridge/internal/entity"
	mock_gateway "paybridge/internal/gateway/mock"
	"paybridge/internal/service"
	"paybridge/internal/signature"
	"paybridge/pkg/logger"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testSecret = "shared-secret"

func signedBody(t *testing.T, payload map[string]any) ([]byte, string) {
	t.Helper()

	signer := signature.NewSigner([]byte(testSecret))
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	payload["signature"] = sig
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body, sig
}

func validPayload() map[string]any {
	return map[string]any{
		"transaction_id": gofakeit.UUID(),
		"amount":         json.Number("100.50"),
		"currency":       "ILS",
		"customer": map[string]any{
			"name":  gofakeit.Name(),
			"email": gofakeit.Email(),
		},
	}
}

func TestPaymentService_InitiatePayment(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc        string
		buildInput  func(t *testing.T) (body []byte, sig string)
		mocks       func(gatewayClient *mock_gateway.MockClient)
		expectedErr error
		wantVErr    bool
		wantURL     string
	}{
		{
			desc: "happy path",
			buildInput: func(t *testing.T) ([]byte, string) {
				return signedBody(t, validPayload())
			},
			mocks: func(gatewayClient *mock_gateway.MockClient) {
				gatewayClient.EXPECT().
					PaymentURL(gomock.Any(), gomock.Any()).
					Return("https://pay.example/p/?action=pay&x=1", nil)
			},
			wantURL: "https://pay.example/p/?action=pay&x=1",
		},
		{
			desc: "missing signature header",
			buildInput: func(t *testing.T) ([]byte, string) {
				body, _ := signedBody(t, validPayload())
				return body, ""
			},
			expectedErr: entity.ErrInvalidSignature,
		},
		{
			desc: "tampered body",
			buildInput: func(t *testing.T) ([]byte, string) {
				payload := validPayload()
				_, sig := signedBody(t, payload)
				payload["amount"] = json.Number("999999.99")
				tampered, err := json.Marshal(payload)
				require.NoError(t, err)
				return tampered, sig
			},
			expectedErr: entity.ErrInvalidSignature,
		},
		{
			desc: "body is not a JSON object",
			buildInput: func(t *testing.T) ([]byte, string) {
				return []byte("[1,2,3]"), "deadbeef"
			},
			expectedErr: entity.ErrInvalidSignature,
		},
		{
			desc: "validation failure after valid signature",
			buildInput: func(t *testing.T) ([]byte, string) {
				payload := validPayload()
				payload["amount"] = json.Number("-1")
				return signedBody(t, payload)
			},
			wantVErr: true,
		},
		{
			desc: "gateway unavailable",
			buildInput: func(t *testing.T) ([]byte, string) {
				return signedBody(t, validPayload())
			},
			mocks: func(gatewayClient *mock_gateway.MockClient) {
				gatewayClient.EXPECT().
					PaymentURL(gomock.Any(), gomock.Any()).
					Return("", entity.ErrGatewayUnavailable)
			},
			expectedErr: entity.ErrGatewayUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gatewayClient := mock_gateway.NewMockClient(ctrl)
			if tc.mocks != nil {
				tc.mocks(gatewayClient)
			}

			svc := service.NewPaymentService(
				signature.NewSigner([]byte(testSecret)),
				gatewayClient,
				logger.NewNop(),
			)

			body, sig := tc.buildInput(t)
			initiation, err := svc.InitiatePayment(ctx, body, sig)

			switch {
			case tc.wantVErr:
				var verr *entity.ValidationError
				require.ErrorAs(t, err, &verr)
				require.NotEmpty(t, verr.Violations)
			case tc.expectedErr != nil:
				require.ErrorIs(t, err, tc.expectedErr)
			default:
				require.NoError(t, err)
				require.Equal(t, tc.wantURL, initiation.PaymentURL)
				require.NotEmpty(t, initiation.TransactionID)
			}
		})
	}
}

func TestPaymentService_SignatureCoversWholePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gatewayClient := mock_gateway.NewMockClient(ctrl)
	gatewayClient.EXPECT().
		PaymentURL(gomock.Any(), gomock.Any()).
		Return("https://pay.example/p/?action=pay", nil)

	svc := service.NewPaymentService(
		signature.NewSigner([]byte(testSecret)),
		gatewayClient,
		logger.NewNop(),
	)

	// Optional fields are part of the signed set; dropping one after
	// signing must invalidate the digest.
	payload := validPayload()
	payload["metadata"] = map[string]any{"ref": gofakeit.Word()}
	body, sig := signedBody(t, payload)

	_, err := svc.InitiatePayment(context.Background(), body, sig)
	require.NoError(t, err)

	delete(payload, "metadata")
	stripped, marshalErr := json.Marshal(payload)
	require.NoError(t, marshalErr)

	_, err = svc.InitiatePayment(context.Background(), stripped, sig)
	require.ErrorIs(t, err, entity.ErrInvalidSignature)
}
