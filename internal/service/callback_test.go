package service_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"paybridge/internal/entity"
	mock_notify "paybridge/internal/notify/mock"
	"paybridge/internal/service"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func callbackValues(pairs map[string]string) url.Values {
	values := url.Values{}
	for k, v := range pairs {
		values.Set(k, v)
	}
	return values
}

func TestCallbackService_Classify(t *testing.T) {
	testCases := []struct {
		desc     string
		values   url.Values
		expected entity.CallbackResult
	}{
		{
			desc: "success code zero",
			values: callbackValues(map[string]string{
				"CCode":  "0",
				"ACode":  "1",
				"Order":  "X1",
				"Amount": "100.00",
			}),
			expected: entity.CallbackResult{
				Status:   entity.StatusSuccess,
				OrderID:  "X1",
				AuthCode: "1",
			},
		},
		{
			desc: "failure code embeds raw code",
			values: callbackValues(map[string]string{
				"CCode":  "1",
				"Order":  "X1",
				"Amount": "100.00",
			}),
			expected: entity.CallbackResult{
				Status:  entity.StatusFailure,
				OrderID: "X1",
				Error:   "payment failed with code: 1",
			},
		},
		{
			desc: "token preserved",
			values: callbackValues(map[string]string{
				"CCode":  "0",
				"ACode":  "654321",
				"Order":  "X9",
				"Amount": "15.50",
				"Token":  "tok_live",
			}),
			expected: entity.CallbackResult{
				Status:   entity.StatusSuccess,
				OrderID:  "X9",
				AuthCode: "654321",
				Token:    "tok_live",
			},
		},
		{
			desc:   "missing all fields degrades to failure",
			values: url.Values{},
			expected: entity.CallbackResult{
				Status:  entity.StatusFailure,
				OrderID: entity.UnknownOrderID,
				Error:   "invalid payment response format",
			},
		},
		{
			desc: "non-numeric amount degrades to failure",
			values: callbackValues(map[string]string{
				"CCode":  "0",
				"Order":  "X1",
				"Amount": "not-a-number",
			}),
			expected: entity.CallbackResult{
				Status:  entity.StatusFailure,
				OrderID: entity.UnknownOrderID,
				Error:   "invalid payment response format",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service.NewCallbackService(
				mock_notify.NewMockNotifier(ctrl),
				logger.NewNop(),
				metric.NewNopFactory().Callback(),
			)

			result := svc.Classify(tc.values)

			require.Equal(t, tc.expected.Status, result.Status)
			require.Equal(t, tc.expected.OrderID, result.OrderID)
			require.Equal(t, tc.expected.AuthCode, result.AuthCode)
			require.Equal(t, tc.expected.Token, result.Token)
			require.Equal(t, tc.expected.Error, result.Error)

			if tc.expected.OrderID == entity.UnknownOrderID {
				require.True(t, result.Amount.IsZero())
			} else {
				expectedAmount := tc.values.Get("Amount")
				require.Equal(t, expectedAmount, result.Amount.StringFixed(2))
			}
		})
	}
}

func TestCallbackService_Handle_NotifiesOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := mock_notify.NewMockNotifier(ctrl)
	notifier.EXPECT().
		PaymentApproved(gomock.Any(), gomock.Any()).
		Return(nil)

	svc := service.NewCallbackService(notifier, logger.NewNop(), metric.NewNopFactory().Callback())

	result := svc.Handle(context.Background(), callbackValues(map[string]string{
		"CCode":  "0",
		"ACode":  "1",
		"Order":  "X1",
		"Amount": "100.00",
	}))

	require.True(t, result.Succeeded())
}

func TestCallbackService_Handle_NoNotifyOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Notifier gets no expectations: any call fails the test.
	svc := service.NewCallbackService(
		mock_notify.NewMockNotifier(ctrl),
		logger.NewNop(),
		metric.NewNopFactory().Callback(),
	)

	result := svc.Handle(context.Background(), callbackValues(map[string]string{
		"CCode":  "902",
		"Order":  "X1",
		"Amount": "100.00",
	}))

	require.Equal(t, entity.StatusFailure, result.Status)
	require.Contains(t, result.Error, "902")
}

func TestCallbackService_Handle_NotifierFailureDoesNotPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := mock_notify.NewMockNotifier(ctrl)
	notifier.EXPECT().
		PaymentApproved(gomock.Any(), gomock.Any()).
		Return(errors.New("aggregator down"))

	svc := service.NewCallbackService(notifier, logger.NewNop(), metric.NewNopFactory().Callback())

	result := svc.Handle(context.Background(), callbackValues(map[string]string{
		"CCode":  "0",
		"Order":  "X1",
		"Amount": "100.00",
	}))

	// The callback is still acknowledged as a success redirect.
	require.True(t, result.Succeeded())
}
