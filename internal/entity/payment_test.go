package entity_test

import (
	"testing"

	"paybridge/internal/entity"

	"github.com/stretchr/testify/require"
)

func violatedFields(verr *entity.ValidationError) []string {
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestParsePaymentRequest(t *testing.T) {
	testCases := []struct {
		desc       string
		raw        string
		wantFields []string
		check      func(t *testing.T, req *entity.PaymentRequest)
	}{
		{
			desc: "string amount coerced, currency defaulted",
			raw:  `{"transaction_id":"T1","amount":"50.5","customer":{"name":"A"},"signature":"ab"}`,
			check: func(t *testing.T, req *entity.PaymentRequest) {
				require.Equal(t, "50.5", req.Amount.String())
				require.Equal(t, entity.DefaultCurrency, req.Currency)
			},
		},
		{
			desc: "numeric amount accepted",
			raw:  `{"transaction_id":"T2","amount":99.99,"currency":"USD","customer":{"name":"B","email":"b@example.com"},"signature":"ab"}`,
			check: func(t *testing.T, req *entity.PaymentRequest) {
				require.Equal(t, "99.99", req.Amount.String())
				require.Equal(t, "USD", req.Currency)
			},
		},
		{
			desc: "metadata passed through opaquely",
			raw:  `{"transaction_id":"T3","amount":"1","customer":{"name":"C"},"metadata":{"ref":"R1","nested":{"k":1}},"signature":"ab"}`,
			check: func(t *testing.T, req *entity.PaymentRequest) {
				require.Equal(t, "R1", req.Metadata["ref"])
			},
		},
		{
			desc:       "empty id, negative amount, empty name",
			raw:        `{"transaction_id":"","amount":-1,"customer":{"name":""},"signature":"ab"}`,
			wantFields: []string{"transaction_id", "customer.name", "amount"},
		},
		{
			desc:       "zero amount rejected",
			raw:        `{"transaction_id":"T4","amount":0,"customer":{"name":"D"},"signature":"ab"}`,
			wantFields: []string{"amount"},
		},
		{
			desc:       "non-numeric amount string",
			raw:        `{"transaction_id":"T5","amount":"abc","customer":{"name":"E"},"signature":"ab"}`,
			wantFields: []string{"amount"},
		},
		{
			desc:       "missing amount",
			raw:        `{"transaction_id":"T6","customer":{"name":"F"},"signature":"ab"}`,
			wantFields: []string{"amount"},
		},
		{
			desc:       "invalid email",
			raw:        `{"transaction_id":"T7","amount":"10","customer":{"name":"G","email":"not-an-email"},"signature":"ab"}`,
			wantFields: []string{"customer.email"},
		},
		{
			desc:       "invalid success url",
			raw:        `{"transaction_id":"T8","amount":"10","customer":{"name":"H"},"success_url":"::broken","signature":"ab"}`,
			wantFields: []string{"success_url"},
		},
		{
			desc:       "unsupported currency",
			raw:        `{"transaction_id":"T9","amount":"10","currency":"JPY","customer":{"name":"I"},"signature":"ab"}`,
			wantFields: []string{"currency"},
		},
		{
			desc:       "missing signature field",
			raw:        `{"transaction_id":"T10","amount":"10","customer":{"name":"J"}}`,
			wantFields: []string{"signature"},
		},
		{
			desc:       "malformed JSON",
			raw:        `{"transaction_id":`,
			wantFields: []string{"body"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			req, err := entity.ParsePaymentRequest([]byte(tc.raw))

			if len(tc.wantFields) > 0 {
				var verr *entity.ValidationError
				require.ErrorAs(t, err, &verr)
				require.ElementsMatch(t, tc.wantFields, violatedFields(verr))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, req)
			if tc.check != nil {
				tc.check(t, req)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	verr := &entity.ValidationError{}
	verr.Add("amount", "must be a positive decimal")
	verr.Add("customer.name", "is required and must be non-empty")

	msg := verr.Error()
	require.Contains(t, msg, "amount: must be a positive decimal")
	require.Contains(t, msg, "customer.name: is required and must be non-empty")
}
