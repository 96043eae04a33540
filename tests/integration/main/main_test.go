package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"paybridge/internal/config"
	"paybridge/internal/gateway"
	"paybridge/internal/notify"
	"paybridge/internal/service"
	"paybridge/internal/signature"
	httpt "paybridge/internal/transport/http"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const sharedSecret = "integration-secret"

// IntegrationTestSuite wires the complete bridge in-process against a
// fake gateway and a fake aggregator, with the real signing, parsing and
// translation code in between.
type IntegrationTestSuite struct {
	suite.Suite

	fakeGateway    *httptest.Server
	fakeAggregator *httptest.Server
	bridge         *httptest.Server

	approvals int
	signer    *signature.Signer
}

func (s *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	s.signer = signature.NewSigner([]byte(sharedSecret))

	s.fakeGateway = httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			fmt.Fprintf(w, "Masof=%s&Order=%s&Sign=fakesignature",
				query.Get("Masof"), query.Get("Order"))
		}),
	)

	s.fakeAggregator = httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.approvals++
			w.WriteHeader(http.StatusOK)
		}),
	)

	log := logger.NewNop()
	metrics := metric.NewNopFactory()

	gatewayCfg := &config.Gateway{
		Strategy:    config.StrategySigned,
		SignTimeout: 5 * time.Second,
	}
	creds := config.GatewayCredentials{
		Key:        "itest-key",
		Passphrase: "itest-passp",
		Terminal:   "0010000001",
		BaseURL:    s.fakeGateway.URL,
	}

	paymentService := service.NewPaymentService(
		s.signer,
		gateway.NewYaadClient(gatewayCfg, creds, nil, log, metrics.Gateway()),
		log,
	)
	callbackService := service.NewCallbackService(
		notify.NewHTTPNotifier(s.fakeAggregator.URL, s.signer, log),
		log,
		metrics.Callback(),
	)

	handler := httpt.NewBridgeHandler(
		paymentService,
		callbackService,
		s.signer,
		config.Bridge{
			Mode:         config.ModeTest,
			SuccessPath:  "/success",
			FailurePath:  "/failure",
			MaxBodyBytes: 16384,
		},
		log,
		metrics.HTTP(),
	)

	s.bridge = httptest.NewServer(handler.Engine())
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.bridge.Close()
	s.fakeAggregator.Close()
	s.fakeGateway.Close()
}

func (s *IntegrationTestSuite) signedRequest() ([]byte, string) {
	payload := map[string]any{
		"transaction_id": gofakeit.UUID(),
		"amount":         json.Number("149.90"),
		"currency":       "ILS",
		"customer": map[string]any{
			"name":  gofakeit.Name(),
			"email": gofakeit.Email(),
		},
	}

	sig, err := s.signer.Sign(payload)
	s.Require().NoError(err)
	payload["signature"] = sig

	body, err := json.Marshal(payload)
	s.Require().NoError(err)
	return body, sig
}

func (s *IntegrationTestSuite) TestPaymentInitiation_SignedFetch() {
	body, sig := s.signedRequest()

	req, err := http.NewRequest(http.MethodPost, s.bridge.URL+"/api/payment", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-SBPay-Signature", sig)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	var initiation struct {
		Status     string `json:"status"`
		PaymentURL string `json:"payment_url"`
	}
	s.Require().NoError(json.Unmarshal(respBody, &initiation))
	s.Require().Equal("success", initiation.Status)
	s.Require().Contains(initiation.PaymentURL, s.fakeGateway.URL+"/p/?action=pay&")
	s.Require().Contains(initiation.PaymentURL, "Sign=fakesignature")
}

func (s *IntegrationTestSuite) TestPaymentInitiation_RejectsTamperedBody() {
	body, sig := s.signedRequest()
	tampered := bytes.Replace(body, []byte("149.90"), []byte("999.99"), 1)

	req, err := http.NewRequest(http.MethodPost, s.bridge.URL+"/api/payment", bytes.NewReader(tampered))
	s.Require().NoError(err)
	req.Header.Set("X-SBPay-Signature", sig)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCallback_SuccessNotifiesAggregator() {
	approvalsBefore := s.approvals

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	values := url.Values{}
	values.Set("CCode", "0")
	values.Set("ACode", "112233")
	values.Set("Order", "ITEST-1")
	values.Set("Amount", "149.90")

	resp, err := client.Post(s.bridge.URL+"/api/callback?"+values.Encode(), "", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusFound, resp.StatusCode)
	s.Require().Equal("/success", resp.Header.Get("Location"))
	s.Require().Equal(approvalsBefore+1, s.approvals)
}

func (s *IntegrationTestSuite) TestCallback_FailureRedirectsWithReason() {
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	values := url.Values{}
	values.Set("CCode", "6")
	values.Set("Order", "ITEST-2")
	values.Set("Amount", "10.00")

	resp, err := client.Post(s.bridge.URL+"/api/callback?"+values.Encode(), "", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	s.Require().Equal("/failure", location.Path)
	s.Require().Contains(location.Query().Get("error"), "6")
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
