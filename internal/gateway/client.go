// Package gateway talks to the bank-hosted payment page ("Yaad"). It
// translates a validated payment request into the gateway's query-string
// schema and produces the URL the customer's browser is sent to.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paybridge/internal/config"
	"paybridge/internal/entity"
	"paybridge/pkg/cache"
	"paybridge/pkg/logger"
	"paybridge/pkg/metric"
)

// Yaad numeric currency codes, keyed by ISO 4217.
var currencyCodes = map[string]string{
	"ILS": "1",
	"USD": "2",
	"EUR": "3",
	"GBP": "4",
}

type Client interface {
	PaymentURL(ctx context.Context, req *entity.PaymentRequest) (string, error)
}

// YaadClient implements Client with one of two mutually exclusive
// strategies fixed at startup:
//
//   - direct: the redirect URL is assembled locally, no network call;
//   - signed: the gateway's APISign endpoint is asked to sign the
//     parameter set and returns an opaque query fragment that becomes
//     part of the redirect URL verbatim.
//
// The signing call is never retried: without an idempotency token a
// retry risks a duplicate charge.
type YaadClient struct {
	creds      config.GatewayCredentials
	strategy   string
	httpClient *http.Client
	urlCache   cache.Cache[string, string]
	cacheTTL   time.Duration
	log        logger.Logger
	metrics    metric.Gateway
}

// NewYaadClient builds a gateway client. urlCache may be nil; when set,
// signed URLs are reused for identical payloads (keyed by the request's
// aggregator signature) so a duplicate submission skips the sign call.
func NewYaadClient(
	cfg *config.Gateway,
	creds config.GatewayCredentials,
	urlCache cache.Cache[string, string],
	log logger.Logger,
	metrics metric.Gateway,
) *YaadClient {
	return &YaadClient{
		creds:    creds,
		strategy: cfg.Strategy,
		httpClient: &http.Client{
			Timeout: cfg.SignTimeout,
		},
		urlCache: urlCache,
		cacheTTL: cfg.URLCacheTTL,
		log:      log,
		metrics:  metrics,
	}
}

func (c *YaadClient) PaymentURL(ctx context.Context, req *entity.PaymentRequest) (string, error) {
	if c.strategy == config.StrategySigned {
		return c.signedPaymentURL(ctx, req)
	}
	return c.directPaymentURL(req), nil
}

// directPaymentURL builds the hosted-page URL locally.
func (c *YaadClient) directPaymentURL(req *entity.PaymentRequest) string {
	params := c.baseParams(req)
	params.Set("action", "pay")
	return c.pageURL(params.Encode())
}

// signedPaymentURL asks the gateway to sign the parameter set and splices
// the returned fragment into the hosted-page URL.
func (c *YaadClient) signedPaymentURL(ctx context.Context, req *entity.PaymentRequest) (string, error) {
	const op = "gateway.signedPaymentURL"

	if c.urlCache != nil && req.Signature != "" {
		if cached, ok := c.urlCache.Get(req.Signature); ok {
			return cached, nil
		}
	}

	params := c.baseParams(req)
	params.Set("action", "APISign")
	params.Set("What", "SIGN")
	params.Set("tmp", "7")

	signURL := c.pageURL(params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, signURL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: build sign request: %w", op, entity.ErrGatewayUnavailable)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.SignCallFailed(c.strategy, "network")
		c.log.Errorw("gateway signing call failed",
			"order", req.TransactionID,
			"error", err,
		)
		return "", fmt.Errorf("%s: sign call: %w", op, entity.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	c.metrics.ObserveSignCall(c.strategy, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.SignCallFailed(c.strategy, "status")
		c.log.Errorw("gateway signing endpoint rejected request",
			"order", req.TransactionID,
			"status", resp.StatusCode,
		)
		return "", fmt.Errorf("%s: sign endpoint returned %d: %w",
			op, resp.StatusCode, entity.ErrGatewayUnavailable)
	}

	fragment, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.SignCallFailed(c.strategy, "body")
		return "", fmt.Errorf("%s: read signed fragment: %w", op, entity.ErrGatewayUnavailable)
	}

	signed := strings.TrimSpace(string(fragment))
	if signed == "" {
		c.metrics.SignCallFailed(c.strategy, "empty")
		return "", fmt.Errorf("%s: empty signed fragment: %w", op, entity.ErrGatewayUnavailable)
	}

	paymentURL := c.pageURL("action=pay&" + signed)

	if c.urlCache != nil && req.Signature != "" {
		c.urlCache.Put(req.Signature, paymentURL, c.cacheTTL)
	}

	return paymentURL, nil
}

// baseParams maps the validated request plus injected credentials onto
// the gateway schema. Credentials only ever travel towards the gateway.
func (c *YaadClient) baseParams(req *entity.PaymentRequest) url.Values {
	params := url.Values{}
	params.Set("KEY", c.creds.Key)
	params.Set("PassP", c.creds.Passphrase)
	params.Set("Masof", c.creds.Terminal)
	params.Set("Order", req.TransactionID)
	params.Set("Amount", req.Amount.StringFixed(2))
	params.Set("ClientName", req.Customer.Name)
	params.Set("Currency", CurrencyCode(req.Currency))
	return params
}

func (c *YaadClient) pageURL(query string) string {
	return strings.TrimSuffix(c.creds.BaseURL, "/") + "/p/?" + query
}

// CurrencyCode maps an ISO 4217 code onto the gateway's numeric scheme.
// Unknown codes fall back to ILS; validation upstream keeps them out.
func CurrencyCode(iso string) string {
	if code, ok := currencyCodes[iso]; ok {
		return code
	}
	return currencyCodes[entity.DefaultCurrency]
}
