// sbpay-sim imitates the merchant aggregator: it builds payment
// requests, signs them with the shared secret and POSTs them to a
// running bridge. Useful for poking a test deployment without SBPay.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paybridge/internal/signature"

	"github.com/brianvoe/gofakeit/v7"
)

func main() {
	bridgeURL := flag.String("url", "http://localhost:8080/api/payment", "Payment endpoint of the bridge")
	amount := flag.String("amount", "", "Fixed amount to send (random when empty)")
	numRequests := flag.Int("count", 1, "Number of requests to send")
	interval := flag.Duration("interval", 1*time.Second, "Interval between requests")

	flag.Parse()

	secret := os.Getenv("SBPAY_SECRET")
	if secret == "" {
		log.Fatal("SBPAY_SECRET must be set")
	}
	signer := signature.NewSigner([]byte(secret))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{Timeout: 15 * time.Second}

	log.Printf("Sending %d signed request(s) to %s every %v\n", *numRequests, *bridgeURL, *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for sent := 0; sent < *numRequests; sent++ {
		if sent > 0 {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				log.Println("Interrupted. Exiting.")
				return
			}
		}

		if err := sendRequest(ctx, httpClient, signer, *bridgeURL, *amount); err != nil {
			log.Printf("Request failed: %v\n", err)
		}
	}

	log.Printf("Sent all %d request(s). Exiting.\n", *numRequests)
}

func sendRequest(
	ctx context.Context,
	httpClient *http.Client,
	signer *signature.Signer,
	bridgeURL string,
	fixedAmount string,
) error {
	amount := fixedAmount
	if amount == "" {
		amount = fmt.Sprintf("%.2f", gofakeit.Price(10, 1000))
	}

	payload := map[string]any{
		"transaction_id": fmt.Sprintf("SBPAY_%d", time.Now().UnixNano()),
		"amount":         json.Number(amount),
		"currency":       "ILS",
		"customer": map[string]any{
			"name":  gofakeit.Name(),
			"email": gofakeit.Email(),
			"phone": gofakeit.Phone(),
		},
		"metadata": map[string]any{
			"order_reference": gofakeit.LetterN(8),
		},
	}

	sig, err := signer.Sign(payload)
	if err != nil {
		return fmt.Errorf("sign payload: %w", err)
	}
	payload["signature"] = sig

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bridgeURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-SBPay-Signature", sig)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("%s -> %d: %s\n", payload["transaction_id"], resp.StatusCode, respBody)
	return nil
}
