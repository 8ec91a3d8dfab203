package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrUnavailable indicates the acquiring bank could not produce a verdict:
// the connection failed, the call timed out, or the remote answered with a
// non-2xx status. It is distinct from an authorized=false verdict, which is a
// legitimate business decline.
var ErrUnavailable = errors.New("bank unavailable")

// Request is the wire shape the acquiring bank accepts. It carries the full
// card number and CVV and must not outlive the single authorization call.
type Request struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

// Response is the bank's authorization verdict.
type Response struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}

// Client authorizes card payments against the acquiring bank. Tests supply a
// stub implementation.
type Client interface {
	Authorize(ctx context.Context, req Request) (Response, error)
}

// HTTPClient talks to the bank over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a bank client for the given base URL. The timeout
// bounds both connection establishment and the full round trip; zero selects
// the 10s default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: timeout}).DialContext,
			},
		},
	}
}

// Authorize posts the payment to the bank and returns its verdict. Any
// transport failure or non-2xx status is reported as ErrUnavailable.
func (c *HTTPClient) Authorize(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode bank request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("build bank request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Response{}, fmt.Errorf("%w: bank returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var verdict Response
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return Response{}, fmt.Errorf("%w: decode bank response: %v", ErrUnavailable, err)
	}

	return verdict, nil
}
