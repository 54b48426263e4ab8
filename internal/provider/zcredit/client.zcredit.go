// internal/provider/zcredit/client.go
package zcredit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
)

// Client is the live gateway: one HTTPS POST per Send, bounded by a fixed
// timeout. It never retries; it only reports what happened on the wire.
type Client struct {
	endpointURL string
	timeout     time.Duration
	httpClient  *http.Client
}

func NewClient(endpointURL string, timeout time.Duration) *Client {
	return &Client{
		endpointURL: endpointURL,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string {
	return "zcredit"
}

func (c *Client) Send(ctx context.Context, payload domain.GatewayPayload) domain.GatewayOutcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.GatewayOutcome{Kind: domain.OutcomeTransport, Detail: "failed to encode request payload: " + err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewBuffer(body))
	if err != nil {
		return domain.GatewayOutcome{Kind: domain.OutcomeTransport, Detail: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GatewayOutcome{Kind: domain.OutcomeTransport, Detail: "failed to read response body: " + err.Error()}
	}

	return domain.GatewayOutcome{
		Kind:       domain.OutcomeHTTP,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}
}

// classifyTransportError separates the three transport failure modes the
// interpreter cares about: timeout (outcome unknown at the processor),
// caller cancellation, and connection-level failure.
func classifyTransportError(ctx context.Context, err error) domain.GatewayOutcome {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.GatewayOutcome{Kind: domain.OutcomeTimeout, Detail: "server did not respond in time"}
	case errors.Is(err, context.Canceled), ctx.Err() == context.Canceled:
		return domain.GatewayOutcome{Kind: domain.OutcomeCanceled, Detail: "request canceled before the processor responded"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.GatewayOutcome{Kind: domain.OutcomeTimeout, Detail: "server did not respond in time"}
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return domain.GatewayOutcome{Kind: domain.OutcomeConnection, Detail: "cannot reach processor endpoint: " + err.Error()}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.GatewayOutcome{Kind: domain.OutcomeConnection, Detail: "cannot resolve processor endpoint: " + err.Error()}
	}

	return domain.GatewayOutcome{Kind: domain.OutcomeTransport, Detail: err.Error()}
}
