package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FormVersion is the schema version advertised with every relayed
// submission. Bump it when the relayed payload shape changes.
const FormVersion = 2

const (
	headerFormVersion    = "X-Form-Version"
	headerIdempotencyKey = "X-Idempotency-Key"
	headerSignature      = "X-Signature"

	defaultTimeout = 5 * time.Second
)

// RelayError reports a failed relay attempt. Every relay failure is
// retryable: the idempotency key lets the workflow system deduplicate a
// caller's retry.
type RelayError struct {
	Status int
	Err    error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("workflow relay failed: %v", e.Err)
	}
	return fmt.Sprintf("workflow relay failed: upstream status %d", e.Status)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Retryable always holds for relay failures.
func (e *RelayError) Retryable() bool {
	return true
}

// Receipt describes a successfully relayed submission.
type Receipt struct {
	IdempotencyKey string
	UpstreamStatus int
}

// Client relays intake submissions to the external workflow system.
type Client interface {
	Relay(ctx context.Context, payload any, idempotencyKey string) (*Receipt, error)
}

// HTTPClient implements Client against the configured webhook endpoint.
type HTTPClient struct {
	endpoint   *url.URL
	secret     []byte
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient validates the webhook URL and applies the relay timeout.
func NewHTTPClient(endpoint, secret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		endpoint: parsed,
		secret:   []byte(secret),
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Relay serializes payload once, signs those exact bytes, and POSTs them with
// version, idempotency, and signature headers. An empty idempotencyKey gets a
// generated identifier, returned in the receipt.
func (c *HTTPClient) Relay(ctx context.Context, payload any, idempotencyKey string) (*Receipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerFormVersion, strconv.Itoa(FormVersion))
	req.Header.Set(headerIdempotencyKey, idempotencyKey)
	req.Header.Set(headerSignature, Sign(body, c.secret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RelayError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("workflow relay rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		return nil, &RelayError{Status: resp.StatusCode}
	}

	return &Receipt{IdempotencyKey: idempotencyKey, UpstreamStatus: resp.StatusCode}, nil
}
