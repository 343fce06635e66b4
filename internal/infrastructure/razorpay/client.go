package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"producer-payout.backend/pkg/logger"
)

const (
	DefaultBaseURL         = "https://api.razorpay.com"
	defaultTimeout         = 30 * time.Second
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
)

// Config configures a Client
type Config struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	Timeout    time.Duration
	MaxRetries int
	// InitialInterval is the first backoff delay; zero means 500ms.
	InitialInterval time.Duration
}

// Client talks to the provider REST API with basic auth
type Client struct {
	baseURL         string
	keyID           string
	keySecret       string
	httpClient      *http.Client
	maxRetries      int
	initialInterval time.Duration
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	interval := cfg.InitialInterval
	if interval <= 0 {
		interval = defaultInitialInterval
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &Client{
		baseURL:         baseURL,
		keyID:           cfg.KeyID,
		keySecret:       cfg.KeySecret,
		httpClient:      &http.Client{Timeout: timeout},
		maxRetries:      retries,
		initialInterval: interval,
	}
}

type retryPolicy int

const (
	// retrySafe repeats transport errors, 429 and 5xx.
	retrySafe retryPolicy = iota
	// retryUnsent repeats 429 and failures to connect. Used for calls that
	// move money or create provider state, where a lost response may hide a
	// completed write.
	retryUnsent
)

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	exp.MaxInterval = defaultMaxInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.maxRetries)), ctx)
}

// do sends one JSON request and retries it according to policy.
func (c *Client) do(ctx context.Context, policy retryPolicy, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("razorpay: encode %s %s: %w", method, path, err)
		}
	}

	var respBody []byte
	op := func() error {
		body, err := c.send(ctx, method, path, payload)
		if err != nil {
			var rzErr *Error
			if errors.As(err, &rzErr) && rzErr.retryable(policy) {
				return err
			}
			return backoff.Permanent(err)
		}
		respBody = body
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn(ctx, "Razorpay call failed, retrying",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, c.newBackOff(ctx), notify); err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Code: codeDecode, Description: err.Error()}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Code: codeTransport, Description: err.Error(), unsent: isDialError(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: codeTransport, Description: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func isDialError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
