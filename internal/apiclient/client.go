// Package apiclient is the shared transport for every AgroAide backend call.
//
// Client.Do adds JSON encoding, bearer auth, a per-call timeout and turns
// every failure into an *Error with a Kind callers can switch on. It holds
// no per-call state and is safe for concurrent use. It never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	// DefaultTimeout bounds each request, including reading the response.
	DefaultTimeout = 15 * time.Second

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-ID"

	maxErrorBodySize    = 1 << 20 // 1MB
	maxResponseBodySize = 8 << 20 // 8MB

	loopbackHint = "Cannot reach backend API. If the backend runs on another machine, set AGROAIDE_API_URL to " +
		"that machine's LAN IP (e.g. http://192.168.x.x:8000/api). From an Android emulator use http://10.0.2.2:8000/api."
	remoteHint = "Cannot reach backend API. Confirm backend server is running and your API URL is correct."

	unexpectedResponseMessage = "Unexpected response from server."
)

var (
	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = errors.New("apiclient: base URL is required")
	// ErrUnsupportedMethod is returned for methods other than GET/POST/PUT/PATCH/DELETE.
	ErrUnsupportedMethod = errors.New("apiclient: unsupported method")
)

// Config configures a Client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues JSON requests against the AgroAide backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	logger      *slog.Logger
	offlineHint string
}

// RequestOptions describes one call. The zero value is an unauthenticated GET.
type RequestOptions struct {
	Method string
	Body   any
	Token  string
	Query  url.Values
}

// New creates a Client. A missing or malformed base URL is an error; callers
// treat it as fatal at startup.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     strings.TrimRight(raw, "/"),
		httpClient:  httpClient,
		timeout:     timeout,
		logger:      logger,
		offlineHint: connectivityHint(u.Hostname()),
	}, nil
}

func connectivityHint(host string) string {
	switch host {
	case "127.0.0.1", "localhost":
		return loopbackHint
	default:
		return remoteHint
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func normalizeMethod(method string) (string, error) {
	if method == "" {
		return http.MethodGet, nil
	}
	switch m := strings.ToUpper(method); m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
}

// Do sends a request to baseURL+path and decodes a successful JSON response
// into out (which may be nil). Failures are returned as *Error.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions, out any) error {
	method, err := normalizeMethod(opts.Method)
	if err != nil {
		return err
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend unreachable",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return &Error{Kind: KindConnectivity, Message: c.offlineHint, StatusCode: 0, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Backend request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &Error{
			Kind:       kindForStatus(resp.StatusCode),
			Message:    errorMessage(data),
			StatusCode: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return &Error{Kind: KindConnectivity, Message: c.offlineHint, StatusCode: 0, Err: fmt.Errorf("read response body: %w", err)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:       KindGeneric,
			Message:    unexpectedResponseMessage,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// Request is Do for a typed payload.
func Request[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (*T, error) {
	var out T
	if err := c.Do(ctx, path, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// errorMessage picks the user-facing message from an error body: the first
// validation message in "errors", then "message", then a default. Keys are
// walked in document order.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return defaultErrorMessage
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return defaultErrorMessage
	}

	if errs := root.Get("errors"); errs.IsObject() || errs.IsArray() {
		if msg, ok := firstValidationMessage(errs); ok {
			return msg
		}
	}
	if msg := root.Get("message"); msg.Exists() && msg.Type != gjson.Null {
		return msg.String()
	}
	return defaultErrorMessage
}

// firstValidationMessage returns the first entry of errs flattened one level.
// Empty lists are skipped; a null first entry counts as no message.
func firstValidationMessage(errs gjson.Result) (string, bool) {
	var (
		msg   string
		found bool
	)
	errs.ForEach(func(_, v gjson.Result) bool {
		if v.IsArray() {
			items := v.Array()
			if len(items) == 0 {
				return true
			}
			v = items[0]
		}
		if v.Type != gjson.Null {
			msg, found = v.String(), true
		}
		return false
	})
	return msg, found
}
