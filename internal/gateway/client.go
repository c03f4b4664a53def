// Package gateway is the single outbound channel for tracker API calls.
package gateway

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/custrack-go/internal/credstore"
	"github.com/yndnr/custrack-go/internal/infra/buildinfo"
	"github.com/yndnr/custrack-go/internal/telemetry/logger"
)

// DefaultTimeout is the fixed per-request deadline.
const DefaultTimeout = 10 * time.Second

// Recorder receives per-request metrics. Implemented by
// telemetry/metric; nil disables recording.
type Recorder interface {
	RecordRequest(method string, status int, duration time.Duration)
}

// Client is the HTTP gateway. All tracker API traffic goes through it.
type Client struct {
	baseURL  string
	http     *http.Client
	creds    credstore.Store
	limiter  *rate.Limiter
	metrics  Recorder
	clientID string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the fixed request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit throttles outbound requests.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics attaches a request metrics recorder.
func WithMetrics(r Recorder) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// WithClientID sets the persistent client-instance identifier sent on
// every request.
func WithClientID(id string) Option {
	return func(c *Client) {
		c.clientID = id
	}
}

// New creates a gateway client for the given server address. The
// credential store supplies the bearer token on each request and is
// cleared when the server rejects it.
func New(server string, creds credstore.Store, opts ...Option) *Client {
	baseURL := strings.TrimSuffix(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		http: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do runs one request through the outbound and inbound stages.
// Every returned error is an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return configError(err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return configError(err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return configError(err)
	}

	reqID := newRequestID()
	c.addHeaders(req, reqID, body != nil)

	log := logger.L(logger.WithRequestID(ctx, reqID))
	log.Debug("api request", "method", method, "path", path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.record(method, 0, time.Since(start))
		log.Debug("api transport failure", "method", method, "path", path, "error", err.Error())
		return networkError(err)
	}
	defer resp.Body.Close()

	c.record(method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		return c.normalizeFailure(resp, log)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Message: MsgBadPayload, Status: resp.StatusCode, Cause: err}
		}
	}

	return nil
}

// normalizeFailure applies the inbound error-mapping table.
// 401 clears the persisted credential; navigation is not triggered
// here, the route guard observes the cleared session on its next check.
func (c *Client) normalizeFailure(resp *http.Response, log logger.Logger) error {
	var eb errorBody
	// Ignore body parse failures; some statuses carry no body at all.
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	apiErr := normalizeStatus(resp.StatusCode, eb.Message, eb.Code)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.creds.Clear(); err != nil {
			log.Warn("failed to clear stored credential", "error", err.Error())
		}
	}

	log.Debug("api failure", "status", resp.StatusCode, "msg", apiErr.Message)
	return apiErr
}

// addHeaders adds authentication and common headers.
func (c *Client) addHeaders(req *http.Request, reqID string, hasBody bool) {
	if token, err := c.creds.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

func (c *Client) record(method string, status int, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordRequest(method, status, d)
	}
}

// newRequestID generates a ULID request identifier.
func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
