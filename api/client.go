package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/postpilot/postpilot/logger"
	"github.com/postpilot/postpilot/utils"
	"golang.org/x/time/rate"
)

// DefaultTimeout is deliberately long: visual generation keeps a request open
// while the backend renders media. The cost is slower failure detection for
// ordinary calls.
const DefaultTimeout = 2 * time.Minute

var log = logger.New("api")

type (
	// TokenStore provides the bearer token for outgoing requests and evicts
	// it when the backend answers 401.
	TokenStore interface {
		Token() string
		ClearToken() error
	}

	// KeyProvider provides the Gemini API key, already decoded from its
	// stored representation.
	KeyProvider interface {
		GeminiKey() string
	}

	Client struct {
		baseURL string
		http    *http.Client
	}

	Options struct {
		// BaseURL overrides ResolveBaseURL.
		BaseURL string
		Timeout time.Duration
		// RateLimit caps outgoing requests per second. Zero means unlimited.
		RateLimit float64
	}
)

// ResolveBaseURL picks the API base: explicit env override first, then an
// empty base in development mode (same-origin relative paths behind a local
// reverse proxy), then the fixed /api prefix. All three tiers are load-bearing
// in their respective deployment modes.
func ResolveBaseURL() string {
	if override := os.Getenv("API_BASE_URL"); override != "" {
		return strings.TrimSuffix(override, "/")
	}

	if _, dev := os.LookupEnv("DEV"); dev {
		return ""
	}

	return "/api"
}

func NewClient(auth TokenStore, keys KeyProvider, options *Options) *Client {
	baseURL := ResolveBaseURL()
	timeout := DefaultTimeout
	var limiter *rate.Limiter

	if options != nil {
		if options.BaseURL != "" {
			baseURL = strings.TrimSuffix(options.BaseURL, "/")
		}
		if options.Timeout > 0 {
			timeout = options.Timeout
		}
		if options.RateLimit > 0 {
			limiter = rate.NewLimiter(rate.Limit(options.RateLimit), 1)
		}
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &transport{
				next:    createTransport(),
				auth:    auth,
				keys:    keys,
				timings: newTimingRegistry(),
				limiter: limiter,
			},
		},
	}
}

func createTransport() http.RoundTripper {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.TLSHandshakeTimeout = 7 * time.Second
	tr.MaxIdleConnsPerHost = 20
	tr.IdleConnTimeout = 5 * time.Minute
	return tr
}

// transport implements the request/response interceptors: correlation id and
// timing, auth header injection, structured logging, and status-triggered
// side effects. Failures are always passed through unchanged.
type transport struct {
	next    http.RoundTripper
	auth    TokenStore
	keys    KeyProvider
	timings *timingRegistry
	limiter *rate.Limiter
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	req = req.Clone(req.Context())

	id := fmt.Sprintf("%s_%s_%d", req.Method, req.URL.Path, time.Now().UnixMilli())
	t.timings.start(id)
	req.Header.Set("X-Request-ID", id)

	if t.auth != nil {
		if token := t.auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if t.keys != nil {
		if key := t.keys.GeminiKey(); key != "" {
			req.Header.Set("X-Gemini-Key", key)
		}
	}

	resp, err := t.next.RoundTrip(req)
	duration, timed := t.timings.finish(id)

	if err != nil {
		event := log.Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Str("request_id", id)
		if timed {
			event = event.Dur("duration", duration)
		}

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			event.Msg("request timed out")
		} else {
			event.Msg("request failed")
		}
		return nil, err
	}

	event := log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", id).
		Int("status", resp.StatusCode)
	if timed {
		event = event.Dur("duration", duration)
	}
	event.Send()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if t.auth != nil {
			if clearErr := t.auth.ClearToken(); clearErr != nil {
				log.Err(clearErr).Msg("failed to clear auth token")
			}
		}
		log.Warn().
			Str("url", req.URL.String()).
			Msg("unauthorized, cleared stored auth token")
	case http.StatusTooManyRequests:
		log.Warn().
			Str("url", req.URL.String()).
			Str("retry_after", resp.Header.Get("Retry-After")).
			Msg("rate limited, caller should back off")
	}

	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, input, result any) error {
	var body io.Reader
	contentType := ""

	if input != nil {
		jsonData, err := json.Marshal(input)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
		contentType = "application/json"
	}

	resp, raw, err := c.dispatch(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}

	return unwrapEnvelope(resp, raw, result)
}

// doRaw dispatches like doJSON but expects a bare, non-enveloped response
// payload. An empty payload is the only local failure condition.
func (c *Client) doRaw(ctx context.Context, method, path string, input, result any) error {
	var body io.Reader
	contentType := ""

	if input != nil {
		jsonData, err := json.Marshal(input)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
		contentType = "application/json"
	}

	resp, raw, err := c.dispatch(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpError(resp)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &ApiError{Message: "empty analysis response"}
	}

	return json.Unmarshal(raw, result)
}

func (c *Client) doMultipart(ctx context.Context, path string, params []MultiPartParam, files []MultiPartFile, result any) error {
	body, contentType, err := multiPartForm(params, files)
	if err != nil {
		return err
	}

	resp, raw, err := c.dispatch(ctx, http.MethodPost, path, body, contentType)
	if err != nil {
		return err
	}

	return unwrapEnvelope(resp, raw, result)
}

func (c *Client) dispatch(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp, raw, nil
}

// unwrapEnvelope enforces the response envelope contract: success=false or
// absent data is failure regardless of HTTP status, with the failure message
// taken from the envelope's error field, then its message field, then the raw
// transport status.
func unwrapEnvelope(resp *http.Response, raw []byte, result any) error {
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil {
			if message := env.failureMessage(); message != "" {
				return &ApiError{Message: message}
			}
		}
		return httpError(resp)
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response envelope: %w", decodeErr)
	}

	if !env.Success {
		message := env.failureMessage()
		if message == "" {
			message = fmt.Sprintf("request failed: %s", resp.Status)
		}
		return &ApiError{Message: message}
	}

	if result == nil {
		return nil
	}

	if len(env.Data) == 0 {
		message := env.failureMessage()
		if message == "" {
			message = fmt.Sprintf("request failed: %s", resp.Status)
		}
		return &ApiError{Message: message}
	}

	return json.Unmarshal(env.Data, result)
}

func httpError(resp *http.Response) error {
	return &utils.HttpError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		RetryAfter: resp.Header.Get("Retry-After"),
	}
}
