// Package backend is the HTTP/JSON client for the scheduling backend that
// owns appointments, professionals, services and users. Every call carries
// the caller's bearer token explicitly; the client itself holds no session.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/wellness-portal/internal/observability/metrics"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

const (
	defaultBaseURL = "http://localhost:8088"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 300
)

var backendTracer = otel.Tracer("portal.internal.backend")

// Config configures a Client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Location *time.Location
	Metrics  *metrics.PortalMetrics
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client wraps REST calls to the scheduling backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	loc        *time.Location
	metrics    *metrics.PortalMetrics
	logger     *logging.Logger
}

// NewClient constructs a backend client.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loc:        cfg.Location,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

// Location is the zone used to interpret the backend's zone-less timestamps.
func (c *Client) Location() *time.Location {
	return c.loc
}

type call struct {
	op     string
	token  string
	method string
	path   string
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	ctx, span := backendTracer.Start(ctx, "backend."+cl.op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("portal.operation", cl.op),
		attribute.String("http.method", cl.method),
	)

	start := time.Now()
	defer func() {
		c.metrics.ObserveBackend(cl.op, Outcome(err), time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, Outcome(err))
		}
	}()

	var bodyReader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", cl.op, ctxErr)
		}
		return fmt.Errorf("%s: %w: %v", cl.op, ErrUnavailable, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", cl.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(cl.op, resp.StatusCode, respBody)
		c.logger.Warn("backend non-2xx response",
			"operation", cl.op,
			"status", resp.StatusCode,
			"path", cl.path,
			"body", truncate(string(respBody), maxErrorBody),
		)
		return apiErr
	}

	if len(bytes.TrimSpace(respBody)) == 0 || cl.out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, cl.out); err != nil {
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}
	return nil
}

func decodeAPIError(op string, status int, body []byte) *APIError {
	apiErr := &APIError{Operation: op, StatusCode: status}
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Message = firstNonBlank(parsed.Message, parsed.Error)
		apiErr.FieldErrors = parsed.Errors
		return apiErr
	}
	// Some endpoints answer with a bare text body ("Credenciales inválidas").
	apiErr.Message = truncate(strings.TrimSpace(string(body)), maxErrorBody)
	return apiErr
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// IsAuthError reports whether err should end the local session.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
