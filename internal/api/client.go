package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/protomem/hr-console/internal/ctxstore"
)

const (
	_defaultTimeout = 15 * time.Second

	// _fallbackMessage is shown whenever the service did not supply one.
	_fallbackMessage = "Something went wrong. Please try again."
)

// TraceIDKey carries a per-action trace id through the context; every
// request issued under it is logged and sent with the same X-Request-Id.
const TraceIDKey = ctxstore.Key("traceId")

// TokenSource returns the current bearer token, or "" when signed out. It is
// consulted at call time so a login or logout takes effect immediately.
type TokenSource func() string

// Client talks to the HRM service. Protected endpoints carry an
// Authorization: Bearer header sourced from the session store; the two auth
// endpoints omit it.
type Client struct {
	Logger *slog.Logger

	baseURL string
	httpc   *http.Client
	token   TokenSource
}

func New(logger *slog.Logger, baseURL string, timeout time.Duration, token TokenSource) *Client {
	if timeout <= 0 {
		timeout = _defaultTimeout
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		Logger:  logger.With("module", "api"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		token:   token,
	}
}

// Error is a response the service answered with a failure status. The
// Message is the human-readable text the service attached, already
// defaulted when it sent none.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("hrm: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the service. Callers must
// tear the session down and return to the login screen when it is.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Message extracts the user-facing text for any error produced by this
// package, falling back to a generic notice for transport failures.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return _fallbackMessage
}

type messageResponse struct {
	Message string `json:"message"`
}

// doJSON issues a JSON request and decodes the 2xx response into out (when
// non-nil). It returns the service-supplied message, if any.
func (c *Client) doJSON(ctx context.Context, method, path string, auth bool, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("hrm: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	data, err := c.do(ctx, method, path, "application/json", reader, auth)
	if err != nil {
		return "", err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return "", fmt.Errorf("hrm: decode response: %w", err)
		}
	}

	return messageFrom(data), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, auth bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("hrm: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	if auth {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	tid := traceIDFromContext(ctx)
	req.Header.Set("X-Request-Id", tid)

	logger := c.Logger.With("method", method, "path", path, TraceIDKey.String(), tid)
	logger.Debug("request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Warn("transport failure", "error", err)
		return nil, fmt.Errorf("hrm: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response", "error", err)
		return nil, fmt.Errorf("hrm: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: messageFrom(data)}
		if apiErr.Message == "" {
			apiErr.Message = _fallbackMessage
		}

		logger.Warn("request failed", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	logger.Debug("request done", "status", resp.StatusCode, "size", len(data))

	return data, nil
}

func messageFrom(data []byte) string {
	var body messageResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}

func traceIDFromContext(ctx context.Context) string {
	if tid, ok := ctxstore.From[string](ctx, TraceIDKey); ok {
		return tid
	}
	return genTraceID()
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
