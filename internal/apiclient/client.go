// Package apiclient talks to the listings REST API. Client implements the
// fetchers used by the catalog package.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aoideee/estate-listings/internal/data"
)

// APIError is a non-2xx response. Message holds the "error" field of the
// body when the server sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// ServerMessage returns the message the server put in the error body.
func (e *APIError) ServerMessage() string { return e.Message }

type traceIDKey struct{}

// ContextWithTraceID returns a copy of ctx carrying traceID. Requests made
// with the returned context send it as X-Trace-ID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// Client calls the listings API at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a Client. A nil logger discards log output.
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With(slog.String("component", "apiclient")),
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sending request", slog.String("method", method), slog.String("path", path))
	return c.httpClient.Do(req)
}

// call performs the request and decodes a 2xx body into dst when dst is
// non-nil. Any other status becomes an *APIError.
func (c *Client) call(ctx context.Context, op, method, path string, body, dst any) error {
	logger := c.logger.With(slog.String("method", op))

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		logger.Error("request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error any `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			if msg, ok := envelope.Error.(string); ok {
				apiErr.Message = msg
			}
		}
		logger.Error("non-2xx response", slog.Int("status_code", resp.StatusCode), slog.String("message", apiErr.Message))
		return apiErr
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		logger.Error("decoding response", slog.String("error", err.Error()))
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// ListProperties returns every property, newest first.
func (c *Client) ListProperties(ctx context.Context) ([]*data.Property, error) {
	var properties []*data.Property
	if err := c.call(ctx, "ListProperties", http.MethodGet, "/api/properties", nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty returns one property. The API counts the request as a view.
func (c *Client) GetProperty(ctx context.Context, id string) (*data.Property, error) {
	var p data.Property
	if err := c.call(ctx, "GetProperty", http.MethodGet, "/api/properties/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PeekProperty returns one property without the read counting as a view.
func (c *Client) PeekProperty(ctx context.Context, id string) (*data.Property, error) {
	var p data.Property
	if err := c.call(ctx, "PeekProperty", http.MethodGet, "/api/properties/"+url.PathEscape(id)+"?count=false", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty sends a new listing to POST /property and returns it with
// the identifier the server assigned.
func (c *Client) CreateProperty(ctx context.Context, in data.PropertyInput) (*data.Property, error) {
	var p data.Property
	if err := c.call(ctx, "CreateProperty", http.MethodPost, "/property", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty sends the supplied fields of in as a partial update and
// returns the stored listing.
func (c *Client) UpdateProperty(ctx context.Context, id string, in data.PropertyInput) (*data.Property, error) {
	var p data.Property
	if err := c.call(ctx, "UpdateProperty", http.MethodPut, "/api/properties/"+url.PathEscape(id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a listing. Any non-2xx response is an *APIError.
func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.call(ctx, "DeleteProperty", http.MethodDelete, "/api/properties/"+url.PathEscape(id), nil, nil)
}

// ListReviews returns the reviews of a property, newest first.
func (c *Client) ListReviews(ctx context.Context, propertyID string) ([]*data.Review, error) {
	var reviews []*data.Review
	if err := c.call(ctx, "ListReviews", http.MethodGet, "/api/reviews/property/"+url.PathEscape(propertyID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review and returns the stored record.
func (c *Client) CreateReview(ctx context.Context, in data.ReviewInput) (*data.Review, error) {
	var r data.Review
	if err := c.call(ctx, "CreateReview", http.MethodPost, "/api/reviews", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
