package api

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

	"github.com/PizzaHomicide/tanpen/internal/log"
)

const userAgent = "tanpen"

// Client performs authenticated requests against the video API.  It does not retry and does not cache.
type Client struct {
	baseURL    string
	headerName string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the overall timeout of every request made by the client.  Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithHeaderName changes the header the session token is sent under
func WithHeaderName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.headerName = name
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headerName: "X-Telegram-Init-Data",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a successful API response.  JSON bodies are kept raw until decoded, anything else is an opaque payload.
type Response struct {
	Status      int
	ContentType string
	body        []byte
}

// IsJSON reports whether the server declared the body as JSON
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// Decode unmarshals a JSON body into v
func (r *Response) Decode(v any) error {
	if !r.IsJSON() {
		return fmt.Errorf("expected JSON response, got %q", r.ContentType)
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Bytes returns the raw body.  Used for binary payloads such as video bytes.
func (r *Response) Bytes() []byte {
	return r.body
}

// Get performs a GET request for path
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, token, nil)
}

// Post performs a POST request for path with body encoded as JSON
func (c *Client) Post(ctx context.Context, path, token string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, token, body)
}

// GetJSON performs a GET request and decodes the JSON response into T
func GetJSON[T any](ctx context.Context, c *Client, path, token string) (T, error) {
	var out T
	resp, err := c.Get(ctx, path, token)
	if err != nil {
		return out, err
	}
	err = resp.Decode(&out)
	return out, err
}

// PostJSON performs a POST request and decodes the JSON response into T.  An empty or non-JSON acknowledgement yields
// the zero value of T.
func PostJSON[T any](ctx context.Context, c *Client, path, token string, body any) (T, error) {
	var out T
	resp, err := c.Post(ctx, path, token, body)
	if err != nil {
		return out, err
	}
	if !resp.IsJSON() || len(bytes.TrimSpace(resp.body)) == 0 {
		return out, nil
	}
	err = resp.Decode(&out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		if log.TraceEnabled() {
			log.Trace("API request body", "path", path, "body", string(data))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(c.headerName, token)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A cancelled caller is not a connectivity problem
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Debug("API request failed without a response", "method", method, "path", path, "error", err)
		return nil, &NetworkError{}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Debug("API response body could not be read", "method", method, "path", path, "error", err)
		return nil, &NetworkError{}
	}

	log.Debug("API request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}

// errorMessage extracts the "detail" field of a JSON error body, falling back to a status based message.  Bodies that
// are not JSON are not an error of their own.
func errorMessage(status int, body []byte) string {
	var errorBody struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &errorBody); err != nil {
		return statusMessage(status)
	}
	if detail, ok := errorBody.Detail.(string); ok && detail != "" {
		return detail
	}
	return statusMessage(status)
}

// IsCanceled reports whether err came from a cancelled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
