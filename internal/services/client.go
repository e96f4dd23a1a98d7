package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"golang.org/x/time/rate"
)

// Client issues raw HTTP requests against the backend base URL.
//
// It owns serialization and the client-side rate limit and nothing else;
// classification of outcomes belongs to [Pipeline].
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a transport client for the given base URL.
//
// A nil httpClient falls back to [http.DefaultClient]. A ratePerSecond of
// zero or less disables client-side rate limiting.
func NewClient(baseURL string, httpClient *http.Client, ratePerSecond float64) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000/api"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// Response represents a raw transport response with status and body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Request describes a single outgoing call.
//
// Prepare hooks (credential injection) run after the request is built and
// before it is sent.
type Request struct {
	Method      string
	Path        string
	Body        []byte
	ContentType string
	Prepare     func(*http.Request)
}

// Do builds, rate-limits, and executes a request, reading the full body.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	fullURL := c.baseURL + r.Path

	var reader io.Reader
	if r.Body != nil {
		reader = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if r.Prepare != nil {
		r.Prepare(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// MultipartBody assembles a single-file multipart form body.
// Returns the encoded body and its content type (including the boundary).
func MultipartBody(field, filename string, content []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
