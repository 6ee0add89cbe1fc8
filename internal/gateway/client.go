// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gateway is the single configured client for every call to the NODE
backend REST API.

Architecture:

  - Client: one base address, one timeout, one credential-forwarding policy.
  - Normalization: every failed call is replaced by exactly one message from a
    fixed taxonomy (see [Normalize]); callers never inspect status codes.
  - Capabilities: [Auth], [Posts], [Admin] and [Messages] expose narrow,
    purpose-scoped operations on top of the shared [Client]. Page packages
    declare the interface they consume; the application root composes them.

There is no retry, no queuing and no backoff. A failure surfaces exactly once.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/node/internal/platform/constants"
	"github.com/taibuivan/node/internal/platform/ctxutil"
	"github.com/taibuivan/node/internal/session"
)

// # Limits

const (
	// maxResponseBody caps how much of a success body is decoded.
	maxResponseBody = 8 << 20

	// maxErrorBody caps how much of a failure body is drained.
	maxErrorBody = 64 << 10
)

// # Client Definition

// Options configures a [Client].
type Options struct {
	// BaseURL is the backend address, e.g. "https://api.node-community.app".
	BaseURL string

	// Timeout abandons a request after the given duration. Zero disables it.
	Timeout time.Duration

	// ForwardCredentials sends the visitor's session token with every call.
	ForwardCredentials bool

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Client performs JSON and multipart calls against the backend.
type Client struct {
	baseURL            *url.URL
	httpClient         *http.Client
	forwardCredentials bool
}

// New validates the options and constructs a [Client].
func New(options Options) (*Client, error) {
	baseURL, err := url.Parse(options.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid base url %q: %w", options.BaseURL, err)
	}

	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("gateway: base url %q must be http or https", options.BaseURL)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   options.Timeout,
			Transport: options.Transport,
		},
		forwardCredentials: options.ForwardCredentials,
	}, nil
}

// # Operations

// Get issues a GET and decodes the JSON response into out (which may be nil).
func (client *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return client.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a POST with a JSON body (which may be nil).
func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return Normalize(err)
	}
	return client.do(ctx, http.MethodPost, path, nil, contentType, payload, out)
}

// Put issues a PUT with a JSON body (which may be nil).
func (client *Client) Put(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return Normalize(err)
	}
	return client.do(ctx, http.MethodPut, path, nil, contentType, payload, out)
}

// PostMultipart issues a POST with a multipart form holding one file part.
func (client *Client) PostMultipart(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return Normalize(fmt.Errorf("gateway: create form file: %w", err))
	}

	if _, err := io.Copy(part, content); err != nil {
		return Normalize(fmt.Errorf("gateway: copy form file: %w", err))
	}

	if err := writer.Close(); err != nil {
		return Normalize(fmt.Errorf("gateway: close multipart writer: %w", err))
	}

	return client.do(ctx, http.MethodPost, path, nil, writer.FormDataContentType(), &buffer, out)
}

// Ping reports whether the backend answers at all. Any HTTP response counts.
func (client *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodHead, client.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("gateway: build ping request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("gateway: ping failed: %w", err)
	}
	_ = response.Body.Close()

	return nil
}

// # Transport

func (client *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	logger := ctxutil.GetLogger(ctx)

	// 1. Build the request against the configured base address
	endpoint := client.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return Normalize(fmt.Errorf("gateway: build request: %w", err))
	}

	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	// 2. Forward credentials for authenticated endpoints
	client.attachCredentials(ctx, request)

	// 3. Execute. No status means network failure or timeout.
	response, err := client.httpClient.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "gateway_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return Normalize(err)
	}
	defer response.Body.Close()

	// 4. Anything outside 2xx rejects with the normalized message
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxErrorBody))

		logger.WarnContext(ctx, "gateway_request_rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", response.StatusCode),
		)
		return Normalize(&StatusError{Method: method, Path: path, Status: response.StatusCode})
	}

	// 5. Resolve with the parsed body
	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBody)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		logger.WarnContext(ctx, "gateway_decode_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return Normalize(fmt.Errorf("gateway: decode %s %s: %w", method, path, err))
	}

	return nil
}

func (client *Client) attachCredentials(ctx context.Context, request *http.Request) {
	if !client.forwardCredentials {
		return
	}

	token := ctxutil.GetSessionToken(ctx)
	if token == "" {
		return
	}

	request.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: token})
	request.Header.Set("Authorization", "Bearer "+token)
}

func encodeJSON(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("gateway: encode body: %w", err)
	}

	return bytes.NewReader(payload), "application/json", nil
}

// segment escapes an identifier for use as a single path element.
// Dots are escaped too so "." and ".." cannot walk the path.
func segment(id string) string {
	return strings.ReplaceAll(url.PathEscape(id), ".", "%2E")
}
