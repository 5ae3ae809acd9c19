package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// HeaderXRequestID is set on every request unless the caller already provided one.
const HeaderXRequestID = "X-Request-Id"

// NoBody is the TBody of calls that send no request body.
type NoBody struct{}

// Call performs exactly one HTTP request against opts.BaseURL+path and decodes
// the 2xx response into TResult. path may already carry a query string.
//
// body is JSON-encoded for POST, PUT and PATCH and ignored for GET and DELETE.
// An empty 2xx body yields the zero TResult. A non-2xx response is returned as
// *APIError or *ValidationError, and network failures or cancellation of ctx
// as *TransportError. Call never retries.
func Call[TBody, TResult any](ctx context.Context, method, path string, opts Options, body *TBody) (TResult, error) {
	var result TResult

	if err := opts.Validate(); err != nil {
		return result, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := newRequest(ctx, method, path, opts, body)
	if err != nil {
		return result, err
	}

	logger := opts.logger().With(
		slog.String("request_id", req.Header.Get(HeaderXRequestID)),
		slog.String("method", method),
		slog.String("path", path),
	)
	logger.Debug("sending request")
	start := time.Now()

	resp, err := opts.httpClient().Do(req)
	if err != nil {
		terr := newTransportError(ctx, "send request", err)
		logger.Debug("request failed", slog.String("kind", terr.Kind.String()), slog.Any("error", err))

		return result, terr
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, newTransportError(ctx, "read response", err)
	}

	logger.Debug("response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, Normalize(resp.StatusCode, statusText(resp), payload)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(payload, &result); err != nil {
		return result, errors.Wrapf(err, "decode %s %s response", method, path)
	}

	return result, nil
}

func newRequest[TBody any](ctx context.Context, method, path string, opts Options, body *TBody) (*http.Request, error) {
	var reader io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, errors.Wrapf(err, "encode %s %s body", method, path)
			}
			reader = bytes.NewReader(data)
		}
	default:
		return nil, errors.Errorf("unsupported method %q", method)
	}

	target := strings.TrimRight(opts.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for k, values := range opts.Headers {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	if opts.Auth != nil {
		authHeaders, err := opts.Auth.Headers(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "resolve auth headers")
		}
		for k, values := range authHeaders {
			req.Header.Del(k)
			for _, v := range values {
				req.Header.Add(k, v)
			}
		}
	}

	if req.Header.Get(HeaderXRequestID) == "" {
		req.Header.Set(HeaderXRequestID, uuid.NewString())
	}

	return req, nil
}

// statusText strips the numeric code from resp.Status, e.g. "404 Not Found" -> "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}

	return text
}
