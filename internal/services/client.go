// Package services contains the thin REST clients fronting each downstream
// entity service. One outbound call per operation, fixed timeout, no retries.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srhoton/srnext-bff/internal/utils"
)

// apiClient is the request core shared by every entity client: base URL,
// bearer credential, JSON bodies, fixed timeout.
type apiClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func newAPIClient(baseURL, token string, timeout time.Duration) *apiClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// httpError carries a non-2xx upstream response so each entity client can
// translate its own error-body shape.
type httpError struct {
	Status int
	Body   []byte
}

func (e *httpError) Error() string {
	return fmt.Sprintf("http error (%d): %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// decode attempts to parse the error body into v, reporting success.
func (e *httpError) decode(v any) bool {
	return json.Unmarshal(e.Body, v) == nil
}

// asHTTPError extracts an *httpError when the failure came from an upstream
// response rather than transport.
func asHTTPError(err error) (*httpError, bool) {
	var he *httpError
	ok := errors.As(err, &he)
	return he, ok
}

// do performs a single outbound request. A non-2xx response is returned as
// *httpError; a transport failure is returned as a terminal service error.
func (c *apiClient) do(ctx context.Context, method, reqPath string, query url.Values, body any, out any) error {
	return c.doWithContentType(ctx, method, reqPath, query, body, out, "application/json")
}

func (c *apiClient) doWithContentType(ctx context.Context, method, reqPath string, query url.Values, body any, out any, contentType string) error {
	fullURL := c.baseURL + reqPath
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	utils.Logger.WithFields(logrus.Fields{
		"method": method,
		"url":    fullURL,
	}).Debug("Making backend request")

	resp, err := c.client.Do(req)
	if err != nil {
		return utils.ServiceFailure(0, fmt.Sprintf("API request failed: %s", err.Error()), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		utils.Logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"url":    fullURL,
		}).Error("Backend response error")
		return &httpError{Status: resp.StatusCode, Body: bodyBytes}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.ServiceFailure(0, fmt.Sprintf("failed to read response: %s", err.Error()), err)
	}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return utils.ServiceFailure(0, fmt.Sprintf("failed to decode response: %s", err.Error()), err)
	}
	return nil
}

// pathSegment URL-encodes one path segment.
func pathSegment(s string) string {
	return url.PathEscape(s)
}
