package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, auth domain.AuthContext) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setAuthHeader(req, auth)
	return req, nil
}

// setAuthHeader attaches the credential under exactly one convention:
// bearer token or API key, selected by which field is populated.
func setAuthHeader(req *http.Request, auth domain.AuthContext) {
	switch {
	case auth.Token != "":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	case auth.APIKey != "":
		req.Header.Set("X-API-Key", auth.APIKey)
	}
}

func (c *Client) get(ctx context.Context, operation, endpoint string, auth domain.AuthContext) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, auth)
	if err != nil {
		return nil, err
	}
	return c.do(operation, req)
}

func (c *Client) postMultipart(ctx context.Context, operation, endpoint string, auth domain.AuthContext, fill func(*multipart.Writer) error) (*http.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := fill(mw); err != nil {
		return nil, fmt.Errorf("build %s form: %w", operation, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close %s form: %w", operation, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf, auth)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(operation, req)
}

// do sends the request and maps the response status into the error
// taxonomy. A non-nil response is always 2xx with an open body.
func (c *Client) do(operation string, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrNetwork, operation, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	msg := serverMessage(resp)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.WrapError(domain.ErrAuth, operation, fmt.Errorf("%s", msg))
	case http.StatusNotFound:
		return nil, domain.WrapError(domain.ErrNotFound, operation, fmt.Errorf("%s", msg))
	default:
		return nil, fmt.Errorf("%s: %w", operation, &domain.ServerError{Code: resp.StatusCode, Message: msg})
	}
}

// serverMessage extracts the human-readable error text, preferring the
// "detail" field the server puts in error bodies.
func serverMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return resp.Status
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return strings.TrimSpace(payload.Detail)
	}
	return trimmed
}
