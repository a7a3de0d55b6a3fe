package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// log is a no-op until the entry point wires a real logger via SetLogger.
var log = zap.NewNop().Sugar()

// SetLogger installs the request logger (used with --verbose).
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		log = l
	}
}

// Error is a non-2xx API response normalized to the server's {message}
// envelope, or to a generic message when the body is unparseable.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client issues requests against the findcourse API root. A bearer
// token, when set, is attached to every request.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// New builds a client for the given API base URL (no trailing slash).
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used for authenticated calls.
// An empty token reverts the client to anonymous requests.
func (c *Client) SetToken(token string) { c.token = token }

// Base returns the configured API root.
func (c *Client) Base() string { return c.base }

// ImageURL resolves a stored image reference. Absolute URLs pass
// through; anything else is served from the API's /image endpoint.
func (c *Client) ImageURL(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return c.base + "/image/" + name
}

// GetJSON issues a GET and decodes the response into out (may be nil).
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST with a JSON payload.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, payload, out)
}

// PatchJSON issues a PATCH with a JSON payload.
func (c *Client) PatchJSON(ctx context.Context, path string, payload, out any) error {
	return c.do(ctx, http.MethodPatch, path, payload, out)
}

// Delete issues a DELETE; any response body beyond the error envelope
// is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	log.Debugw("api request", "method", method, "path", path, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Upload posts one file as multipart/form-data under the field name
// "image" and returns the stored name from the {data} envelope.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	log.Debugw("api upload", "filename", filename, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp.StatusCode, raw)
	}
	var envelope struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == "" {
		return "", fmt.Errorf("upload succeeded but no stored name in response")
	}
	return envelope.Data, nil
}

// decodeError turns a non-2xx body into *Error. A structured {message}
// wins; anything else falls back to a generic message.
func decodeError(status int, raw []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return &Error{Status: status, Message: envelope.Message}
	}
	return &Error{Status: status, Message: "unexpected server error"}
}
