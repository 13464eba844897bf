// Package backend is the HTTP client for the parking backend API, which owns
// pricing, availability, reservations and payments.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "parkingportal/internal/errors"
)

// Credentials supplies the caller's tokens and accepts a refreshed access token.
type Credentials interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
}

var ErrSessionExpired = errors.New("backend session expired")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, reqBody, respBody any) (int, error) {
	var body io.Reader
	if reqBody != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &apperrors.UpstreamError{
			Op:     method + " " + path,
			Status: resp.StatusCode,
			Body:   string(bytes.TrimSpace(b)),
		}
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s failed: %w body=%s", method, path, err, string(b))
		}
	}
	return resp.StatusCode, nil
}

// doAuthed sends the request with the caller's access token. A 401 triggers a
// single refresh followed by one retry; there are no other retries.
func (c *Client) doAuthed(ctx context.Context, creds Credentials, method, path string, reqBody, respBody any) error {
	status, err := c.doJSON(ctx, method, path, creds.AccessToken(), reqBody, respBody)
	if status != http.StatusUnauthorized || creds.RefreshToken() == "" {
		return err
	}

	access, rerr := c.Refresh(ctx, creds.RefreshToken())
	if rerr != nil {
		return fmt.Errorf("%w: %v", ErrSessionExpired, rerr)
	}
	creds.SetAccessToken(access)

	status, err = c.doJSON(ctx, method, path, access, reqBody, respBody)
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return err
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	if _, err := c.doJSON(ctx, http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": refresh}, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", errors.New("refresh response without access token")
	}
	return resp.Access, nil
}
