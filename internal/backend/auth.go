package backend

import (
	"context"
	"net/http"

	"parkingportal/internal/entities"
)

func (c *Client) Login(ctx context.Context, creds entities.LoginRequest) (*entities.LoginResponse, error) {
	var resp entities.LoginResponse
	if _, err := c.doJSON(ctx, http.MethodPost, "/login/", "", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req entities.RegisterRequest) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/register/", "", req, nil)
	return err
}

// Logout blacklists the refresh token on the backend.
func (c *Client) Logout(ctx context.Context, creds Credentials) error {
	return c.doAuthed(ctx, creds, http.MethodPost, "/logout/", map[string]string{"refresh": creds.RefreshToken()}, nil)
}
