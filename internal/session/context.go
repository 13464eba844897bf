// Package session carries the signed-in user and their backend tokens through
// a request. A Context is loaded by middleware and never stored globally.
package session

import (
	"context"
	"sync"
	"time"

	"parkingportal/internal/entities"
)

type Context struct {
	Key       string
	User      entities.User
	ExpiresAt time.Time

	mu      sync.Mutex
	access  string
	refresh string
	dirty   bool
}

func New(key string, user entities.User, access, refresh string, expiresAt time.Time) *Context {
	return &Context{
		Key:       key,
		User:      user,
		ExpiresAt: expiresAt,
		access:    access,
		refresh:   refresh,
	}
}

func (c *Context) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

func (c *Context) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh
}

// SetAccessToken records a refreshed access token; Dirty reports it until saved.
func (c *Context) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access = token
	c.dirty = true
}

func (c *Context) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

func (c *Context) MarkSaved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// Clear drops the tokens on logout.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access, c.refresh = "", ""
	c.User = entities.User{}
}

func (c *Context) Authenticated() bool {
	return c != nil && c.User.ID != 0 && c.AccessToken() != ""
}

type ctxKey struct{}

func With(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// From returns the request's session, or nil for anonymous requests.
func From(ctx context.Context) *Context {
	c, _ := ctx.Value(ctxKey{}).(*Context)
	return c
}
