package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	apperrors "parkingportal/internal/errors"
	"parkingportal/internal/session"
)

// SessionLoader resolves a session cookie and persists tokens refreshed while
// serving a request.
type SessionLoader interface {
	Load(ctx context.Context, cookie string) (*session.Context, error)
	SaveTokens(ctx context.Context, sess *session.Context) error
}

// SessionToken returns the signed session token from the cookie, falling back
// to a Bearer Authorization header.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// SessionMiddleware attaches the caller's session, if any, to the request
// context. Anonymous requests pass through untouched.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := loader.Load(r.Context(), token)
			if err != nil {
				log.Printf("Error loading session: %v", err)
				writeHTTPError(w, apperrors.NewHTTPError(http.StatusServiceUnavailable, "Session store unavailable"))
				return
			}
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.With(r.Context(), sess)))

			if err := loader.SaveTokens(context.WithoutCancel(r.Context()), sess); err != nil {
				log.Printf("Error saving refreshed tokens for session %s: %v", sess.Key, err)
			}
		})
	}
}

// RequireUser admits signed-in non-admin users. Superusers are sent to the
// admin console.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.From(r.Context())
		if !sess.Authenticated() {
			writeHTTPError(w, apperrors.ErrUnauthorized("Please sign in to continue.").WithRedirect("/sign-in"))
			return
		}
		if sess.User.IsSuperuser {
			writeHTTPError(w, apperrors.ErrForbidden("Admins use the admin console.").WithRedirect("/admin"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.From(r.Context())
		if !sess.Authenticated() {
			writeHTTPError(w, apperrors.ErrUnauthorized("Please sign in to continue.").WithRedirect("/admin/sign-in"))
			return
		}
		if !sess.User.IsSuperuser {
			writeHTTPError(w, apperrors.ErrForbidden("Access denied. Admins only.").WithRedirect("/"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeHTTPError(w http.ResponseWriter, e *apperrors.HTTPError) {
	body := map[string]string{"error": e.Message}
	if e.Redirect != "" {
		body["redirect"] = e.Redirect
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(body)
}
