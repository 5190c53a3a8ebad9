// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// SessionCookieName is the Firebase Hosting friendly session cookie.
const SessionCookieName = "__session"

// TokenVerifier is satisfied by *fbauth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*fbauth.Token, error)
}

type ctxKey struct{ name string }

var (
	ctxKeyUID      = ctxKey{name: "uid"}
	ctxKeyEmail    = ctxKey{name: "email"}
	ctxKeyFullName = ctxKey{name: "fullName"}
)

// UserAuthMiddleware verifies a Firebase ID token (Authorization: Bearer) or
// session cookie and stores uid/email/name in the request context.
//
// DevUID, when set and Verifier is nil, signs every request in as that uid.
// It exists for local runs without Firebase.
type UserAuthMiddleware struct {
	Verifier TokenVerifier
	DevUID   string
	Log      *logrus.Entry
}

// Handler rejects requests without a valid credential (401).
func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Verifier == nil && strings.TrimSpace(m.DevUID) == "" {
			writeError(w, http.StatusServiceUnavailable, "user auth middleware not initialized")
			return
		}

		ctx, ok, reason := m.authenticate(r)
		if !ok {
			m.logger().WithFields(logrus.Fields{"path": r.URL.Path, "reason": reason}).Debug("[user_auth] rejected")
			writeError(w, http.StatusUnauthorized, "unauthorized: "+reason)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional attaches the user when a valid credential is present and passes
// anonymous requests through unchanged.
func (m *UserAuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx, ok, _ := m.authenticate(r); ok {
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *UserAuthMiddleware) authenticate(r *http.Request) (context.Context, bool, string) {
	if m.Verifier == nil {
		uid := strings.TrimSpace(m.DevUID)
		if uid == "" {
			return nil, false, "auth not configured"
		}
		return WithUser(r.Context(), uid, "", ""), true, ""
	}

	var (
		token *fbauth.Token
		err   error
	)

	authHeader := r.Header.Get("Authorization")
	switch {
	case strings.HasPrefix(authHeader, "Bearer "):
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			return nil, false, "empty bearer token"
		}
		token, err = m.Verifier.VerifyIDToken(r.Context(), idToken)
	default:
		c, cerr := r.Cookie(SessionCookieName)
		if cerr != nil || strings.TrimSpace(c.Value) == "" {
			return nil, false, "missing credentials"
		}
		token, err = m.Verifier.VerifySessionCookie(r.Context(), c.Value)
	}
	if err != nil || token == nil {
		return nil, false, "invalid token"
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return nil, false, "invalid uid in token"
	}

	email := claimString(token.Claims, "email")
	name := claimString(token.Claims, "name")
	if name == "" {
		name = claimString(token.Claims, "fullName")
	}
	return WithUser(r.Context(), uid, email, name), true, ""
}

func (m *UserAuthMiddleware) logger() *logrus.Entry {
	if m.Log != nil {
		return m.Log
	}
	return logging.Component("user_auth")
}

func claimString(claims map[string]interface{}, key string) string {
	if claims == nil {
		return ""
	}
	if s, ok := claims[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// WithUser stores the signed-in user. Tests use it to skip token checks.
func WithUser(ctx context.Context, uid, email, fullName string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, strings.TrimSpace(uid))
	if email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
	}
	if fullName != "" {
		ctx = context.WithValue(ctx, ctxKeyFullName, fullName)
	}
	return ctx
}

// CurrentUserUID returns the Firebase uid of the signed-in user.
func CurrentUserUID(r *http.Request) (string, bool) {
	u, ok := r.Context().Value(ctxKeyUID).(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return u, true
}

func CurrentUserEmail(r *http.Request) string {
	s, _ := r.Context().Value(ctxKeyEmail).(string)
	return s
}

// CurrentUserFullName returns the display name if the token carried one.
func CurrentUserFullName(r *http.Request) (string, bool) {
	s, ok := r.Context().Value(ctxKeyFullName).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
