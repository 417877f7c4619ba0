package http

import (
	"context"
	"net/http"
	"time"

	"leadapi/internal/domain"
)

const sessionCookieName = "session"

type ctxKey string

const ctxKeySession ctxKey = "session_claims"

// setSessionCookie installs the signed token as an HTTP-only, secure,
// cross-site-sendable cookie. SameSite=None because the admin panel is
// served from a different origin than this API.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// requireSession gates the admin subtree. Absent, malformed and expired
// tokens all answer 401 UNAUTHORIZED.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		claims, err := h.tokens.Verify(cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) *domain.SessionClaims {
	if claims, ok := ctx.Value(ctxKeySession).(*domain.SessionClaims); ok {
		return claims
	}
	return nil
}
