package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"leadapi/internal/dto"
	"leadapi/internal/netutil"
)

// Stable error codes consumed by the calling UI.
const (
	codeTurnstileFailed = "TURNSTILE_FAILED"
	codePhoneInvalid    = "PHONE_INVALID"
	codeCityRequired    = "CITY_REQUIRED"
	codeSummaryShort    = "SUMMARY_SHORT"
	codeBadCredentials  = "BAD_CREDENTIALS"
	codeUnauthorized    = "UNAUTHORIZED"
	codeInvalidInput    = "INVALID_INPUT"
	codeUserExists      = "USER_EXISTS"
	codeInvalidEmail    = "INVALID_EMAIL"
	codeNotFound        = "NOT_FOUND"
	codeInternalError   = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, dto.ErrorResponse{Error: code})
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF can be a list: client, proxy1, proxy2...
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if normalized, ok := netutil.NormalizeIP(ip); ok {
			return normalized
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if normalized, ok := netutil.NormalizeIP(xr); ok {
			return normalized
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}
