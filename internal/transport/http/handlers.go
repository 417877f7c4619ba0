package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"leadapi/internal/domain"
	"leadapi/internal/dto"
	"leadapi/internal/store"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleSubmitLead(w http.ResponseWriter, r *http.Request) {
	var req dto.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput)
		return
	}

	err := h.leads.Submit(r.Context(), req, clientIP(r))
	switch {
	case err == nil:
		writeOK(w)
	case errors.Is(err, domain.ErrTurnstileFailed):
		writeError(w, http.StatusBadRequest, codeTurnstileFailed)
	case errors.Is(err, domain.ErrPhoneInvalid):
		writeError(w, http.StatusBadRequest, codePhoneInvalid)
	case errors.Is(err, domain.ErrCityRequired):
		writeError(w, http.StatusBadRequest, codeCityRequired)
	case errors.Is(err, domain.ErrSummaryShort):
		writeError(w, http.StatusBadRequest, codeSummaryShort)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadCredentials)
		return
	}

	token, err := h.auth.Login(r.Context(), req, clientIP(r))
	switch {
	case err == nil:
		h.setSessionCookie(w, token)
		writeOK(w)
	case errors.Is(err, domain.ErrTurnstileFailed):
		writeError(w, http.StatusBadRequest, codeTurnstileFailed)
	case errors.Is(err, domain.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, codeBadCredentials)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeBadCredentials)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeOK(w)
}

func (h *Handler) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.store.Routes().List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	views := make([]dto.RouteView, 0, len(routes))
	for _, route := range routes {
		views = append(views, dto.RouteView{City: route.City, Email: route.Emails})
	}
	writeJSON(w, http.StatusOK, dto.RouteListResponse{Routes: views})
}

func (h *Handler) handleUpsertRoutes(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput)
		return
	}
	err := h.store.Routes().Upsert(r.Context(), req.Cities, req.Emails)
	switch {
	case err == nil:
		h.audit(r, "routes upserted", "cities", len(req.Cities))
		writeOK(w)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeInvalidInput)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	city := pathParam(r, "city")
	if err := h.store.Routes().Delete(r.Context(), city); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.audit(r, "route deleted", "city", city)
	writeOK(w)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	names, err := h.auth.ListUsers(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	views := make([]dto.UserView, 0, len(names))
	for _, name := range names {
		views = append(views, dto.UserView{Username: name})
	}
	writeJSON(w, http.StatusOK, dto.UserListResponse{Users: views})
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput)
		return
	}
	err := h.auth.CreateUser(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		h.audit(r, "user created", "username", strings.ToLower(strings.TrimSpace(req.Username)))
		writeOK(w)
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeInvalidInput)
	case errors.Is(err, domain.ErrUserExists):
		writeError(w, http.StatusBadRequest, codeUserExists)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")
	if err := h.auth.DeleteUser(r.Context(), username); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.audit(r, "user deleted", "username", username)
	writeOK(w)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	value, err := h.store.Settings().Get(r.Context(), domain.SettingDefaultEmail)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			h.internalError(w, r, err)
			return
		}
		value = h.store.DefaultEmail
	}
	writeJSON(w, http.StatusOK, dto.SettingsResponse{DefaultEmail: value})
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEmail)
		return
	}
	addr := strings.TrimSpace(req.DefaultEmail)
	if _, err := mail.ParseAddress(addr); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidEmail)
		return
	}
	if err := h.store.Settings().Upsert(r.Context(), domain.SettingDefaultEmail, addr); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.audit(r, "default email updated", "email", addr)
	writeOK(w)
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	limit := store.LeadListDefault
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	leads, err := h.leads.List(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LeadListResponse{Leads: leads})
}

// audit records an admin mutation together with the acting session subject.
func (h *Handler) audit(r *http.Request, msg string, args ...any) {
	actor := "unknown"
	if claims := sessionFromContext(r.Context()); claims != nil {
		actor = claims.Subject
	}
	slog.Info(msg, append([]any{"actor", actor}, args...)...)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, codeInternalError)
}

// pathParam returns the URL parameter with percent-encoding undone; the
// admin UI encodes city names into the path.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
