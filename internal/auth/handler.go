// Package auth guards the HTTP API behind a single operator
// passphrase. A successful login yields a short-lived JWT; the
// middleware validates it on every API route. Authentication is off by
// default and enabled through the `auth` config section.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// SessionRequest is the login body for the session endpoint.
type SessionRequest struct {
	Passphrase string `json:"passphrase"`
}

// Handler provides the HTTP surface for operator sessions.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates an auth Handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the auth routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/session", h.handleCreateSession)
}

// Middleware returns the session validation middleware.
func (h *Handler) Middleware() func(http.Handler) http.Handler {
	return AuthMiddleware(h.service.Tokens())
}

// handleCreateSession verifies the operator passphrase and issues a
// session token.
//
//	@Summary		Open an operator session
//	@Description	Verify the operator passphrase and receive a session token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	SessionRequest	true	"Operator passphrase"
//	@Success		200	{object}	SessionToken
//	@Failure		400	{object}	map[string]any
//	@Failure		401	{object}	map[string]any
//	@Router			/auth/session [post]
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Passphrase == "" {
		writeAuthError(w, http.StatusBadRequest, "passphrase is required")
		return
	}

	session, err := h.service.Login(req.Passphrase)
	if err != nil {
		if errors.Is(err, ErrInvalidPassphrase) {
			writeAuthError(w, http.StatusUnauthorized, "invalid passphrase")
			return
		}
		h.logger.Error("session error", zap.Error(err))
		writeAuthError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAuthError writes an RFC 7807 problem response.
func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://energyguard.dev/problems/auth-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
