package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/myflix/myflix/internal/models"
	"github.com/myflix/myflix/internal/services"
	"github.com/myflix/myflix/internal/session"
	"github.com/myflix/myflix/internal/shared"
	"github.com/myflix/myflix/internal/tasks"
)

const requestTimeout = 30 * time.Second

// APIHandler serves the local JSON facade over the catalog, dashboard and session.
// Implements the [Handler] interface for registration with a [Router].
type APIHandler struct {
	svc      services.Service
	engine   *tasks.DashboardEngine
	sessions *session.Manager
	logger   *log.Logger
}

// NewAPIHandler creates an [APIHandler] with the given collaborators.
func NewAPIHandler(svc services.Service, engine *tasks.DashboardEngine, sessions *session.Manager, logger *log.Logger) *APIHandler {
	return &APIHandler{svc: svc, engine: engine, sessions: sessions, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{
		"/health",
		"/api/search",
		"/api/detail",
		"/api/dashboard",
		"/api/session",
		"/api/session/signup",
		"/api/session/login",
		"/api/session/logout",
	}
}

// ServeHTTP dispatches to the endpoint handlers by path.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch r.URL.Path {
	case "/health":
		h.handleHealth(w, r)
	case "/api/search":
		h.handleSearch(ctx, w, r)
	case "/api/detail":
		h.handleDetail(ctx, w, r)
	case "/api/dashboard":
		h.handleDashboard(ctx, w, r)
	case "/api/session":
		h.handleSession(w, r)
	case "/api/session/signup":
		h.handleSignup(w, r)
	case "/api/session/login":
		h.handleLogin(w, r)
	case "/api/session/logout":
		h.handleLogout(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok", "service": h.svc.Name()})
}

func (h *APIHandler) handleSearch(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}

	outcome := h.engine.RunSearch(ctx, nil, r.URL.Query().Get("q"))
	if outcome.Cleared {
		h.respond(w, http.StatusOK, &models.SearchResult{Movies: []models.Movie{}})
		return
	}
	if outcome.Err != nil {
		h.respondError(w, outcome.Err)
		return
	}

	h.respond(w, http.StatusOK, &models.SearchResult{Movies: outcome.Movies, TotalResults: outcome.Total})
}

func (h *APIHandler) handleDetail(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}

	id := r.URL.Query().Get("i")
	if id == "" {
		h.respond(w, http.StatusBadRequest, errorBody("missing i parameter"))
		return
	}

	detail, err := h.svc.Detail(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, detail)
}

func (h *APIHandler) handleDashboard(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}

	result, err := h.engine.Initialize(ctx, nil)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, result)
}

func (h *APIHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}

	user, ok := h.sessions.Current()
	if !ok {
		h.respond(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	h.respond(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"fullName":      user.FullName,
		"email":         user.Email,
	})
}

func (h *APIHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w)
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.respond(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.sessions.Signup(user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusCreated, map[string]string{"message": "account created, please log in"})
}

func (h *APIHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w)
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.respond(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.sessions.Login(creds.Email, creds.Password); err != nil {
		h.respondError(w, err)
		return
	}

	user, _ := h.sessions.Current()
	h.respond(w, http.StatusOK, map[string]string{"message": "logged in", "fullName": user.FullName})
}

func (h *APIHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w)
		return
	}

	h.sessions.Logout()
	h.respond(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// respondError maps domain errors to HTTP status codes, surfacing upstream
// API messages verbatim.
func (h *APIHandler) respondError(w http.ResponseWriter, err error) {
	var apiErr *shared.APIError
	switch {
	case errors.As(err, &apiErr):
		h.respond(w, http.StatusNotFound, errorBody(apiErr.Message))
	case errors.Is(err, shared.ErrInvalidInput):
		h.respond(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, shared.ErrUserNotFound), errors.Is(err, shared.ErrInvalidCredentials):
		h.respond(w, http.StatusUnauthorized, errorBody(err.Error()))
	case errors.Is(err, shared.ErrNetwork), errors.Is(err, shared.ErrServiceUnavailable):
		h.respond(w, http.StatusBadGateway, errorBody(err.Error()))
	default:
		h.logger.Error("unhandled api error", "error", err)
		h.respond(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (h *APIHandler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *APIHandler) methodNotAllowed(w http.ResponseWriter) {
	h.respond(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
