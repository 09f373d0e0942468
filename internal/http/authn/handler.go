// Package authn serves login and user administration.
package authn

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// LoginRoutes are public.
func (h *Handler) LoginRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

// UserRoutes expect an authenticated caller.
func (h *Handler) UserRoutes(r chi.Router) {
	r.With(gate.Require(auth.CapUserManage)).Post("/", h.createUser)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      auth.Role `json:"role"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, Role: s.User.Role})
}

type createUserRequest struct {
	Username string    `json:"username" validate:"required,max=100"`
	Password string    `json:"password" validate:"required,min=8"`
	Role     auth.Role `json:"role" validate:"required,oneof=worker admin"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.svc.CreateUser(r.Context(), auth.CreateUserParams{Username: req.Username, Password: req.Password, Role: req.Role})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt})
}
