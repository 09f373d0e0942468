package gasalias

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/gasalias"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
)

type Handler struct {
	svc *gasalias.Service
}

func NewHandler(svc *gasalias.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(gate.Require(auth.CapCylinderRead)).Get("/", h.list)
	r.With(gate.Require(auth.CapCylinderManage)).Put("/", h.learn)
}

type aliasResponse struct {
	Alias   string `json:"alias"`
	GasType string `json:"gasType"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]aliasResponse, len(aliases))
	for i, a := range aliases {
		resp[i] = aliasResponse{Alias: a.Alias, GasType: a.GasType}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Alias   string `json:"alias" validate:"required,max=50"`
	GasType string `json:"gasType" validate:"required,max=50"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	a, err := h.svc.Learn(r.Context(), req.Alias, req.GasType)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, aliasResponse{Alias: a.Alias, GasType: a.GasType})
}
