package company

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/company"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
)

type Handler struct {
	svc *company.Service
}

func NewHandler(svc *company.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCompanyRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCompanyManage))
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Get("/archived", h.listArchived)
		r.Post("/archived/{id}/restore", h.restore)
	})
}

type companyResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Contact   string     `json:"contact"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(c *company.Company) companyResponse {
	return companyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Contact:   c.Contact,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type archivedResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	DeletedBy uuid.UUID `json:"deletedBy"`
	DeletedAt time.Time `json:"deletedAt"`
}

func toArchivedResponse(a *company.ArchivedCompany) archivedResponse {
	return archivedResponse{
		ID:        a.ID,
		Name:      a.Name,
		Address:   a.Address,
		Contact:   a.Contact,
		DeletedBy: a.DeletedBy,
		DeletedAt: a.DeletedAt,
	}
}

type createRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
	Contact string `json:"contact" validate:"max=200"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), company.CreateParams{Name: req.Name, Address: req.Address, Contact: req.Contact})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]companyResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitnil,max=200"`
	Address *string `json:"address,omitempty" validate:"omitnil,max=500"`
	Contact *string `json:"contact,omitempty" validate:"omitnil,max=200"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, company.UpdateParams{Name: req.Name, Address: req.Address, Contact: req.Contact})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller, _ := auth.FromContext(r.Context())

	a, err := h.svc.SoftDelete(r.Context(), caller.UserID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toArchivedResponse(a))
}

func (h *Handler) listArchived(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.ListArchived(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]archivedResponse, len(as))
	for i, a := range as {
		resp[i] = toArchivedResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	id, err := respond.ID(chi.URLParam(r, "id"), "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Restore(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"previousId": id,
		"newId":      c.ID,
		"company":    toResponse(c),
	})
}
