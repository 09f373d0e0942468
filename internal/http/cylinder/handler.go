package cylinder

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
	"github.com/MrJamesThe3rd/gastrack/internal/importer"
)

const maxUpload = 10 << 20

type Handler struct {
	svc      *cylinder.Service
	importer *importer.Service
}

func NewHandler(svc *cylinder.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importer: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCylinderRead))
		r.Get("/", h.list)
		r.Get("/next-serial", h.nextSerial)
		r.Get("/{serial}", h.get)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCylinderTransition))
		r.Post("/dispatch", h.dispatch)
		r.Post("/receive", h.receive)
		r.Post("/refill", h.refill)
		r.Post("/refill/complete", h.completeRefill)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCylinderManage))
		r.Post("/", h.add)
		r.Post("/batch", h.addBatch)
		r.Post("/import", h.importCSV)
		r.Delete("/{serial}", h.archive)
		r.Get("/archived", h.listArchived)
		r.Post("/archived/{serial}/restore", h.restore)
	})
}

// actor is set by gate.Authenticate, which guards every route here.
func actor(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

type dispatchRequest struct {
	SerialNumbers []string `json:"serialNumbers"`
	CompanyID     int64    `json:"companyId"`
	Product       string   `json:"product"`
	Quantity      int      `json:"quantity" validate:"gte=0"`
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.svc.Dispatch(r.Context(), actor(r).UserID, cylinder.DispatchParams{
		SerialNumbers: req.SerialNumbers,
		CompanyID:     req.CompanyID,
		Product:       req.Product,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "%d cylinders dispatched: %s", len(res.Dispatched), strings.Join(res.Dispatched, ", "))
}

type receiveRequest struct {
	EmptySerialNumbers  []string `json:"emptySerialNumbers"`
	FilledSerialNumbers []string `json:"filledSerialNumbers"`
	CompanyID           *int64   `json:"companyId"`
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	var req receiveRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.svc.Receive(r.Context(), actor(r).UserID, cylinder.ReceiveParams{
		EmptySerialNumbers:  req.EmptySerialNumbers,
		FilledSerialNumbers: req.FilledSerialNumbers,
		CompanyID:           req.CompanyID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "%d empty and %d filled cylinders received", len(res.Empty), len(res.Filled))
}

type refillRequest struct {
	CylinderIDs []string `json:"cylinderIds"`
}

func (h *Handler) refill(w http.ResponseWriter, r *http.Request) {
	var req refillRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	entries, err := h.svc.StartRefill(r.Context(), actor(r).UserID, req.CylinderIDs)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "%d cylinders sent for refilling", len(entries))
}

func (h *Handler) completeRefill(w http.ResponseWriter, r *http.Request) {
	var req refillRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.CompleteRefill(r.Context(), actor(r).UserID, req.CylinderIDs); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "%d cylinders refilled and available", len(req.CylinderIDs))
}

type addRequest struct {
	SerialNumber string          `json:"serialNumber"`
	GasType      string          `json:"gasType" validate:"required"`
	Size         int             `json:"size" validate:"required"`
	Status       cylinder.Status `json:"status"`
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Add(r.Context(), cylinder.AddParams{
		SerialNumber: req.SerialNumber,
		GasType:      req.GasType,
		Size:         req.Size,
		Status:       req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

type batchRequest struct {
	Quantity int             `json:"quantity" validate:"required,min=1,max=500"`
	GasType  string          `json:"gasType" validate:"required"`
	Size     int             `json:"size" validate:"required"`
	Status   cylinder.Status `json:"status"`
}

func (h *Handler) addBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	cs, err := h.svc.AddBatch(r.Context(), cylinder.BatchParams{
		Quantity: req.Quantity,
		GasType:  req.GasType,
		Size:     req.Size,
		Status:   req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponseList(cs))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, r, apperror.Validation("failed to parse form: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, apperror.Validation("file is required"))
		return
	}
	defer file.Close()

	cs, err := h.importer.Import(r.Context(), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"imported":  len(cs),
		"cylinders": toResponseList(cs),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "serial"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := cylinder.ListFilter{GasType: q.Get("gasType")}

	if s := q.Get("status"); s != "" {
		filter.Status = new(cylinder.Status(s))
	}

	if s := q.Get("companyId"); s != "" {
		id, err := respond.ID(s, "companyId")
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.CompanyID = &id
	}

	cs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cs))
}

func (h *Handler) nextSerial(w http.ResponseWriter, r *http.Request) {
	next, err := h.svc.NextSerial(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"serialNumber": next})
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Archive(r.Context(), actor(r).UserID, chi.URLParam(r, "serial"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toArchivedResponse(d))
}

func (h *Handler) listArchived(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.ListArchived(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]archivedResponse, len(ds))
	for i, d := range ds {
		resp[i] = toArchivedResponse(d)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Restore(r.Context(), chi.URLParam(r, "serial"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}
