// Package report serves dashboard statistics.
package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
	"github.com/MrJamesThe3rd/gastrack/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapReportRead))
		r.Get("/stats", h.stats)
		r.Get("/trends", h.trends)
		r.Get("/top-companies", h.topCompanies)
		r.Get("/movement", h.movement)
	})

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(auth.CapCylinderRead))
		r.Get("/empty-cylinders", h.emptySummary)
		r.Get("/products", h.products)
	})

	r.With(gate.Require(auth.CapLedgerOwn)).Get("/mine", h.mine)
}

type countResponse struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type statsResponse struct {
	ByStatus          []countResponse `json:"byStatus"`
	ByGasType         []countResponse `json:"byGasType"`
	TotalTransactions int64           `json:"totalTransactions"`
	ByAction          []countResponse `json:"byAction"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.DateRange(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Stats(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := statsResponse{
		ByStatus:          make([]countResponse, len(s.ByStatus)),
		ByGasType:         make([]countResponse, len(s.ByGasType)),
		TotalTransactions: s.TotalTransactions,
		ByAction:          make([]countResponse, len(s.ByAction)),
	}

	for i, c := range s.ByStatus {
		resp.ByStatus[i] = countResponse{Key: c.Status, Count: c.Count}
	}

	for i, c := range s.ByGasType {
		resp.ByGasType[i] = countResponse{Key: c.GasType, Count: c.Count}
	}

	for i, c := range s.ByAction {
		resp.ByAction[i] = countResponse{Key: string(c.Action), Count: c.Count}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type trendResponse struct {
	Day    string        `json:"day"`
	Action ledger.Action `json:"action"`
	Count  int64         `json:"count"`
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.DateRange(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	points, err := h.svc.Trends(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]trendResponse, len(points))
	for i, p := range points {
		resp[i] = trendResponse{Day: p.Day.Format(time.DateOnly), Action: p.Action, Count: p.Count}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type companyCountResponse struct {
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
	Count       int64  `json:"count"`
}

func (h *Handler) topCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rng, err := respond.DateRange(q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	limit, err := respond.Int(q, "limit")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	top, err := h.svc.TopCompanies(r.Context(), rng, limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]companyCountResponse, len(top))
	for i, c := range top {
		resp[i] = companyCountResponse{CompanyID: c.CompanyID, CompanyName: c.CompanyName, Count: c.Count}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type movementResponse struct {
	TotalTransactions int64      `json:"totalTransactions"`
	UniqueCylinders   int64      `json:"uniqueCylinders"`
	LatestActivity    *time.Time `json:"latestActivity"`
}

func (h *Handler) movement(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.DateRange(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	m, err := h.svc.Movement(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, movementResponse{
		TotalTransactions: m.Entries,
		UniqueCylinders:   m.UniqueCylinders,
		LatestActivity:    m.LatestActivity,
	})
}

type emptyGroupResponse struct {
	GasType string   `json:"gasType"`
	Size    int      `json:"size"`
	Count   int      `json:"count"`
	Serials []string `json:"serials"`
}

func (h *Handler) emptySummary(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.EmptySummary(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]emptyGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = emptyGroupResponse{GasType: g.GasType, Size: g.Size, Count: len(g.Serials), Serials: g.Serials}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type productResponse struct {
	GasType string `json:"gasType"`
	Size    int    `json:"size"`
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = productResponse{GasType: p.GasType, Size: p.Size}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type activityResponse struct {
	Dispatched int64 `json:"dispatched"`
	Received   int64 `json:"received"`
	Refilled   int64 `json:"refilled"`
}

// mine counts the caller's own ledger entries.
func (h *Handler) mine(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.DateRange(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller, _ := auth.FromContext(r.Context())

	a, err := h.svc.WorkerActivity(r.Context(), caller.UserID, rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, activityResponse{Dispatched: a.Dispatched, Received: a.Received, Refilled: a.Refilled})
}
