// Package transaction serves the cylinder ledger.
package transaction

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/auth"
	"github.com/MrJamesThe3rd/gastrack/internal/http/gate"
	"github.com/MrJamesThe3rd/gastrack/internal/http/respond"
	"github.com/MrJamesThe3rd/gastrack/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(gate.Require(auth.CapReportRead)).Get("/", h.list)
	r.With(gate.Require(auth.CapLedgerOwn)).Get("/mine", h.mine)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if s := r.URL.Query().Get("userId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, apperror.Validation("userId must be a UUID"))
			return
		}

		filter.UserID = &id
	}

	h.query(w, r, filter)
}

// mine always scopes to the caller, whatever userId says.
func (h *Handler) mine(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller, _ := auth.FromContext(r.Context())
	filter.UserID = new(caller.UserID)

	h.query(w, r, filter)
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request, filter ledger.Filter) {
	entries, err := h.svc.Query(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(entries))
}

func parseFilter(q url.Values) (ledger.Filter, error) {
	rng, err := respond.DateRange(q)
	if err != nil {
		return ledger.Filter{}, err
	}

	limit, err := respond.Int(q, "limit")
	if err != nil {
		return ledger.Filter{}, err
	}

	return ledger.Filter{
		Range:     rng,
		Search:    q.Get("search"),
		SortBy:    ledger.SortField(q.Get("sortBy")),
		SortOrder: ledger.SortOrder(q.Get("sortOrder")),
		Limit:     limit,
	}, nil
}
