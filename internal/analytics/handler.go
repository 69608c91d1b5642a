package analytics

import (
	"net/http"

	"github.com/expenseflow/expenseflow/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(base *transport.BaseHandler, service *Service) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

// Dashboard handles GET /analytics/dashboard/{userID}.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	dashboard, err := h.Service.Dashboard(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dashboard)
}
