package seed

import (
	"net/http"

	"github.com/expenseflow/expenseflow/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Seeder *Seeder
}

func NewHandler(base *transport.BaseHandler, seeder *Seeder) *Handler {
	return &Handler{BaseHandler: base, Seeder: seeder}
}

// Setup handles POST /setup.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Seeder.Run(r.Context())
	if err != nil {
		h.Logger.Error("Setup: seeding failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to seed demo data")
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
