package currency

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/expenseflow/expenseflow/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(base *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: base}
}

type ConversionResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Converted float64 `json:"converted"`
	Rate      float64 `json:"rate"`
}

// Convert handles GET /convert/{from}/{to}/{amount}.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	from := strings.ToUpper(chi.URLParam(r, "from"))
	to := strings.ToUpper(chi.URLParam(r, "to"))

	amountStr := chi.URLParam(r, "amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		h.Logger.Error("Convert: invalid amount", "amount", amountStr)
		h.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if err := ParseAmount(amount); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusOK, ConversionResponse{
		From:      from,
		To:        to,
		Amount:    amount,
		Converted: Convert(amount, from, to),
		Rate:      Rate(from, to),
	})
}

// Currencies handles GET /currencies.
func (h *Handler) Currencies(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"currencies": Codes(),
	})
}
