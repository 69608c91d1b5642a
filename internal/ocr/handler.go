package ocr

import (
	"io"
	"net/http"

	"github.com/expenseflow/expenseflow/internal/transport"
)

// maxReceiptSize caps uploads at 10 MiB.
const maxReceiptSize = 10 << 20

type Handler struct {
	*transport.BaseHandler
	Scanner Scanner
}

func NewHandler(base *transport.BaseHandler, scanner Scanner) *Handler {
	return &Handler{BaseHandler: base, Scanner: scanner}
}

// ProcessReceipt handles POST /ocr/process-receipt (multipart upload, field
// name "receipt").
func (h *Handler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		h.Logger.Error("ProcessReceipt: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "receipt file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		h.Logger.Error("ProcessReceipt: failed to read upload", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	result, err := h.Scanner.ScanReceipt(r.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.Error("ProcessReceipt: scan failed", "error", err, "filename", header.Filename)
		h.WriteError(w, http.StatusInternalServerError, "failed to process receipt")
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
