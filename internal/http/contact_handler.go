package httpapi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/Abhinay142/mom-made-goodies-house/internal/contact"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
)

type contactRequest struct {
	PaymentMode         string `json:"paymentMode"`
	IncludeOrderDetails bool   `json:"includeOrderDetails"`
}

func (h *Handler) QuickContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	mode, err := order.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		h.writeDomainError(w, r, err, "invalid payment mode")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	res, err := h.contact.Invoke(ctx, s.Cart, contact.Options{
		PaymentMode:         mode,
		IncludeOrderDetails: req.IncludeOrderDetails,
	})
	if err != nil {
		h.writeDomainError(w, r, err, "failed to place order")
		return
	}

	status := http.StatusOK
	if res.Order != nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}
