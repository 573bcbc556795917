package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	orders, err := h.orders.List(ctx)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to list orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	o, err := h.orders.Get(ctx, chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeDomainError(w, r, err, "failed to load order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}
