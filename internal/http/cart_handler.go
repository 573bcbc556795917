package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
	"github.com/Abhinay142/mom-made-goodies-house/internal/session"
)

type cartResponse struct {
	SessionID string          `json:"sessionId"`
	Items     []cart.Line     `json:"items"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
}

func newCartResponse(s *session.Session) cartResponse {
	items := s.Cart.Items()
	lines := make([]cart.Line, 0, len(items))
	count := 0
	for _, it := range items {
		lines = append(lines, it.Line())
		count += it.Quantity
	}
	return cartResponse{
		SessionID: s.ID,
		Items:     lines,
		Count:     count,
		Total:     cart.TotalOf(items),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	writeJSON(w, http.StatusOK, newCartResponse(s))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	size, err := catalog.ParseSize(req.Size)
	if err != nil {
		h.writeDomainError(w, r, err, "invalid size")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	product, err := h.catalog.Get(ctx, req.ProductID)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to load product")
		return
	}
	if _, ok := product.Prices[size]; !ok {
		h.writeDomainError(w, r, errors.Wrapf(catalog.ErrInvalidSize, "%s is not sold in %s", product.ID, size), "invalid size")
		return
	}

	s := h.sessions.Get(chi.URLParam(r, "sessionId"))
	s.Cart.Add(product, size, req.Quantity)
	writeJSON(w, http.StatusOK, newCartResponse(s))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	size, err := catalog.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		h.writeDomainError(w, r, err, "invalid size")
		return
	}

	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	s.Cart.UpdateQuantity(chi.URLParam(r, "productId"), size, req.Quantity)
	writeJSON(w, http.StatusOK, newCartResponse(s))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	size, err := catalog.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		h.writeDomainError(w, r, err, "invalid size")
		return
	}

	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	s.Cart.Remove(chi.URLParam(r, "productId"), size)
	writeJSON(w, http.StatusOK, newCartResponse(s))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	s.Cart.Clear()
	writeJSON(w, http.StatusOK, newCartResponse(s))
}
