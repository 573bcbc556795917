package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/checkout"
)

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	writeJSON(w, http.StatusOK, s.Checkout.Render(s.Cart))
}

type verifyRequest struct {
	Phone string `json:"phone"`
}

type verifyResponse struct {
	State    checkout.State      `json:"state"`
	Verified bool                `json:"verified"`
	Form     *checkout.FormState `json:"form,omitempty"`
}

func (h *Handler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.withTimeout(r)
	defer cancel()

	result, err := h.verifier.Verify(ctx, req.Phone)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to verify phone")
		return
	}

	sessionID := chi.URLParam(r, "sessionId")
	s := h.sessions.Peek(sessionID)
	if result.IsVerified() {
		s = h.sessions.Get(sessionID)
	}
	state, err := s.Checkout.Verify(ctx, result)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to load profile")
		return
	}

	resp := verifyResponse{State: state, Verified: result.IsVerified()}
	if state == checkout.StateFormReady {
		form := s.Checkout.Form()
		resp.Form = &form
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	var edits map[string]string
	if err := decodeJSON(r, &edits); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	form, err := s.Checkout.Edit(edits)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to update form")
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r)
	defer cancel()

	sessionID := chi.URLParam(r, "sessionId")
	s := h.sessions.Peek(sessionID)
	sub, err := s.Checkout.Submit(ctx, s.Cart)
	if err != nil {
		h.writeDomainError(w, r, err, "failed to place order")
		return
	}

	requestLogger(h.logger, r).WithFields(logrus.Fields{
		"sessionId": sessionID,
		"orderId":   sub.Order.ID,
	}).Info("checkout completed")
	writeJSON(w, http.StatusCreated, sub)
}

// ResetCheckout starts the checkout over; the cart is left as it is.
func (h *Handler) ResetCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Peek(chi.URLParam(r, "sessionId"))
	s.Checkout.Reset()
	writeJSON(w, http.StatusOK, s.Checkout.Render(s.Cart))
}
