package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
	"github.com/Abhinay142/mom-made-goodies-house/internal/checkout"
	"github.com/Abhinay142/mom-made-goodies-house/internal/contact"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
	"github.com/Abhinay142/mom-made-goodies-house/internal/profile"
	"github.com/Abhinay142/mom-made-goodies-house/internal/session"
)

type OrderReader interface {
	Get(ctx context.Context, orderID string) (*order.Order, error)
	List(ctx context.Context) ([]order.Order, error)
}

type Deps struct {
	Catalog  catalog.Catalog
	Sessions *session.Registry
	Orders   OrderReader
	Profiles profile.Store
	Contact  *contact.Action
	Verifier checkout.PhoneVerifier
	Logger   logrus.FieldLogger
	Timeout  time.Duration
}

type Handler struct {
	catalog  catalog.Catalog
	sessions *session.Registry
	orders   OrderReader
	profiles profile.Store
	contact  *contact.Action
	verifier checkout.PhoneVerifier
	logger   logrus.FieldLogger
	timeout  time.Duration
}

func NewHandler(d Deps) *Handler {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	verifier := d.Verifier
	if verifier == nil {
		verifier = checkout.TrustedVerifier{}
	}
	return &Handler{
		catalog:  d.Catalog,
		sessions: d.Sessions,
		orders:   d.Orders,
		profiles: d.Profiles,
		contact:  d.Contact,
		verifier: verifier,
		logger:   d.Logger,
		timeout:  timeout,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []checkout.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidSize),
		errors.Is(err, order.ErrInvalidPaymentMode),
		errors.Is(err, checkout.ErrPhoneReadOnly),
		errors.Is(err, checkout.ErrUnknownField),
		errors.Is(err, checkout.ErrInvalidPaymentMode):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotVerified),
		errors.Is(err, checkout.ErrAlreadyVerified),
		errors.Is(err, checkout.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError hides internal failures behind a generic message and logs them.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		requestLogger(h.logger, r).WithError(err).Error(internalMsg)
		writeError(w, status, internalMsg)
		return
	}

	resp := errorResponse{Error: err.Error()}
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	writeJSON(w, status, resp)
}
