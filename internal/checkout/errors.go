package checkout

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotVerified        = errors.New("phone number not verified")
	ErrAlreadyVerified    = errors.New("phone number already verified")
	ErrInvalidState       = errors.New("checkout is not accepting this action")
	ErrPhoneReadOnly      = errors.New("phone is fixed to the verified number")
	ErrUnknownField       = errors.New("unknown form field")
	ErrInvalidPaymentMode = errors.New("invalid payment method")
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists the form fields that failed required-field checks.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Rule == "required" {
			msgs = append(msgs, f.Field+" is required")
			continue
		}
		msgs = append(msgs, f.Field+" failed "+f.Rule)
	}
	return "invalid checkout form: " + strings.Join(msgs, ", ")
}
