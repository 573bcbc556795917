package checkout

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
	"github.com/Abhinay142/mom-made-goodies-house/internal/profile"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
	PaymentUPI    PaymentMethod = "upi"
)

// OrderMode maps the form choice onto the modes an order records. UPI is an online payment.
func (m PaymentMethod) OrderMode() order.PaymentMode {
	if m == PaymentCOD {
		return order.PaymentCOD
	}
	return order.PaymentOnline
}

// FormState mirrors the checkout form for the lifetime of one checkout view.
type FormState struct {
	Name          string        `json:"name" validate:"required"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email" validate:"required,email"`
	FlatNo        string        `json:"flatNo" validate:"required"`
	Building      string        `json:"building" validate:"required"`
	Area          string        `json:"area" validate:"required"`
	City          string        `json:"city" validate:"required"`
	PinCode       string        `json:"pinCode" validate:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cod online upi"`
}

func newForm() FormState {
	return FormState{PaymentMethod: PaymentCOD}
}

// prefill copies a stored profile; the payment method always starts at cash on delivery.
func prefill(p profile.UserProfile) FormState {
	return FormState{
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		FlatNo:        p.FlatNo,
		Building:      p.Building,
		Area:          p.Area,
		City:          p.City,
		PinCode:       p.PinCode,
		PaymentMethod: PaymentCOD,
	}
}

func (f FormState) Profile() profile.UserProfile {
	return profile.UserProfile{
		Name:     f.Name,
		Phone:    f.Phone,
		Email:    f.Email,
		FlatNo:   f.FlatNo,
		Building: f.Building,
		Area:     f.Area,
		City:     f.City,
		PinCode:  f.PinCode,
	}
}

func (f *FormState) field(name string) (*string, error) {
	switch name {
	case "name":
		return &f.Name, nil
	case "email":
		return &f.Email, nil
	case "flatNo":
		return &f.FlatNo, nil
	case "building":
		return &f.Building, nil
	case "area":
		return &f.Area, nil
	case "city":
		return &f.City, nil
	case "pinCode":
		return &f.PinCode, nil
	case "phone":
		return nil, ErrPhoneReadOnly
	default:
		return nil, errors.Wrapf(ErrUnknownField, "%q", name)
	}
}

// apply sets all given fields or none of them.
func (f *FormState) apply(edits map[string]string) error {
	next := *f
	for name, value := range edits {
		value = strings.TrimSpace(value)
		if name == "paymentMethod" {
			switch m := PaymentMethod(value); m {
			case PaymentCOD, PaymentOnline, PaymentUPI:
				next.PaymentMethod = m
			default:
				return errors.Wrapf(ErrInvalidPaymentMode, "%q", value)
			}
			continue
		}
		ptr, err := next.field(name)
		if err != nil {
			return err
		}
		*ptr = value
	}
	*f = next
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (f FormState) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
