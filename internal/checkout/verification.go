package checkout

import (
	"context"
	"strings"
	"unicode"
)

// Verification is the outcome handed over by the phone verification step:
// either still pending or verified for exactly one phone number.
type Verification struct {
	phone string
}

func Pending() Verification {
	return Verification{}
}

func Verified(phone string) Verification {
	return Verification{phone: phone}
}

func (v Verification) IsVerified() bool {
	return v.phone != ""
}

func (v Verification) Phone() string {
	return v.phone
}

// PhoneVerifier is the external collaborator that confirms ownership of a phone number.
type PhoneVerifier interface {
	Verify(ctx context.Context, phone string) (Verification, error)
}

// TrustedVerifier accepts any well-formed number. Ownership checks (OTP and the like)
// happen before the number reaches this service.
type TrustedVerifier struct{}

func (TrustedVerifier) Verify(ctx context.Context, phone string) (Verification, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if len(digits) < 10 || len(digits) > 15 {
		return Pending(), nil
	}
	return Verified(digits), nil
}
