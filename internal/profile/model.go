package profile

import "strings"

// UserProfile holds the delivery details a customer entered at their last checkout.
type UserProfile struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	FlatNo   string `json:"flatNo"`
	Building string `json:"building"`
	Area     string `json:"area"`
	City     string `json:"city"`
	PinCode  string `json:"pinCode"`
}

func (p UserProfile) FullAddress() string {
	return strings.Join([]string{p.FlatNo, p.Building, p.Area, p.City, p.PinCode}, ", ")
}
