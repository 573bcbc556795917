package handoff

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
	"github.com/Abhinay142/mom-made-goodies-house/internal/profile"
)

const (
	StoreName      = "House of Foods"
	InquiryMessage = "Hi, I would like to know more about " + StoreName + " products."
	currency       = "₹"
)

func amount(d decimal.Decimal) string {
	return currency + d.String()
}

// OrderMessage is the detailed message sent from the quick-contact button.
func OrderMessage(o *order.Order) string {
	var b strings.Builder
	b.WriteString("Hi, I would like to place an order:\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Customer ID: %s\n", o.CustomerID)
	fmt.Fprintf(&b, "Payment Mode: %s\n\n", o.PaymentMode.Label())
	b.WriteString("Order Details:\n")

	lines := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("• %s (%s) - Qty: %d - %s", it.Name, it.Size, it.Quantity, amount(it.Subtotal())))
	}
	b.WriteString(strings.Join(lines, "\n"))

	fmt.Fprintf(&b, "\n\nTotal Amount: %s\n\n", amount(o.Total))
	b.WriteString("Please confirm my order. Thank you!")
	return b.String()
}

// CheckoutMessage summarises a submitted checkout together with the delivery details.
func CheckoutMessage(o *order.Order, p profile.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I just placed an order with %s.\n\n", StoreName)
	fmt.Fprintf(&b, "Order ID: %s\n\n", o.ID)
	b.WriteString("Order Details:\n")

	lines := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("%dx %s (%s)", it.Quantity, it.Name, it.Size))
	}
	b.WriteString(strings.Join(lines, "\n"))

	fmt.Fprintf(&b, "\n\nTotal: %s\n\n", amount(o.Total))
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
	fmt.Fprintf(&b, "Address: %s", p.FullAddress())
	return b.String()
}
