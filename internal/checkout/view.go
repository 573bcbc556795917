package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
	"github.com/Abhinay142/mom-made-goodies-house/internal/handoff"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
	"github.com/Abhinay142/mom-made-goodies-house/internal/profile"
)

type State string

const (
	StateAwaitingPhoneVerification State = "awaiting_phone_verification"
	StateFormReady                 State = "form_ready"
	StateSubmitting                State = "submitting"
	StateSubmitted                 State = "submitted"
)

const EmptyCartMessage = "Your cart is empty."

type OrderPlacer interface {
	AddOrder(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error)
}

type Options struct {
	ConfirmationPath string
	BrowsePath       string
	HandoffDelay     time.Duration
}

func DefaultOptions() Options {
	return Options{
		ConfirmationPath: "/thank-you",
		BrowsePath:       "/menu",
		HandoffDelay:     1500 * time.Millisecond,
	}
}

type Deps struct {
	Profiles profile.Store
	Orders   OrderPlacer
	Handoff  *handoff.Handoff
	Logger   logrus.FieldLogger
	Options  Options
}

type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var orderPlacedNotification = Notification{
	Title:       "Order placed successfully!",
	Description: "Your order has been placed and will be processed soon.",
}

// Page is what the checkout view shows for the current cart and state.
type Page struct {
	State      State           `json:"state"`
	Empty      bool            `json:"empty"`
	Message    string          `json:"message,omitempty"`
	BrowsePath string          `json:"browsePath,omitempty"`
	Lines      []cart.Line     `json:"lines,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Form       *FormState      `json:"form,omitempty"`
}

// Submission describes, in order, what happens after a successful submit: the profile is
// persisted, the notification is shown, then the client opens HandoffURL and navigates to
// Redirect. HandoffDelay only gives the notification time to render.
type Submission struct {
	Order        *order.Order  `json:"order"`
	Notification Notification  `json:"notification"`
	Message      string        `json:"message"`
	HandoffURL   string        `json:"handoffUrl"`
	Redirect     string        `json:"redirect"`
	HandoffDelay time.Duration `json:"-"`
	DelayMillis  int64         `json:"handoffDelayMs"`
}

// View is the checkout state machine of one session.
type View struct {
	deps Deps

	mu    sync.Mutex
	state State
	form  FormState
}

func NewView(deps Deps) *View {
	return &View{
		deps:  deps,
		state: StateAwaitingPhoneVerification,
		form:  newForm(),
	}
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Form() FormState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// Render short-circuits to the empty-cart page when there is nothing to check out.
// A view left in Submitted starts over once the cart has items again.
func (v *View) Render(c *cart.Cart) Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	if c.IsEmpty() {
		return Page{
			State:      v.state,
			Empty:      true,
			Message:    EmptyCartMessage,
			BrowsePath: v.deps.Options.BrowsePath,
			Subtotal:   decimal.Zero,
		}
	}

	if v.state == StateSubmitted {
		v.resetLocked()
	}

	page := Page{
		State:    v.state,
		Lines:    c.Lines(),
		Subtotal: c.Total(),
	}
	if v.state == StateFormReady {
		form := v.form
		page.Form = &form
	}
	return page
}

// Verify consumes the verification outcome. A pending result leaves the view waiting;
// a verified one prefills the form from the stored profile, if any.
func (v *View) Verify(ctx context.Context, result Verification) (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateAwaitingPhoneVerification {
		return v.state, ErrAlreadyVerified
	}
	if !result.IsVerified() {
		return v.state, nil
	}

	stored, err := v.deps.Profiles.Get(ctx, result.Phone())
	if err != nil {
		return v.state, errors.Wrap(err, "load profile")
	}

	form := newForm()
	if stored != nil {
		form = prefill(*stored)
	}
	form.Phone = result.Phone()

	v.form = form
	v.state = StateFormReady
	v.deps.Logger.WithField("prefilled", stored != nil).Debug("checkout phone verified")
	return v.state, nil
}

func (v *View) Edit(edits map[string]string) (FormState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateFormReady {
		if v.state == StateAwaitingPhoneVerification {
			return v.form, ErrNotVerified
		}
		return v.form, ErrInvalidState
	}
	if err := v.form.apply(edits); err != nil {
		return v.form, err
	}
	return v.form, nil
}

// Submit persists the profile, takes the cart contents into an order and returns the handoff.
// Items added while the order is being placed stay in the cart.
func (v *View) Submit(ctx context.Context, c *cart.Cart) (*Submission, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case StateFormReady:
	case StateAwaitingPhoneVerification:
		return nil, ErrNotVerified
	default:
		return nil, ErrInvalidState
	}

	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := v.form.Validate(); err != nil {
		return nil, err
	}

	v.state = StateSubmitting
	sub, err := v.submitLocked(ctx, c)
	if err != nil {
		v.state = StateFormReady
		return nil, err
	}
	v.state = StateSubmitted
	return sub, nil
}

func (v *View) submitLocked(ctx context.Context, c *cart.Cart) (*Submission, error) {
	details := v.form.Profile()
	if err := v.deps.Profiles.Save(ctx, details); err != nil {
		return nil, errors.Wrap(err, "save profile")
	}

	items := c.Take()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	placed, err := v.deps.Orders.AddOrder(ctx, items, cart.TotalOf(items), v.form.PaymentMethod.OrderMode())
	if err != nil {
		c.Restore(items)
		return nil, errors.Wrap(err, "place order")
	}

	message := handoff.CheckoutMessage(placed, details)
	link := v.deps.Handoff.Send(ctx, message)

	v.deps.Logger.WithField("orderId", placed.ID).Info("checkout submitted")

	return &Submission{
		Order:        placed,
		Notification: orderPlacedNotification,
		Message:      message,
		HandoffURL:   link,
		Redirect:     v.deps.Options.ConfirmationPath,
		HandoffDelay: v.deps.Options.HandoffDelay,
		DelayMillis:  v.deps.Options.HandoffDelay.Milliseconds(),
	}, nil
}

// Reset returns the view to its initial state.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetLocked()
}

func (v *View) resetLocked() {
	v.state = StateAwaitingPhoneVerification
	v.form = newForm()
}
