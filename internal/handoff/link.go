package handoff

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

const baseURL = "https://wa.me/"

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Encode escapes a message the way a URI component is escaped: spaces become %20
// and !'()* are left as is.
func Encode(message string) string {
	return componentUnescaper.Replace(url.QueryEscape(message))
}

func Link(contact, message string) string {
	return baseURL + contact + "?text=" + Encode(message)
}

// Launcher opens a deep link in a new browsing context. Delivery is never confirmed.
type Launcher interface {
	Open(ctx context.Context, link string) error
}

// LoggingLauncher records the link; the client that receives it performs the open.
type LoggingLauncher struct {
	Logger logrus.FieldLogger
}

func (l LoggingLauncher) Open(ctx context.Context, link string) error {
	l.Logger.WithField("link", link).Debug("handoff link issued")
	return nil
}

// Handoff sends messages to the fixed store contact.
type Handoff struct {
	contact  string
	launcher Launcher
	logger   logrus.FieldLogger
}

func New(contact string, launcher Launcher, logger logrus.FieldLogger) *Handoff {
	return &Handoff{contact: contact, launcher: launcher, logger: logger}
}

// Send builds the deep link and asks the launcher to open it. The link is returned
// even when the launcher fails.
func (h *Handoff) Send(ctx context.Context, message string) string {
	link := Link(h.contact, message)
	if err := h.launcher.Open(ctx, link); err != nil {
		h.logger.WithError(err).Warn("open handoff link")
	}
	return link
}
