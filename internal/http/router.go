package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func NewRouter(h *Handler, allowOrigins []string) http.Handler {
	r := chi.NewRouter()
	useMiddleware(r, h.logger, allowOrigins)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{productId}", h.GetProduct)

		r.Route("/cart/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productId}/{size}", h.UpdateItem)
			r.Delete("/items/{productId}/{size}", h.RemoveItem)
		})

		r.Route("/checkout/{sessionId}", func(r chi.Router) {
			r.Get("/", h.GetCheckout)
			r.Post("/verify", h.VerifyPhone)
			r.Patch("/form", h.EditForm)
			r.Post("/submit", h.SubmitCheckout)
			r.Post("/reset", h.ResetCheckout)
		})

		r.Post("/contact/{sessionId}", h.QuickContact)

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderId}", h.GetOrder)

		r.Get("/profiles/{phone}", h.GetProfile)
	})

	return r
}

func useMiddleware(r chi.Router, logger logrus.FieldLogger, allowOrigins []string) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(allowOrigins))
}
