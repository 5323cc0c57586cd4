package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the cart and checkout API. m may be nil.
func NewRouter(h *CartHandler, registry *service.CartRegistry, m *metrics.MetricsManager, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(Instrument(m))

	r.Get("/healthz", HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(SessionCart(registry, log))

		r.Get("/cart", h.HandleGetCart)
		r.Delete("/cart", h.HandleClearCart)
		r.Get("/cart/badge", h.HandleGetBadge)
		r.Post("/cart/items", h.HandleAddItem)
		r.Patch("/cart/items/{productID}/{size}", h.HandleUpdateQuantity)
		r.Delete("/cart/items/{productID}/{size}", h.HandleRemoveItem)
		r.Post("/checkout", h.HandleCheckout)
		r.Post("/checkout/preview", h.HandlePreviewCheckout)
	})

	return r
}
