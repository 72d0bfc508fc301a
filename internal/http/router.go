package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/locale"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	DefaultLocale  locale.Locale
}

// NewRouter mounts the shop routes and the health check.
func NewRouter(svc ShopService, cfg RouterConfig, log *zap.Logger) http.Handler {
	shopHandler := NewShopHandler(svc, cfg.RequestTimeout, log)
	cartHandler := NewCartHandler(svc, cfg.RequestTimeout, log)
	notificationHandler := NewNotificationHandler(svc)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/shop", func(r chi.Router) {
		r.Get("/bootstrap", shopHandler.Bootstrap)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.DefaultLocale, cfg.SessionTTL))

			r.Get("/", shopHandler.Page)
			r.Delete("/session", shopHandler.EndSession)
			r.Route("/products", func(r chi.Router) {
				r.Get("/", shopHandler.Products)
				r.Delete("/selected", shopHandler.CloseProduct)
				r.Get("/{product_id}", shopHandler.ShowProduct)
			})
			r.Post("/view/toggle", shopHandler.ToggleView)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/toggle", cartHandler.ToggleCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Post("/items/{product_id}/increase", cartHandler.IncreaseQuantity)
				r.Post("/items/{product_id}/decrease", cartHandler.DecreaseQuantity)
			})
			r.Post("/checkout", cartHandler.Checkout)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Delete("/{id}", notificationHandler.Dismiss)
			})
		})
	})

	return r
}
