package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/handler"
	"github.com/vikas-0-3/farmer/internal/middleware"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Farmer  *handler.FarmerHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

// New builds the HTTP routing tree. Every route states its auth tier
// explicitly: public, authenticated, or admin.
func New(h Handlers, jwtSecret, uploadsDir, uploadsPrefix string, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	authenticated := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(string(entity.RoleAdmin))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if uploadsDir != "" {
		fs := http.StripPrefix(uploadsPrefix+"/", http.FileServer(http.Dir(uploadsDir)))
		r.Get(uploadsPrefix+"/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// public
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/users", func(r chi.Router) {
			// admin
			r.With(authenticated, adminOnly).Post("/", h.User.Create)
			r.With(authenticated, adminOnly).Get("/", h.User.List)
			r.With(authenticated, adminOnly).Get("/allusers", h.User.ListPlainUsers)
			r.With(authenticated, adminOnly).Delete("/{id}", h.User.Delete)
			// authenticated
			r.With(authenticated).Get("/{id}", h.User.Get)
			r.With(authenticated).Put("/{id}", h.User.Update)
		})

		r.Route("/farmers", func(r chi.Router) {
			// admin
			r.With(authenticated, adminOnly).Post("/", h.Farmer.Create)
			r.With(authenticated, adminOnly).Delete("/{id}", h.Farmer.Delete)
			// authenticated
			r.With(authenticated).Get("/", h.Farmer.List)
			r.With(authenticated).Get("/farms", h.Farmer.ListFarms)
			r.With(authenticated).Get("/{userId}", h.Farmer.GetByUserID)
			r.With(authenticated).Put("/{id}", h.Farmer.Update)
		})

		r.Route("/products", func(r chi.Router) {
			// public catalog reads
			r.Get("/", h.Product.List)
			r.Get("/allproducts", h.Product.List)
			r.Get("/farmer/{farmerId}", h.Product.ListByFarmer)
			r.Get("/{id}", h.Product.Get)
			// authenticated
			r.With(authenticated).Post("/", h.Product.Create)
			r.With(authenticated).Put("/{id}", h.Product.Update)
			r.With(authenticated).Delete("/{id}", h.Product.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			// authenticated
			r.Use(authenticated)
			r.Post("/", h.Cart.AddOrMerge)
			r.Get("/{userId}", h.Cart.GetForUser)
			r.Put("/{cartId}/products/{itemId}", h.Cart.UpdateItem)
			r.Delete("/{cartId}/products/{itemId}", h.Cart.RemoveItem)
			r.Put("/{id}", h.Cart.Replace)
			r.Delete("/{id}", h.Cart.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			// admin
			r.With(authenticated, adminOnly).Get("/", h.Order.ListAll)
			r.With(authenticated, adminOnly).Put("/{orderId}", h.Order.UpdateStatus)
			// authenticated
			r.With(authenticated).Post("/", h.Order.Create)
			r.With(authenticated).Get("/{userId}", h.Order.ListForUser)
		})
	})

	return r
}
