package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Invoices *InvoiceHandler

	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MockAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", deps.Products.ListProducts)
		r.Get("/products/{product_id}", deps.Products.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
		})

		r.Post("/checkout", deps.Checkout.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", deps.Checkout.ListOrders)
			r.Get("/{order_id}/invoice", deps.Invoices.GetInvoice)
		})
	})

	return r
}
