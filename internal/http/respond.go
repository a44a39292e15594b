package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	cartservice "github.com/AbdelkaderTk/go-shop/internal/cart/service"
	catalogrepo "github.com/AbdelkaderTk/go-shop/internal/catalog/repository"
	checkoutservice "github.com/AbdelkaderTk/go-shop/internal/checkout/service"
	"github.com/AbdelkaderTk/go-shop/internal/invoice"
	orderrepo "github.com/AbdelkaderTk/go-shop/internal/order/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// handleServiceError maps core sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500; the details stay in the server log, not the body.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkoutservice.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty, nothing to checkout")
	case errors.Is(err, checkoutservice.ErrPaymentDeclined):
		respondError(w, http.StatusPaymentRequired, "payment_declined", "payment was declined, the order was kept for retry")
	case errors.Is(err, cartservice.ErrProductUnavailable):
		respondError(w, http.StatusConflict, "product_unavailable", "a product in the cart is no longer available")
	case errors.Is(err, catalogrepo.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "no such product")
	case errors.Is(err, orderrepo.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "no such order")
	case errors.Is(err, invoice.ErrNotOwner):
		respondError(w, http.StatusForbidden, "forbidden", "order belongs to another user")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
