package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	checkoutservice "github.com/AbdelkaderTk/go-shop/internal/checkout/service"
	"github.com/AbdelkaderTk/go-shop/internal/order/domain"
)

type CheckoutHandler struct {
	checkout checkoutservice.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout checkoutservice.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	PaymentToken string `json:"payment_token"`
}

type OrderResponseDTO struct {
	ID         string            `json:"id"`
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"total_cents"`
	Currency   string            `json:"currency"`
	Status     string            `json:"status"`
	PaymentRef string            `json:"payment_ref,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func orderToDTO(o *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:         o.ID.String(),
		Items:      o.Items,
		TotalCents: o.TotalCents,
		Currency:   o.Currency,
		Status:     string(o.Status),
		PaymentRef: o.PaymentRef,
		CreatedAt:  o.CreatedAt,
	}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentToken == "" {
		respondError(w, http.StatusBadRequest, "missing_payment_token", "payment_token is required")
		return
	}

	user := checkoutservice.User{
		ID:    userID,
		Email: getUserEmailFromContext(r.Context()),
	}

	order, err := h.checkout.Checkout(ctx, user, req.PaymentToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, orderToDTO(order))
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.checkout.ListOrders(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, orderToDTO(o))
	}

	respondJSON(w, http.StatusOK, dtos)
}
